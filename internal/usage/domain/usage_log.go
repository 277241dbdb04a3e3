package domain

import "time"

// UsageLog is one append-only record of an LLM invocation
type UsageLog struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Model         string    `json:"model"`
	TaskType      string    `json:"task_type"` // analysis|chat
	Complexity    string    `json:"complexity"`
	InputTokens   int       `json:"input_tokens"`
	OutputTokens  int       `json:"output_tokens"`
	Cost          float64   `json:"cost"`
	ResponseTime  int64     `json:"response_time_ms"`
	QualityRating *int      `json:"quality_rating,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// UsageStats aggregates usage against the fixed premium baseline
type UsageStats struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalInputTokens  int64   `json:"total_input_tokens"`
	TotalOutputTokens int64   `json:"total_output_tokens"`
	TotalCost         float64 `json:"total_cost"`
	BaselineCost      float64 `json:"baseline_cost"`
	EstimatedSavings  float64 `json:"estimated_savings"`
}
