package domain

import "time"

// AnalysisStatus is the lifecycle state of one analysis attempt
type AnalysisStatus string

const (
	AnalysisProcessing AnalysisStatus = "processing"
	AnalysisCompleted  AnalysisStatus = "completed"
	AnalysisFailed     AnalysisStatus = "failed"
)

// AiAnalysis is one analysis attempt for a message. Section columns hold
// the raw per-section JSON text exactly as the model produced it; downstream
// consumers render these blobs, they never reinterpret them.
type AiAnalysis struct {
	ID        string `json:"id" gorm:"primaryKey"`
	MessageID string `json:"message_id" gorm:"index;not null"`

	Summary     string `json:"summary" gorm:"type:text"`
	Obligations string `json:"obligations" gorm:"type:text"`
	Deadlines   string `json:"deadlines" gorm:"type:text"`
	Documents   string `json:"documents" gorm:"type:text"`
	Financial   string `json:"financial" gorm:"type:text"`
	LifeDomain  string `json:"life_domain" gorm:"type:text"`
	Importance  string `json:"importance" gorm:"type:text"`
	General     string `json:"general" gorm:"type:text"`
	Contacts    string `json:"contacts" gorm:"type:text"`
	Events      string `json:"events" gorm:"type:text"`

	Model       string  `json:"model"`
	Cost        float64 `json:"cost"`
	RawResponse string  `json:"raw_response" gorm:"type:text"`

	Status          AnalysisStatus `json:"status" gorm:"default:processing"`
	ErrorKind       string         `json:"error_kind,omitempty"`
	ErrorMessage    string         `json:"error_message,omitempty" gorm:"type:text"`
	ErrorSuggestion string         `json:"error_suggestion,omitempty"`

	AnalyzedAt *time.Time `json:"analyzed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TableName specifies the table name for GORM
func (AiAnalysis) TableName() string {
	return "ai_analyses"
}
