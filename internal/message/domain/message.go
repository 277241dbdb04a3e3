package domain

import "time"

// Message is an ingested communication item. Rows are created by the
// ingestion collaborator; this service only ever updates the derived
// importance/life-domain tags after a completed analysis.
type Message struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Source        string    `json:"source" gorm:"uniqueIndex:idx_source_native;not null"`
	SourceID      string    `json:"source_id" gorm:"uniqueIndex:idx_source_native;not null"`
	Subject       string    `json:"subject"`
	SenderName    string    `json:"sender_name"`
	SenderAddress string    `json:"sender_address"`
	ReceivedAt    time.Time `json:"received_at"`
	BodyPlain     string    `json:"body_plain" gorm:"type:text"`
	BodyHTML      string    `json:"body_html" gorm:"type:text"`
	Importance    string    `json:"importance"`
	LifeDomain    string    `json:"life_domain"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Body returns the analyzable content: plain text preferred, HTML fallback
func (m *Message) Body() string {
	if m.BodyPlain != "" {
		return m.BodyPlain
	}
	return m.BodyHTML
}
