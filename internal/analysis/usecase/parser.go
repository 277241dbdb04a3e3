package usecase

import (
	"encoding/json"
	"log"
	"strings"

	"mailpilot-backend/internal/analysis/domain"
)

// tenKeyPayload mirrors the schema the prompt demands. encoding/json
// matches keys case-insensitively, which gives the tolerant decode the
// parser needs; every field is optional.
type tenKeyPayload struct {
	Summary             json.RawMessage `json:"summary"`
	ObligationsAnalysis json.RawMessage `json:"obligations_analysis"`
	DeadlinesAnalysis   json.RawMessage `json:"deadlines_analysis"`
	DocumentsAnalysis   json.RawMessage `json:"documents_analysis"`
	FinancialAnalysis   json.RawMessage `json:"financial_records_analysis"`
	LifeDomainAnalysis  json.RawMessage `json:"life_domain_analysis"`
	ImportanceAnalysis  json.RawMessage `json:"importance_analysis"`
	GeneralAnalysis     json.RawMessage `json:"general_analysis"`
	ContactsAnalysis    json.RawMessage `json:"contacts_analysis"`
	EventsAnalysis      json.RawMessage `json:"events_analysis"`
}

// ParseResponse decodes raw LLM output into an AnalysisResult. It never
// fails: when the payload is not decodable JSON the raw text lands verbatim
// in the general-analysis slot so nothing is silently dropped.
func ParseResponse(raw string) *domain.AnalysisResult {
	cleaned := stripJSONFence(raw)

	var payload tenKeyPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		log.Printf("[ResponseParser] Structural decode failed, keeping raw text: %v", err)
		return &domain.AnalysisResult{General: raw}
	}

	return &domain.AnalysisResult{
		Summary:     sectionText(payload.Summary),
		Obligations: sectionText(payload.ObligationsAnalysis),
		Deadlines:   sectionText(payload.DeadlinesAnalysis),
		Documents:   sectionText(payload.DocumentsAnalysis),
		Financial:   sectionText(payload.FinancialAnalysis),
		LifeDomain:  sectionText(payload.LifeDomainAnalysis),
		Importance:  sectionText(payload.ImportanceAnalysis),
		General:     sectionText(payload.GeneralAnalysis),
		Contacts:    sectionText(payload.ContactsAnalysis),
		Events:      sectionText(payload.EventsAnalysis),
	}
}

// stripJSONFence removes a leading/trailing markdown code fence, which
// models emit despite being told not to
func stripJSONFence(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	} else {
		return text
	}

	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func sectionText(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	return string(raw)
}
