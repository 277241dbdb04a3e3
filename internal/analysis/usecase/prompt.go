package usecase

import (
	"fmt"
	"strings"

	messagedomain "mailpilot-backend/internal/message/domain"
	settingsdomain "mailpilot-backend/internal/settings/domain"
)

// analysisSchema is the literal output contract embedded in every system
// prompt. The parser and extractors depend on exactly these ten keys.
const analysisSchema = `Respond with a single JSON object containing ALL of these top-level keys:
{
  "summary": "one-paragraph plain-language summary of the message",
  "obligations_analysis": {"obligations": [{"action": "...", "trigger": "...", "mandatory": true, "consequence_if_ignored": "...", "priority": "high|medium|low", "confidence": 0}]},
  "deadlines_analysis": {"deadlines": [{"description": "...", "type": "absolute|relative", "date": "YYYY-MM-DD", "relative_trigger": "...", "critical": false}]},
  "documents_analysis": {"documents": [{"name": "...", "type": "..."}], "links": [{"description": "...", "url": "..."}]},
  "financial_records_analysis": {"records": [{"type": "...", "amount": "...", "description": "..."}]},
  "life_domain_analysis": {"domain": "...", "reason": "..."},
  "importance_analysis": {"level": "high|medium|low", "reason": "..."},
  "general_analysis": "anything noteworthy that fits no other section",
  "contacts_analysis": {"contacts": [{"name": "...", "email": "...", "phone": "...", "organization": "...", "title": "...", "notes": "..."}]},
  "events_analysis": {"events": [{"title": "...", "description": "...", "start_time": "...", "end_time": "...", "location": "...", "all_day": false}]}
}

RULES:
- Return raw JSON only. No markdown code fences, no commentary.
- Do NOT include the user themselves in extracted contacts or people.
- confidence values are integers 0-100.
- Dates use YYYY-MM-DD where possible. Never invent a date.
- A section with no findings returns its empty structure, never omit a key.`

// PromptBuilder assembles the system/user message pair for one analysis
type PromptBuilder struct{}

// NewPromptBuilder creates a new PromptBuilder
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildSystemPrompt combines persona, user-identity context, optional
// correction instructions and the output schema
func (b *PromptBuilder) BuildSystemPrompt(profile *settingsdomain.UserProfile, instructions string) string {
	var sb strings.Builder

	sb.WriteString("You are a personal assistant that turns emails into structured, actionable records. ")
	sb.WriteString("Extract obligations, deadlines, contacts, events, documents and financial details precisely.\n\n")

	if context := buildIdentityContext(profile); context != "" {
		sb.WriteString("USER CONTEXT:\n")
		sb.WriteString(context)
		sb.WriteString("\n\n")
	}

	if instructions != "" {
		sb.WriteString("CRITICAL USER INSTRUCTIONS (these override everything else):\n")
		sb.WriteString(instructions)
		sb.WriteString("\n\n")
	}

	sb.WriteString(analysisSchema)
	return sb.String()
}

// BuildUserPrompt renders the message itself plus any scraped link context
func (b *PromptBuilder) BuildUserPrompt(message *messagedomain.Message, linkContext string) string {
	body := message.Body()
	if body == "" {
		body = "(no content)"
	}

	prompt := fmt.Sprintf("Subject: %s\nFrom: %s <%s>\nReceived: %s\n\n%s",
		message.Subject,
		message.SenderName,
		message.SenderAddress,
		message.ReceivedAt.UTC().Format("2006-01-02 15:04:05 UTC"),
		body,
	)

	if linkContext != "" {
		prompt += "\n\n" + linkContext
	}

	return prompt
}

// buildIdentityContext concatenates the free-text profile fields verbatim
func buildIdentityContext(profile *settingsdomain.UserProfile) string {
	if profile == nil {
		return ""
	}

	var parts []string
	if profile.Biography != "" {
		parts = append(parts, "About the user: "+profile.Biography)
	}
	if profile.Career != "" {
		parts = append(parts, "Career: "+profile.Career)
	}
	if profile.Household != "" {
		parts = append(parts, "Household: "+profile.Household)
	}
	if profile.Exclusions != "" {
		parts = append(parts, "Never extract or mention: "+profile.Exclusions)
	}
	if profile.Directives != "" {
		parts = append(parts, "Standing directives: "+profile.Directives)
	}
	return strings.Join(parts, "\n")
}
