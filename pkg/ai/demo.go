package ai

import "context"

// demoCannedResponse is a fixed, schema-correct payload used when demo mode
// is on or when no provider configuration can be resolved. It exercises the
// full extraction pipeline without any outbound call.
const demoCannedResponse = `{
  "summary": "Demo analysis: your utility provider sent the annual contract renewal notice with a signing deadline and an attached tariff sheet.",
  "obligations_analysis": {
    "obligations": [
      {
        "action": "Sign and return the renewal contract",
        "trigger": "Annual contract renewal notice",
        "mandatory": true,
        "consequence_if_ignored": "Service switches to the more expensive default tariff",
        "priority": "high",
        "confidence": 92
      },
      {
        "action": "Compare current tariff against the new offer",
        "trigger": "Tariff sheet attached to the notice",
        "mandatory": false,
        "consequence_if_ignored": "Possible overpayment on the new contract",
        "priority": "medium",
        "confidence": 70
      }
    ]
  },
  "deadlines_analysis": {
    "deadlines": [
      {
        "description": "Renewal contract signing deadline",
        "type": "absolute",
        "date": "2025-12-01",
        "critical": true
      }
    ]
  },
  "documents_analysis": {
    "documents": [
      {"name": "tariff-sheet-2026.pdf", "type": "pdf"}
    ],
    "links": [
      {"description": "Contract terms and conditions", "url": "https://example.com/terms"}
    ]
  },
  "financial_records_analysis": {
    "records": [
      {"type": "recurring_charge", "amount": "42.50 EUR", "description": "Monthly base tariff after renewal"}
    ]
  },
  "life_domain_analysis": {
    "domain": "household",
    "reason": "Utility contract for the home"
  },
  "importance_analysis": {
    "level": "high",
    "reason": "Mandatory action with a hard deadline and financial consequence"
  },
  "general_analysis": "The message is a routine but time-sensitive contract renewal.",
  "contacts_analysis": {
    "contacts": [
      {"name": "Anna Keller", "email": "a.keller@example-utility.com", "organization": "Example Utility GmbH", "title": "Customer Service"}
    ]
  },
  "events_analysis": {
    "events": [
      {
        "title": "Contract renewal deadline",
        "description": "Last day to return the signed renewal contract",
        "start_time": "2025-12-01T09:00:00Z",
        "all_day": true
      }
    ]
  }
}`

// DemoClient is the deterministic offline provider. It backs demo mode and
// the catch-all path for undetermined provider configuration.
type DemoClient struct{}

// NewDemoClient creates a new demo provider
func NewDemoClient() *DemoClient {
	return &DemoClient{}
}

// CompleteChat implements ChatProvider with a fixed canned response
func (d *DemoClient) CompleteChat(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	return demoCannedResponse, nil
}

// DemoResponse exposes the canned payload so the orchestrator can short-
// circuit demo mode without going through a provider at all.
func DemoResponse() string {
	return demoCannedResponse
}
