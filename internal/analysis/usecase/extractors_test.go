package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailpilot-backend/internal/analysis/domain"
)

func TestExtractObligations(t *testing.T) {
	section := `{"obligations": [
		{"action": "Sign and return the renewal contract", "trigger": "Renewal notice", "mandatory": true,
		 "consequence_if_ignored": "Falls back to default tariff", "priority": "high", "confidence": 92},
		{"action": "Compare tariffs", "mandatory": false, "priority": "medium", "confidence": 70}
	]}`

	obligations := ExtractObligations("msg-1", section)
	require.Len(t, obligations, 2)

	first := obligations[0]
	assert.Equal(t, "msg-1", first.MessageID)
	assert.Equal(t, "Sign and return the renewal contract", first.Action)
	assert.Equal(t, "Renewal notice", first.TriggerText)
	assert.True(t, first.Mandatory)
	assert.Equal(t, "Falls back to default tariff", first.Consequence)
	assert.Equal(t, 1, first.Priority)
	require.NotNil(t, first.Confidence)
	assert.InDelta(t, 0.92, *first.Confidence, 1e-9)
	assert.Equal(t, "pending", first.Status)

	second := obligations[1]
	assert.False(t, second.Mandatory)
	assert.Equal(t, 2, second.Priority)
	assert.InDelta(t, 0.70, *second.Confidence, 1e-9)
}

func TestExtractObligationsSkipsMissingAction(t *testing.T) {
	section := `{"obligations": [
		{"trigger": "No action here"},
		{"action": ""},
		{"action": "Valid one"}
	]}`

	obligations := ExtractObligations("msg-1", section)
	require.Len(t, obligations, 1)
	assert.Equal(t, "Valid one", obligations[0].Action)
}

func TestExtractObligationsDefaults(t *testing.T) {
	obligations := ExtractObligations("msg-1", `{"obligations": [{"action": "Do it"}]}`)
	require.Len(t, obligations, 1)

	assert.Equal(t, 2, obligations[0].Priority)
	assert.Nil(t, obligations[0].Confidence)
	assert.False(t, obligations[0].Mandatory)
}

func TestExtractObligationsUnknownPriority(t *testing.T) {
	obligations := ExtractObligations("msg-1", `{"obligations": [{"action": "Do it", "priority": "urgent"}]}`)
	require.Len(t, obligations, 1)
	assert.Equal(t, 2, obligations[0].Priority)
}

func TestExtractObligationsMalformedSection(t *testing.T) {
	assert.Empty(t, ExtractObligations("msg-1", "not json"))
	assert.Empty(t, ExtractObligations("msg-1", ""))
	assert.Empty(t, ExtractObligations("msg-1", `{"obligations": "not a list"}`))
}

func TestExtractDeadlines(t *testing.T) {
	section := `{"deadlines": [
		{"description": "Contract signing deadline", "type": "absolute", "date": "2025-12-01", "critical": true},
		{"description": "Respond within 14 days", "type": "relative", "relative_trigger": "receipt of letter"}
	]}`

	deadlines := ExtractDeadlines("msg-1", section)
	require.Len(t, deadlines, 2)

	first := deadlines[0]
	assert.Equal(t, domain.DeadlineAbsolute, first.Type)
	require.NotNil(t, first.Date)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), *first.Date)
	assert.True(t, first.Critical)

	second := deadlines[1]
	assert.Equal(t, domain.DeadlineRelative, second.Type)
	assert.Nil(t, second.Date)
	assert.Equal(t, "receipt of letter", second.RelativeTrigger)
}

func TestExtractDeadlinesNeverFabricatesDates(t *testing.T) {
	section := `{"deadlines": [
		{"description": "Soon", "date": "sometime next week"},
		{"description": "Unknown", "date": ""}
	]}`

	deadlines := ExtractDeadlines("msg-1", section)
	require.Len(t, deadlines, 2)
	assert.Nil(t, deadlines[0].Date)
	assert.Nil(t, deadlines[1].Date)
}

func TestExtractDeadlinesSkipsMissingDescription(t *testing.T) {
	deadlines := ExtractDeadlines("msg-1", `{"deadlines": [{"date": "2025-12-01"}]}`)
	assert.Empty(t, deadlines)
}

func TestExtractContacts(t *testing.T) {
	section := `{"contacts": [
		{"name": "Anna Keller", "email": "a.keller@example-utility.com", "organization": "Example Utility GmbH", "title": "Customer Service"},
		{"email": "nameless@example.com"}
	]}`

	contacts := ExtractContacts("msg-1", section)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Anna Keller", contacts[0].Name)
	assert.Equal(t, "a.keller@example-utility.com", contacts[0].Email)
	assert.Equal(t, "Example Utility GmbH", contacts[0].Organization)
}

func TestExtractEvents(t *testing.T) {
	section := `{"events": [
		{"title": "Contract renewal deadline", "start_time": "2025-12-01T09:00:00Z", "all_day": true},
		{"title": "No schedule"},
		{"title": "Bad schedule", "start_time": "whenever"}
	]}`

	events := ExtractEvents("msg-1", section)
	require.Len(t, events, 1)
	assert.Equal(t, "Contract renewal deadline", events[0].Title)
	assert.Equal(t, time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC), events[0].StartTime)
	assert.True(t, events[0].AllDay)
	assert.Equal(t, "confirmed", events[0].Status)
}

func TestExtractEventsWithEndTime(t *testing.T) {
	section := `{"events": [
		{"title": "Meeting", "start_time": "2025-11-20 14:00", "end_time": "2025-11-20 15:00", "location": "Office"}
	]}`

	events := ExtractEvents("msg-1", section)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].EndTime)
	assert.Equal(t, time.Date(2025, 11, 20, 15, 0, 0, 0, time.UTC), *events[0].EndTime)
	assert.Equal(t, "Office", events[0].Location)
}

func TestExtractAttachments(t *testing.T) {
	section := `{
		"documents": [
			{"name": "tariff-sheet-2026.pdf", "type": "pdf"},
			{"name": "mystery-file"}
		],
		"links": [
			{"description": "Contract terms", "url": "https://example.com/terms"},
			{"description": "No URL"}
		]
	}`

	attachments := ExtractAttachments("msg-1", section)
	require.Len(t, attachments, 3)

	assert.Equal(t, "tariff-sheet-2026.pdf", attachments[0].Filename)
	assert.Equal(t, "pdf", attachments[0].MimeType)

	assert.Equal(t, "mystery-file", attachments[1].Filename)
	assert.Equal(t, "application/octet-stream", attachments[1].MimeType)

	link := attachments[2]
	assert.Equal(t, "Contract terms", link.Filename)
	assert.Equal(t, domain.LinkMimeType, link.MimeType)
	assert.Equal(t, "https://example.com/terms", link.Path)
}

func TestParseUTCTimeFormats(t *testing.T) {
	cases := map[string]time.Time{
		"2025-12-01":           time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		"2025-12-01T09:00:00Z": time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC),
		"2025-12-01T09:00:00":  time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC),
		"2025-12-01 09:00":     time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC),
	}
	for value, want := range cases {
		got, ok := parseUTCTime(value)
		require.True(t, ok, "value: %s", value)
		assert.Equal(t, want, got, "value: %s", value)
	}

	_, ok := parseUTCTime("next Tuesday")
	assert.False(t, ok)
}
