package usecase

import (
	"encoding/json"
	"log"
	"time"

	"mailpilot-backend/internal/analysis/domain"
)

// dateFormats accepted from the model, tried in order, all treated as UTC
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

func parseUTCTime(value string) (time.Time, bool) {
	for _, format := range dateFormats {
		if t, err := time.ParseInLocation(format, value, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// decodeItems splits a section into individually decodable items so one
// malformed item never aborts extraction of the rest
func decodeItems(sectionJSON, listKey string) []json.RawMessage {
	if sectionJSON == "" {
		return nil
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(sectionJSON), &wrapper); err != nil {
		log.Printf("[Extractor] Section not decodable, skipping: %v", err)
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(wrapper[listKey], &items); err != nil {
		return nil
	}
	return items
}

// ExtractObligations maps obligations_analysis into obligation records.
// An item without an action is an extraction failure for that item: logged
// and skipped, never defaulted.
func ExtractObligations(messageID, sectionJSON string) []*domain.Obligation {
	var obligations []*domain.Obligation

	for _, raw := range decodeItems(sectionJSON, "obligations") {
		var item domain.ObligationItem
		if err := json.Unmarshal(raw, &item); err != nil {
			log.Printf("[Extractor] Malformed obligation item: %v", err)
			continue
		}
		if item.Action == nil || *item.Action == "" {
			log.Printf("[Extractor] Obligation missing required action, skipping")
			continue
		}

		obligation := &domain.Obligation{
			MessageID: messageID,
			Action:    *item.Action,
			Priority:  2,
			Status:    "pending",
		}
		if item.Trigger != nil {
			obligation.TriggerText = *item.Trigger
		}
		if item.Mandatory != nil {
			obligation.Mandatory = *item.Mandatory
		}
		if item.ConsequenceIfIgnored != nil {
			obligation.Consequence = *item.ConsequenceIfIgnored
		}
		if item.Priority != nil {
			obligation.Priority = mapObligationPriority(*item.Priority)
		}
		if item.Confidence != nil {
			scaled := *item.Confidence / 100.0
			obligation.Confidence = &scaled
		}
		obligations = append(obligations, obligation)
	}

	return obligations
}

func mapObligationPriority(priority string) int {
	switch priority {
	case "high":
		return 1
	case "medium":
		return 2
	case "low":
		return 3
	default:
		return 2
	}
}

// ExtractDeadlines maps deadlines_analysis into deadline records. An
// unparseable date leaves Date nil; a date is never fabricated.
func ExtractDeadlines(messageID, sectionJSON string) []*domain.Deadline {
	var deadlines []*domain.Deadline

	for _, raw := range decodeItems(sectionJSON, "deadlines") {
		var item domain.DeadlineItem
		if err := json.Unmarshal(raw, &item); err != nil {
			log.Printf("[Extractor] Malformed deadline item: %v", err)
			continue
		}
		if item.Description == nil || *item.Description == "" {
			log.Printf("[Extractor] Deadline missing required description, skipping")
			continue
		}

		deadline := &domain.Deadline{
			MessageID:   messageID,
			Description: *item.Description,
			Type:        domain.DeadlineRelative,
			Status:      "active",
		}
		if item.Type != nil && *item.Type == string(domain.DeadlineAbsolute) {
			deadline.Type = domain.DeadlineAbsolute
		}
		if item.Date != nil {
			if t, ok := parseUTCTime(*item.Date); ok {
				deadline.Date = &t
			}
		}
		if item.RelativeTrigger != nil {
			deadline.RelativeTrigger = *item.RelativeTrigger
		}
		if item.Critical != nil {
			deadline.Critical = *item.Critical
		}
		deadlines = append(deadlines, deadline)
	}

	return deadlines
}

// ExtractContacts maps contacts_analysis into contact records
func ExtractContacts(messageID, sectionJSON string) []*domain.Contact {
	var contacts []*domain.Contact

	for _, raw := range decodeItems(sectionJSON, "contacts") {
		var item domain.ContactItem
		if err := json.Unmarshal(raw, &item); err != nil {
			log.Printf("[Extractor] Malformed contact item: %v", err)
			continue
		}
		if item.Name == nil || *item.Name == "" {
			log.Printf("[Extractor] Contact missing required name, skipping")
			continue
		}

		contact := &domain.Contact{
			MessageID: messageID,
			Name:      *item.Name,
		}
		if item.Email != nil {
			contact.Email = *item.Email
		}
		if item.Phone != nil {
			contact.Phone = *item.Phone
		}
		if item.Organization != nil {
			contact.Organization = *item.Organization
		}
		if item.Title != nil {
			contact.Title = *item.Title
		}
		if item.Notes != nil {
			contact.Notes = *item.Notes
		}
		contacts = append(contacts, contact)
	}

	return contacts
}

// ExtractEvents maps events_analysis into calendar events. An event
// without a parseable start time cannot be scheduled and is dropped.
func ExtractEvents(messageID, sectionJSON string) []*domain.CalendarEvent {
	var events []*domain.CalendarEvent

	for _, raw := range decodeItems(sectionJSON, "events") {
		var item domain.EventItem
		if err := json.Unmarshal(raw, &item); err != nil {
			log.Printf("[Extractor] Malformed event item: %v", err)
			continue
		}
		if item.Title == nil || *item.Title == "" {
			continue
		}
		if item.StartTime == nil {
			log.Printf("[Extractor] Event %q has no start time, dropping", *item.Title)
			continue
		}
		start, ok := parseUTCTime(*item.StartTime)
		if !ok {
			log.Printf("[Extractor] Event %q has unparseable start time %q, dropping", *item.Title, *item.StartTime)
			continue
		}

		event := &domain.CalendarEvent{
			MessageID: messageID,
			Title:     *item.Title,
			StartTime: start,
			Status:    "confirmed",
		}
		if item.Description != nil {
			event.Description = *item.Description
		}
		if item.EndTime != nil {
			if end, ok := parseUTCTime(*item.EndTime); ok {
				event.EndTime = &end
			}
		}
		if item.Location != nil {
			event.Location = *item.Location
		}
		if item.AllDay != nil {
			event.AllDay = *item.AllDay
		}
		events = append(events, event)
	}

	return events
}

// ExtractAttachments maps both sub-lists of documents_analysis into the
// single attachment shape: inferred documents (no URL) and links (URL in
// Path, MIME set to the link sentinel)
func ExtractAttachments(messageID, sectionJSON string) []*domain.Attachment {
	var attachments []*domain.Attachment

	for _, raw := range decodeItems(sectionJSON, "documents") {
		var item domain.DocumentItem
		if err := json.Unmarshal(raw, &item); err != nil {
			log.Printf("[Extractor] Malformed document item: %v", err)
			continue
		}
		if item.Name == nil || *item.Name == "" {
			log.Printf("[Extractor] Document missing required name, skipping")
			continue
		}

		attachment := &domain.Attachment{
			MessageID: messageID,
			Filename:  *item.Name,
			MimeType:  "application/octet-stream",
		}
		if item.Type != nil && *item.Type != "" {
			attachment.MimeType = *item.Type
		}
		attachments = append(attachments, attachment)
	}

	for _, raw := range decodeItems(sectionJSON, "links") {
		var item domain.LinkItem
		if err := json.Unmarshal(raw, &item); err != nil {
			log.Printf("[Extractor] Malformed link item: %v", err)
			continue
		}
		if item.Description == nil || *item.Description == "" || item.URL == nil || *item.URL == "" {
			log.Printf("[Extractor] Link missing description or url, skipping")
			continue
		}

		attachments = append(attachments, &domain.Attachment{
			MessageID: messageID,
			Filename:  *item.Description,
			MimeType:  domain.LinkMimeType,
			Path:      *item.URL,
		})
	}

	return attachments
}
