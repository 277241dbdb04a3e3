package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"mailpilot-backend/internal/analysis/domain"
	"mailpilot-backend/internal/analysis/repository"
	messagedomain "mailpilot-backend/internal/message/domain"
	messagerepo "mailpilot-backend/internal/message/repository"
	settingsrepo "mailpilot-backend/internal/settings/repository"
	taskusecase "mailpilot-backend/internal/task/usecase"
	usagedomain "mailpilot-backend/internal/usage/domain"
	usagerepo "mailpilot-backend/internal/usage/repository"
	"mailpilot-backend/pkg/ai"
	"mailpilot-backend/pkg/config"
	"mailpilot-backend/pkg/scraper"
)

// stuckAnalysisWindow is how long a "processing" analysis may live before
// the reaper force-fails it. Configuration constant, not a protocol value.
const stuckAnalysisWindow = 5 * time.Minute

// AnalysisUsecase is the top-level analysis pipeline: classify, route,
// prompt, invoke, parse, extract, auto-create tasks, persist.
//
// Concurrent RunAnalysis calls for the same message are not locked against
// each other; the stuck-analysis reaper is the only staleness safeguard.
// Known and accepted limitation.
type AnalysisUsecase struct {
	messages    messagerepo.MessageRepository
	analyses    repository.AnalysisRepository
	obligations repository.ObligationRepository
	deadlines   repository.DeadlineRepository
	contacts    repository.ContactRepository
	events      repository.EventRepository
	attachments repository.AttachmentRepository
	settings    settingsrepo.SettingsRepository
	providers   settingsrepo.ProviderSettingsRepository
	profiles    settingsrepo.UserProfileRepository
	usage       usagerepo.UsageRepository
	autoTasks   *taskusecase.AutoTaskPipeline
	prompts     *PromptBuilder
	scraper     *scraper.Scraper
	cfg         *config.Config

	// injectable for tests
	newProvider func(ai.ProviderConfig) ai.ChatProvider
	now         func() time.Time
}

// NewAnalysisUsecase wires the full pipeline
func NewAnalysisUsecase(
	messages messagerepo.MessageRepository,
	analyses repository.AnalysisRepository,
	obligations repository.ObligationRepository,
	deadlines repository.DeadlineRepository,
	contacts repository.ContactRepository,
	events repository.EventRepository,
	attachments repository.AttachmentRepository,
	settings settingsrepo.SettingsRepository,
	providers settingsrepo.ProviderSettingsRepository,
	profiles settingsrepo.UserProfileRepository,
	usage usagerepo.UsageRepository,
	autoTasks *taskusecase.AutoTaskPipeline,
	cfg *config.Config,
) *AnalysisUsecase {
	return &AnalysisUsecase{
		messages:    messages,
		analyses:    analyses,
		obligations: obligations,
		deadlines:   deadlines,
		contacts:    contacts,
		events:      events,
		attachments: attachments,
		settings:    settings,
		providers:   providers,
		profiles:    profiles,
		usage:       usage,
		autoTasks:   autoTasks,
		prompts:     NewPromptBuilder(),
		scraper:     scraper.NewScraper(),
		cfg:         cfg,
		newProvider: ai.NewChatProvider,
		now:         time.Now,
	}
}

// StartAnalysis synchronously creates the placeholder "processing" record.
// The caller queues the actual run on the worker pool and polls for the
// terminal state.
func (u *AnalysisUsecase) StartAnalysis(messageID, instructions string) (*domain.AiAnalysis, error) {
	message, err := u.messages.FindByID(messageID)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, errors.New("message not found")
	}

	u.reapStuckAnalyses()

	analysis := &domain.AiAnalysis{
		MessageID: messageID,
		Status:    domain.AnalysisProcessing,
	}
	if err := u.analyses.Create(analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}

// RunAnalysis executes the full pipeline for one message. Pipeline failures
// are recorded on the analysis row, never returned as errors; only missing
// inputs error out. The returned record is always terminal.
func (u *AnalysisUsecase) RunAnalysis(ctx context.Context, messageID, analysisID, instructions string) (analysis *domain.AiAnalysis, err error) {
	u.reapStuckAnalyses()

	message, err := u.messages.FindByID(messageID)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, errors.New("message not found")
	}

	if analysisID != "" {
		analysis, err = u.analyses.FindByID(analysisID)
		if err != nil {
			return nil, err
		}
	}
	if analysis == nil {
		analysis = &domain.AiAnalysis{
			MessageID: messageID,
			Status:    domain.AnalysisProcessing,
		}
		if err := u.analyses.Create(analysis); err != nil {
			return nil, err
		}
	}

	// The reliability contract: nothing may leave the row in "processing".
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Orchestrator] Panic during analysis %s: %v", analysis.ID, r)
			u.finalizeFailed(analysis, ai.ErrUnknown, fmt.Sprintf("internal error: %v", r))
			err = nil
		}
	}()

	pc, cfgErr := u.resolvePipelineConfig("analysis")
	if cfgErr != nil {
		u.failFromError(analysis, cfgErr)
		return analysis, nil
	}

	if pc.DemoMode {
		u.runDemo(analysis, message, pc)
		return analysis, nil
	}

	complexity := ai.ClassifyComplexity(message.Body(), instructions)
	recommended := ai.RecommendModel(complexity, pc.BudgetMode)
	model := ai.ResolveModel(recommended, pc.Provider)
	log.Printf("[Orchestrator] Message %s: complexity=%s budget=%s model=%s", messageID, complexity, pc.BudgetMode, model)

	linkContext := u.scraper.FetchLinkContext(ctx, message.Body())

	profile, profileErr := u.profiles.Get()
	if profileErr != nil {
		log.Printf("[Orchestrator] Failed to load user profile: %v", profileErr)
	}
	systemPrompt := u.prompts.BuildSystemPrompt(profile, instructions)
	userPrompt := u.prompts.BuildUserPrompt(message, linkContext)

	provider := u.newProvider(pc.Provider)
	started := u.now()
	responseText, callErr := provider.CompleteChat(ctx, model, systemPrompt, userPrompt)
	elapsed := u.now().Sub(started)

	if callErr != nil {
		u.failFromError(analysis, callErr)
		return analysis, nil
	}

	// Token counts are estimated at ~4 chars per token; the unified
	// provider contract does not expose native usage counts.
	inputTokens := (len(systemPrompt) + len(userPrompt)) / 4
	outputTokens := len(responseText) / 4

	u.completeAnalysis(analysis, message, pc, responseText, model, string(complexity), inputTokens, outputTokens, elapsed)
	return analysis, nil
}

// runDemo short-circuits the provider entirely but still drives the real
// parse/extract/auto-task pipeline against the canned payload, so the
// downstream logic is exercised without a single outbound call
func (u *AnalysisUsecase) runDemo(analysis *domain.AiAnalysis, message *messagedomain.Message, pc *PipelineConfig) {
	responseText := ai.DemoResponse()

	// Synthetic token estimate, ~0.25 tokens per character
	inputTokens := len(message.Body()) / 4
	outputTokens := len(responseText) / 4

	log.Printf("[Orchestrator] Demo mode: skipping provider for message %s", message.ID)
	u.completeAnalysis(analysis, message, pc, responseText, "demo", "demo", inputTokens, outputTokens, 0)
}

// completeAnalysis parses the response, persists extracted entities with
// best-effort dedup, runs auto-task creation, enriches message tags, logs
// usage and marks the analysis completed
func (u *AnalysisUsecase) completeAnalysis(
	analysis *domain.AiAnalysis,
	message *messagedomain.Message,
	pc *PipelineConfig,
	responseText, model, complexity string,
	inputTokens, outputTokens int,
	elapsed time.Duration,
) {
	result := ParseResponse(responseText)

	analysis.Summary = result.Summary
	analysis.Obligations = result.Obligations
	analysis.Deadlines = result.Deadlines
	analysis.Documents = result.Documents
	analysis.Financial = result.Financial
	analysis.LifeDomain = result.LifeDomain
	analysis.Importance = result.Importance
	analysis.General = result.General
	analysis.Contacts = result.Contacts
	analysis.Events = result.Events
	analysis.RawResponse = responseText
	analysis.Model = model
	analysis.Cost = ai.CalculateCost(model, inputTokens, outputTokens)

	obligations := ExtractObligations(message.ID, result.Obligations)
	deadlines := ExtractDeadlines(message.ID, result.Deadlines)

	for _, obligation := range obligations {
		if err := u.obligations.Create(obligation); err != nil {
			log.Printf("[Orchestrator] Failed to persist obligation: %v", err)
		}
	}
	for _, deadline := range deadlines {
		if err := u.deadlines.Create(deadline); err != nil {
			log.Printf("[Orchestrator] Failed to persist deadline: %v", err)
		}
	}
	u.persistContacts(message.ID, result.Contacts)
	u.persistEvents(message.ID, result.Events)
	u.persistAttachments(message.ID, result.Documents)

	if pc.AutoTasks {
		tasks := u.autoTasks.CreateTasksFromObligations(obligations, deadlines, message)
		if len(tasks) > 0 {
			log.Printf("[Orchestrator] Auto-created %d tasks for message %s", len(tasks), message.ID)
		}
	}

	u.updateMessageTags(message.ID, result)
	u.logUsage(model, complexity, inputTokens, outputTokens, analysis.Cost, elapsed)

	analyzedAt := u.now()
	analysis.AnalyzedAt = &analyzedAt
	analysis.Status = domain.AnalysisCompleted
	if err := u.analyses.Update(analysis); err != nil {
		log.Printf("[Orchestrator] Failed to persist completed analysis %s: %v", analysis.ID, err)
	}
}

func (u *AnalysisUsecase) persistContacts(messageID, sectionJSON string) {
	for _, contact := range ExtractContacts(messageID, sectionJSON) {
		existing, err := u.contacts.FindByDedupKey(contact.Email, contact.Name)
		if err != nil {
			log.Printf("[Orchestrator] Contact dedup lookup failed: %v", err)
			continue
		}
		if existing != nil {
			continue
		}
		if err := u.contacts.Create(contact); err != nil {
			log.Printf("[Orchestrator] Failed to persist contact: %v", err)
		}
	}
}

func (u *AnalysisUsecase) persistEvents(messageID, sectionJSON string) {
	for _, event := range ExtractEvents(messageID, sectionJSON) {
		exists, err := u.events.Exists(messageID, event.Title, event.StartTime)
		if err != nil {
			log.Printf("[Orchestrator] Event dedup lookup failed: %v", err)
			continue
		}
		if exists {
			continue
		}
		if err := u.events.Create(event); err != nil {
			log.Printf("[Orchestrator] Failed to persist event: %v", err)
		}
	}
}

func (u *AnalysisUsecase) persistAttachments(messageID, sectionJSON string) {
	for _, attachment := range ExtractAttachments(messageID, sectionJSON) {
		exists, err := u.attachments.Exists(messageID, attachment.Filename, attachment.Path)
		if err != nil {
			log.Printf("[Orchestrator] Attachment dedup lookup failed: %v", err)
			continue
		}
		if exists {
			continue
		}
		if err := u.attachments.Create(attachment); err != nil {
			log.Printf("[Orchestrator] Failed to persist attachment: %v", err)
		}
	}
}

func (u *AnalysisUsecase) reapStuckAnalyses() {
	cutoff := u.now().Add(-stuckAnalysisWindow)
	reaped, err := u.analyses.FailStuck(cutoff, fmt.Sprintf("analysis timed out after %s in processing state", stuckAnalysisWindow))
	if err != nil {
		log.Printf("[Orchestrator] Stuck-analysis reaper failed: %v", err)
		return
	}
	if reaped > 0 {
		log.Printf("[Orchestrator] Reaped %d stuck analyses", reaped)
	}
}

// failFromError maps any pipeline error to the user-facing taxonomy and
// finalizes the analysis as failed. Raw provider exceptions never leak.
func (u *AnalysisUsecase) failFromError(analysis *domain.AiAnalysis, err error) {
	kind := ai.ErrUnknown
	message := err.Error()
	if pe, ok := ai.AsProviderError(err); ok {
		kind = pe.Kind
		message = pe.Message
	}
	u.finalizeFailed(analysis, userFacingKind(kind), message)
}

// userFacingKind collapses internal kinds into the surfaced taxonomy:
// config_missing reads as an auth problem (fix is the same: set a key),
// empty responses fall into unknown.
func userFacingKind(kind ai.ErrorKind) ai.ErrorKind {
	switch kind {
	case ai.ErrConfigMissing:
		return ai.ErrAuthFailed
	case ai.ErrEmptyResponse:
		return ai.ErrUnknown
	default:
		return kind
	}
}

func (u *AnalysisUsecase) finalizeFailed(analysis *domain.AiAnalysis, kind ai.ErrorKind, message string) {
	analysis.Status = domain.AnalysisFailed
	analysis.ErrorKind = string(kind)
	analysis.ErrorMessage = message
	analysis.ErrorSuggestion = kind.Suggestion()
	if err := u.analyses.Update(analysis); err != nil {
		log.Printf("[Orchestrator] Failed to persist failed analysis %s: %v", analysis.ID, err)
	}
}

// logUsage is fire-and-forget: a usage-write failure never fails the
// analysis it records
func (u *AnalysisUsecase) logUsage(model, complexity string, inputTokens, outputTokens int, cost float64, elapsed time.Duration) {
	entry := &usagedomain.UsageLog{
		Model:        model,
		TaskType:     "analysis",
		Complexity:   complexity,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		Cost:         cost,
		ResponseTime: elapsed.Milliseconds(),
	}
	if err := u.usage.Create(entry); err != nil {
		log.Printf("[Orchestrator] Failed to write usage log: %v", err)
	}
}

// updateMessageTags opportunistically copies the derived importance and
// life-domain onto the message. Enrichment only; failures are swallowed.
func (u *AnalysisUsecase) updateMessageTags(messageID string, result *domain.AnalysisResult) {
	var importance, lifeDomain string

	if result.Importance != "" {
		var section domain.ImportanceSection
		if err := json.Unmarshal([]byte(result.Importance), &section); err == nil && section.Level != nil {
			importance = *section.Level
		}
	}
	if result.LifeDomain != "" {
		var section domain.LifeDomainSection
		if err := json.Unmarshal([]byte(result.LifeDomain), &section); err == nil && section.Domain != nil {
			lifeDomain = *section.Domain
		}
	}

	if importance == "" && lifeDomain == "" {
		return
	}
	if err := u.messages.UpdateTags(messageID, importance, lifeDomain); err != nil {
		log.Printf("[Orchestrator] Failed to update message tags for %s: %v", messageID, err)
	}
}
