package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailpilot-backend/internal/analysis/domain"
	messagedomain "mailpilot-backend/internal/message/domain"
	settingsdomain "mailpilot-backend/internal/settings/domain"
	taskdomain "mailpilot-backend/internal/task/domain"
	taskusecase "mailpilot-backend/internal/task/usecase"
	usagedomain "mailpilot-backend/internal/usage/domain"
	"mailpilot-backend/pkg/ai"
	"mailpilot-backend/pkg/config"
)

// In-memory fakes for every repository the pipeline touches.

type fakeMessageRepo struct {
	byID       map[string]*messagedomain.Message
	importance string
	lifeDomain string
}

func (f *fakeMessageRepo) Create(m *messagedomain.Message) error { f.byID[m.ID] = m; return nil }
func (f *fakeMessageRepo) FindByID(id string) (*messagedomain.Message, error) {
	return f.byID[id], nil
}
func (f *fakeMessageRepo) List(limit, offset int) ([]*messagedomain.Message, int64, error) {
	return nil, 0, nil
}
func (f *fakeMessageRepo) UpdateTags(id, importance, lifeDomain string) error {
	f.importance = importance
	f.lifeDomain = lifeDomain
	return nil
}

type fakeAnalysisRepo struct {
	rows []*domain.AiAnalysis
	seq  int
}

func (f *fakeAnalysisRepo) Create(a *domain.AiAnalysis) error {
	f.seq++
	if a.ID == "" {
		a.ID = fmt.Sprintf("an-%d", f.seq)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	f.rows = append(f.rows, a)
	return nil
}
func (f *fakeAnalysisRepo) FindByID(id string) (*domain.AiAnalysis, error) {
	for _, row := range f.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}
func (f *fakeAnalysisRepo) FindLatestByMessageID(messageID string) (*domain.AiAnalysis, error) {
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].MessageID == messageID {
			return f.rows[i], nil
		}
	}
	return nil, nil
}
func (f *fakeAnalysisRepo) Update(a *domain.AiAnalysis) error { return nil }
func (f *fakeAnalysisRepo) FailStuck(cutoff time.Time, reason string) (int64, error) {
	var reaped int64
	for _, row := range f.rows {
		if row.Status == domain.AnalysisProcessing && row.CreatedAt.Before(cutoff) {
			row.Status = domain.AnalysisFailed
			row.ErrorKind = "timeout"
			row.ErrorMessage = reason
			reaped++
		}
	}
	return reaped, nil
}

type fakeObligationRepo struct {
	created []*domain.Obligation
	seq     int
}

func (f *fakeObligationRepo) Create(o *domain.Obligation) error {
	f.seq++
	if o.ID == "" {
		o.ID = fmt.Sprintf("ob-%d", f.seq)
	}
	f.created = append(f.created, o)
	return nil
}
func (f *fakeObligationRepo) FindByMessageID(messageID string) ([]*domain.Obligation, error) {
	return f.created, nil
}

type fakeDeadlineRepo struct{ created []*domain.Deadline }

func (f *fakeDeadlineRepo) Create(d *domain.Deadline) error { f.created = append(f.created, d); return nil }
func (f *fakeDeadlineRepo) FindByMessageID(messageID string) ([]*domain.Deadline, error) {
	return f.created, nil
}

type fakeContactRepo struct{ created []*domain.Contact }

func (f *fakeContactRepo) Create(c *domain.Contact) error { f.created = append(f.created, c); return nil }
func (f *fakeContactRepo) FindByDedupKey(email, name string) (*domain.Contact, error) {
	for _, c := range f.created {
		if email != "" && c.Email == email {
			return c, nil
		}
		if email == "" && c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

type fakeEventRepo struct{ created []*domain.CalendarEvent }

func (f *fakeEventRepo) Create(e *domain.CalendarEvent) error { f.created = append(f.created, e); return nil }
func (f *fakeEventRepo) Exists(messageID, title string, startTime time.Time) (bool, error) {
	for _, e := range f.created {
		if e.MessageID == messageID && e.Title == title && e.StartTime.Equal(startTime) {
			return true, nil
		}
	}
	return false, nil
}

type fakeAttachmentRepo struct{ created []*domain.Attachment }

func (f *fakeAttachmentRepo) Create(a *domain.Attachment) error {
	f.created = append(f.created, a)
	return nil
}
func (f *fakeAttachmentRepo) Exists(messageID, filename, path string) (bool, error) {
	for _, a := range f.created {
		if a.MessageID == messageID && a.Filename == filename && a.Path == path {
			return true, nil
		}
	}
	return false, nil
}

type fakeSettingsRepo struct{ values map[string]string }

func (f *fakeSettingsRepo) Get(key string) (string, error) { return f.values[key], nil }
func (f *fakeSettingsRepo) Set(key, value string) error    { f.values[key] = value; return nil }

type fakeProviderSettingsRepo struct{ rows []*settingsdomain.ProviderSetting }

func (f *fakeProviderSettingsRepo) FindByName(provider string) (*settingsdomain.ProviderSetting, error) {
	for _, row := range f.rows {
		if row.Provider == provider {
			return row, nil
		}
	}
	return nil, nil
}
func (f *fakeProviderSettingsRepo) FindActive() (*settingsdomain.ProviderSetting, error) {
	for _, row := range f.rows {
		if row.IsActive {
			return row, nil
		}
	}
	return nil, nil
}
func (f *fakeProviderSettingsRepo) Upsert(s *settingsdomain.ProviderSetting) error { return nil }
func (f *fakeProviderSettingsRepo) List() ([]*settingsdomain.ProviderSetting, error) {
	return f.rows, nil
}

type fakeProfileRepo struct{ profile *settingsdomain.UserProfile }

func (f *fakeProfileRepo) Get() (*settingsdomain.UserProfile, error) { return f.profile, nil }
func (f *fakeProfileRepo) Save(p *settingsdomain.UserProfile) error  { f.profile = p; return nil }

type fakeUsageRepo struct{ entries []*usagedomain.UsageLog }

func (f *fakeUsageRepo) Create(e *usagedomain.UsageLog) error { f.entries = append(f.entries, e); return nil }
func (f *fakeUsageRepo) Stats() (*usagedomain.UsageStats, error) {
	return &usagedomain.UsageStats{}, nil
}

type memTaskRepo struct{ tasks []*taskdomain.Task }

func (m *memTaskRepo) Create(t *taskdomain.Task) error { m.tasks = append(m.tasks, t); return nil }
func (m *memTaskRepo) FindByID(id string) (*taskdomain.Task, error) { return nil, nil }
func (m *memTaskRepo) FindByObligationID(obligationID string) (*taskdomain.Task, error) {
	for _, t := range m.tasks {
		if t.ObligationID != nil && *t.ObligationID == obligationID {
			return t, nil
		}
	}
	return nil, nil
}
func (m *memTaskRepo) List(status *taskdomain.TaskStatus, limit, offset int) ([]*taskdomain.Task, int64, error) {
	return m.tasks, int64(len(m.tasks)), nil
}
func (m *memTaskRepo) Update(t *taskdomain.Task) error { return nil }
func (m *memTaskRepo) Delete(id string) error          { return nil }

type stubProvider struct {
	response  string
	err       error
	calls     int
	lastModel string
}

func (s *stubProvider) CompleteChat(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	s.lastModel = model
	return s.response, s.err
}

type orchestratorFixture struct {
	usecase     *AnalysisUsecase
	messages    *fakeMessageRepo
	analyses    *fakeAnalysisRepo
	obligations *fakeObligationRepo
	deadlines   *fakeDeadlineRepo
	contacts    *fakeContactRepo
	events      *fakeEventRepo
	attachments *fakeAttachmentRepo
	settings    *fakeSettingsRepo
	providers   *fakeProviderSettingsRepo
	usage       *fakeUsageRepo
	tasks       *memTaskRepo
	provider    *stubProvider
	clock       time.Time
}

func newFixture(t *testing.T) *orchestratorFixture {
	t.Helper()

	f := &orchestratorFixture{
		messages:    &fakeMessageRepo{byID: map[string]*messagedomain.Message{}},
		analyses:    &fakeAnalysisRepo{},
		obligations: &fakeObligationRepo{},
		deadlines:   &fakeDeadlineRepo{},
		contacts:    &fakeContactRepo{},
		events:      &fakeEventRepo{},
		attachments: &fakeAttachmentRepo{},
		settings:    &fakeSettingsRepo{values: map[string]string{}},
		providers:   &fakeProviderSettingsRepo{},
		usage:       &fakeUsageRepo{},
		tasks:       &memTaskRepo{},
		provider:    &stubProvider{response: `{"summary": "fine"}`},
		clock:       time.Date(2025, 11, 15, 12, 0, 0, 0, time.UTC),
	}

	cfg := &config.Config{}
	f.usecase = NewAnalysisUsecase(
		f.messages, f.analyses, f.obligations, f.deadlines, f.contacts, f.events, f.attachments,
		f.settings, f.providers, &fakeProfileRepo{}, f.usage,
		taskusecase.NewAutoTaskPipeline(f.tasks), cfg,
	)
	f.usecase.newProvider = func(ai.ProviderConfig) ai.ChatProvider { return f.provider }
	f.usecase.now = func() time.Time { return f.clock }

	f.messages.byID["msg-1"] = &messagedomain.Message{
		ID:            "msg-1",
		Subject:       "Contract renewal",
		SenderName:    "Anna Keller",
		SenderAddress: "a.keller@example-utility.com",
		BodyPlain:     "Your contract renews soon.",
	}

	return f
}

func (f *orchestratorFixture) useOpenAI() {
	f.providers.rows = append(f.providers.rows, &settingsdomain.ProviderSetting{
		Provider: "openai",
		APIKey:   "test-key",
		IsActive: true,
	})
}

func TestStartAnalysisCreatesProcessingRecord(t *testing.T) {
	f := newFixture(t)

	analysis, err := f.usecase.StartAnalysis("msg-1", "")
	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisProcessing, analysis.Status)
	assert.Equal(t, "msg-1", analysis.MessageID)
	assert.NotEmpty(t, analysis.ID)
}

func TestStartAnalysisUnknownMessage(t *testing.T) {
	f := newFixture(t)

	_, err := f.usecase.StartAnalysis("missing", "")
	assert.Error(t, err)
}

func TestRunAnalysisDemoModeSkipsProvider(t *testing.T) {
	f := newFixture(t)
	f.settings.values[settingsdomain.KeyDemoMode] = "true"

	analysis, err := f.usecase.RunAnalysis(context.Background(), "msg-1", "", "")
	require.NoError(t, err)

	assert.Equal(t, 0, f.provider.calls)
	assert.Equal(t, domain.AnalysisCompleted, analysis.Status)
	assert.Equal(t, "demo", analysis.Model)
	require.NotNil(t, analysis.AnalyzedAt)

	// The canned payload drives the full extraction pipeline.
	assert.Len(t, f.obligations.created, 2)
	assert.Len(t, f.deadlines.created, 1)
	assert.Len(t, f.contacts.created, 1)
	assert.Len(t, f.events.created, 1)
	assert.Len(t, f.attachments.created, 2)

	// Both canned obligations clear the confidence floor.
	assert.Len(t, f.tasks.tasks, 2)

	assert.Equal(t, "high", f.messages.importance)
	assert.Equal(t, "household", f.messages.lifeDomain)

	require.Len(t, f.usage.entries, 1)
	assert.Equal(t, "demo", f.usage.entries[0].Model)
}

func TestRunAnalysisSuccessfulProviderCall(t *testing.T) {
	f := newFixture(t)
	f.useOpenAI()
	f.provider.response = `{"summary": "A short note.", "general_analysis": "Nothing urgent."}`

	analysis, err := f.usecase.RunAnalysis(context.Background(), "msg-1", "", "")
	require.NoError(t, err)

	assert.Equal(t, 1, f.provider.calls)
	// Short body classifies simple; balanced routing picks the budget model,
	// which already belongs to the active provider.
	assert.Equal(t, "gpt-4o-mini", f.provider.lastModel)

	assert.Equal(t, domain.AnalysisCompleted, analysis.Status)
	assert.Equal(t, "gpt-4o-mini", analysis.Model)
	assert.JSONEq(t, `"A short note."`, analysis.Summary)
	assert.Greater(t, analysis.Cost, 0.0)

	require.Len(t, f.usage.entries, 1)
	assert.Equal(t, "simple", f.usage.entries[0].Complexity)
	assert.Greater(t, f.usage.entries[0].InputTokens, 0)
}

func TestRunAnalysisReusesExistingRecord(t *testing.T) {
	f := newFixture(t)
	f.useOpenAI()

	created, err := f.usecase.StartAnalysis("msg-1", "")
	require.NoError(t, err)

	analysis, err := f.usecase.RunAnalysis(context.Background(), "msg-1", created.ID, "")
	require.NoError(t, err)
	assert.Equal(t, created.ID, analysis.ID)
	assert.Len(t, f.analyses.rows, 1)
}

func TestRunAnalysisProviderQuotaError(t *testing.T) {
	f := newFixture(t)
	f.useOpenAI()
	f.provider.err = &ai.ProviderError{Kind: ai.ErrQuotaExceeded, Message: "too many requests"}
	f.provider.response = ""

	analysis, err := f.usecase.RunAnalysis(context.Background(), "msg-1", "", "")
	require.NoError(t, err, "pipeline failures are recorded, not returned")

	assert.Equal(t, domain.AnalysisFailed, analysis.Status)
	assert.Equal(t, string(ai.ErrQuotaExceeded), analysis.ErrorKind)
	assert.Equal(t, "too many requests", analysis.ErrorMessage)
	assert.NotEmpty(t, analysis.ErrorSuggestion)
	assert.Empty(t, f.usage.entries)
}

func TestRunAnalysisConfigMissingSurfacesAsAuthFailure(t *testing.T) {
	f := newFixture(t)
	f.useOpenAI()
	f.provider.err = &ai.ProviderError{Kind: ai.ErrConfigMissing, Message: "no API key configured"}
	f.provider.response = ""

	analysis, err := f.usecase.RunAnalysis(context.Background(), "msg-1", "", "")
	require.NoError(t, err)

	assert.Equal(t, domain.AnalysisFailed, analysis.Status)
	assert.Equal(t, string(ai.ErrAuthFailed), analysis.ErrorKind)
}

func TestRunAnalysisNoProviderConfigured(t *testing.T) {
	f := newFixture(t)

	analysis, err := f.usecase.RunAnalysis(context.Background(), "msg-1", "", "")
	require.NoError(t, err)

	assert.Equal(t, domain.AnalysisFailed, analysis.Status)
	assert.Equal(t, string(ai.ErrAuthFailed), analysis.ErrorKind)
	assert.Equal(t, 0, f.provider.calls)
}

func TestRunAnalysisMalformedResponseStillCompletes(t *testing.T) {
	f := newFixture(t)
	f.useOpenAI()
	f.provider.response = "I refuse to emit JSON { today"

	analysis, err := f.usecase.RunAnalysis(context.Background(), "msg-1", "", "")
	require.NoError(t, err)

	assert.Equal(t, domain.AnalysisCompleted, analysis.Status)
	assert.Equal(t, "I refuse to emit JSON { today", analysis.General)
	assert.Empty(t, f.obligations.created)
}

func TestRunAnalysisReapsStuckAnalyses(t *testing.T) {
	f := newFixture(t)
	f.settings.values[settingsdomain.KeyDemoMode] = "true"

	stuck := &domain.AiAnalysis{
		ID:        "an-stuck",
		MessageID: "msg-1",
		Status:    domain.AnalysisProcessing,
		CreatedAt: f.clock.Add(-10 * time.Minute),
	}
	f.analyses.rows = append(f.analyses.rows, stuck)

	fresh := &domain.AiAnalysis{
		ID:        "an-fresh",
		MessageID: "msg-1",
		Status:    domain.AnalysisProcessing,
		CreatedAt: f.clock.Add(-1 * time.Minute),
	}
	f.analyses.rows = append(f.analyses.rows, fresh)

	_, err := f.usecase.RunAnalysis(context.Background(), "msg-1", "", "")
	require.NoError(t, err)

	assert.Equal(t, domain.AnalysisFailed, stuck.Status)
	assert.Equal(t, "timeout", stuck.ErrorKind)
	assert.NotEmpty(t, stuck.ErrorMessage)
	assert.Equal(t, domain.AnalysisProcessing, fresh.Status)
}

func TestRunAnalysisUnknownMessage(t *testing.T) {
	f := newFixture(t)

	_, err := f.usecase.RunAnalysis(context.Background(), "missing", "", "")
	assert.Error(t, err)
}

func TestRunAnalysisAutoTasksDisabled(t *testing.T) {
	f := newFixture(t)
	f.settings.values[settingsdomain.KeyDemoMode] = "true"
	f.settings.values[settingsdomain.KeyAutoTaskCreation] = "false"

	analysis, err := f.usecase.RunAnalysis(context.Background(), "msg-1", "", "")
	require.NoError(t, err)

	assert.Equal(t, domain.AnalysisCompleted, analysis.Status)
	assert.NotEmpty(t, f.obligations.created)
	assert.Empty(t, f.tasks.tasks)
}

func TestRunAnalysisDemoIsIdempotentOnEntities(t *testing.T) {
	f := newFixture(t)
	f.settings.values[settingsdomain.KeyDemoMode] = "true"

	_, err := f.usecase.RunAnalysis(context.Background(), "msg-1", "", "")
	require.NoError(t, err)
	_, err = f.usecase.RunAnalysis(context.Background(), "msg-1", "", "")
	require.NoError(t, err)

	// Contacts, events and attachments dedup; obligations and deadlines are
	// per-attempt rows, and tasks dedup per obligation.
	assert.Len(t, f.contacts.created, 1)
	assert.Len(t, f.events.created, 1)
	assert.Len(t, f.attachments.created, 2)
	assert.Len(t, f.obligations.created, 4)
	assert.Len(t, f.tasks.tasks, 4)
}
