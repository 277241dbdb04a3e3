package domain

// AnalysisResult is the decoded intermediate form of an LLM response: the
// ten section payloads as raw JSON text. Empty string means the section was
// absent, which is never an error.
type AnalysisResult struct {
	Summary     string
	Obligations string
	Deadlines   string
	Documents   string
	Financial   string
	LifeDomain  string
	Importance  string
	General     string
	Contacts    string
	Events      string
}

// ObligationItem is the schema-typed shape of one obligation in the
// obligations_analysis section. Pointers preserve present/absent semantics.
type ObligationItem struct {
	Action               *string  `json:"action"`
	Trigger              *string  `json:"trigger"`
	Mandatory            *bool    `json:"mandatory"`
	ConsequenceIfIgnored *string  `json:"consequence_if_ignored"`
	Priority             *string  `json:"priority"`   // high|medium|low
	Confidence           *float64 `json:"confidence"` // integer 0-100 from the model
}

// DeadlineItem is one deadline in deadlines_analysis
type DeadlineItem struct {
	Description     *string `json:"description"`
	Type            *string `json:"type"` // absolute|relative
	Date            *string `json:"date"` // YYYY-MM-DD preferred
	RelativeTrigger *string `json:"relative_trigger"`
	Critical        *bool   `json:"critical"`
}

// ContactItem is one contact in contacts_analysis
type ContactItem struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Organization *string `json:"organization"`
	Title        *string `json:"title"`
	Notes        *string `json:"notes"`
}

// EventItem is one event in events_analysis
type EventItem struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Location    *string `json:"location"`
	AllDay      *bool   `json:"all_day"`
}

// DocumentItem is one inferred document in documents_analysis
type DocumentItem struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}

// LinkItem is one extracted link in documents_analysis
type LinkItem struct {
	Description *string `json:"description"`
	URL         *string `json:"url"`
}

// ImportanceSection carries the derived importance tag for the message
type ImportanceSection struct {
	Level  *string `json:"level"` // high|medium|low
	Reason *string `json:"reason"`
}

// LifeDomainSection carries the derived life-domain tag for the message
type LifeDomainSection struct {
	Domain *string `json:"domain"`
	Reason *string `json:"reason"`
}
