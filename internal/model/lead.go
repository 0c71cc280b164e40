package model

// Lead is a normalized prospect record parsed from a raw form submission.
// Email is the only required field; everything else is best-effort. The
// original payload is retained verbatim in Raw for audit.
type Lead struct {
	CompanyName               string         `json:"company_name"`
	Email                     string         `json:"email"`
	Phone                     string         `json:"phone,omitempty"`
	Website                   string         `json:"website,omitempty"`
	PrimaryGoal               string         `json:"primary_goal,omitempty"`
	BusinessChallenges        string         `json:"business_challenges,omitempty"`
	DataSources               string         `json:"data_sources,omitempty"`
	InfrastructureCriticality int            `json:"infrastructure_criticality,omitempty"` // 1-5, 0 = not provided
	Timeline                  string         `json:"timeline,omitempty"`
	PreferredTime             string         `json:"preferred_time,omitempty"`
	FormID                    string         `json:"form_id,omitempty"`
	SubmittedAt               string         `json:"submitted_at,omitempty"`
	Extra                     map[string]string `json:"extra,omitempty"` // unmapped fields, slug-keyed
	Raw                       map[string]any `json:"raw_form_data,omitempty"`
}

// ResearchResult is the output of the research stage. Immutable once
// produced; a re-run yields a new record.
type ResearchResult struct {
	CompanySummary      string   `json:"company_summary"`
	Industry            string   `json:"industry"`
	CompanySizeEstimate string   `json:"company_size_estimate,omitempty"`
	TechStack           []string `json:"tech_stack,omitempty"`
	RecentNews          []string `json:"recent_news,omitempty"`
	PainPoints          []string `json:"pain_points,omitempty"`
	AIOpportunities     []string `json:"ai_opportunities,omitempty"`
	Competitors         []string `json:"competitors,omitempty"`
	Confidence          float64  `json:"research_confidence"` // 0.0-1.0
}

// LeadScoring is the BANT-style breakdown from the scoring stage. Each
// component is bounded 0-25; TotalScore must equal the component sum.
type LeadScoring struct {
	TotalScore      int          `json:"total_score"` // 0-100
	Category        LeadCategory `json:"category"`
	BudgetScore     int          `json:"budget_score"`
	TimelineScore   int          `json:"timeline_score"`
	FitScore        int          `json:"fit_score"`
	EngagementScore int          `json:"engagement_score"`
	Rationale       string       `json:"scoring_rationale"`
	PriorityNotes   string       `json:"priority_notes,omitempty"`
}

// ComponentSum returns the sum of the four component scores.
func (s LeadScoring) ComponentSum() int {
	return s.BudgetScore + s.TimelineScore + s.FitScore + s.EngagementScore
}

// PersonalizationContext is the call-strategy output of the personalization
// stage. Consumed only by the outbound-call variable builder.
type PersonalizationContext struct {
	Opener             string            `json:"custom_opener"`
	PainPointReference string            `json:"pain_point_reference"`
	ValueProposition   string            `json:"value_proposition"`
	TalkingPoints      []string          `json:"talking_points,omitempty"`
	DiscoveryQuestions []string          `json:"suggested_questions,omitempty"`
	ObjectionHandlers  map[string]string `json:"objection_handlers,omitempty"`
	CallStrategy       string            `json:"call_strategy"`
}
