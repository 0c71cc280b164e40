package model

// CallSentiment is the overall prospect sentiment detected on a call.
type CallSentiment string

const (
	SentimentPositive CallSentiment = "positive"
	SentimentNeutral  CallSentiment = "neutral"
	SentimentNegative CallSentiment = "negative"
)

// CallAnalysis is the transcript-analysis output produced exactly once per
// completed call.
type CallAnalysis struct {
	Summary             string        `json:"call_summary"`
	Sentiment           CallSentiment `json:"sentiment"`
	InterestLevel       int           `json:"interest_level"` // 0-100
	PainPoints          []string      `json:"key_pain_points,omitempty"`
	Objections          []string      `json:"objections_raised,omitempty"`
	BuyingSignals       []string      `json:"buying_signals,omitempty"`
	NextSteps           []string      `json:"next_steps_discussed,omitempty"`
	MeetingAgreed       bool          `json:"meeting_agreed"`
	ProposedMeetingTime string        `json:"proposed_meeting_time,omitempty"` // free text, may be unparseable
	BudgetConfirmed     *bool         `json:"budget_confirmed,omitempty"`
	TimelineConfirmed   *bool         `json:"timeline_confirmed,omitempty"`
	DecisionMaker       *bool         `json:"decision_maker_confirmed,omitempty"`
	RecommendedAction   string        `json:"recommended_action"`
	UpdatedLeadScore    int           `json:"updated_lead_score"` // 0-100
}

// EventCallAnalyzed is the only voice-provider event type that triggers
// post-call processing. All other events are acknowledged and ignored.
const EventCallAnalyzed = "call_analyzed"

// CallEvent is the inbound webhook payload from the voice-call provider.
type CallEvent struct {
	Event string        `json:"event"`
	Call  CallEventData `json:"call"`
}

// CallEventData carries the call-level fields of a CallEvent.
type CallEventData struct {
	CallID          string `json:"call_id"`
	Transcript      string `json:"transcript"`
	RecordingURL    string `json:"recording_url"`
	CallLengthSec   int    `json:"call_length_sec"`
	DurationSeconds int    `json:"duration_seconds"`
	Analysis        struct {
		CallSummary string `json:"call_summary"`
	} `json:"call_analysis"`
}

// Duration returns the call length in seconds, tolerating either of the two
// field names the provider has used.
func (e CallEvent) Duration() int {
	if e.Call.CallLengthSec > 0 {
		return e.Call.CallLengthSec
	}
	return e.Call.DurationSeconds
}

// Summary returns the provider's own call summary, if any.
func (e CallEvent) Summary() string {
	return e.Call.Analysis.CallSummary
}
