package model

// FollowUpTrack is the post-call follow-up path selected by routing.
type FollowUpTrack string

const (
	TrackHot     FollowUpTrack = "hot"
	TrackWarm    FollowUpTrack = "warm"
	TrackNurture FollowUpTrack = "nurture"
)

// PreCallResult aggregates the outputs of one pre-call pipeline run. All
// three stage outputs are always set for a valid lead — a failed stage is
// replaced by its deterministic fallback and noted in Errors.
type PreCallResult struct {
	Success         bool                    `json:"success"`
	Research        *ResearchResult         `json:"research,omitempty"`
	Scoring         *LeadScoring            `json:"scoring,omitempty"`
	Personalization *PersonalizationContext `json:"personalization,omitempty"`
	Errors          []string                `json:"errors,omitempty"`
}

// PostCallResult aggregates the outputs of one post-call pipeline run. Track
// reports which follow-up path fired so callers never have to re-derive it
// from the interest level.
type PostCallResult struct {
	Success       bool             `json:"success"`
	Analysis      *CallAnalysis    `json:"analysis,omitempty"`
	Track         FollowUpTrack    `json:"track,omitempty"`
	Proposal      *ProposalContent `json:"proposal,omitempty"`
	ProposalRef   string           `json:"proposal_ref,omitempty"`
	EmailSent     bool             `json:"email_sent"`
	MeetingBooked bool             `json:"meeting_booked"`
	MeetingLink   string           `json:"meeting_link,omitempty"`
	Errors        []string         `json:"errors,omitempty"`
}
