package model

import "time"

// LeadStatus is the lifecycle state of an inquiry.
type LeadStatus string

const (
	StatusNew              LeadStatus = "new"
	StatusResearchComplete LeadStatus = "research_complete"
	StatusResearchFailed   LeadStatus = "research_failed"
	StatusCallInitiated    LeadStatus = "call_initiated"
	StatusCallFailed       LeadStatus = "call_failed"
	StatusCallCompleted    LeadStatus = "call_completed"
	StatusHotProcessed     LeadStatus = "hot_processed"
	StatusWarmProcessed    LeadStatus = "warm_processed"
	StatusNurtureProcessed LeadStatus = "nurture_processed"
	StatusClosedWon        LeadStatus = "closed_won"
	StatusClosedLost       LeadStatus = "closed_lost"
)

// LeadCategory is the qualification bucket derived from a score.
type LeadCategory string

const (
	CategoryHot     LeadCategory = "hot"
	CategoryWarm    LeadCategory = "warm"
	CategoryNurture LeadCategory = "nurture"
)

// InquiryRecord is the durable record tracking one lead through its whole
// lifecycle. It is owned and mutated exclusively by the processor; pipelines
// only ever see a read view.
type InquiryRecord struct {
	ID string `json:"id"`
	Lead

	Status LeadStatus `json:"status"`

	Research       *ResearchResult `json:"company_research,omitempty"`
	LeadScore      int             `json:"lead_score,omitempty"`
	LeadCategory   LeadCategory    `json:"lead_category,omitempty"`
	ScoringDetails *LeadScoring    `json:"scoring_details,omitempty"`

	CallID           string        `json:"call_id,omitempty"`
	Transcript       string        `json:"call_transcript,omitempty"`
	RecordingURL     string        `json:"call_recording_url,omitempty"`
	CallDurationSecs int           `json:"call_duration_seconds,omitempty"`
	Analysis         *CallAnalysis `json:"call_analysis,omitempty"`

	ProposalRef   string `json:"proposal_ref,omitempty"`
	MeetingBooked bool   `json:"meeting_booked"`
	MeetingLink   string `json:"meeting_link,omitempty"`
	FollowUpSent  bool   `json:"followup_sent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
