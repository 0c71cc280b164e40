package store

import (
	"context"

	"github.com/nodari-ai/sales-engine/internal/model"
)

// InquiryFilter specifies criteria for listing inquiries.
type InquiryFilter struct {
	Status   model.LeadStatus   `json:"status,omitempty"`
	Category model.LeadCategory `json:"category,omitempty"`
	Limit    int                `json:"limit,omitempty"`
	Offset   int                `json:"offset,omitempty"`
}

// FollowUpOutcome captures what the post-call track actually did, so the
// record reflects reality even when individual steps failed.
type FollowUpOutcome struct {
	Status        model.LeadStatus
	ProposalRef   string
	MeetingBooked bool
	MeetingLink   string
	FollowUpSent  bool
}

// Store defines the persistence interface for inquiry records.
type Store interface {
	// Inquiries
	CreateInquiry(ctx context.Context, lead model.Lead) (*model.InquiryRecord, error)
	GetInquiry(ctx context.Context, id string) (*model.InquiryRecord, error)
	GetInquiryByCallID(ctx context.Context, callID string) (*model.InquiryRecord, error)
	ListInquiries(ctx context.Context, filter InquiryFilter) ([]model.InquiryRecord, error)

	// Lifecycle transitions
	UpdateStatus(ctx context.Context, id string, status model.LeadStatus) error
	SaveResearch(ctx context.Context, id string, research *model.ResearchResult, scoring *model.LeadScoring, status model.LeadStatus) error
	MarkCallInitiated(ctx context.Context, id, callID string) error
	SaveCallOutcome(ctx context.Context, id, transcript, recordingURL string, durationSecs int) error
	SaveAnalysis(ctx context.Context, id string, analysis *model.CallAnalysis) error
	SaveFollowUp(ctx context.Context, id string, outcome FollowUpOutcome) error

	// Maintenance
	Migrate(ctx context.Context) error
	Close() error
}
