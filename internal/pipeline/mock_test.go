package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/nodari-ai/sales-engine/internal/model"
	"github.com/nodari-ai/sales-engine/pkg/gcal"
	"github.com/nodari-ai/sales-engine/pkg/gmail"
)

var errStage = errors.New("model unavailable")

// stubStages returns canned outputs, failing any stage named in fail.
type stubStages struct {
	research        *model.ResearchResult
	scoring         *model.LeadScoring
	personalization *model.PersonalizationContext
	analysis        *model.CallAnalysis
	proposal        *model.ProposalContent
	fail            map[string]bool
	panicStage      string
}

func (s *stubStages) ResearchCompany(context.Context, model.Lead) (*model.ResearchResult, error) {
	if s.panicStage == "research" {
		panic("boom")
	}
	if s.fail["research"] {
		return nil, errStage
	}
	return s.research, nil
}

func (s *stubStages) ScoreLead(context.Context, model.Lead, *model.ResearchResult) (*model.LeadScoring, error) {
	if s.fail["scoring"] {
		return nil, errStage
	}
	return s.scoring, nil
}

func (s *stubStages) PersonalizeCall(context.Context, model.Lead, *model.ResearchResult, *model.LeadScoring) (*model.PersonalizationContext, error) {
	if s.fail["personalization"] {
		return nil, errStage
	}
	return s.personalization, nil
}

func (s *stubStages) AnalyzeTranscript(context.Context, *model.InquiryRecord, string, string) (*model.CallAnalysis, error) {
	if s.fail["analysis"] {
		return nil, errStage
	}
	return s.analysis, nil
}

func (s *stubStages) WriteProposal(context.Context, *model.InquiryRecord) (*model.ProposalContent, error) {
	if s.fail["proposal"] {
		return nil, errStage
	}
	return s.proposal, nil
}

// stubCalendar records bookings.
type stubCalendar struct {
	slot     time.Time
	slotErr  error
	link     string
	bookErr  error
	booked   []gcal.MeetingRequest
	searched bool
}

func (c *stubCalendar) FindAvailableSlot(context.Context, time.Time, time.Duration, int) (time.Time, error) {
	c.searched = true
	return c.slot, c.slotErr
}

func (c *stubCalendar) CreateMeeting(_ context.Context, req gcal.MeetingRequest) (string, error) {
	if c.bookErr != nil {
		return "", c.bookErr
	}
	c.booked = append(c.booked, req)
	return c.link, nil
}

// stubMailer records sent messages.
type stubMailer struct {
	err  error
	sent []gmail.Message
}

func (m *stubMailer) Send(_ context.Context, msg gmail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}
