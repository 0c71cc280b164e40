package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nodari-ai/sales-engine/internal/model"
	"github.com/nodari-ai/sales-engine/pkg/gcal"
	"github.com/nodari-ai/sales-engine/pkg/gmail"
)

const (
	meetingDuration   = 30 * time.Minute
	slotSearchDays    = 7
	proposalEmailName = "proposal.html"
)

// RunPostCall analyzes the completed call, routes on the live interest level,
// and executes exactly one follow-up track.
func (p *Pipeline) RunPostCall(ctx context.Context, inq *model.InquiryRecord, transcript, providerSummary string) *model.PostCallResult {
	log := zap.L().With(zap.String("inquiry_id", inq.ID), zap.String("company", inq.CompanyName))
	result := &model.PostCallResult{}

	result.Analysis = runStage("analysis", &result.Errors,
		func() (*model.CallAnalysis, error) {
			return p.stages.AnalyzeTranscript(ctx, inq, transcript, providerSummary)
		},
		func() *model.CallAnalysis { return analysisFallback(transcript, providerSummary) },
	)
	if result.Analysis == nil {
		// The executor contract makes this unreachable; hitting it means a
		// bug, not a degraded stage.
		result.Errors = append(result.Errors, "analysis stage produced no output")
		return result
	}

	category := Route(result.Analysis.InterestLevel, p.hotThreshold, p.warmThreshold)
	result.Track = trackFor(category)
	log.Info("post-call routing decided",
		zap.Int("interest_level", result.Analysis.InterestLevel),
		zap.String("track", string(result.Track)),
	)

	switch result.Track {
	case model.TrackHot:
		p.runHotTrack(ctx, inq, result)
	case model.TrackWarm:
		subject, html := warmLeadEmail(inq.CompanyName, contactName(inq))
		result.EmailSent = p.sendEmail(ctx, inq.Email, subject, html, nil, &result.Errors)
	default:
		subject, html := nurtureEmail(contactName(inq))
		result.EmailSent = p.sendEmail(ctx, inq.Email, subject, html, nil, &result.Errors)
	}

	result.Success = true
	return result
}

// runHotTrack generates a proposal (no fallback), books a meeting when one
// was agreed, and sends the follow-up email with whatever artifacts exist.
func (p *Pipeline) runHotTrack(ctx context.Context, inq *model.InquiryRecord, result *model.PostCallResult) {
	proposal, err := p.stages.WriteProposal(ctx, withAnalysis(inq, result.Analysis))
	if err != nil {
		// Deliberate asymmetry: proposals are too structured to template, so
		// the track proceeds without one.
		result.Errors = append(result.Errors, fmt.Sprintf("proposal stage failed: %v", err))
	} else {
		result.Proposal = proposal
	}

	var attachment *gmail.Attachment
	if result.Proposal != nil && result.Proposal.MarkdownContent != "" {
		attachment = p.renderProposal(inq.CompanyName, result.Proposal.MarkdownContent, result)
	}

	if result.Analysis.MeetingAgreed && result.Analysis.ProposedMeetingTime != "" {
		result.MeetingBooked, result.MeetingLink = p.bookMeeting(ctx, inq, result.Analysis.ProposedMeetingTime, &result.Errors)
	}

	subject, html := hotLeadEmail(inq.CompanyName, contactName(inq), result.MeetingLink)
	result.EmailSent = p.sendEmail(ctx, inq.Email, subject, html, attachment, &result.Errors)
}

// renderProposal renders the markdown once; the same document is written to
// disk and attached to the email. Rendering failure degrades to attaching the
// raw markdown; a write failure records an error but keeps the HTML
// attachment.
func (p *Pipeline) renderProposal(companyName, markdown string, result *model.PostCallResult) *gmail.Attachment {
	if p.docs == nil {
		return &gmail.Attachment{Filename: "proposal.md", MIMEType: "text/markdown", Data: []byte(markdown)}
	}

	doc, err := p.docs.Render(markdown, companyName)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("proposal rendering failed: %v", err))
		return &gmail.Attachment{Filename: "proposal.md", MIMEType: "text/markdown", Data: []byte(markdown)}
	}

	path, err := p.docs.WriteDocument(doc, companyName)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("proposal document write failed: %v", err))
	} else {
		result.ProposalRef = path
	}
	return &gmail.Attachment{Filename: proposalEmailName, MIMEType: "text/html", Data: []byte(doc)}
}

// bookMeeting parses the agreed time, falling back to the next free slot when
// the free text is unparseable. No slot in the window records an error and
// the track proceeds without a meeting.
func (p *Pipeline) bookMeeting(ctx context.Context, inq *model.InquiryRecord, proposedTime string, errs *[]string) (bool, string) {
	if p.calendar == nil {
		*errs = append(*errs, "meeting booking skipped: calendar not configured")
		return false, ""
	}

	now := p.now()
	start, ok := gcal.ParseMeetingTime(proposedTime, now)
	if !ok {
		zap.L().Info("proposed meeting time unparseable, searching for a slot",
			zap.String("proposed", proposedTime))
		slot, err := p.calendar.FindAvailableSlot(ctx, now, meetingDuration, slotSearchDays)
		if err != nil {
			*errs = append(*errs, fmt.Sprintf("slot search failed: %v", err))
			return false, ""
		}
		if slot.IsZero() {
			*errs = append(*errs, "no available meeting slot within the search window")
			return false, ""
		}
		start = slot
	}

	link, err := p.calendar.CreateMeeting(ctx, gcal.MeetingRequest{
		AttendeeEmail: inq.Email,
		CompanyName:   inq.CompanyName,
		StartTime:     start,
		Duration:      meetingDuration,
	})
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("meeting booking failed: %v", err))
		return false, ""
	}
	return true, link
}

func (p *Pipeline) sendEmail(ctx context.Context, to, subject, html string, attachment *gmail.Attachment, errs *[]string) bool {
	if p.mailer == nil {
		*errs = append(*errs, "email skipped: mailer not configured")
		return false
	}

	err := p.mailer.Send(ctx, gmail.Message{
		To:         to,
		Subject:    subject,
		HTMLBody:   html,
		Attachment: attachment,
	})
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("email send failed: %v", err))
		return false
	}
	return true
}

// withAnalysis returns a copy of the inquiry carrying the fresh analysis, so
// the proposal stage sees the call insights before they are persisted.
func withAnalysis(inq *model.InquiryRecord, analysis *model.CallAnalysis) *model.InquiryRecord {
	cp := *inq
	cp.Analysis = analysis
	return &cp
}

func contactName(inq *model.InquiryRecord) string {
	if inq.CompanyName != "" {
		return inq.CompanyName
	}
	return "there"
}
