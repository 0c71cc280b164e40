package processor

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/nodari-ai/sales-engine/internal/model"
	"github.com/nodari-ai/sales-engine/internal/store"
)

// HandleCallEvent processes a voice-provider webhook. Only call_analyzed
// events trigger post-call work; everything else is acknowledged and dropped.
// The transcript is persisted synchronously so the durable checkpoint exists
// before the handler acknowledges; the post-call pipeline then runs in the
// background.
func (p *Processor) HandleCallEvent(ctx context.Context, event model.CallEvent) error {
	if event.Event != model.EventCallAnalyzed {
		zap.L().Debug("ignoring call event", zap.String("event", event.Event))
		return nil
	}

	rec, err := p.store.GetInquiryByCallID(ctx, event.Call.CallID)
	if err != nil {
		return eris.Wrapf(err, "processor: lookup call %s", event.Call.CallID)
	}
	if rec == nil {
		zap.L().Warn("call event for unknown call, dropping",
			zap.String("call_id", event.Call.CallID))
		return nil
	}

	if err := p.store.SaveCallOutcome(ctx, rec.ID,
		event.Call.Transcript, event.Call.RecordingURL, event.Duration()); err != nil {
		return eris.Wrapf(err, "processor: save call outcome %s", rec.ID)
	}
	rec.Transcript = event.Call.Transcript
	rec.RecordingURL = event.Call.RecordingURL
	rec.CallDurationSecs = event.Duration()
	rec.Status = model.StatusCallCompleted

	providerSummary := event.Summary()
	p.spawn(func(ctx context.Context) { p.runCallFlow(ctx, rec, providerSummary) })
	return nil
}

func (p *Processor) runCallFlow(ctx context.Context, rec *model.InquiryRecord, providerSummary string) {
	result := p.pipe.RunPostCall(ctx, rec, rec.Transcript, providerSummary)
	if result == nil {
		zap.L().Error("post-call pipeline returned nothing", zap.String("inquiry_id", rec.ID))
		return
	}

	// The analysis is persisted even when later follow-up steps failed.
	if result.Analysis != nil {
		if err := p.store.SaveAnalysis(ctx, rec.ID, result.Analysis); err != nil {
			zap.L().Warn("persist analysis failed", zap.String("inquiry_id", rec.ID), zap.Error(err))
		}
	}
	if !result.Success {
		p.persistStatus(ctx, rec.ID, model.StatusCallCompleted)
		return
	}

	var status model.LeadStatus
	switch result.Track {
	case model.TrackHot:
		status = model.StatusHotProcessed
	case model.TrackWarm:
		status = model.StatusWarmProcessed
	default:
		status = model.StatusNurtureProcessed
	}

	outcome := store.FollowUpOutcome{
		Status:        status,
		ProposalRef:   result.ProposalRef,
		MeetingBooked: result.MeetingBooked,
		MeetingLink:   result.MeetingLink,
		FollowUpSent:  result.EmailSent,
	}
	if err := p.store.SaveFollowUp(ctx, rec.ID, outcome); err != nil {
		zap.L().Warn("persist follow-up failed", zap.String("inquiry_id", rec.ID), zap.Error(err))
		return
	}

	zap.L().Info("inquiry processed",
		zap.String("inquiry_id", rec.ID),
		zap.String("track", string(result.Track)),
		zap.Bool("email_sent", result.EmailSent),
		zap.Bool("meeting_booked", result.MeetingBooked))
}
