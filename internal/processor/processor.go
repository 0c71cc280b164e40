// Package processor orchestrates the inquiry lifecycle: it is the only layer
// that persists state, and it drives the pipelines in background goroutines so
// webhook handlers can acknowledge immediately.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/nodari-ai/sales-engine/internal/model"
	"github.com/nodari-ai/sales-engine/internal/normalize"
	"github.com/nodari-ai/sales-engine/internal/pipeline"
	"github.com/nodari-ai/sales-engine/internal/store"
	"github.com/nodari-ai/sales-engine/pkg/retell"
)

// Pipelines is the pre-call and post-call surface the processor drives.
// Implemented by pipeline.Pipeline.
type Pipelines interface {
	RunPreCall(ctx context.Context, lead model.Lead) *model.PreCallResult
	RunPostCall(ctx context.Context, inq *model.InquiryRecord, transcript, providerSummary string) *model.PostCallResult
}

// Processor owns inquiry state transitions. Pipelines compute, the processor
// persists.
type Processor struct {
	store  store.Store
	pipe   Pipelines
	caller retell.Client

	agentID     string
	fromNumber  string
	flowTimeout time.Duration

	wg sync.WaitGroup
}

// Option configures a Processor.
type Option func(*Processor)

// WithCaller attaches the outbound voice-call client and its agent identity.
func WithCaller(c retell.Client, agentID, fromNumber string) Option {
	return func(p *Processor) {
		p.caller = c
		p.agentID = agentID
		p.fromNumber = fromNumber
	}
}

// WithFlowTimeout bounds each background flow. Default 5 minutes.
func WithFlowTimeout(d time.Duration) Option {
	return func(p *Processor) { p.flowTimeout = d }
}

// New creates a Processor.
func New(st store.Store, pipe Pipelines, opts ...Option) *Processor {
	p := &Processor{
		store:       st,
		pipe:        pipe,
		flowTimeout: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Wait blocks until all background flows finish. Called on shutdown and by
// tests.
func (p *Processor) Wait() {
	p.wg.Wait()
}

// AcceptFormSubmission normalizes a raw form payload, durably creates the
// inquiry, and kicks off the pre-call flow in the background. The returned
// record carries the ID callers poll for status.
func (p *Processor) AcceptFormSubmission(ctx context.Context, raw map[string]any) (*model.InquiryRecord, error) {
	lead, err := normalize.FormPayload(raw)
	if err != nil {
		return nil, eris.Wrap(err, "processor: normalize form")
	}

	rec, err := p.store.CreateInquiry(ctx, lead)
	if err != nil {
		return nil, eris.Wrap(err, "processor: create inquiry")
	}

	zap.L().Info("inquiry accepted",
		zap.String("inquiry_id", rec.ID),
		zap.String("company", lead.CompanyName))

	p.spawn(func(ctx context.Context) { p.runFormFlow(ctx, rec) })
	return rec, nil
}

// spawn runs fn on a detached, bounded context with panic recovery. A panic
// in a background flow must never take the server down.
func (p *Processor) spawn(fn func(context.Context)) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				zap.L().Error("background flow panicked", zap.Any("panic", r))
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), p.flowTimeout)
		defer cancel()
		fn(ctx)
	}()
}

func (p *Processor) runFormFlow(ctx context.Context, rec *model.InquiryRecord) {
	result := p.pipe.RunPreCall(ctx, rec.Lead)

	if result == nil || !result.Success {
		p.persistStatus(ctx, rec.ID, model.StatusResearchFailed)
		return
	}

	if err := p.store.SaveResearch(ctx, rec.ID, result.Research, result.Scoring, model.StatusResearchComplete); err != nil {
		zap.L().Warn("persist research failed", zap.String("inquiry_id", rec.ID), zap.Error(err))
	}

	if rec.Phone == "" {
		zap.L().Info("no phone number, inquiry stops after research",
			zap.String("inquiry_id", rec.ID))
		return
	}
	if p.caller == nil {
		zap.L().Warn("voice calling not configured, skipping call",
			zap.String("inquiry_id", rec.ID))
		return
	}

	vars := pipeline.BuildMinimalCallVariables(rec.Lead)
	if result.Research != nil && result.Personalization != nil {
		vars = pipeline.BuildCallVariables(rec.Lead, result.Research, result.Personalization)
	}

	resp, err := p.caller.CreatePhoneCall(ctx, retell.CreateCallRequest{
		AgentID:          p.agentID,
		FromNumber:       p.fromNumber,
		ToNumber:         rec.Phone,
		DynamicVariables: vars,
		Metadata:         map[string]string{"inquiry_id": rec.ID},
	})
	if err != nil {
		zap.L().Error("outbound call failed", zap.String("inquiry_id", rec.ID), zap.Error(err))
		p.persistStatus(ctx, rec.ID, model.StatusCallFailed)
		return
	}

	if err := p.store.MarkCallInitiated(ctx, rec.ID, resp.CallID); err != nil {
		zap.L().Warn("persist call initiation failed",
			zap.String("inquiry_id", rec.ID), zap.String("call_id", resp.CallID), zap.Error(err))
		return
	}
	zap.L().Info("call initiated",
		zap.String("inquiry_id", rec.ID), zap.String("call_id", resp.CallID))
}

func (p *Processor) persistStatus(ctx context.Context, id string, status model.LeadStatus) {
	if err := p.store.UpdateStatus(ctx, id, status); err != nil {
		zap.L().Warn("persist status failed",
			zap.String("inquiry_id", id), zap.String("status", string(status)), zap.Error(err))
	}
}

// GetInquiry returns the current record for status polling.
func (p *Processor) GetInquiry(ctx context.Context, id string) (*model.InquiryRecord, error) {
	return p.store.GetInquiry(ctx, id)
}
