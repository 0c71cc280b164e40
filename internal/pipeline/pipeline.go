// Package pipeline runs the pre-call and post-call stage sequences. Pipelines
// are pure with respect to storage: they return results and never persist.
package pipeline

import (
	"context"
	"time"

	"github.com/nodari-ai/sales-engine/internal/model"
	"github.com/nodari-ai/sales-engine/pkg/gcal"
	"github.com/nodari-ai/sales-engine/pkg/gmail"
	"github.com/nodari-ai/sales-engine/pkg/renderer"
)

// Stages is the reasoning surface consumed by both pipelines. Implemented by
// agent.Agents.
type Stages interface {
	ResearchCompany(ctx context.Context, lead model.Lead) (*model.ResearchResult, error)
	ScoreLead(ctx context.Context, lead model.Lead, research *model.ResearchResult) (*model.LeadScoring, error)
	PersonalizeCall(ctx context.Context, lead model.Lead, research *model.ResearchResult, scoring *model.LeadScoring) (*model.PersonalizationContext, error)
	AnalyzeTranscript(ctx context.Context, inq *model.InquiryRecord, transcript, providerSummary string) (*model.CallAnalysis, error)
	WriteProposal(ctx context.Context, inq *model.InquiryRecord) (*model.ProposalContent, error)
}

// Pipeline wires the stage runner to the follow-up collaborators. Calendar,
// mailer, and docs are each optional; a missing collaborator degrades the
// corresponding step and records an error rather than failing the run.
type Pipeline struct {
	stages   Stages
	calendar gcal.Client
	mailer   gmail.Client
	docs     *renderer.Renderer

	hotThreshold  int
	warmThreshold int

	now func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCalendar attaches the scheduling collaborator.
func WithCalendar(c gcal.Client) Option {
	return func(p *Pipeline) { p.calendar = c }
}

// WithMailer attaches the email collaborator.
func WithMailer(m gmail.Client) Option {
	return func(p *Pipeline) { p.mailer = m }
}

// WithRenderer attaches the proposal document renderer.
func WithRenderer(r *renderer.Renderer) Option {
	return func(p *Pipeline) { p.docs = r }
}

// WithThresholds overrides the routing thresholds. hot must exceed warm.
func WithThresholds(hot, warm int) Option {
	return func(p *Pipeline) {
		p.hotThreshold = hot
		p.warmThreshold = warm
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New creates a Pipeline with default 70/40 routing thresholds.
func New(stages Stages, opts ...Option) *Pipeline {
	p := &Pipeline{
		stages:        stages,
		hotThreshold:  70,
		warmThreshold: 40,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
