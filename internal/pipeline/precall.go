package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/nodari-ai/sales-engine/internal/model"
)

// RunPreCall runs Research, Scoring, and Personalization strictly in order.
// Every stage always yields output (real or fallback), so the run is
// successful whenever all three complete; degradations show up in Errors.
func (p *Pipeline) RunPreCall(ctx context.Context, lead model.Lead) *model.PreCallResult {
	log := zap.L().With(zap.String("company", lead.CompanyName))
	result := &model.PreCallResult{}

	result.Research = runStage("research", &result.Errors,
		func() (*model.ResearchResult, error) { return p.stages.ResearchCompany(ctx, lead) },
		func() *model.ResearchResult { return researchFallback(lead) },
	)

	result.Scoring = runStage("scoring", &result.Errors,
		func() (*model.LeadScoring, error) { return p.stages.ScoreLead(ctx, lead, result.Research) },
		func() *model.LeadScoring { return scoringFallback(lead, p.hotThreshold, p.warmThreshold) },
	)
	// Category always comes from the router, even when the model picked one.
	result.Scoring.Category = Route(result.Scoring.TotalScore, p.hotThreshold, p.warmThreshold)

	result.Personalization = runStage("personalization", &result.Errors,
		func() (*model.PersonalizationContext, error) {
			return p.stages.PersonalizeCall(ctx, lead, result.Research, result.Scoring)
		},
		func() *model.PersonalizationContext { return personalizationFallback(lead) },
	)

	result.Success = true
	log.Info("pre-call pipeline complete",
		zap.Int("lead_score", result.Scoring.TotalScore),
		zap.String("category", string(result.Scoring.Category)),
		zap.Int("degradations", len(result.Errors)),
	)
	return result
}
