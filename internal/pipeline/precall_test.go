package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodari-ai/sales-engine/internal/model"
)

func goodStages() *stubStages {
	return &stubStages{
		research: &model.ResearchResult{
			CompanySummary: "Acme builds robots.",
			Industry:       "Robotics",
			Confidence:     0.9,
		},
		scoring: &model.LeadScoring{
			TotalScore: 75, Category: model.CategoryHot,
			BudgetScore: 20, TimelineScore: 20, FitScore: 20, EngagementScore: 15,
			Rationale: "strong",
		},
		personalization: &model.PersonalizationContext{
			Opener:           "Thanks for reaching out!",
			ValueProposition: "We can help.",
			CallStrategy:     "move fast",
		},
		fail: map[string]bool{},
	}
}

func TestRunPreCallHappyPath(t *testing.T) {
	stages := goodStages()
	p := New(stages)

	result := p.RunPreCall(context.Background(), model.Lead{CompanyName: "Acme", Email: "a@b.c"})

	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "Robotics", result.Research.Industry)
	assert.Equal(t, 75, result.Scoring.TotalScore)
	assert.Equal(t, model.CategoryHot, result.Scoring.Category)
	assert.Equal(t, "Thanks for reaching out!", result.Personalization.Opener)
}

func TestRunPreCallResearchFallsBack(t *testing.T) {
	stages := goodStages()
	stages.fail["research"] = true
	p := New(stages)

	lead := model.Lead{CompanyName: "Acme", Website: "https://acme.example"}
	result := p.RunPreCall(context.Background(), lead)

	assert.True(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "research stage failed")
	assert.Equal(t, "Company: Acme. Website: https://acme.example", result.Research.CompanySummary)
	// Later stages still ran.
	assert.Equal(t, 75, result.Scoring.TotalScore)
	assert.NotNil(t, result.Personalization)
}

func TestRunPreCallAllStagesFallBack(t *testing.T) {
	stages := goodStages()
	stages.fail = map[string]bool{"research": true, "scoring": true, "personalization": true}
	p := New(stages)

	lead := model.Lead{CompanyName: "Acme", PrimaryGoal: "automation"}
	result := p.RunPreCall(context.Background(), lead)

	assert.True(t, result.Success)
	assert.Len(t, result.Errors, 3)
	require.NotNil(t, result.Research)
	require.NotNil(t, result.Scoring)
	require.NotNil(t, result.Personalization)
	assert.Equal(t, result.Scoring.ComponentSum(), result.Scoring.TotalScore)
}

func TestRunPreCallRecoversFromPanic(t *testing.T) {
	stages := goodStages()
	stages.panicStage = "research"
	p := New(stages)

	result := p.RunPreCall(context.Background(), model.Lead{CompanyName: "Acme"})

	assert.True(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "research stage panicked")
	assert.NotNil(t, result.Research)
}

func TestRunPreCallCategoryFollowsRouter(t *testing.T) {
	stages := goodStages()
	// Model claims hot but the score says warm.
	stages.scoring = &model.LeadScoring{
		TotalScore: 55, Category: model.CategoryHot,
		BudgetScore: 15, TimelineScore: 15, FitScore: 15, EngagementScore: 10,
	}
	p := New(stages)

	result := p.RunPreCall(context.Background(), model.Lead{CompanyName: "Acme"})
	assert.Equal(t, model.CategoryWarm, result.Scoring.Category)
}

func TestRunPreCallCustomThresholds(t *testing.T) {
	stages := goodStages()
	p := New(stages, WithThresholds(80, 60))

	result := p.RunPreCall(context.Background(), model.Lead{CompanyName: "Acme"})
	// 75 is warm under an 80-point hot threshold.
	assert.Equal(t, model.CategoryWarm, result.Scoring.Category)
}
