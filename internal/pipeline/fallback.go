package pipeline

import (
	"fmt"

	"github.com/nodari-ai/sales-engine/internal/model"
)

// Deterministic stage fallbacks. Each is computed purely from locally
// available input, never another network call, and always satisfies the
// bounds of its output type.

func researchFallback(lead model.Lead) *model.ResearchResult {
	website := lead.Website
	if website == "" {
		website = "Unknown"
	}
	res := &model.ResearchResult{
		CompanySummary: fmt.Sprintf("Company: %s. Website: %s", lead.CompanyName, website),
		Industry:       "Unknown",
		Confidence:     0.0,
	}
	if lead.BusinessChallenges != "" {
		res.PainPoints = []string{lead.BusinessChallenges}
	}
	if lead.PrimaryGoal != "" {
		res.AIOpportunities = []string{lead.PrimaryGoal}
	}
	return res
}

func scoringFallback(lead model.Lead, hotThreshold, warmThreshold int) *model.LeadScoring {
	criticality := lead.InfrastructureCriticality
	if criticality == 0 {
		criticality = 3
	}

	s := &model.LeadScoring{
		BudgetScore:     criticality * 5,
		TimelineScore:   8,
		FitScore:        10,
		EngagementScore: 10,
		Rationale:       "Automated scoring unavailable; score derived from form signals only.",
	}
	if lead.Timeline != "" {
		s.TimelineScore = 15
	}
	if lead.PrimaryGoal != "" {
		s.FitScore = 15
	}
	if lead.BusinessChallenges != "" {
		s.EngagementScore = 15
	}
	s.TotalScore = s.ComponentSum()
	s.Category = Route(s.TotalScore, hotThreshold, warmThreshold)
	return s
}

func personalizationFallback(lead model.Lead) *model.PersonalizationContext {
	goal := lead.PrimaryGoal
	if goal == "" {
		goal = "exploring AI solutions"
	}
	return &model.PersonalizationContext{
		Opener: fmt.Sprintf(
			"Thanks for reaching out about AI solutions for %s! I'd love to learn more about what prompted your interest.",
			lead.CompanyName),
		PainPointReference: fmt.Sprintf(
			"You mentioned you're interested in %s. Tell me more about what that looks like for your team today.",
			goal),
		ValueProposition: "We help companies implement custom AI solutions that drive real business results.",
		TalkingPoints: []string{
			"Understand their current challenges",
			"Explore where AI could add value",
			"Agree on a concrete next step",
		},
		DiscoveryQuestions: []string{
			"What prompted you to look into AI solutions now?",
			"What does success look like for this initiative?",
			"What data do you have available today?",
			"Who else would be involved in a decision like this?",
			"What timeline are you working towards?",
		},
		ObjectionHandlers: map[string]string{
			"not ready yet":   "That's completely fair. Many of our clients started with a small discovery phase to understand what's possible before committing to anything.",
			"budget is tight": "Understood. We typically scope an initial phase that fits the budget you have and proves value before any larger investment.",
		},
		CallStrategy: "Keep the call short and curious: focus on discovery, confirm their goal, and close on a concrete follow-up.",
	}
}

func analysisFallback(transcript, providerSummary string) *model.CallAnalysis {
	summary := providerSummary
	if summary == "" {
		summary = fmt.Sprintf("Call transcript (%d chars)", len(transcript))
	}
	summary = truncate(summary, 500)
	return &model.CallAnalysis{
		Summary:           summary,
		Sentiment:         model.SentimentNeutral,
		InterestLevel:     50,
		MeetingAgreed:     false,
		RecommendedAction: "Manual review required - automated analysis failed",
		UpdatedLeadScore:  50,
	}
}
