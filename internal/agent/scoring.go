package agent

import (
	"context"
	"fmt"

	"github.com/nodari-ai/sales-engine/internal/model"
)

const scoringSystem = `You are a rigorous sales operations analyst who scores inbound B2B leads.
You apply the qualification rubric exactly as written, never inventing signals the data does not support,
and your component scores always add up to the total. You always answer with a single JSON object and nothing else.`

// ScoreLead scores the lead on a 0-100 BANT-style rubric. Research findings
// are optional context.
func (a *Agents) ScoreLead(ctx context.Context, lead model.Lead, research *model.ResearchResult) (*model.LeadScoring, error) {
	researchContext := ""
	if research != nil {
		researchContext = fmt.Sprintf(`
**Research Findings:**
- Industry: %s
- Company Size: %s
- Summary: %s
- Identified Pain Points: %s
- AI Opportunities: %s
- Research Confidence: %.2f
`,
			research.Industry,
			orDefault(research.CompanySizeEstimate, "Unknown"),
			research.CompanySummary,
			joinOr(research.PainPoints, 0, "None identified"),
			joinOr(research.AIOpportunities, 0, "None identified"),
			research.Confidence,
		)
	}

	criticality := "Not specified"
	if lead.InfrastructureCriticality > 0 {
		criticality = fmt.Sprintf("%d", lead.InfrastructureCriticality)
	}

	user := fmt.Sprintf(`Score this lead using our qualification criteria. Each component is worth 0-25 points.

**LEAD DATA:**
- Company: %s
- Email: %s
- Website: %s
- Primary Goal: %s
- Business Challenges: %s
- Data Sources: %s
- Infrastructure Criticality (1-5 scale): %s
- Timeline: %s
- Preferred Meeting Time: %s
%s
**SCORING CRITERIA:**

1. **BUDGET SCORE (0-25)** from infrastructure criticality:
   criticality 5 = 25, 4 = 20, 3 = 15, 2 = 10, 1 = 5, not specified = 10.
   Bonus: large company size from research +3, tech-forward industry +2 (cap at 25).

2. **TIMELINE SCORE (0-25)** from stated urgency:
   "immediately"/"ASAP"/"this month" = 25, "this quarter"/"next 3 months" = 20,
   "next 6 months" = 15, "next year" = 10, "exploring"/no timeline = 5, not specified = 8.
   Bonus: specific meeting time provided +3 (cap at 25).

3. **FIT SCORE (0-25)** from ICP and use-case match:
   clear AI use case + existing data = 25, clear use case but data unclear = 20,
   general interest with some specifics = 15, vague requirements = 10, no clear fit = 5.

4. **ENGAGEMENT SCORE (0-25)** from form engagement quality:
   detailed responses + specific meeting time = 25, detailed but flexible = 20,
   brief but specific = 15, minimal = 10, very sparse = 5.

**CLASSIFICATION:** total 70-100 = "hot", 40-69 = "warm", 0-39 = "nurture".

**Output Format:** a single JSON object with:
- total_score: sum of all component scores (0-100)
- category: "hot", "warm", or "nurture"
- budget_score, timeline_score, fit_score, engagement_score: each 0-25
- scoring_rationale: explanation of your scoring decisions
- priority_notes: special considerations for the sales team`,
		lead.CompanyName,
		lead.Email,
		orDefault(lead.Website, "Not provided"),
		orDefault(lead.PrimaryGoal, "Not specified"),
		orDefault(lead.BusinessChallenges, "Not specified"),
		orDefault(lead.DataSources, "Not specified"),
		criticality,
		orDefault(lead.Timeline, "Not specified"),
		orDefault(lead.PreferredTime, "Not specified"),
		researchContext,
	)

	scoring, err := completeJSON[model.LeadScoring](ctx, a, "scoring", scoringSystem, user, scoringSchema)
	if err != nil {
		return nil, err
	}

	// The total must be the component sum even when the model disagrees with
	// its own arithmetic.
	scoring.TotalScore = scoring.ComponentSum()
	return scoring, nil
}
