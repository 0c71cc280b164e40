package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/nodari-ai/sales-engine/internal/model"
)

const personalizationSystem = `You are an elite sales enablement specialist who prepares call strategies
for an AI voice agent. Everything you write must sound natural when spoken aloud: short sentences,
no jargon, focused on discovery rather than pitching. You always answer with a single JSON object and nothing else.`

// PersonalizeCall builds the call strategy for the voice agent. Research and
// scoring are optional context; the stage degrades to the form data alone.
func (a *Agents) PersonalizeCall(ctx context.Context, lead model.Lead, research *model.ResearchResult, scoring *model.LeadScoring) (*model.PersonalizationContext, error) {
	researchContext := ""
	if research != nil {
		researchContext = fmt.Sprintf(`
**Research Insights:**
- Industry: %s
- Company Size: %s
- Summary: %s
- Pain Points: %s
- AI Opportunities: %s
- Tech Stack: %s
`,
			research.Industry,
			orDefault(research.CompanySizeEstimate, "Unknown"),
			research.CompanySummary,
			joinOr(research.PainPoints, 3, "None identified"),
			joinOr(research.AIOpportunities, 3, "None identified"),
			joinOr(research.TechStack, 5, "Unknown"),
		)
	}

	scoringContext := ""
	if scoring != nil {
		scoringContext = fmt.Sprintf(`
**Lead Score:** %d/100 (%s)
- Budget signals: %d/25
- Timeline urgency: %d/25
- ICP fit: %d/25
- Engagement: %d/25
- Notes: %s
`,
			scoring.TotalScore,
			strings.ToUpper(string(scoring.Category)),
			scoring.BudgetScore,
			scoring.TimelineScore,
			scoring.FitScore,
			scoring.EngagementScore,
			orDefault(scoring.PriorityNotes, "None"),
		)
	}

	user := fmt.Sprintf(`Create a personalized call strategy for the AI voice agent calling %s.

**PROSPECT INFORMATION:**
- Company: %s
- Contact Email: %s
- Website: %s
- Primary Goal: %s
- Business Challenges: %s
- Data Sources: %s
- Timeline: %s
%s%s
**CREATE THE FOLLOWING:**

1. **CUSTOM OPENER** (2-3 conversational sentences): thank them for their interest,
   reference something specific about their company or industry, transition to discovery.

2. **PAIN POINT REFERENCE** (2-3 sentences): how to naturally bring up their stated
   challenges and invite them to elaborate.

3. **VALUE PROPOSITION** (2-3 sentences): a tailored value statement addressing their
   stated goal, benefit-focused rather than feature-focused.

4. **SUGGESTED QUESTIONS** (5 discovery questions): start broad then get specific,
   uncovering budget, timeline, decision process, current state and desired state.

5. **OBJECTION HANDLERS** for these common objections:
   "We're not ready yet", "We're exploring other options", "Budget is tight",
   "Need to talk to my team". Each handler acknowledges the concern, gently
   reframes, and keeps the conversation open.

6. **CALL STRATEGY** (2-3 sentences): overall approach for their score and profile.
   Hot leads: focus on timeline and next steps. Warm leads: education and value.
   Nurture leads: understanding and qualification. Include pacing and tone guidance.

**Output Format:** a single JSON object with:
- custom_opener, pain_point_reference, value_proposition, call_strategy: strings
- talking_points: list of key points to cover
- suggested_questions: list of 5 discovery questions
- objection_handlers: object mapping objection to response`,
		lead.CompanyName,
		lead.CompanyName,
		lead.Email,
		orDefault(lead.Website, "Not provided"),
		orDefault(lead.PrimaryGoal, "Not specified"),
		orDefault(lead.BusinessChallenges, "Not specified"),
		orDefault(lead.DataSources, "Not specified"),
		orDefault(lead.Timeline, "Not specified"),
		researchContext,
		scoringContext,
	)

	return completeJSON[model.PersonalizationContext](ctx, a, "personalization", personalizationSystem, user, personalizationSchema)
}
