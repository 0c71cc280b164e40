package agent

import (
	"context"
	"fmt"

	"github.com/nodari-ai/sales-engine/internal/model"
)

const analysisSystem = `You are an expert sales call analyst. Your analysis is objective and evidence-based:
you only report pain points, objections, and buying signals the prospect actually voiced, you are clear
about uncertainty, and when a meeting time is mentioned you extract it precisely for calendar booking.
You always answer with a single JSON object and nothing else.`

// AnalyzeTranscript extracts structured insight from a completed call. The
// provider's own summary, when present, is additional context.
func (a *Agents) AnalyzeTranscript(ctx context.Context, inq *model.InquiryRecord, transcript, providerSummary string) (*model.CallAnalysis, error) {
	preCall := ""
	if inq != nil {
		preCall = fmt.Sprintf(`
**PRE-CALL CONTEXT:**
- Company: %s
- Original Lead Score: %d
- Lead Category: %s
- Primary Goal: %s
- Business Challenges: %s
- Timeline: %s
`,
			inq.CompanyName,
			inq.LeadScore,
			orDefault(string(inq.LeadCategory), "Unknown"),
			orDefault(inq.PrimaryGoal, "Not specified"),
			orDefault(inq.BusinessChallenges, "Not specified"),
			orDefault(inq.Timeline, "Not specified"),
		)
	}

	summary := ""
	if providerSummary != "" {
		summary = fmt.Sprintf("\n**PROVIDER CALL SUMMARY:**\n%s\n", providerSummary)
	}

	user := fmt.Sprintf(`Analyze this sales call transcript and extract actionable insights.
%s%s
**CALL TRANSCRIPT:**
---
%s
---

**ANALYZE THE FOLLOWING:**

1. **CALL SUMMARY** (3-5 sentences): main topics, key points the prospect made, outcome.
2. **SENTIMENT**: "positive" (engaged, receptive), "neutral" (professional but reserved),
   or "negative" (resistant, dismissive).
3. **INTEREST LEVEL** (0-100): 80-100 very interested and discussing next steps,
   60-79 engaged with positive signals, 40-59 moderate, 20-39 low, 0-19 not interested.
4. **KEY PAIN POINTS**: only challenges they explicitly stated or strongly implied.
5. **OBJECTIONS RAISED**: explicit objections and implicit concerns.
6. **BUYING SIGNALS**: pricing or timeline questions, implementation detail, stakeholders
   to involve, expressed urgency, comparisons to alternatives.
7. **NEXT STEPS DISCUSSED**: follow-up actions mentioned by either party.
8. **MEETING AGREED** (true/false): only true on clear agreement.
9. **PROPOSED MEETING TIME**: the final agreed time if one was discussed, in natural
   language (e.g. "Wednesday at 3pm"); null otherwise.
10. **BUDGET/TIMELINE/AUTHORITY**: budget_confirmed, timeline_confirmed,
    decision_maker_confirmed, each true/false/null.
11. **RECOMMENDED ACTION** (1-2 sentences): what should happen next.
12. **UPDATED LEAD SCORE** (0-100): the post-call score given what you heard.

**Output Format:** a single JSON object with fields call_summary, sentiment,
interest_level, key_pain_points, objections_raised, buying_signals,
next_steps_discussed, meeting_agreed, proposed_meeting_time, budget_confirmed,
timeline_confirmed, decision_maker_confirmed, recommended_action, updated_lead_score.`,
		preCall,
		summary,
		transcript,
	)

	return completeJSON[model.CallAnalysis](ctx, a, "analysis", analysisSystem, user, analysisSchema)
}
