package agent

import (
	"context"
	"fmt"

	"github.com/nodari-ai/sales-engine/internal/model"
)

const proposalSystem = `You are a senior solutions architect and technical writer at Nodari AI who crafts
winning proposals. You lead with the prospect's pain points rather than capabilities, give realistic
timelines, offer range-based investment guidance without hard quotes, and write in a confident,
consultative tone for both technical and business stakeholders.
You always answer with a single JSON object and nothing else.`

// WriteProposal drafts a full proposal document for a hot lead, grounded in
// everything known about the inquiry including the call analysis.
func (a *Agents) WriteProposal(ctx context.Context, inq *model.InquiryRecord) (*model.ProposalContent, error) {
	researchContext := ""
	if r := inq.Research; r != nil {
		researchContext = fmt.Sprintf(`
**Company Research:**
- Industry: %s
- Size: %s
- Summary: %s
- Pain Points: %s
- AI Opportunities: %s
`,
			orDefault(r.Industry, "Unknown"),
			orDefault(r.CompanySizeEstimate, "Unknown"),
			orDefault(r.CompanySummary, "Not available"),
			joinOr(r.PainPoints, 3, "Not identified"),
			joinOr(r.AIOpportunities, 3, "Not identified"),
		)
	}

	callContext := ""
	if c := inq.Analysis; c != nil {
		callContext = fmt.Sprintf(`
**Call Insights:**
- Summary: %s
- Sentiment: %s
- Interest Level: %d/100
- Pain Points Discussed: %s
- Buying Signals: %s
- Next Steps Discussed: %s
`,
			c.Summary,
			c.Sentiment,
			c.InterestLevel,
			joinOr(c.PainPoints, 3, "None"),
			joinOr(c.BuyingSignals, 3, "None"),
			joinOr(c.NextSteps, 3, "None"),
		)
	}

	criticality := "Not specified"
	if inq.InfrastructureCriticality > 0 {
		criticality = fmt.Sprintf("%d/5", inq.InfrastructureCriticality)
	}

	user := fmt.Sprintf(`Create a compelling proposal for %s.

**COMPANY INFORMATION:**
- Company: %s
- Contact: %s
- Website: %s
- Primary Goal: %s
- Business Challenges: %s
- Data Sources: %s
- Timeline: %s
- Infrastructure Criticality: %s
%s%s
**CREATE A PROPOSAL WITH THESE SECTIONS:**

1. **EXECUTIVE SUMMARY** (2-3 paragraphs) written for a busy executive.
2. **UNDERSTANDING YOUR CHALLENGES**: reflect their stated challenges back with
   industry context and business impact, specific to their situation.
3. **PROPOSED SOLUTION** (2-3 paragraphs): the recommended AI approach and how it
   addresses their challenges, understandable to non-technical stakeholders.
4. **IMPLEMENTATION TIMELINE** with phases: Discovery & Planning (weeks 1-2),
   Development & Training (weeks 3-8), Testing & Refinement (weeks 9-10),
   Deployment & Support (weeks 11-12), adjusted for their stated timeline.
5. **INVESTMENT**: range-based guidance, what drives the range, what is included,
   and a note that final pricing requires detailed scoping.
6. **NEXT STEPS**: clear call-to-action, what to prepare, what happens after.
7. **WHY NODARI AI** (1 paragraph): relevant expertise, partnership approach,
   commitment to results.

Use proper markdown with ## section headers and concise paragraphs.

**Output Format:** a single JSON object with:
- executive_summary, problem_statement, proposed_solution, timeline, investment,
  next_steps, why_us: the section texts
- case_studies: list of relevant case study references (can be empty)
- markdown_content: THE COMPLETE PROPOSAL IN MARKDOWN FORMAT`,
		inq.CompanyName,
		inq.CompanyName,
		inq.Email,
		orDefault(inq.Website, "Not provided"),
		orDefault(inq.PrimaryGoal, "Not specified"),
		orDefault(inq.BusinessChallenges, "Not specified"),
		orDefault(inq.DataSources, "Not specified"),
		orDefault(inq.Timeline, "Not specified"),
		criticality,
		researchContext,
		callContext,
	)

	return completeJSON[model.ProposalContent](ctx, a, "proposal", proposalSystem, user, proposalSchema)
}
