package model

// ProposalContent is the proposal-stage output for hot leads: seven prose
// sections plus the full assembled markdown document.
type ProposalContent struct {
	ExecutiveSummary string   `json:"executive_summary"`
	ProblemStatement string   `json:"problem_statement"`
	ProposedSolution string   `json:"proposed_solution"`
	Timeline         string   `json:"timeline"`
	Investment       string   `json:"investment"`
	NextSteps        string   `json:"next_steps"`
	WhyUs            string   `json:"why_us"`
	CaseStudies      []string `json:"case_studies,omitempty"`
	MarkdownContent  string   `json:"markdown_content"`
}
