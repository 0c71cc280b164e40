package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/nodari-ai/sales-engine/internal/model"
)

// Dynamic-variable length bounds keep the voice agent's prompt compact.
const (
	maxResearchSummaryLen   = 500
	maxOpenerLen            = 200
	maxPainPointLen         = 200
	maxValuePropositionLen  = 300
	maxCallStrategyLen      = 300
	maxObjectionResponseLen = 200
	maxObjectionHandlers    = 3
	maxObjectionKeyLen      = 20
)

// BuildCallVariables assembles the dynamic variables for a fully enriched
// outbound call, folding in research and personalization when present.
func BuildCallVariables(lead model.Lead, research *model.ResearchResult, pers *model.PersonalizationContext) map[string]string {
	company := lead.CompanyName
	if company == "" {
		company = "there"
	}

	vars := map[string]string{
		"company_name":        company,
		"customer_name":       company,
		"email":               lead.Email,
		"website":             orPlaceholder(lead.Website, "not provided"),
		"primary_goal":        orPlaceholder(lead.PrimaryGoal, "exploring AI solutions"),
		"business_challenges": orPlaceholder(lead.BusinessChallenges, "improving operations"),
		"timeline":            orPlaceholder(lead.Timeline, "to be determined"),
	}

	if research != nil && research.CompanySummary != "" {
		vars["research_summary"] = truncate(research.CompanySummary, maxResearchSummaryLen)
	}

	if pers != nil {
		vars["opening_hook"] = truncate(pers.Opener, maxOpenerLen)
		vars["pain_point_reference"] = truncate(pers.PainPointReference, maxPainPointLen)
		vars["value_proposition"] = truncate(pers.ValueProposition, maxValuePropositionLen)
		vars["call_strategy"] = truncate(pers.CallStrategy, maxCallStrategyLen)

		objections := make([]string, 0, len(pers.ObjectionHandlers))
		for objection := range pers.ObjectionHandlers {
			objections = append(objections, objection)
		}
		sort.Strings(objections)
		if len(objections) > maxObjectionHandlers {
			objections = objections[:maxObjectionHandlers]
		}
		for _, objection := range objections {
			key := strings.ReplaceAll(strings.ToLower(objection), " ", "_")
			vars["objection_"+truncate(key, maxObjectionKeyLen)] = truncate(pers.ObjectionHandlers[objection], maxObjectionResponseLen)
		}
	}

	return vars
}

// BuildMinimalCallVariables covers the case where enrichment is unavailable
// and the call must run from the raw form fields alone.
func BuildMinimalCallVariables(lead model.Lead) map[string]string {
	company := lead.CompanyName
	if company == "" {
		company = "there"
	}

	return map[string]string{
		"company_name":        company,
		"customer_name":       company,
		"email":               lead.Email,
		"primary_goal":        orPlaceholder(lead.PrimaryGoal, "exploring AI solutions"),
		"business_challenges": orPlaceholder(lead.BusinessChallenges, "improving operations"),
		"opening_hook":        fmt.Sprintf("Thanks for your interest in Nodari AI, %s!", company),
		"value_proposition":   "We help companies implement custom AI solutions that drive real business results.",
	}
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// truncate bounds s to at most n bytes without splitting a UTF-8 rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
