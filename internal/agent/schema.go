package agent

// JSON schemas each stage's reply must satisfy before deserialization.

func stringList() map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
}

var researchSchema = map[string]any{
	"type": "object",
	"required": []string{
		"company_summary", "industry", "research_confidence",
	},
	"properties": map[string]any{
		"company_summary":       map[string]any{"type": "string", "minLength": 1},
		"industry":              map[string]any{"type": "string"},
		"company_size_estimate": map[string]any{"type": "string"},
		"tech_stack":            stringList(),
		"recent_news":           stringList(),
		"pain_points":           stringList(),
		"ai_opportunities":      stringList(),
		"competitors":           stringList(),
		"research_confidence":   map[string]any{"type": "number", "minimum": 0, "maximum": 1},
	},
}

var scoringSchema = map[string]any{
	"type": "object",
	"required": []string{
		"total_score", "category", "budget_score", "timeline_score",
		"fit_score", "engagement_score", "scoring_rationale",
	},
	"properties": map[string]any{
		"total_score":       map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
		"category":          map[string]any{"type": "string", "enum": []string{"hot", "warm", "nurture"}},
		"budget_score":      map[string]any{"type": "integer", "minimum": 0, "maximum": 25},
		"timeline_score":    map[string]any{"type": "integer", "minimum": 0, "maximum": 25},
		"fit_score":         map[string]any{"type": "integer", "minimum": 0, "maximum": 25},
		"engagement_score":  map[string]any{"type": "integer", "minimum": 0, "maximum": 25},
		"scoring_rationale": map[string]any{"type": "string"},
		"priority_notes":    map[string]any{"type": "string"},
	},
}

var personalizationSchema = map[string]any{
	"type": "object",
	"required": []string{
		"custom_opener", "pain_point_reference", "value_proposition", "call_strategy",
	},
	"properties": map[string]any{
		"custom_opener":        map[string]any{"type": "string", "minLength": 1},
		"pain_point_reference": map[string]any{"type": "string"},
		"value_proposition":    map[string]any{"type": "string"},
		"talking_points":       stringList(),
		"suggested_questions":  stringList(),
		"objection_handlers": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string"},
		},
		"call_strategy": map[string]any{"type": "string"},
	},
}

var analysisSchema = map[string]any{
	"type": "object",
	"required": []string{
		"call_summary", "sentiment", "interest_level", "meeting_agreed",
		"recommended_action", "updated_lead_score",
	},
	"properties": map[string]any{
		"call_summary":             map[string]any{"type": "string", "minLength": 1},
		"sentiment":                map[string]any{"type": "string", "enum": []string{"positive", "neutral", "negative"}},
		"interest_level":           map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
		"key_pain_points":          stringList(),
		"objections_raised":        stringList(),
		"buying_signals":           stringList(),
		"next_steps_discussed":     stringList(),
		"meeting_agreed":           map[string]any{"type": "boolean"},
		"proposed_meeting_time":    map[string]any{"type": []string{"string", "null"}},
		"budget_confirmed":         map[string]any{"type": []string{"boolean", "null"}},
		"timeline_confirmed":       map[string]any{"type": []string{"boolean", "null"}},
		"decision_maker_confirmed": map[string]any{"type": []string{"boolean", "null"}},
		"recommended_action":       map[string]any{"type": "string"},
		"updated_lead_score":       map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
	},
}

var proposalSchema = map[string]any{
	"type": "object",
	"required": []string{
		"executive_summary", "problem_statement", "proposed_solution",
		"timeline", "investment", "next_steps", "why_us", "markdown_content",
	},
	"properties": map[string]any{
		"executive_summary": map[string]any{"type": "string", "minLength": 1},
		"problem_statement": map[string]any{"type": "string", "minLength": 1},
		"proposed_solution": map[string]any{"type": "string", "minLength": 1},
		"timeline":          map[string]any{"type": "string", "minLength": 1},
		"investment":        map[string]any{"type": "string", "minLength": 1},
		"next_steps":        map[string]any{"type": "string", "minLength": 1},
		"why_us":            map[string]any{"type": "string", "minLength": 1},
		"case_studies":      stringList(),
		"markdown_content":  map[string]any{"type": "string", "minLength": 1},
	},
}
