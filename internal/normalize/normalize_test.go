package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormPayload(t *testing.T) {
	raw := map[string]any{
		"Name ":         "Acme Robotics",
		"Email":         "ops@acme.example",
		"Phone Number ": "(312) 555-0147",
		"Website ":      "https://acme.example",
		"What is your primary goal for implementing a custom AI system?":                                                     "Automate support triage",
		"Please briefly describe the key business processes or challenges you are looking to address with AI.":              "Ticket backlog keeps growing",
		"Which of the following data sources are most relevant to your potential AI system?":                                []any{"CRM", "Support tickets"},
		"On a scale of 1 to 5, how critical is it for the AI system to operate entirely within your existing infrastructure?": "4",
		"What is your estimated timeline for launching a custom AI solution?":                                                "1-3 months",
		"What date and time would you prefer for a follow-up discussion?":                                                    "Tuesday afternoon",
		"formId":      "form-123",
		"submittedAt": "2026-08-20T14:00:00Z",
		"How did you hear about us?": "Referral",
	}

	lead, err := FormPayload(raw)
	require.NoError(t, err)

	assert.Equal(t, "Acme Robotics", lead.CompanyName)
	assert.Equal(t, "ops@acme.example", lead.Email)
	assert.Equal(t, "+13125550147", lead.Phone)
	assert.Equal(t, "https://acme.example", lead.Website)
	assert.Equal(t, "Automate support triage", lead.PrimaryGoal)
	assert.Equal(t, "Ticket backlog keeps growing", lead.BusinessChallenges)
	assert.Equal(t, "CRM, Support tickets", lead.DataSources)
	assert.Equal(t, 4, lead.InfrastructureCriticality)
	assert.Equal(t, "1-3 months", lead.Timeline)
	assert.Equal(t, "Tuesday afternoon", lead.PreferredTime)
	assert.Equal(t, "form-123", lead.FormID)
	assert.Equal(t, "2026-08-20T14:00:00Z", lead.SubmittedAt)
	assert.Equal(t, "Referral", lead.Extra["how_did_you_hear_about_us?"])
	assert.Equal(t, raw, lead.Raw)
}

func TestFormPayloadMissingEmail(t *testing.T) {
	_, err := FormPayload(map[string]any{"Name": "Acme"})
	require.Error(t, err)

	_, err = FormPayload(map[string]any{"Email": "not-an-address"})
	require.Error(t, err)
}

func TestFormPayloadOptionalFieldsAbsent(t *testing.T) {
	lead, err := FormPayload(map[string]any{"Email": "solo@lead.example"})
	require.NoError(t, err)

	assert.Equal(t, "solo@lead.example", lead.Email)
	assert.Empty(t, lead.Phone)
	assert.Zero(t, lead.InfrastructureCriticality)
	assert.Empty(t, lead.Extra)
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ten digits", "3125550147", "+13125550147"},
		{"formatted ten digits", "(312) 555-0147", "+13125550147"},
		{"eleven with country code", "1-312-555-0147", "+13125550147"},
		{"already e164", "+447911123456", "+447911123456"},
		{"extension noise", "00313125550147", "+13125550147"},
		{"too short", "555-0147", ""},
		{"empty", "", ""},
		{"letters only", "call me", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhone(tt.in))
		})
	}
}

func TestParseCriticality(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1", 1},
		{"5", 5},
		{" 3 ", 3},
		{"0", 0},
		{"6", 0},
		{"-2", 0},
		{"high", 0},
		{"", 0},
		{"3.5", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseCriticality(tt.in), "input %q", tt.in)
	}
}
