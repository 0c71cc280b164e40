// Package normalize turns raw form submissions into canonical lead records.
package normalize

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/nodari-ai/sales-engine/internal/model"
)

var (
	fmOnce sync.Once
	fm     *fieldMap
	fmErr  error
)

func mapping() (*fieldMap, error) {
	fmOnce.Do(func() {
		fm, fmErr = loadFieldMap()
	})
	return fm, fmErr
}

// FormPayload normalizes a raw form submission into a Lead. Email is the only
// required field; every other field is best-effort and never causes an error.
// The untouched payload is preserved in Lead.Raw.
func FormPayload(raw map[string]any) (model.Lead, error) {
	fields, err := mapping()
	if err != nil {
		return model.Lead{}, eris.Wrap(err, "normalize: load field mapping")
	}

	canonical := make(map[string]string, len(raw))
	extra := make(map[string]string)
	for label, value := range raw {
		text := flatten(value)
		key, mapped := fields.resolve(label)
		if mapped {
			canonical[key] = text
		} else if text != "" {
			extra[key] = text
		}
	}

	email := strings.TrimSpace(canonical["email"])
	if email == "" {
		return model.Lead{}, eris.New("normalize: submission has no email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.Lead{}, eris.Wrapf(err, "normalize: invalid email %q", email)
	}

	lead := model.Lead{
		CompanyName:               strings.TrimSpace(canonical["company_name"]),
		Email:                     email,
		Phone:                     FormatPhone(canonical["phone"]),
		Website:                   strings.TrimSpace(canonical["website"]),
		PrimaryGoal:               strings.TrimSpace(canonical["primary_goal"]),
		BusinessChallenges:        strings.TrimSpace(canonical["business_challenges"]),
		DataSources:               strings.TrimSpace(canonical["data_sources"]),
		InfrastructureCriticality: parseCriticality(canonical["infrastructure_criticality"]),
		Timeline:                  strings.TrimSpace(canonical["timeline"]),
		PreferredTime:             strings.TrimSpace(canonical["preferred_datetime"]),
		FormID:                    strings.TrimSpace(canonical["form_id"]),
		SubmittedAt:               strings.TrimSpace(canonical["submitted_at"]),
		Raw:                       raw,
	}
	if len(extra) > 0 {
		lead.Extra = extra
	}
	return lead, nil
}

// FormatPhone converts a raw phone string to E.164. Ten digits get a "+1"
// prefix, eleven digits starting with "1" get a "+", and anything already
// carrying a "+" passes through. Longer strings keep their last ten digits.
// Fewer than ten digits means no dialable number, so the result is empty
// rather than a guess the outbound-call API would reject.
func FormatPhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	switch {
	case len(d) == 10:
		return "+1" + d
	case len(d) == 11 && strings.HasPrefix(d, "1"):
		return "+" + d
	case strings.HasPrefix(raw, "+"):
		return raw
	case len(d) > 10:
		return "+1" + d[len(d)-10:]
	default:
		return ""
	}
}

// parseCriticality parses a 1-5 rating. Anything non-numeric or out of range
// reads as "not provided" rather than an error.
func parseCriticality(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 5 {
		return 0
	}
	return n
}

// flatten renders a raw form value as text. The form tool sends multi-select
// answers as arrays, which collapse to a comma-separated list.
func flatten(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, flatten(item))
		}
		return strings.Join(parts, ", ")
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
