// Package agent implements the reasoning stages of the sales pipeline. Each
// stage sends one prompt to the model and deserializes the reply against a
// JSON schema, so a malformed reply surfaces as an error instead of a
// half-filled struct.
package agent

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xeipuuv/gojsonschema"

	"github.com/nodari-ai/sales-engine/pkg/anthropic"
	"github.com/nodari-ai/sales-engine/pkg/firecrawl"
)

const (
	defaultModel     = "claude-sonnet-4-5-20250929"
	defaultMaxTokens = 4096
)

// Agents runs the reasoning stages against the Anthropic API.
type Agents struct {
	client    anthropic.Client
	scraper   firecrawl.Client
	model     string
	maxTokens int64
}

// Option configures Agents.
type Option func(*Agents)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(a *Agents) { a.model = model }
}

// WithMaxTokens overrides the default per-request output token limit.
func WithMaxTokens(n int64) Option {
	return func(a *Agents) { a.maxTokens = n }
}

// WithScraper attaches a web scraper used to enrich company research.
// Without one, research runs on the form data alone.
func WithScraper(scraper firecrawl.Client) Option {
	return func(a *Agents) { a.scraper = scraper }
}

// New creates the stage runner.
func New(client anthropic.Client, opts ...Option) *Agents {
	a := &Agents{
		client:    client,
		model:     defaultModel,
		maxTokens: defaultMaxTokens,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// completeJSON sends one request and decodes the schema-validated JSON reply
// into T.
func completeJSON[T any](ctx context.Context, a *Agents, phase, system, user string, schema map[string]any) (*T, error) {
	temp := 0.2
	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       a.model,
		MaxTokens:   a.maxTokens,
		System:      anthropic.BuildCachedSystemBlocks(system),
		Messages:    []anthropic.Message{{Role: "user", Content: user}},
		Temperature: &temp,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "agent: %s request", phase)
	}
	resp.Usage.LogCost(a.model, phase)

	raw := stripFences(resp.Text())
	if raw == "" {
		return nil, eris.Errorf("agent: %s returned empty reply", phase)
	}

	if err := validateJSON(schema, raw); err != nil {
		return nil, eris.Wrapf(err, "agent: %s reply rejected", phase)
	}

	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, eris.Wrapf(err, "agent: decode %s reply", phase)
	}
	return &out, nil
}

// validateJSON checks a raw JSON document against a schema.
func validateJSON(schema map[string]any, doc string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewStringLoader(doc),
	)
	if err != nil {
		return eris.Wrap(err, "validate")
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return eris.New(strings.Join(msgs, "; "))
	}
	return nil
}

// stripFences removes a markdown code fence around a JSON reply, with or
// without a language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// orDefault substitutes a placeholder for empty prompt fields.
func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func joinOr(items []string, limit int, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return strings.Join(items, ", ")
}
