package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/nodari-ai/sales-engine/internal/agent"
	"github.com/nodari-ai/sales-engine/internal/pipeline"
	"github.com/nodari-ai/sales-engine/internal/processor"
	"github.com/nodari-ai/sales-engine/internal/store"
	"github.com/nodari-ai/sales-engine/pkg/anthropic"
	"github.com/nodari-ai/sales-engine/pkg/firecrawl"
	"github.com/nodari-ai/sales-engine/pkg/gcal"
	"github.com/nodari-ai/sales-engine/pkg/gmail"
	"github.com/nodari-ai/sales-engine/pkg/renderer"
	"github.com/nodari-ai/sales-engine/pkg/retell"
)

// appEnv holds the wired application graph.
type appEnv struct {
	Store     store.Store
	Pipeline  *pipeline.Pipeline
	Processor *processor.Processor
}

func (e *appEnv) Close() {
	if e.Processor != nil {
		e.Processor.Wait()
	}
	if e.Store != nil {
		if err := e.Store.Close(); err != nil {
			zap.L().Warn("store close failed", zap.Error(err))
		}
	}
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "sales.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initAgents() (*agent.Agents, error) {
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("anthropic API key is required (SALES_ANTHROPIC_KEY)")
	}

	opts := []agent.Option{
		agent.WithModel(cfg.Anthropic.Model),
		agent.WithMaxTokens(int64(cfg.Anthropic.MaxTokens)),
	}
	if cfg.Firecrawl.Key != "" {
		opts = append(opts, agent.WithScraper(
			firecrawl.NewClient(cfg.Firecrawl.Key, firecrawl.WithBaseURL(cfg.Firecrawl.BaseURL))))
	} else {
		zap.L().Warn("firecrawl key missing, research runs without website scraping")
	}

	return agent.New(anthropic.NewClient(cfg.Anthropic.Key), opts...), nil
}

func initPipeline(ctx context.Context) (*pipeline.Pipeline, error) {
	agents, err := initAgents()
	if err != nil {
		return nil, err
	}

	opts := []pipeline.Option{
		pipeline.WithThresholds(cfg.Scoring.HotThreshold, cfg.Scoring.WarmThreshold),
		pipeline.WithRenderer(renderer.New(cfg.Proposals.OutputDir)),
	}

	if cfg.Google.CredentialsPath != "" {
		cal, err := gcal.NewService(ctx, cfg.Google.CredentialsPath, cfg.Google.CalendarID,
			gcal.WithTimezone(cfg.Google.Timezone))
		if err != nil {
			return nil, eris.Wrap(err, "init calendar")
		}
		opts = append(opts, pipeline.WithCalendar(cal))

		mailer, err := gmail.NewService(ctx, cfg.Google.CredentialsPath, cfg.Google.Subject)
		if err != nil {
			return nil, eris.Wrap(err, "init gmail")
		}
		opts = append(opts, pipeline.WithMailer(mailer))
	} else {
		zap.L().Warn("google credentials missing, meetings and email disabled")
	}

	return pipeline.New(agents, opts...), nil
}

// initEnv wires the full application: store, pipeline, processor.
func initEnv(ctx context.Context) (*appEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}

	pipe, err := initPipeline(ctx)
	if err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}

	var procOpts []processor.Option
	if cfg.Retell.Key != "" {
		procOpts = append(procOpts, processor.WithCaller(
			retell.NewClient(cfg.Retell.Key), cfg.Retell.AgentID, cfg.Retell.FromNumber))
	} else {
		zap.L().Warn("retell key missing, outbound calling disabled")
	}

	proc := processor.New(st, pipe, procOpts...)
	return &appEnv{Store: st, Pipeline: pipe, Processor: proc}, nil
}
