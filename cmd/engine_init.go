package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/influencer-matcher/internal/catalog"
	"github.com/sells-group/influencer-matcher/internal/config"
	"github.com/sells-group/influencer-matcher/internal/matcher"
	"github.com/sells-group/influencer-matcher/internal/model"
	"github.com/sells-group/influencer-matcher/internal/source"
	"github.com/sells-group/influencer-matcher/pkg/notion"
)

// matchEnv holds the engine and the loader that (re)fills it.
type matchEnv struct {
	Engine *matcher.Engine
	Notion notion.Client // nil when Notion is not configured
	cfg    *config.Config
}

// loadCatalog returns the configured catalog, or the embedded default.
func loadCatalog(c *config.Config) (*catalog.Catalog, error) {
	if c.Catalog.Path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(c.Catalog.Path)
	if err != nil {
		return nil, eris.Wrap(err, "load catalog")
	}
	return cat, nil
}

// initMatcher validates config for mode, builds an engine and loads every
// configured source into it.
func initMatcher(ctx context.Context, c *config.Config, mode string) (*matchEnv, error) {
	if err := c.Validate(mode); err != nil {
		return nil, err
	}

	cat, err := loadCatalog(c)
	if err != nil {
		return nil, err
	}

	env := &matchEnv{
		Engine: matcher.New(matcher.Options{
			Catalog:         cat,
			MinScore:        c.Matcher.MinScore,
			SuggestMinScore: c.Matcher.SuggestMinScore,
			MinNameLength:   c.Matcher.MinNameLength,
		}),
		cfg: c,
	}
	if c.Notion.Enabled() {
		env.Notion = notion.NewClient(c.Notion.Token,
			notion.WithRateLimit(c.Notion.RateLimit),
			notion.WithRetries(c.Notion.Retries),
		)
	}

	if _, err := env.Reload(ctx); err != nil {
		return nil, err
	}
	return env, nil
}

// Reload re-reads the data directory and, if configured, the Notion
// database, then swaps the engine's index. A Notion failure is logged and
// the file records are still ingested.
func (e *matchEnv) Reload(ctx context.Context) (matcher.IngestResult, error) {
	records, rep, err := source.LoadDir(ctx, e.cfg.Data.Dir, e.cfg.Data.Patterns)
	if err != nil {
		return matcher.IngestResult{}, eris.Wrap(err, "reload")
	}
	zap.L().Info("loaded collaboration files",
		zap.String("dir", e.cfg.Data.Dir),
		zap.Strings("files", rep.Files),
		zap.Strings("skipped", rep.Skipped),
	)

	if e.Notion != nil {
		var nrecs []model.RawRecord
		nrecs, err = source.FromNotion(ctx, e.Notion, e.cfg.Notion.DatabaseID)
		if err != nil {
			zap.L().Warn("notion source unavailable, continuing with files", zap.Error(err))
		} else {
			records = append(records, nrecs...)
		}
	}

	return e.Engine.Ingest(records), nil
}
