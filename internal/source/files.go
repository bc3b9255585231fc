package source

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/influencer-matcher/internal/fetcher"
	"github.com/sells-group/influencer-matcher/internal/model"
)

// DefaultPatterns are the file globs scanned by LoadDir.
var DefaultPatterns = []string{"*.csv", "*.xlsx"}

// maxParallelFiles bounds concurrent file parsing in LoadDir.
const maxParallelFiles = 4

// DirReport lists what LoadDir read and skipped.
type DirReport struct {
	Files   []string `json:"files"`
	Skipped []string `json:"skipped"`
}

// RecordsFromTable converts a parsed table into raw records, one per
// non-blank data row. Row numbers are 1-based sheet rows (header is row 1).
func RecordsFromTable(t *fetcher.Table) []model.RawRecord {
	col := DetectNameColumn(t.Header, t.Rows)

	records := make([]model.RawRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		if blankRow(row) {
			continue
		}
		records = append(records, model.RawRecord{
			Name:   ExtractName(fetcher.Cell(row, col)),
			Text:   RowText(row),
			Source: t.Source,
			Row:    i + 2,
		})
	}
	return records
}

// LoadFile reads one CSV or XLSX export.
func LoadFile(ctx context.Context, path string) ([]model.RawRecord, error) {
	t, err := fetcher.ReadTable(ctx, path)
	if err != nil {
		return nil, eris.Wrap(err, "source: load file")
	}
	return RecordsFromTable(t), nil
}

// LoadDir reads every file in dir matching patterns. Files are parsed in
// parallel and merged in sorted path order. A file that cannot be read is
// logged and skipped. A missing directory yields no records.
func LoadDir(ctx context.Context, dir string, patterns []string) ([]model.RawRecord, DirReport, error) {
	var rep DirReport
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			zap.L().Warn("source: data directory not found", zap.String("dir", dir))
			return nil, rep, nil
		}
		return nil, rep, eris.Wrapf(err, "source: stat %s", dir)
	}

	paths, err := globAll(dir, patterns)
	if err != nil {
		return nil, rep, err
	}

	results := make([][]model.RawRecord, len(paths))
	failed := make([]bool, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFiles)
	for i, path := range paths {
		g.Go(func() error {
			recs, err := LoadFile(gctx, path)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				zap.L().Warn("source: skipping unreadable file",
					zap.String("file", path),
					zap.Error(err),
				)
				failed[i] = true
				return nil
			}
			results[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, rep, eris.Wrap(err, "source: load dir")
	}

	var records []model.RawRecord
	for i, path := range paths {
		name := filepath.Base(path)
		if failed[i] {
			rep.Skipped = append(rep.Skipped, name)
			continue
		}
		rep.Files = append(rep.Files, name)
		records = append(records, results[i]...)
		zap.L().Debug("source: loaded file",
			zap.String("file", name),
			zap.Int("records", len(results[i])),
		)
	}
	return records, rep, nil
}

func globAll(dir string, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string
	for _, p := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, p))
		if err != nil {
			return nil, eris.Wrapf(err, "source: glob %q", p)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}
	slices.Sort(paths)
	return paths, nil
}
