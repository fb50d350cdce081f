package overwrite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"git.home.luguber.info/inful/apidocgen/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocgen/internal/metadata"
	"git.home.luguber.info/inful/apidocgen/internal/metrics"
	"git.home.luguber.info/inful/apidocgen/internal/observability"
)

// Applier runs overwrite documents from a directory against a store.
type Applier struct {
	Recorder metrics.Recorder
}

// ApplyDirectory parses and merges every overwrite document (*.md) under
// dir, in sorted filename order for reproducibility. Fatal parse errors
// abort immediately; missing-UID warnings are logged and counted, and the
// run continues.
func (a *Applier) ApplyDirectory(ctx context.Context, store *metadata.Store, dir string) error {
	if dir == "" {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			observability.DebugContext(ctx, "No overwrite directory", slog.String("dir", dir))
			return nil
		}
		return errors.WrapError(err, errors.CategoryFileSystem, "overwrite directory not readable").
			WithSeverity(errors.SeverityFatal).
			WithContext("dir", dir).Build()
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "overwrite document not readable").
				WithSeverity(errors.SeverityFatal).
				WithContext("path", path).Build()
		}

		doc, err := Parse(data)
		if err != nil {
			if classified, ok := errors.AsClassified(err); ok {
				return classified.WithContext("path", path)
			}
			return err
		}

		if err := Merge(store, doc); err != nil {
			if !errors.IsWarning(err) {
				return err
			}
			observability.WarnContext(ctx, "Overwrite skipped: uid not in store",
				slog.String("uid", doc.UID), slog.String("path", path))
			a.recorder().IncOverwriteSkipped()
			continue
		}
		observability.DebugContext(ctx, "Overwrite merged",
			slog.String("uid", doc.UID), slog.String("path", path))
	}
	return nil
}

func (a *Applier) recorder() metrics.Recorder {
	if a.Recorder == nil {
		return metrics.NoopRecorder{}
	}
	return a.Recorder
}
