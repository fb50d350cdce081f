package hugo

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"git.home.luguber.info/inful/apidocgen/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocgen/internal/observability"
)

// stageRender writes every resolved page. Paths were claimed during the
// resolve stage, so workers only read the frozen store and write disjoint
// files; the first error stops the remaining work.
func stageRender(ctx context.Context, bs *BuildState) error {
	if err := os.MkdirAll(bs.Config.Output, 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create output directory").
			WithContext("dir", bs.Config.Output).Build()
	}

	workers := bs.Config.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan page)
	var wg sync.WaitGroup
	var failed atomic.Bool
	var mu sync.Mutex
	var firstErr error

	fail := func(err error) {
		failed.Store(true)
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				if failed.Load() {
					continue
				}
				if err := writePage(bs, p); err != nil {
					fail(err)
				}
			}
		}()
	}

	for _, p := range bs.pages {
		jobs <- p
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}

	bs.Recorder.IncPagesRendered(int(bs.Rendered()))
	observability.InfoContext(ctx, "Documents written",
		slog.Int64("pages", bs.Rendered()), slog.Int("workers", workers))
	return nil
}

func writePage(bs *BuildState, p page) error {
	content, err := renderPage(bs, p)
	if err != nil {
		return err
	}

	filePath := filepath.Join(bs.Config.Output, filepath.FromSlash(p.relPath)+".md")
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create page directory").
			WithContext("path", filePath).Build()
	}
	if err := os.WriteFile(filePath, content, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write page").
			WithContext("path", filePath).Build()
	}

	bs.rendered.Add(1)
	return nil
}
