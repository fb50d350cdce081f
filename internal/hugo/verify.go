package hugo

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/apidocgen/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocgen/internal/linkcheck"
	"git.home.luguber.info/inful/apidocgen/internal/observability"
	"git.home.luguber.info/inful/apidocgen/internal/paths"
)

// stageVerify audits the written documents: every site-absolute link must
// target a page claimed during this run. Findings are warnings; external
// URLs are never probed.
func stageVerify(ctx context.Context, bs *BuildState) error {
	known := make(map[string]bool, len(bs.pages))
	for _, p := range bs.pages {
		known[paths.SiteURL(bs.Config.BasePath, p.relPath)] = true
	}
	lookup := func(url string) bool { return known[url] }

	total := 0
	for _, p := range bs.pages {
		filePath := filepath.Join(bs.Config.Output, filepath.FromSlash(p.relPath)+".md")
		data, err := os.ReadFile(filePath)
		if err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "read rendered page for audit").
				WithContext("path", filePath).Build()
		}
		for _, dest := range linkcheck.AuditDocument(data, lookup) {
			total++
			observability.WarnContext(ctx, "Internal link targets no generated page",
				slog.String("page", p.relPath), slog.String("destination", dest))
		}
	}

	bs.linkWarnings.Store(int64(total))
	bs.Recorder.IncLinkWarnings(total)
	return nil
}
