// Package hugo turns a finalized metadata store into a tree of markdown
// documents: one per non-suppressed item at its resolved path, plus a root
// index. Rendering is the only stage that fans out; everything before it is
// strictly ordered because UID disambiguation and path resolution read
// whole-store state.
package hugo

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/apidocgen/internal/config"
	"git.home.luguber.info/inful/apidocgen/internal/linker"
	"git.home.luguber.info/inful/apidocgen/internal/metadata"
	"git.home.luguber.info/inful/apidocgen/internal/metrics"
	"git.home.luguber.info/inful/apidocgen/internal/observability"
	"git.home.luguber.info/inful/apidocgen/internal/overwrite"
	"git.home.luguber.info/inful/apidocgen/internal/paths"
)

// Generator runs the generate pipeline.
type Generator struct {
	cfg      *config.Config
	recorder metrics.Recorder
}

// NewGenerator creates a generator. A nil recorder disables metrics.
func NewGenerator(cfg *config.Config, recorder metrics.Recorder) *Generator {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Generator{cfg: cfg, recorder: recorder}
}

// Generate runs the full pipeline: load, finalize, overwrite, resolve,
// render, verify.
func (g *Generator) Generate(ctx context.Context) error {
	return g.run(ctx, g.stages(false))
}

// Check runs the pipeline without writing anything: load, finalize,
// overwrite, resolve. Path collisions and structural errors surface exactly
// as in a full run.
func (g *Generator) Check(ctx context.Context) error {
	return g.run(ctx, g.stages(true))
}

func (g *Generator) stages(checkOnly bool) []StageDef {
	stages := []StageDef{
		{Name: "load", Fn: stageLoad},
		{Name: "finalize", Fn: stageFinalize},
		{Name: "overwrite", Fn: stageOverwrite},
		{Name: "resolve", Fn: stageResolve},
	}
	if checkOnly {
		return stages
	}
	stages = append(stages, StageDef{Name: "render", Fn: stageRender})
	if !g.cfg.SkipLinkCheck {
		stages = append(stages, StageDef{Name: "verify", Fn: stageVerify})
	}
	return stages
}

func (g *Generator) run(ctx context.Context, stages []StageDef) error {
	bs := &BuildState{Config: g.cfg, Recorder: g.recorder}

	t0 := time.Now()
	err := RunStages(ctx, bs, stages)
	g.recorder.ObserveGenerateDuration(time.Since(t0))
	if err != nil {
		return err
	}

	observability.InfoContext(ctx, "Generate complete",
		slog.Int("items", bs.Store.Len()),
		slog.Int64("pages", bs.Rendered()),
		slog.Int64("link_warnings", bs.LinkWarnings()),
		slog.Duration("duration", time.Since(t0)))
	return nil
}

func stageLoad(ctx context.Context, bs *BuildState) error {
	store, err := metadata.LoadDirectory(ctx, bs.Config.Input)
	if err != nil {
		return err
	}
	bs.Store = store
	bs.Recorder.IncItemsLoaded(store.Len())
	observability.InfoContext(ctx, "Metadata loaded", slog.Int("items", store.Len()))
	return nil
}

func stageFinalize(_ context.Context, bs *BuildState) error {
	if err := bs.Store.Finalize(); err != nil {
		return err
	}

	pathResolver, err := paths.NewResolver(bs.Store)
	if err != nil {
		return err
	}
	bs.Paths = pathResolver
	bs.Links = linker.NewResolver(bs.Store, pathResolver, bs.Config.BasePath, bs.Config.AuthorityRules())
	bs.Registry = paths.NewRegistry()
	return nil
}

func stageOverwrite(ctx context.Context, bs *BuildState) error {
	applier := &overwrite.Applier{Recorder: bs.Recorder}
	return applier.ApplyDirectory(ctx, bs.Store, bs.Config.Overwrites)
}

// stageResolve computes and claims every output path serially, in store
// order, so collision reporting is deterministic. Writing happens later and
// may fan out.
func stageResolve(ctx context.Context, bs *BuildState) error {
	bs.pages = append(bs.pages, page{relPath: "_index"})
	if err := bs.Registry.Claim("_index"); err != nil {
		return err
	}

	for _, it := range bs.Store.Items() {
		if it.DoNotDocument {
			continue
		}
		relPath, err := bs.Paths.Resolve(it)
		if err != nil {
			return err
		}
		if err := bs.Registry.Claim(relPath); err != nil {
			return err
		}
		bs.pages = append(bs.pages, page{item: it, relPath: relPath})
	}

	observability.DebugContext(ctx, "Paths resolved", slog.Int("pages", len(bs.pages)))
	return nil
}
