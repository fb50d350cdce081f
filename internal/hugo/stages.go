package hugo

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/apidocgen/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocgen/internal/metrics"
	"git.home.luguber.info/inful/apidocgen/internal/observability"
)

// StageDef is one named step of the generate pipeline.
type StageDef struct {
	Name string
	Fn   func(ctx context.Context, bs *BuildState) error
}

// RunStages executes stages in order, recording timing and stopping on the
// first fatal error. The pipeline is strictly ordered: every stage assumes
// all previous stages completed over the whole store.
func RunStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			return errors.WrapError(ctx.Err(), errors.CategoryInternal, "pipeline canceled").
				WithContext("stage", st.Name).Build()
		default:
		}

		stageCtx := observability.WithStage(ctx, st.Name)
		observability.DebugContext(stageCtx, "Stage starting")

		t0 := time.Now()
		err := st.Fn(stageCtx, bs)
		dur := time.Since(t0)

		bs.Recorder.ObserveStageDuration(st.Name, dur)

		if err != nil {
			bs.Recorder.IncStageResult(st.Name, metrics.ResultFatal)
			observability.ErrorContext(stageCtx, "Stage failed",
				slog.Duration("duration", dur), slog.String("error", err.Error()))
			return err
		}

		bs.Recorder.IncStageResult(st.Name, metrics.ResultSuccess)
		observability.DebugContext(stageCtx, "Stage complete", slog.Duration("duration", dur))
	}
	return nil
}
