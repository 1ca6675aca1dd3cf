package build

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// stageOutcome is the normalized result of one stage execution.
type stageOutcome struct {
	Error  *StageError
	Result StageResult
	Abort  bool
}

func classifyStageResult(stage StageName, err error) stageOutcome {
	if err == nil {
		return stageOutcome{Result: StageResultSuccess}
	}
	var se *StageError
	if !errors.As(err, &se) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			se = NewCanceledStageError(stage, err)
		} else {
			se = NewFatalStageError(stage, err)
		}
	}
	switch se.Kind {
	case StageErrorWarning:
		return stageOutcome{Error: se, Result: StageResultWarning}
	case StageErrorCanceled:
		return stageOutcome{Error: se, Result: StageResultCanceled, Abort: true}
	default:
		return stageOutcome{Error: se, Result: StageResultFatal, Abort: true}
	}
}

// RunStages executes stages in order, recording timing and stopping on the
// first fatal or canceled stage.
func RunStages(ctx context.Context, st *State, stages []StageDef) error {
	for _, def := range stages {
		if err := ctx.Err(); err != nil {
			se := NewCanceledStageError(def.Name, err)
			st.Report.AddError(se)
			st.Report.RecordStageResult(def.Name, StageResultCanceled, st.Recorder)
			return se
		}

		st.Logger.Debug("Stage started", logfields.Stage(string(def.Name)))
		t0 := time.Now()
		err := def.Fn(ctx, st)
		dur := time.Since(t0)

		st.Report.StageDurations[def.Name] = dur
		st.Recorder.ObserveStageDuration(string(def.Name), dur)

		out := classifyStageResult(def.Name, err)
		if out.Error != nil {
			if out.Result == StageResultWarning {
				st.Report.AddWarning(out.Error)
			} else {
				st.Report.AddError(out.Error)
			}
		}
		st.Report.RecordStageResult(def.Name, out.Result, st.Recorder)

		level := slog.LevelDebug
		if out.Result != StageResultSuccess {
			level = slog.LevelWarn
		}
		st.Logger.Log(ctx, level, "Stage finished",
			logfields.Stage(string(def.Name)),
			slog.String("result", string(out.Result)),
			logfields.DurationMS(float64(dur.Microseconds())/1000))

		if out.Abort {
			return out.Error
		}
	}
	return nil
}
