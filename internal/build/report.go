package build

import (
	"errors"
	"fmt"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
)

// Outcome is the final result of a build run.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeWarning  Outcome = "warning"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// StageCount aggregates counts of outcomes for a stage.
type StageCount struct {
	Success  int
	Warning  int
	Fatal    int
	Canceled int
}

// Report captures what a build run did.
type Report struct {
	BuildID        string
	Start          time.Time
	End            time.Time
	Errors         []error
	Warnings       []error
	StageDurations map[StageName]time.Duration
	StageCounts    map[StageName]StageCount
	Posts          int
	Pages          int
	Assets         int
	PagesChecked   int
	BrokenLinks    int
	Outcome        Outcome
}

func newReport(buildID string) *Report {
	return &Report{
		BuildID:        buildID,
		Start:          time.Now(),
		StageDurations: make(map[StageName]time.Duration),
		StageCounts:    make(map[StageName]StageCount),
	}
}

// AddError records a fatal or canceled stage error.
func (r *Report) AddError(err error) { r.Errors = append(r.Errors, err) }

// AddWarning records a non-fatal stage error.
func (r *Report) AddWarning(err error) { r.Warnings = append(r.Warnings, err) }

// RecordStageResult updates the stage counters and forwards to the recorder.
func (r *Report) RecordStageResult(stage StageName, res StageResult, recorder metrics.Recorder) {
	sc := r.StageCounts[stage]
	var label metrics.ResultLabel
	switch res {
	case StageResultSuccess:
		sc.Success++
		label = metrics.ResultSuccess
	case StageResultWarning:
		sc.Warning++
		label = metrics.ResultWarning
	case StageResultFatal:
		sc.Fatal++
		label = metrics.ResultFatal
	case StageResultCanceled:
		sc.Canceled++
		label = metrics.ResultCanceled
	}
	r.StageCounts[stage] = sc
	if recorder != nil {
		recorder.IncStageResult(string(stage), label)
	}
}

// Finish sets the end time of the report.
func (r *Report) Finish() { r.End = time.Now() }

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// DeriveOutcome sets Outcome from the recorded errors and warnings.
func (r *Report) DeriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			var se *StageError
			if errors.As(e, &se) && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("posts=%d pages=%d assets=%d broken_links=%d duration=%s errors=%d warnings=%d outcome=%s",
		r.Posts, r.Pages, r.Assets, r.BrokenLinks, r.Duration().Truncate(time.Millisecond),
		len(r.Errors), len(r.Warnings), r.Outcome)
}
