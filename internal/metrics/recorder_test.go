package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testRecorder struct {
	stageDurations map[string]int
	stageResults   map[string]map[ResultLabel]int
	buildDurations int
	buildOutcomes  map[BuildOutcomeLabel]int
	documents      map[string]int
	brokenLinks    int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		stageDurations: map[string]int{},
		stageResults:   map[string]map[ResultLabel]int{},
		buildOutcomes:  map[BuildOutcomeLabel]int{},
		documents:      map[string]int{},
	}
}

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	t.stageDurations[stage]++
}
func (t *testRecorder) ObserveBuildDuration(_ time.Duration) { t.buildDurations++ }
func (t *testRecorder) IncStageResult(stage string, result ResultLabel) {
	m, ok := t.stageResults[stage]
	if !ok {
		m = map[ResultLabel]int{}
		t.stageResults[stage] = m
	}
	m[result]++
}
func (t *testRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) { t.buildOutcomes[outcome]++ }
func (t *testRecorder) AddDocuments(collection string, n int)     { t.documents[collection] += n }
func (t *testRecorder) IncBrokenLinks(n int)                      { t.brokenLinks += n }

func TestRecorderImplementations(t *testing.T) {
	for name, r := range map[string]Recorder{
		"noop":       NoopRecorder{},
		"test":       newTestRecorder(),
		"prometheus": NewPrometheusRecorder(nil),
	} {
		t.Run(name, func(t *testing.T) {
			require.NotPanics(t, func() {
				r.ObserveStageDuration("build_pages", time.Millisecond)
				r.IncStageResult("build_pages", ResultSuccess)
				r.ObserveBuildDuration(time.Millisecond)
				r.IncBuildOutcome(BuildOutcomeSuccess)
				r.AddDocuments("page", 1)
				r.IncBrokenLinks(1)
			})
		})
	}
}

func TestTestRecorderCounts(t *testing.T) {
	r := newTestRecorder()
	r.AddDocuments("post", 2)
	r.AddDocuments("post", 1)
	r.IncStageResult("build_posts", ResultFatal)
	require.Equal(t, 3, r.documents["post"])
	require.Equal(t, 1, r.stageResults["build_posts"][ResultFatal])
}
