package build

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/content"
	"git.home.luguber.info/inful/blogbuilder/internal/layout"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/markdown"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/output"
	"git.home.luguber.info/inful/blogbuilder/internal/posts"
)

// State is shared by the stages of one build run.
type State struct {
	Config   *config.Config
	Logger   *slog.Logger
	Recorder metrics.Recorder
	Report   *Report

	loader   *content.Loader
	renderer *markdown.Renderer
	composer *layout.Composer
	writer   *output.Writer

	// index is set by the build_index stage and read-only afterwards.
	index posts.Index
}

// Builder runs site builds for one configuration.
type Builder struct {
	cfg      *config.Config
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithRecorder sets the metrics recorder. Defaults to metrics.NoopRecorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// New creates a builder for cfg.
func New(cfg *config.Config, opts ...Option) *Builder {
	b := &Builder{cfg: cfg, recorder: metrics.NoopRecorder{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run executes the full pipeline. The returned report is populated even when
// the build fails.
func (b *Builder) Run(ctx context.Context) (*Report, error) {
	buildID := uuid.NewString()
	logger := b.logger.With(logfields.BuildID(buildID))
	report := newReport(buildID)

	composer, err := layout.NewComposer(layout.NewShell(b.cfg.Site, b.cfg.Output.Posts))
	if err != nil {
		report.AddError(err)
		report.Finish()
		report.DeriveOutcome()
		return report, err
	}

	st := &State{
		Config:   b.cfg,
		Logger:   logger,
		Recorder: b.recorder,
		Report:   report,
		loader:   content.NewLoader(b.cfg.Source, logger),
		renderer: markdown.NewRenderer(markdown.Options{
			HardWraps: b.cfg.Build.HardWraps,
			Unsafe:    b.cfg.Build.UnsafeHTML,
		}),
		composer: composer,
		writer:   output.NewWriter(output.NewPaths(b.cfg.Output), b.cfg.Output.Clean),
	}

	logger.Info("Starting build",
		logfields.Path(b.cfg.Source.Directory),
		logfields.Output(b.cfg.Output.Directory))

	defs := NewPipeline().
		Add(StagePrepareOutput, stagePrepareOutput).
		Add(StageCopyAssets, stageCopyAssets).
		Add(StageBuildPosts, stageBuildPosts).
		Add(StageBuildIndex, stageBuildIndex).
		Add(StageBuildPages, stageBuildPages).
		AddIf(b.cfg.Build.LinkCheckEnabled(), StageVerifyLinks, stageVerifyLinks).
		Build()

	runErr := RunStages(ctx, st, defs)

	report.Finish()
	report.DeriveOutcome()
	b.recorder.ObserveBuildDuration(report.Duration())
	b.recorder.IncBuildOutcome(metrics.BuildOutcomeLabel(report.Outcome))

	if runErr != nil {
		logger.Error("Build failed",
			logfields.DurationMS(float64(report.Duration().Microseconds())/1000),
			logfields.Error(runErr))
		return report, runErr
	}
	logger.Info("Build completed",
		slog.Int("posts", report.Posts),
		slog.Int("pages", report.Pages),
		slog.Int("assets", report.Assets),
		slog.String("outcome", string(report.Outcome)),
		logfields.DurationMS(float64(report.Duration().Microseconds())/1000))
	return report, nil
}
