package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/blogbuilder/internal/build"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output          string `short:"o" help:"Override output.directory"`
	Clean           bool   `help:"Remove the output directory before building"`
	StrictLinks     bool   `name:"strict-links" help:"Fail the build when an internal link does not resolve"`
	MetricsTextfile string `name:"metrics-textfile" help:"Write Prometheus metrics for this build to the given file"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Resolve(root.Config)
	if err != nil {
		return err
	}
	b.apply(cfg)

	ctx, cancel := signalContext()
	defer cancel()
	_, err = RunBuild(ctx, cfg, loggerFrom(g))
	return err
}

// apply copies flag overrides into cfg.
func (b *BuildCmd) apply(cfg *config.Config) {
	if b.Output != "" {
		cfg.Output.Directory = filepath.Clean(b.Output)
	}
	if b.Clean {
		cfg.Output.Clean = true
	}
	if b.StrictLinks {
		cfg.Build.StrictLinks = true
	}
	if b.MetricsTextfile != "" {
		cfg.Build.MetricsTextfile = b.MetricsTextfile
	}
}

// RunBuild runs one build and, when build.metrics_textfile is set, writes the
// build's metrics there whatever the outcome.
func RunBuild(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*build.Report, error) {
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cfg.Build.MetricsTextfile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	report, err := build.New(cfg, build.WithRecorder(recorder), build.WithLogger(logger)).Run(ctx)

	if prom != nil {
		if werr := prom.WriteTextfile(cfg.Build.MetricsTextfile); werr != nil {
			logger.Warn("Failed to write metrics textfile", logfields.Path(cfg.Build.MetricsTextfile), logfields.Error(werr))
		}
	}
	if err != nil {
		return report, err
	}
	fmt.Printf("Built %d posts and %d pages into %s\n", report.Posts, report.Pages, cfg.Output.Directory)
	return report, nil
}
