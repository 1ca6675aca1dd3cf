package commands

import (
	"fmt"
	"net"
	"strconv"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/blogbuilder/internal/build"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/preview"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Host  string `help:"Interface to listen on" default:"localhost"`
	Port  int    `short:"p" help:"Port to listen on" default:"3000"`
	Dir   string `short:"d" help:"Directory to serve (defaults to output.directory)"`
	Build bool   `help:"Build the site before serving and expose its metrics at /metrics"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Resolve(root.Config)
	if err != nil {
		return err
	}
	logger := loggerFrom(g)

	ctx, cancel := signalContext()
	defer cancel()

	var registry *prom.Registry
	if s.Build {
		recorder := metrics.NewPrometheusRecorder(nil)
		registry = recorder.Registry()
		if _, err := build.New(cfg, build.WithRecorder(recorder), build.WithLogger(logger)).Run(ctx); err != nil {
			return err
		}
	}

	dir := s.Dir
	if dir == "" {
		dir = cfg.Output.Directory
	}
	addr := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
	fmt.Printf("Serving %s at http://%s/\n", dir, addr)

	srv := preview.New(preview.Options{
		Root:      dir,
		IndexFile: cfg.Output.IndexFile,
		Metrics:   registry,
		Logger:    logger,
	})
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "preview server failed").
			WithContext("addr", addr).Build()
	}
	return nil
}
