package commands

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Vars{"version": "test"}, kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return cli, kctx
}

func writeSource(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
}

func TestParseLogLevel(t *testing.T) {
	t.Setenv("BLOGBUILDER_LOG_LEVEL", "")
	require.Equal(t, slog.LevelInfo, parseLogLevel(false))
	require.Equal(t, slog.LevelDebug, parseLogLevel(true))

	t.Setenv("BLOGBUILDER_LOG_LEVEL", "WARN")
	require.Equal(t, slog.LevelWarn, parseLogLevel(true))
	t.Setenv("BLOGBUILDER_LOG_LEVEL", "error")
	require.Equal(t, slog.LevelError, parseLogLevel(false))
}

func TestCLI_BuildIsDefaultCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	_, kctx := parse(t)
	require.Equal(t, "build", kctx.Command())

	cli, kctx := parse(t, "-v", "build", "--clean", "-o", "dist", "--metrics-textfile", "m.prom")
	require.Equal(t, "build", kctx.Command())
	require.True(t, cli.Verbose)
	require.True(t, cli.Build.Clean)
	require.Equal(t, "dist", cli.Build.Output)
	require.Equal(t, "m.prom", cli.Build.MetricsTextfile)
}

func TestCLI_ServeDefaults(t *testing.T) {
	cli, kctx := parse(t, "serve")
	require.Equal(t, "serve", kctx.Command())
	require.Equal(t, 3000, cli.Serve.Port)
	require.Equal(t, "localhost", cli.Serve.Host)
}

func TestBuildCmd_Run(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeSource(t, dir, "src/markdown/blog/hello-world.md", "---\ntitle: Hi\ndate: 2024-01-01\n---\n# Hello\n")
	writeSource(t, dir, "src/markdown/pages/about.md", "About me")

	cmd := &BuildCmd{Output: "site", MetricsTextfile: filepath.Join(dir, "build.prom")}
	require.NoError(t, cmd.Run(&Global{}, &CLI{}))

	require.FileExists(t, filepath.Join(dir, "site", "blog", "hello-world", "index.html"))
	require.FileExists(t, filepath.Join(dir, "site", "about", "index.html"))
	data, err := os.ReadFile(filepath.Join(dir, "build.prom"))
	require.NoError(t, err)
	require.Contains(t, string(data), "blogbuilder_build_outcomes_total")
}

func TestBuildCmd_MissingExplicitConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	err := (&BuildCmd{}).Run(&Global{}, &CLI{Config: "nope.yaml"})
	require.Error(t, err)
	require.Equal(t, 7, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestInitCmd_Run(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, (&InitCmd{}).Run(&Global{}, &CLI{}))
	require.FileExists(t, filepath.Join(dir, config.DefaultFile))

	err := (&InitCmd{}).Run(&Global{}, &CLI{})
	require.Error(t, err)
	require.NoError(t, (&InitCmd{Force: true}).Run(&Global{}, &CLI{}))
}
