package build

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/posts"
)

type site struct {
	root string
	cfg  *config.Config
}

func newSite(t *testing.T) *site {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Source.Directory = filepath.Join(root, "src", "markdown")
	cfg.Source.Static = filepath.Join(root, "src", "static")
	cfg.Output.Directory = filepath.Join(root, "public")
	cfg.Build.Workers = 4
	off := false
	cfg.Build.VerifyLinks = &off
	return &site{root: root, cfg: cfg}
}

func (s *site) write(t *testing.T, rel, body string) {
	t.Helper()
	p := filepath.Join(s.root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
}

func (s *site) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(s.cfg.Output.Directory, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func (s *site) run(t *testing.T, opts ...Option) (*Report, error) {
	t.Helper()
	return New(s.cfg, opts...).Run(context.Background())
}

func TestBuild_PostAndPage(t *testing.T) {
	s := newSite(t)
	s.write(t, "src/markdown/blog/hello-world.md", "---\ntitle: \"Hi\"\ndate: 2024-01-01\n---\n# Hello\n")
	s.write(t, "src/markdown/pages/about.md", "About me")

	report, err := s.run(t)
	require.NoError(t, err)
	require.Equal(t, OutcomeSuccess, report.Outcome)
	require.Equal(t, 1, report.Posts)
	require.Equal(t, 1, report.Pages)
	require.NotEmpty(t, report.BuildID)

	post := s.read(t, "blog/hello-world/index.html")
	require.Contains(t, post, "<h1>Hi</h1>")
	require.Contains(t, post, `<h1 id="hello">Hello</h1>`)
	require.Contains(t, post, `href="../../css/style.css"`)

	about := s.read(t, "about/index.html")
	require.Contains(t, about, "<h1>Untitled</h1>")
	require.Contains(t, about, "<p>About me</p>")

	idx, err := posts.Deserialize([]byte(s.read(t, "blog/posts.json")))
	require.NoError(t, err)
	require.Len(t, idx, 1)
	require.Equal(t, "hello-world", idx[0].Slug)
	require.Equal(t, "Hi", idx[0].Title)
}

func TestBuild_MissingPostsCollection(t *testing.T) {
	s := newSite(t)
	s.write(t, "src/markdown/pages/blog.md", "---\ntitle: Blog\n---\nAll posts")

	report, err := s.run(t)
	require.NoError(t, err)
	require.Zero(t, report.Posts)

	require.Contains(t, s.read(t, "blog/index.html"), "<p>Coming soon...</p>")
	require.JSONEq(t, "[]", s.read(t, "blog/posts.json"))

	entries, err := os.ReadDir(filepath.Join(s.cfg.Output.Directory, "blog"))
	require.NoError(t, err)
	for _, e := range entries {
		require.False(t, e.IsDir(), "unexpected post directory %s", e.Name())
	}
}

func TestBuild_ListingPageAndHome(t *testing.T) {
	s := newSite(t)
	s.write(t, "src/markdown/blog/a.md", "---\ntitle: A\ndate: 2024-01-01\n---\n")
	s.write(t, "src/markdown/blog/b.md", "---\ntitle: B\ndate: 2024-03-01\n---\n")
	s.write(t, "src/markdown/blog/c.md", "---\ntitle: C\n---\n")
	s.write(t, "src/markdown/blog/d.md", "---\ntitle: D\ndate: 2024-02-01\n---\n")
	s.write(t, "src/markdown/pages/blog.md", "---\ntitle: Blog\n---\n")
	s.write(t, "src/markdown/pages/index.md", "---\ntemplate: home\n---\nWelcome home")
	s.write(t, "src/markdown/pages/about.md", "About me")

	_, err := s.run(t)
	require.NoError(t, err)

	idx, err := posts.Deserialize([]byte(s.read(t, "blog/posts.json")))
	require.NoError(t, err)
	var slugs []string
	for _, p := range idx {
		slugs = append(slugs, p.Slug)
	}
	require.Equal(t, []string{"b", "d", "a", "c"}, slugs)

	listing := s.read(t, "blog/index.html")
	for _, slug := range slugs {
		require.Contains(t, listing, `href="../blog/`+slug+`/"`)
	}

	home := s.read(t, "index.html")
	require.Contains(t, home, "Welcome home")
	require.Contains(t, home, `href="blog/b/"`)
	require.Contains(t, home, `href="blog/a/"`)
	require.NotContains(t, home, `href="blog/c/"`)
	require.NoFileExists(t, filepath.Join(s.cfg.Output.Directory, "index", "index.html"))

	require.NotContains(t, s.read(t, "about/index.html"), "blog-post-preview")
}

func TestBuild_IsIdempotent(t *testing.T) {
	s := newSite(t)
	s.write(t, "src/markdown/blog/hello-world.md", "---\ntitle: Hi\ndate: 2024-01-01\n---\n# Hello\n")
	s.write(t, "src/markdown/pages/about.md", "About me")
	s.write(t, "src/markdown/pages/index.md", "---\ntemplate: home\n---\nHi")
	s.write(t, "src/static/css/style.css", "body{}")

	_, err := s.run(t)
	require.NoError(t, err)
	first := snapshot(t, s.cfg.Output.Directory)

	_, err = s.run(t)
	require.NoError(t, err)
	require.Equal(t, first, snapshot(t, s.cfg.Output.Directory))
}

func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	files := map[string]string{}
	require.NoError(t, filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, p)
		files[rel] = string(data)
		return nil
	}))
	return files
}

func TestBuild_TwoHomePagesCollide(t *testing.T) {
	s := newSite(t)
	s.write(t, "src/markdown/pages/index.md", "---\ntemplate: home\n---\none")
	s.write(t, "src/markdown/pages/landing.md", "---\ntemplate: home\n---\ntwo")

	report, err := s.run(t)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryPathCollision))
	require.Equal(t, OutcomeFailed, report.Outcome)

	var se *StageError
	require.ErrorAs(t, err, &se)
	require.Equal(t, StageBuildPages, se.Stage)
}

func TestBuild_HeaderParseFailureAborts(t *testing.T) {
	s := newSite(t)
	s.write(t, "src/markdown/blog/broken.md", "---\ntitle: [unterminated\n---\nbody")
	s.write(t, "src/markdown/pages/about.md", "About me")

	report, err := s.run(t)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryHeaderParse))
	require.Equal(t, 11, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
	require.Equal(t, OutcomeFailed, report.Outcome)
	require.NoFileExists(t, filepath.Join(s.cfg.Output.Directory, "about", "index.html"))
	require.NoFileExists(t, filepath.Join(s.cfg.Output.Directory, "blog", "posts.json"))
}

func TestBuild_DocumentReadFailureAborts(t *testing.T) {
	s := newSite(t)
	s.write(t, "src/markdown/blog", "not a directory")
	s.write(t, "src/markdown/pages/about.md", "About me")

	report, err := s.run(t)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryDocumentRead))
	require.Equal(t, 11, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
	require.Equal(t, OutcomeFailed, report.Outcome)

	var se *StageError
	require.ErrorAs(t, err, &se)
	require.Equal(t, StageBuildPosts, se.Stage)
	require.NoFileExists(t, filepath.Join(s.cfg.Output.Directory, "blog", "posts.json"))
	require.NoFileExists(t, filepath.Join(s.cfg.Output.Directory, "about", "index.html"))
}

func TestBuild_NamelessPageDoesNotClaimRoot(t *testing.T) {
	s := newSite(t)
	s.write(t, "src/markdown/pages/.md", "# Nameless")
	s.write(t, "src/markdown/pages/about.md", "About me")

	report, err := s.run(t)
	require.NoError(t, err)
	require.Equal(t, 1, report.Pages)
	require.NoFileExists(t, filepath.Join(s.cfg.Output.Directory, "index.html"))
	require.FileExists(t, filepath.Join(s.cfg.Output.Directory, "about", "index.html"))
}

func TestBuild_CopiesStaticAssets(t *testing.T) {
	s := newSite(t)
	s.write(t, "src/static/css/style.css", "body{}")

	report, err := s.run(t)
	require.NoError(t, err)
	require.Equal(t, 1, report.Assets)
	require.Equal(t, "body{}", s.read(t, "css/style.css"))
}

func completeSite(t *testing.T) *site {
	s := newSite(t)
	on := true
	s.cfg.Build.VerifyLinks = &on
	s.write(t, "src/static/css/style.css", "body{}")
	s.write(t, "src/markdown/blog/hello-world.md", "---\ntitle: Hi\ndate: 2024-01-01\n---\n[About](../../about/)")
	s.write(t, "src/markdown/pages/index.md", "---\ntemplate: home\n---\nHi")
	s.write(t, "src/markdown/pages/blog.md", "---\ntitle: Blog\n---\n")
	s.write(t, "src/markdown/pages/about.md", "About me")
	s.write(t, "src/markdown/pages/faq.md", "FAQ")
	return s
}

func TestBuild_CompleteSiteHasNoBrokenLinks(t *testing.T) {
	s := completeSite(t)
	report, err := s.run(t)
	require.NoError(t, err)
	require.Equal(t, OutcomeSuccess, report.Outcome)
	require.Zero(t, report.BrokenLinks)
	require.Equal(t, 5, report.PagesChecked)
}

func TestBuild_CompleteSiteUnderBasePath(t *testing.T) {
	s := completeSite(t)
	s.write(t, "src/markdown/blog/hello-world.md", "---\ntitle: Hi\n---\n[About](/my-site/about/)")
	s.cfg.Site.BasePath = "/my-site"

	report, err := s.run(t)
	require.NoError(t, err)
	require.Zero(t, report.BrokenLinks)
	require.Contains(t, s.read(t, "index.html"), `href="/my-site/blog/hello-world/"`)
}

func TestBuild_BrokenLinksWarnOrFail(t *testing.T) {
	s := completeSite(t)
	s.write(t, "src/markdown/pages/about.md", "[gone](../missing/)")

	report, err := s.run(t)
	require.NoError(t, err)
	require.Equal(t, OutcomeWarning, report.Outcome)
	require.Equal(t, 1, report.BrokenLinks)

	s.cfg.Build.StrictLinks = true
	report, err = s.run(t)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryLinkCheck))
	require.Equal(t, OutcomeFailed, report.Outcome)
}

func TestBuild_RecordsMetrics(t *testing.T) {
	s := completeSite(t)
	rec := metrics.NewPrometheusRecorder(nil)

	_, err := s.run(t, WithRecorder(rec))
	require.NoError(t, err)

	path := filepath.Join(s.root, "metrics.prom")
	require.NoError(t, rec.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `blogbuilder_documents_built_total{collection="post"} 1`)
	require.Contains(t, string(data), `blogbuilder_documents_built_total{collection="page"} 4`)
	require.Contains(t, string(data), `blogbuilder_build_outcomes_total{outcome="success"} 1`)
}

func TestBuild_Canceled(t *testing.T) {
	s := newSite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := New(s.cfg).Run(ctx)
	require.Error(t, err)
	require.Equal(t, OutcomeCanceled, report.Outcome)
}

func TestPipeline(t *testing.T) {
	noop := func(context.Context, *State) error { return nil }
	defs := NewPipeline().
		Add(StagePrepareOutput, noop).
		AddIf(false, StageCopyAssets, noop).
		AddIf(true, StageBuildPosts, noop).
		Build()
	require.Len(t, defs, 2)
	require.Equal(t, StageBuildPosts, defs[1].Name)
}
