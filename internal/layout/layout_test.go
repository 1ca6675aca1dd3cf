package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/content"
	"git.home.luguber.info/inful/blogbuilder/internal/posts"
)

func newTestComposer(t *testing.T, mutate func(*config.SiteConfig)) *Composer {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg.Site)
	}
	c, err := NewComposer(NewShell(cfg.Site, "blog"))
	require.NoError(t, err)
	return c
}

func meta(t *testing.T, raw map[string]any) content.Metadata {
	t.Helper()
	m, err := content.NewMetadata(raw)
	require.NoError(t, err)
	return m
}

func sampleIndex(t *testing.T) *posts.Index {
	t.Helper()
	idx := posts.BuildIndex([]posts.Summary{
		posts.Summarize(meta(t, map[string]any{"title": "First", "date": "2024-01-01"}), "first"),
		posts.Summarize(meta(t, map[string]any{"title": "Second", "date": "2024-02-01"}), "second"),
		posts.Summarize(meta(t, map[string]any{"title": "Third", "date": "2024-03-01"}), "third"),
		posts.Summarize(meta(t, map[string]any{"title": "Fourth", "date": "2024-04-01"}), "fourth"),
	})
	return &idx
}

func TestBasePath(t *testing.T) {
	require.Equal(t, "", Relative(0).String())
	require.Equal(t, "../", Relative(1).String())
	require.Equal(t, "../../", Relative(2).String())
	require.Equal(t, "/my-site/", Absolute("/my-site").String())
	require.Equal(t, "/", Absolute("").String())

	require.Equal(t, "./", Relative(0).Join(""))
	require.Equal(t, "../", Relative(1).Join(""))
	require.Equal(t, "blog/x/", Relative(0).Join("blog/x/"))
	require.Equal(t, "../../blog/x/", Relative(2).Join("/blog/x/"))
	require.Equal(t, "/my-site/blog/x/", Absolute("/my-site").Join("blog/x/"))
}

func TestShellBase(t *testing.T) {
	rel := NewShell(config.SiteConfig{}, "blog")
	require.Equal(t, Relative(2), rel.Base(2))

	abs := NewShell(config.SiteConfig{BasePath: "/site"}, "blog")
	require.Equal(t, "/site/", abs.Base(2).String())
	require.Equal(t, "/site/", abs.Base(0).String())
}

func TestCompose_Page(t *testing.T) {
	c := newTestComposer(t, nil)
	out, err := c.Compose(Input{
		Variant:  content.VariantPage,
		Metadata: meta(t, nil),
		Content:  "<p>About me</p>\n",
		Base:     Relative(1),
		Self:     "about/",
	})
	require.NoError(t, err)
	require.Contains(t, out, "<h1>Untitled</h1>")
	require.Contains(t, out, "<p>About me</p>")
	require.Contains(t, out, `href="../css/style.css"`)
	require.Contains(t, out, `<a href="../about/" aria-current="page">About</a>`)
	require.Contains(t, out, `<a href="../">Home</a>`)
	require.NotContains(t, out, "blog-list")
	require.NotContains(t, out, "Coming soon")
}

func TestCompose_PostWithDate(t *testing.T) {
	c := newTestComposer(t, nil)
	out, err := c.Compose(Input{
		Variant:  content.VariantPost,
		Metadata: meta(t, map[string]any{"title": "Hi", "date": "2024-01-01"}),
		Content:  `<h1 id="hello">Hello</h1>`,
		Index:    sampleIndex(t),
		Base:     Relative(2),
	})
	require.NoError(t, err)
	require.Contains(t, out, "<h1>Hi</h1>")
	require.Contains(t, out, `<time datetime="2024-01-01">January 1, 2024</time>`)
	require.Contains(t, out, `<h1 id="hello">Hello</h1>`)
	require.Contains(t, out, `href="../../css/style.css"`)
	require.NotContains(t, out, "blog-post-preview")
}

func TestCompose_TitleIsEscaped(t *testing.T) {
	c := newTestComposer(t, nil)
	out, err := c.Compose(Input{
		Variant:  content.VariantPage,
		Metadata: meta(t, map[string]any{"title": "<script>x</script>"}),
		Base:     Relative(1),
	})
	require.NoError(t, err)
	require.NotContains(t, out, "<script>x</script>")
	require.Contains(t, out, "&lt;script&gt;")
}

func TestCompose_ListingPage(t *testing.T) {
	c := newTestComposer(t, nil)
	out, err := c.Compose(Input{
		Variant:  content.VariantPage,
		Metadata: meta(t, map[string]any{"title": "Blog"}),
		Index:    sampleIndex(t),
		Base:     Relative(1),
	})
	require.NoError(t, err)
	require.Contains(t, out, `<a href="../blog/fourth/">Fourth</a>`)
	require.Contains(t, out, `<a href="../blog/first/">First</a>`)
	require.Less(t, strings.Index(out, "Fourth"), strings.Index(out, "First"))
}

func TestCompose_EmptyListingShowsPlaceholder(t *testing.T) {
	c := newTestComposer(t, nil)
	empty := posts.Index{}
	out, err := c.Compose(Input{
		Variant:  content.VariantPage,
		Metadata: meta(t, map[string]any{"title": "Blog"}),
		Index:    &empty,
		Base:     Relative(1),
	})
	require.NoError(t, err)
	require.Contains(t, out, "<p>Coming soon...</p>")
}

func TestCompose_HomeShowsLatest(t *testing.T) {
	c := newTestComposer(t, nil)
	out, err := c.Compose(Input{
		Variant:  content.VariantHome,
		Metadata: meta(t, map[string]any{"title": "Welcome", "template": "home"}),
		Content:  "<p>Hello there</p>",
		Index:    sampleIndex(t),
		Base:     Relative(0),
	})
	require.NoError(t, err)
	require.Contains(t, out, `class="hero"`)
	require.Contains(t, out, "<p>Hello there</p>")
	require.Contains(t, out, `<a href="blog/fourth/">Fourth</a>`)
	require.Contains(t, out, `<a href="blog/second/">Second</a>`)
	require.NotContains(t, out, `blog/first/`)
	require.Contains(t, out, `href="css/style.css"`)
}

func TestCompose_HomeWithoutIndex(t *testing.T) {
	c := newTestComposer(t, nil)
	out, err := c.Compose(Input{Variant: content.VariantHome, Metadata: meta(t, nil), Base: Relative(0)})
	require.NoError(t, err)
	require.Contains(t, out, "<p>Coming soon...</p>")
}

func TestCompose_ListingLinksAgreeAcrossDepths(t *testing.T) {
	c := newTestComposer(t, nil)
	idx := sampleIndex(t)
	for depth, want := range map[int]string{
		0: `href="blog/third/"`,
		1: `href="../blog/third/"`,
		2: `href="../../blog/third/"`,
	} {
		out, err := c.Compose(Input{Variant: content.VariantPage, Metadata: meta(t, nil), Index: idx, Base: Relative(depth)})
		require.NoError(t, err)
		require.Contains(t, out, want)
	}
}

func TestCompose_AbsoluteBaseAndExternalMenu(t *testing.T) {
	c := newTestComposer(t, func(s *config.SiteConfig) {
		s.BasePath = "/my-site"
		s.Menu = []config.Menu{{URL: "blog/"}, {Name: "Code", URL: "https://example.com/code"}}
	})
	out, err := c.Compose(Input{Variant: content.VariantPage, Metadata: meta(t, nil), Index: sampleIndex(t), Base: c.Shell().Base(1)})
	require.NoError(t, err)
	require.Contains(t, out, `<a href="/my-site/blog/">Blog</a>`)
	require.Contains(t, out, `<a href="https://example.com/code">Code</a>`)
	require.Contains(t, out, `href="/my-site/blog/first/"`)
	require.Contains(t, out, `href="/my-site/css/style.css"`)
}
