package layout

import (
	"path"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// Shell holds the site-wide parts of every page. It is built once from the
// configuration and never modified.
type Shell struct {
	title       string
	description string
	footer      string
	stylesheet  string
	dateFormat  string
	basePath    string
	postsDir    string
	latest      int
	menu        []config.Menu
}

// NewShell builds the shell from site configuration. postsDir is the
// site-relative directory post pages are written under.
func NewShell(site config.SiteConfig, postsDir string) Shell {
	return Shell{
		title:       site.Title,
		description: site.Description,
		footer:      site.Footer,
		stylesheet:  site.Stylesheet,
		dateFormat:  site.DateFormat,
		basePath:    site.BasePath,
		postsDir:    postsDir,
		latest:      site.LatestPosts,
		menu:        config.SortedMenu(site.Menu),
	}
}

// Base returns the link prefix for a page at the given depth.
func (s Shell) Base(depth int) BasePath {
	if s.basePath != "" {
		return Absolute(s.basePath)
	}
	return Relative(depth)
}

// PostHref is the site-relative location of a post page.
func (s Shell) PostHref(slug string) string {
	return path.Join(s.postsDir, slug) + "/"
}
