package config

import "runtime"

// Defaults mirror the layout the site has always used: markdown under
// src/markdown/{pages,blog}, output under public/ with posts in public/blog.
const (
	DefaultSiteTitle    = "My Website"
	DefaultDateFormat   = "January 2, 2006"
	DefaultStylesheet   = "css/style.css"
	DefaultLatestPosts  = 3
	DefaultSourceDir    = "src/markdown"
	DefaultPagesDir     = "pages"
	DefaultPostsDir     = "blog"
	DefaultStaticDir    = "src/static"
	DefaultPattern      = "*.md"
	DefaultHomeTemplate = "home"
	DefaultOutputDir    = "public"
	DefaultIndexFile    = "index.html"
	DefaultListingFile  = "posts.json"
	DefaultListingPage  = "blog"
)

// Default returns a configuration populated with built-in defaults.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Site.Title == "" {
		cfg.Site.Title = DefaultSiteTitle
	}
	if cfg.Site.DateFormat == "" {
		cfg.Site.DateFormat = DefaultDateFormat
	}
	if cfg.Site.Stylesheet == "" {
		cfg.Site.Stylesheet = DefaultStylesheet
	}
	if cfg.Site.Footer == "" {
		cfg.Site.Footer = "© " + cfg.Site.Title + ". All rights reserved."
	}
	if cfg.Site.LatestPosts == 0 {
		cfg.Site.LatestPosts = DefaultLatestPosts
	}
	if cfg.Site.Menu == nil {
		cfg.Site.Menu = DefaultMenu()
	}

	if cfg.Source.Directory == "" {
		cfg.Source.Directory = DefaultSourceDir
	}
	if cfg.Source.Pages == "" {
		cfg.Source.Pages = DefaultPagesDir
	}
	if cfg.Source.Posts == "" {
		cfg.Source.Posts = DefaultPostsDir
	}
	if cfg.Source.Static == "" {
		cfg.Source.Static = DefaultStaticDir
	}
	if len(cfg.Source.Patterns) == 0 {
		cfg.Source.Patterns = []string{DefaultPattern}
	}
	if cfg.Source.HomeTemplate == "" {
		cfg.Source.HomeTemplate = DefaultHomeTemplate
	}

	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDir
	}
	if cfg.Output.Posts == "" {
		cfg.Output.Posts = DefaultPostsDir
	}
	if cfg.Output.IndexFile == "" {
		cfg.Output.IndexFile = DefaultIndexFile
	}
	if cfg.Output.ListingFile == "" {
		cfg.Output.ListingFile = DefaultListingFile
	}

	if cfg.Build.Workers == 0 {
		cfg.Build.Workers = runtime.NumCPU()
	}
	if cfg.Build.ListingPage == "" {
		cfg.Build.ListingPage = DefaultListingPage
	}
}
