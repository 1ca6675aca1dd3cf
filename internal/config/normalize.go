package config

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// NormalizationResult captures adjustments made while normalizing.
type NormalizationResult struct {
	Warnings []string
}

// NormalizeConfig canonicalizes path-like values in place and reports every
// value it had to change.
func NormalizeConfig(cfg *Config) (*NormalizationResult, error) {
	res := &NormalizationResult{}

	cleanDir := func(field string, v *string) {
		cleaned := filepath.Clean(*v)
		if cleaned != *v {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s normalized from %q to %q", field, *v, cleaned))
			*v = cleaned
		}
	}
	cleanDir("source.directory", &cfg.Source.Directory)
	cleanDir("source.static", &cfg.Source.Static)
	cleanDir("output.directory", &cfg.Output.Directory)

	cleanSubdir := func(field string, v *string) {
		trimmed := strings.Trim(filepath.ToSlash(*v), "/")
		if trimmed != "" {
			trimmed = path.Clean(trimmed)
		}
		if trimmed != *v {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s normalized from %q to %q", field, *v, trimmed))
			*v = trimmed
		}
	}
	cleanSubdir("source.pages", &cfg.Source.Pages)
	cleanSubdir("source.posts", &cfg.Source.Posts)
	cleanSubdir("output.posts", &cfg.Output.Posts)

	if bp := cfg.Site.BasePath; bp != "" {
		normalized := "/" + strings.Trim(bp, "/")
		if normalized != bp {
			res.Warnings = append(res.Warnings, fmt.Sprintf("site.base_path normalized from %q to %q", bp, normalized))
			cfg.Site.BasePath = normalized
		}
	}

	for i, m := range cfg.Site.Menu {
		if m.External() {
			continue
		}
		trimmed := strings.TrimPrefix(m.URL, "/")
		if trimmed != m.URL {
			cfg.Site.Menu[i].URL = trimmed
		}
	}

	return res, nil
}
