package config

import (
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

// ValidateConfig validates a defaulted and normalized configuration.
func ValidateConfig(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	for _, check := range []func() error{v.validateSource, v.validateOutput, v.validateBuild, v.validateSite} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

type configurationValidator struct {
	config *Config
}

func (cv *configurationValidator) validateSource() error {
	src := cv.config.Source
	if err := relativeSubdir("source.pages", src.Pages); err != nil {
		return err
	}
	if err := relativeSubdir("source.posts", src.Posts); err != nil {
		return err
	}
	if src.Pages == src.Posts {
		return errors.ValidationError("source.pages and source.posts must be different directories").
			WithContext("directory", src.Pages).Build()
	}
	for _, pattern := range src.Patterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.ValidationError("invalid document pattern").WithContext("pattern", pattern).Build()
		}
	}
	return nil
}

func (cv *configurationValidator) validateOutput() error {
	out := cv.config.Output
	if err := relativeSubdir("output.posts", out.Posts); err != nil {
		return err
	}
	if err := plainFileName("output.index_file", out.IndexFile); err != nil {
		return err
	}
	return plainFileName("output.listing_file", out.ListingFile)
}

func (cv *configurationValidator) validateBuild() error {
	if cv.config.Build.Workers < 1 {
		return errors.ValidationError("build.workers must be at least 1").
			WithContext("workers", cv.config.Build.Workers).Build()
	}
	if strings.ContainsAny(cv.config.Build.ListingPage, `/\`) {
		return errors.ValidationError("build.listing_page must be a page logical name").
			WithContext("listing_page", cv.config.Build.ListingPage).Build()
	}
	return nil
}

func (cv *configurationValidator) validateSite() error {
	if cv.config.Site.LatestPosts < 0 {
		return errors.ValidationError("site.latest_posts must not be negative").
			WithContext("latest_posts", cv.config.Site.LatestPosts).Build()
	}
	// A layout without reference fields renders every date identically.
	layout := cv.config.Site.DateFormat
	a := time.Date(2006, time.January, 2, 15, 4, 5, 0, time.UTC)
	b := time.Date(2017, time.November, 28, 9, 37, 48, 0, time.UTC)
	if a.Format(layout) == b.Format(layout) {
		return errors.ValidationError("site.date_format contains no date fields").
			WithContext("date_format", layout).Build()
	}
	return nil
}

func relativeSubdir(field, v string) error {
	if v == "" || v == "." {
		return errors.ValidationError(field + " must name a subdirectory").Build()
	}
	cleaned := path.Clean(filepath.ToSlash(v))
	if filepath.IsAbs(v) || path.IsAbs(cleaned) || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return errors.ValidationError(field+" must stay inside its root directory").WithContext("value", v).Build()
	}
	return nil
}

func plainFileName(field, v string) error {
	if v == "" || strings.ContainsAny(v, `/\`) || v == "." || v == ".." {
		return errors.ValidationError(field + " must be a plain file name").WithContext("value", v).Build()
	}
	return nil
}
