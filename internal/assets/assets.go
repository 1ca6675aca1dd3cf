// Package assets copies static files (stylesheets, images, scripts) into the
// build root.
package assets

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// Copy mirrors the tree under src into dst and returns the number of files
// copied. A missing src copies nothing. Existing files in dst are replaced.
func Copy(ctx context.Context, src, dst string, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := os.Stat(src); os.IsNotExist(err) {
		logger.Info("Static directory not found, skipping asset copy", logfields.Path(src))
		return 0, nil
	}

	copied := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o750)
		}
		if !d.Type().IsRegular() {
			logger.Debug("Skipping non-regular static entry", logfields.Path(path))
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		// #nosec G304 -- path is inside the configured static directory.
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, info.Mode().Perm()|0o600); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, errors.WrapError(err, errors.CategoryOutputWrite, "failed to copy static assets").
			Fatal().
			WithContext("path", src).
			WithContext("output", dst).
			Build()
	}
	return copied, nil
}
