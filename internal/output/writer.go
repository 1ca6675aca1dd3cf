package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

// Owner identifies the document that produces a target.
type Owner struct {
	Collection string
	Document   string
}

func (o Owner) String() string {
	return fmt.Sprintf("%s/%s", o.Collection, o.Document)
}

// Writer writes build outputs and guarantees no two documents share a target.
// It is safe for concurrent use.
type Writer struct {
	paths Paths
	clean bool

	mu     sync.Mutex
	claims map[string]Owner
}

// NewWriter creates a writer rooted at paths. With clean set, Prepare removes
// the build root before recreating it.
func NewWriter(paths Paths, clean bool) *Writer {
	return &Writer{paths: paths, clean: clean, claims: map[string]Owner{}}
}

// Paths returns the path deriver the writer was created with.
func (w *Writer) Paths() Paths {
	return w.paths
}

// Prepare ensures the build root and posts root exist. Existing directories
// are left in place.
func (w *Writer) Prepare() error {
	root := w.paths.Root()
	if w.clean {
		if err := os.RemoveAll(root); err != nil {
			return errors.WrapError(err, errors.CategoryOutputWrite, "failed to clean build root").
				Fatal().WithContext("path", root).Build()
		}
	}
	for _, dir := range []string{root, w.paths.PostsRoot()} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryOutputWrite, "failed to create output directory").
				Fatal().WithContext("path", dir).Build()
		}
	}
	return nil
}

// Claim reserves target for owner. Claiming a target already held by a
// different owner is a path collision.
func (w *Writer) Claim(target Target, owner Owner) error {
	key := filepath.Clean(target.Path)

	w.mu.Lock()
	defer w.mu.Unlock()
	if prev, ok := w.claims[key]; ok && prev != owner {
		return errors.PathCollisionError("two documents resolve to the same output path").
			Fatal().
			WithContext("path", key).
			WithContext("collection", owner.Collection).
			WithContext("document", owner.Document).
			WithContext("claimed_by", prev.String()).
			Build()
	}
	w.claims[key] = owner
	return nil
}

// Write stores data at target, creating parent directories and replacing any
// existing file.
func (w *Writer) Write(target Target, data []byte) error {
	dir := filepath.Dir(target.Path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryOutputWrite, "failed to create output directory").
			Fatal().WithContext("path", dir).Build()
	}

	tmp := target.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil { // #nosec G306 -- published site content
		return errors.WrapError(err, errors.CategoryOutputWrite, "failed to write output file").
			Fatal().WithContext("path", target.Path).Build()
	}
	if err := os.Rename(tmp, target.Path); err != nil {
		_ = os.Remove(tmp)
		return errors.WrapError(err, errors.CategoryOutputWrite, "failed to replace output file").
			Fatal().WithContext("path", target.Path).Build()
	}
	return nil
}
