package content

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// Loader reads the documents of a collection from the source root.
type Loader struct {
	dirs     map[Collection]string
	patterns []string
	logger   *slog.Logger
}

// NewLoader creates a loader for the configured source layout.
func NewLoader(src config.SourceConfig, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		dirs: map[Collection]string{
			CollectionPage: filepath.Join(src.Directory, src.Pages),
			CollectionPost: filepath.Join(src.Directory, src.Posts),
		},
		patterns: src.Patterns,
		logger:   logger,
	}
}

// Dir returns the directory a collection is read from.
func (l *Loader) Dir(c Collection) string {
	return l.dirs[c]
}

// Load returns the documents of a collection in file-name order. A missing
// collection directory yields no documents.
func (l *Loader) Load(ctx context.Context, c Collection) ([]SourceDocument, error) {
	dir := l.dirs[c]
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			missing := errors.MissingCollection("source collection not found").
				WithContext("collection", string(c)).
				WithContext("path", dir).
				Build()
			l.logger.LogAttrs(ctx, slog.LevelInfo, "Source collection missing, treating as empty", missing.LogAttrs()...)
			return []SourceDocument{}, nil
		}
		return nil, errors.WrapError(err, errors.CategoryDocumentRead, "failed to list collection").
			Fatal().
			WithContext("collection", string(c)).
			WithContext("path", dir).
			Build()
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !l.matches(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	docs := make([]SourceDocument, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, name)
		logical := strings.TrimSuffix(name, filepath.Ext(name))
		if logical == "" {
			l.logger.Warn("Skipping document without a logical name",
				logfields.Collection(string(c)),
				logfields.Path(path))
			continue
		}

		// #nosec G304 -- path is inside the configured source collection.
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryDocumentRead, "failed to read document").
				Fatal().
				WithContext("collection", string(c)).
				WithContext("document", logical).
				WithContext("path", path).
				Build()
		}
		docs = append(docs, SourceDocument{
			LogicalName: logical,
			Collection:  c,
			Path:        path,
			RawText:     raw,
		})
	}

	l.logger.Debug("Loaded collection",
		logfields.Collection(string(c)),
		logfields.Path(dir),
		logfields.Count(len(docs)))
	return docs, nil
}

func (l *Loader) matches(name string) bool {
	for _, pattern := range l.patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
