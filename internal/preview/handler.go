// Package preview serves a built site over HTTP for local inspection.
package preview

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// NotFoundPage is served with status 404 when present in the site root.
const NotFoundPage = "404.html"

// Handler serves the files under root. "/" maps to the index file, paths
// without an extension or naming a directory map to their index file, and
// unknown paths fall back to NotFoundPage.
func Handler(root, indexFile string) http.Handler {
	return &fileHandler{root: root, indexFile: indexFile}
}

type fileHandler struct {
	root      string
	indexFile string
}

func (h *fileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	for _, seg := range strings.Split(r.URL.Path, "/") {
		if seg == ".." {
			http.Error(w, "invalid path", http.StatusBadRequest)
			return
		}
	}

	name := path.Clean("/" + r.URL.Path)
	if name == "/" || path.Ext(name) == "" {
		name = path.Join(name, h.indexFile)
	}
	full := filepath.Join(h.root, filepath.FromSlash(name))
	if info, err := os.Stat(full); err == nil && info.IsDir() {
		full = filepath.Join(full, h.indexFile)
	}

	if h.serveFile(w, r, full, http.StatusOK) {
		return
	}
	if h.serveFile(w, r, filepath.Join(h.root, NotFoundPage), http.StatusNotFound) {
		return
	}
	http.NotFound(w, r)
}

// serveFile writes the file at p with status. It reports false when the file
// cannot be opened.
func (h *fileHandler) serveFile(w http.ResponseWriter, r *http.Request, p string, status int) bool {
	// #nosec G304 -- p is cleaned and joined under the served root.
	f, err := os.Open(p)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}
	if status == http.StatusOK {
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
		return true
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = f.WriteTo(w)
	}
	return true
}
