package linkverify

import (
	"context"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// BrokenLink is an internal link whose target is missing from the build root.
type BrokenLink struct {
	Page string // page file, relative to the build root
	URL  string
	Tag  string
}

// Verifier walks a build root and resolves every internal link.
type Verifier struct {
	root      string
	indexFile string
	prefix    string
}

// NewVerifier creates a verifier for root. basePath is the site prefix
// root-relative links carry ("" or "/" when served from the domain root).
func NewVerifier(root, indexFile, basePath string) *Verifier {
	prefix := "/" + strings.Trim(basePath, "/")
	if prefix != "/" {
		prefix += "/"
	}
	return &Verifier{root: root, indexFile: indexFile, prefix: prefix}
}

// Verify returns the broken links of every HTML file under the root, in file
// and document order, along with the number of pages checked.
func (v *Verifier) Verify(ctx context.Context) ([]BrokenLink, int, error) {
	var broken []BrokenLink
	pages := 0
	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".html") {
			return nil
		}
		rel, err := filepath.Rel(v.root, p)
		if err != nil {
			return err
		}
		links, err := ExtractLinks(p)
		if err != nil {
			return err
		}
		pages++
		page := filepath.ToSlash(rel)
		for _, link := range links {
			if !ShouldVerifyLink(link) {
				continue
			}
			if !v.resolves(page, link.URL) {
				broken = append(broken, BrokenLink{Page: page, URL: link.URL, Tag: link.Tag})
			}
		}
		return nil
	})
	return broken, pages, err
}

// resolves reports whether href, found on page, names an existing file.
func (v *Verifier) resolves(page, href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	if u.Path == "" {
		// query or fragment on the current page
		return true
	}

	var target string
	if strings.HasPrefix(u.Path, "/") {
		if !strings.HasPrefix(u.Path+"/", v.prefix) {
			return false
		}
		target = path.Clean(strings.TrimPrefix(u.Path, v.prefix))
		if u.Path+"/" == v.prefix {
			target = "."
		}
	} else {
		target = path.Clean(path.Join(path.Dir(page), u.Path))
	}
	if target == ".." || strings.HasPrefix(target, "../") {
		return false
	}

	full := filepath.Join(v.root, filepath.FromSlash(target))
	info, err := os.Stat(full)
	if err != nil {
		return false
	}
	if info.IsDir() {
		_, err := os.Stat(filepath.Join(full, v.indexFile))
		return err == nil
	}
	return true
}
