// Package output derives where each document lands in the build root and
// writes the composed pages there.
package output

import (
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/content"
)

// Target is the output location of one document.
type Target struct {
	// Path is the file system path of the emitted file.
	Path string
	// URL is the site-relative location the file is served at ("" for the
	// home page, "about/", "blog/hello/").
	URL string
	// Depth is the number of directories between the build root and the file.
	Depth int
}

// Paths derives output locations from the output configuration.
type Paths struct {
	root        string
	posts       string
	indexFile   string
	listingFile string
}

// NewPaths creates a path deriver for cfg.
func NewPaths(cfg config.OutputConfig) Paths {
	return Paths{
		root:        cfg.Directory,
		posts:       cfg.Posts,
		indexFile:   cfg.IndexFile,
		listingFile: cfg.ListingFile,
	}
}

// Root is the build root directory.
func (p Paths) Root() string { return p.root }

// PostsRoot is the directory post pages are written under.
func (p Paths) PostsRoot() string { return filepath.Join(p.root, filepath.FromSlash(p.posts)) }

// PostsURL is the site-relative directory of post pages.
func (p Paths) PostsURL() string { return p.posts }

// IndexFile is the default document name inside each page directory.
func (p Paths) IndexFile() string { return p.indexFile }

// For returns the target of a document of the given variant.
func (p Paths) For(logicalName string, variant content.Variant) Target {
	switch variant {
	case content.VariantHome:
		return Target{Path: filepath.Join(p.root, p.indexFile), URL: "", Depth: 0}
	case content.VariantPost:
		url := path.Join(p.posts, logicalName) + "/"
		return Target{
			Path:  filepath.Join(p.root, filepath.FromSlash(url), p.indexFile),
			URL:   url,
			Depth: depth(url),
		}
	default:
		return Target{
			Path:  filepath.Join(p.root, logicalName, p.indexFile),
			URL:   logicalName + "/",
			Depth: 1,
		}
	}
}

// Listing returns the target of the serialized post index.
func (p Paths) Listing() Target {
	return Target{
		Path:  filepath.Join(p.PostsRoot(), p.listingFile),
		URL:   path.Join(p.posts, p.listingFile),
		Depth: depth(p.posts + "/"),
	}
}

func depth(url string) int {
	n := 0
	for _, r := range url {
		if r == '/' {
			n++
		}
	}
	return n
}
