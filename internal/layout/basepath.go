package layout

import "strings"

// BasePath is the prefix that turns a site-relative path into an href valid
// from the page being composed.
type BasePath struct {
	prefix string
}

// Relative returns the prefix for a page depth directories below the build
// root: "", "../", "../../", ...
func Relative(depth int) BasePath {
	if depth < 0 {
		depth = 0
	}
	return BasePath{prefix: strings.Repeat("../", depth)}
}

// Absolute returns a root-relative prefix under the given site prefix.
// Absolute("/my-site") yields "/my-site/"; an empty prefix yields "/".
func Absolute(prefix string) BasePath {
	p := strings.Trim(prefix, "/")
	if p == "" {
		return BasePath{prefix: "/"}
	}
	return BasePath{prefix: "/" + p + "/"}
}

func (b BasePath) String() string {
	return b.prefix
}

// Join resolves a site-relative path ("blog/hello/") against the prefix.
func (b BasePath) Join(rel string) string {
	href := b.prefix + strings.TrimPrefix(rel, "/")
	if href == "" {
		return "./"
	}
	return href
}
