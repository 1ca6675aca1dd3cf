package config

import (
	"path"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Menu represents a navigation entry. URL is site-relative ("blog/") unless it
// carries a scheme, in which case it is emitted verbatim.
type Menu struct {
	Name   string `yaml:"name,omitempty"`
	URL    string `yaml:"url"`
	Weight int    `yaml:"weight,omitempty"`
}

// DefaultMenu returns the navigation used when the configuration defines none.
func DefaultMenu() []Menu {
	return []Menu{
		{Name: "Home", URL: "", Weight: 10},
		{Name: "Blog", URL: "blog/", Weight: 20},
		{Name: "About", URL: "about/", Weight: 30},
		{Name: "FAQ", URL: "faq/", Weight: 40},
	}
}

// Label returns the display name, deriving one from the URL when Name is empty.
func (m Menu) Label() string {
	if m.Name != "" {
		return m.Name
	}
	seg := path.Base(strings.Trim(m.URL, "/"))
	if seg == "." || seg == "" {
		return "Home"
	}
	seg = strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	return cases.Title(language.English).String(seg)
}

// External reports whether the entry points outside the site.
func (m Menu) External() bool {
	return strings.Contains(m.URL, "://") || strings.HasPrefix(m.URL, "mailto:")
}

// SortedMenu orders entries by weight, keeping declaration order for ties.
func SortedMenu(items []Menu) []Menu {
	out := make([]Menu, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Weight < out[j].Weight })
	return out
}
