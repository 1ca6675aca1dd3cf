// Package layout composes rendered documents into complete HTML pages.
package layout

import (
	"bytes"
	"html/template"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/content"
	"git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/posts"
)

// Input is everything needed to compose one page.
type Input struct {
	Variant  content.Variant
	Metadata content.Metadata
	// Content is trusted markup produced by the body converter.
	Content string
	// Index is the post listing for this page; nil means the page has none.
	Index *posts.Index
	Base  BasePath
	// Self is the site-relative location of the page, used to mark the
	// current menu entry.
	Self string
}

// Composer fills the layout variants. It is safe for concurrent use.
type Composer struct {
	shell    Shell
	variants map[content.Variant]*template.Template
}

// NewComposer parses the layout templates once.
func NewComposer(shell Shell) (*Composer, error) {
	base, err := template.New("layout").Parse(shellTemplate)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to parse shell template").Build()
	}
	c := &Composer{shell: shell, variants: map[content.Variant]*template.Template{}}
	for variant, body := range map[content.Variant]string{
		content.VariantHome: homeTemplate,
		content.VariantPage: pageTemplate,
		content.VariantPost: pageTemplate,
	} {
		clone, err := base.Clone()
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryInternal, "failed to clone shell template").Build()
		}
		t, err := clone.Parse(body)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryInternal, "failed to parse layout template").
				WithContext("variant", variant.String()).Build()
		}
		c.variants[variant] = t
	}
	return c, nil
}

// Shell returns the site shell the composer was built with.
func (c *Composer) Shell() Shell {
	return c.shell
}

type menuLink struct {
	Href    string
	Label   string
	Current bool
}

type listingEntry struct {
	Href  string
	Title string
	Date  *dateView
}

type dateView struct {
	Machine string
	Display string
}

type pageData struct {
	SiteTitle   string
	Description string
	Footer      string
	Stylesheet  string
	Menu        []menuLink
	Title       string
	Date        *dateView
	Content     template.HTML
	ShowListing bool
	Listing     []listingEntry
}

// Compose renders a complete page for in.
func (c *Composer) Compose(in Input) (string, error) {
	t, ok := c.variants[in.Variant]
	if !ok {
		return "", errors.InternalError("unknown layout variant").WithContext("variant", in.Variant.String()).Build()
	}

	data := pageData{
		SiteTitle:   c.shell.title,
		Description: c.shell.description,
		Footer:      c.shell.footer,
		Stylesheet:  in.Base.Join(c.shell.stylesheet),
		Menu:        c.menu(in),
		Title:       in.Metadata.Title(),
		Date:        c.date(in.Metadata.Date()),
		// #nosec G203 -- content is produced by the markdown converter.
		Content: template.HTML(in.Content),
	}

	switch in.Variant {
	case content.VariantHome:
		data.ShowListing = true
		if in.Index != nil {
			data.Listing = c.listing(in.Index.Latest(c.shell.latest), in.Base)
		}
	case content.VariantPage:
		if in.Index != nil {
			data.ShowListing = true
			data.Listing = c.listing(*in.Index, in.Base)
		}
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "shell", data); err != nil {
		return "", errors.WrapError(err, errors.CategoryLayout, "failed to compose page").
			Fatal().WithContext("variant", in.Variant.String()).Build()
	}
	return buf.String(), nil
}

func (c *Composer) menu(in Input) []menuLink {
	links := make([]menuLink, 0, len(c.shell.menu))
	for _, m := range c.shell.menu {
		href := m.URL
		if !m.External() {
			href = in.Base.Join(m.URL)
		}
		links = append(links, menuLink{
			Href:    href,
			Label:   m.Label(),
			Current: !m.External() && m.URL == in.Self,
		})
	}
	return links
}

func (c *Composer) listing(idx posts.Index, base BasePath) []listingEntry {
	out := make([]listingEntry, 0, len(idx))
	for _, s := range idx {
		out = append(out, listingEntry{
			Href:  base.Join(c.shell.PostHref(s.Slug)),
			Title: s.Title,
			Date:  c.date(s.Date),
		})
	}
	return out
}

func (c *Composer) date(d *time.Time) *dateView {
	if d == nil {
		return nil
	}
	return &dateView{Machine: d.Format("2006-01-02"), Display: d.Format(c.shell.dateFormat)}
}
