package content

import (
	"git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
)

// Collection identifies which source collection a document came from.
type Collection string

const (
	CollectionPage Collection = "page"
	CollectionPost Collection = "post"
)

// Variant selects the layout a document is composed with. It is resolved once
// per document and never changes afterwards.
type Variant int

const (
	VariantPage Variant = iota
	VariantHome
	VariantPost
)

func (v Variant) String() string {
	switch v {
	case VariantHome:
		return "home"
	case VariantPost:
		return "post"
	default:
		return "page"
	}
}

// SourceDocument is a discovered file before parsing.
type SourceDocument struct {
	LogicalName string
	Collection  Collection
	Path        string
	RawText     []byte
}

// Document is a parsed source document.
type Document struct {
	Source   SourceDocument
	Metadata Metadata
	Body     []byte
	Variant  Variant
}

// Parse splits the document into its metadata block and body and resolves the
// layout variant. A page whose template equals homeTemplate is the home page.
func Parse(src SourceDocument, homeTemplate string) (Document, error) {
	fields, body, err := frontmatter.Parse(src.RawText)
	if err != nil {
		return Document{}, headerError(src, err)
	}
	meta, err := NewMetadata(fields)
	if err != nil {
		return Document{}, headerError(src, err)
	}

	variant := VariantPage
	switch {
	case src.Collection == CollectionPost:
		variant = VariantPost
	case homeTemplate != "" && meta.Template() == homeTemplate:
		variant = VariantHome
	}

	return Document{Source: src, Metadata: meta, Body: body, Variant: variant}, nil
}

func headerError(src SourceDocument, err error) error {
	return errors.WrapError(err, errors.CategoryHeaderParse, "invalid metadata block").
		Fatal().
		WithContext("collection", string(src.Collection)).
		WithContext("document", src.LogicalName).
		WithContext("path", src.Path).
		Build()
}
