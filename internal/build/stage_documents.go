package build

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/blogbuilder/internal/content"
	"git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/layout"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/output"
	"git.home.luguber.info/inful/blogbuilder/internal/posts"
)

func stageBuildPosts(ctx context.Context, st *State) error {
	sources, err := st.loader.Load(ctx, content.CollectionPost)
	if err != nil {
		return err
	}
	st.Logger.Info("Found posts", logfields.Count(len(sources)))

	collector := posts.NewCollector(len(sources))
	err = forEachDocument(ctx, st, sources, func(_ context.Context, i int, doc content.Document) error {
		if _, err := buildDocument(st, doc, nil); err != nil {
			return err
		}
		collector.Set(i, posts.Summarize(doc.Metadata, doc.Source.LogicalName))
		return nil
	})
	if err != nil {
		return err
	}

	st.index = posts.BuildIndex(collector.Summaries())
	st.Report.Posts = len(sources)
	st.Recorder.AddDocuments(string(content.CollectionPost), len(sources))
	return nil
}

func stageBuildIndex(_ context.Context, st *State) error {
	target := st.writer.Paths().Listing()
	if err := st.writer.Claim(target, output.Owner{Collection: "index", Document: "listing"}); err != nil {
		return err
	}
	data, err := posts.Serialize(st.index)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to serialize post index").Build()
	}
	if err := st.writer.Write(target, data); err != nil {
		return err
	}
	st.Logger.Info("Generated post index", logfields.Output(target.Path), logfields.Count(len(st.index)))
	return nil
}

func stageBuildPages(ctx context.Context, st *State) error {
	sources, err := st.loader.Load(ctx, content.CollectionPage)
	if err != nil {
		return err
	}
	st.Logger.Info("Found pages", logfields.Count(len(sources)))

	listingPage := st.Config.Build.ListingPage
	err = forEachDocument(ctx, st, sources, func(_ context.Context, _ int, doc content.Document) error {
		var index *posts.Index
		if doc.Variant == content.VariantHome || doc.Source.LogicalName == listingPage {
			index = &st.index
		}
		_, err := buildDocument(st, doc, index)
		return err
	})
	if err != nil {
		return err
	}

	st.Report.Pages = len(sources)
	st.Recorder.AddDocuments(string(content.CollectionPage), len(sources))
	return nil
}

// forEachDocument parses and processes sources on at most build.workers
// goroutines. The first error cancels the remaining work and is returned.
func forEachDocument(ctx context.Context, st *State, sources []content.SourceDocument, fn func(context.Context, int, content.Document) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(st.Config.Build.Workers)
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := content.Parse(src, st.Config.Source.HomeTemplate)
			if err != nil {
				return err
			}
			return fn(gctx, i, doc)
		})
	}
	return g.Wait()
}

// buildDocument converts, composes and writes one document.
func buildDocument(st *State, doc content.Document, index *posts.Index) (output.Target, error) {
	src := doc.Source
	paths := st.writer.Paths()
	target := paths.For(src.LogicalName, doc.Variant)

	if err := st.writer.Claim(target, output.Owner{Collection: string(src.Collection), Document: src.LogicalName}); err != nil {
		return target, err
	}

	html, err := st.renderer.Render(doc.Body)
	if err != nil {
		return target, errors.WrapError(err, errors.CategoryBodyConversion, "failed to convert document body").
			Fatal().
			WithContext("collection", string(src.Collection)).
			WithContext("document", src.LogicalName).
			Build()
	}

	markup, err := st.composer.Compose(layout.Input{
		Variant:  doc.Variant,
		Metadata: doc.Metadata,
		Content:  html,
		Index:    index,
		Base:     st.composer.Shell().Base(target.Depth),
		Self:     target.URL,
	})
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return target, ce.WithContext("collection", string(src.Collection)).WithContext("document", src.LogicalName)
		}
		return target, err
	}

	if err := st.writer.Write(target, []byte(markup)); err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return target, ce.WithContext("collection", string(src.Collection)).WithContext("document", src.LogicalName)
		}
		return target, err
	}

	msg := "Built page"
	if src.Collection == content.CollectionPost {
		msg = "Built post"
	}
	st.Logger.Info(msg,
		logfields.Collection(string(src.Collection)),
		logfields.Document(src.LogicalName),
		logfields.Variant(doc.Variant.String()),
		logfields.Output(target.Path),
		slog.Int("bytes", len(markup)))
	return target, nil
}
