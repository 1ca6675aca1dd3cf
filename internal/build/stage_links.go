package build

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/linkverify"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

func stageVerifyLinks(ctx context.Context, st *State) error {
	paths := st.writer.Paths()
	verifier := linkverify.NewVerifier(paths.Root(), paths.IndexFile(), st.Config.Site.BasePath)
	broken, checked, err := verifier.Verify(ctx)
	if err != nil {
		return err
	}

	st.Report.PagesChecked = checked
	st.Report.BrokenLinks = len(broken)
	st.Recorder.IncBrokenLinks(len(broken))
	if len(broken) == 0 {
		st.Logger.Debug("All internal links resolve", logfields.Count(checked))
		return nil
	}

	for _, b := range broken {
		st.Logger.Warn("Broken internal link", logfields.Path(b.Page), logfields.Href(b.URL))
	}
	if st.Config.Build.StrictLinks {
		first := broken[0]
		return errors.LinkCheckError(fmt.Sprintf("%d broken internal link(s)", len(broken))).
			Fatal().
			WithContext("path", first.Page).
			WithContext("href", first.URL).
			Build()
	}
	return NewWarnStageError(StageVerifyLinks, fmt.Errorf("%d broken internal link(s)", len(broken)))
}
