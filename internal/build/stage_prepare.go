package build

import (
	"context"

	"git.home.luguber.info/inful/blogbuilder/internal/assets"
)

func stagePrepareOutput(_ context.Context, st *State) error {
	return st.writer.Prepare()
}

func stageCopyAssets(ctx context.Context, st *State) error {
	n, err := assets.Copy(ctx, st.Config.Source.Static, st.writer.Paths().Root(), st.Logger)
	st.Report.Assets = n
	return err
}
