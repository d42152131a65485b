package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/viewmim/archivectl/internal/cli/pagination"
	"github.com/viewmim/archivectl/internal/logging"
	"github.com/viewmim/archivectl/internal/pagecursor"
)

// addPageFlags registers the shared --page/--jump/--page-size/--sort flags.
func addPageFlags(cmd *cobra.Command, p *pagination.Params) {
	cmd.Flags().IntVar(&p.Page, "page", pagination.DefaultPage, "page number to load")
	cmd.Flags().IntVar(&p.Jump, "jump", 0, "jump to a page; lands on the last page when the target is past the end")
	cmd.Flags().IntVar(&p.PageSize, "page-size", 0, "items per page (default from config)")
	cmd.Flags().StringVar(&p.Sort, "sort", "", "sort order: newest or oldest (default from config)")
}

// applyPageDefaults fills flags the user left unset from the configuration.
func applyPageDefaults(cmd *cobra.Command, p *pagination.Params, pageSize int, sort string) {
	if !cmd.Flags().Changed("page-size") {
		p.PageSize = pageSize
	}
	if !cmd.Flags().Changed("sort") {
		p.Sort = sort
	}
}

// resolvePage loads the page the flags ask for through a fresh cursor.
func resolvePage[T any](
	ctx context.Context,
	fetcher pagecursor.Fetcher[T],
	params pagination.Params,
	filters map[string]string,
) (pagecursor.Page[T], pagination.Meta, error) {
	log := logging.FromContext(ctx)

	cursor, err := pagecursor.New(fetcher, params.Query(filters))
	if err != nil {
		return pagecursor.Page[T]{}, pagination.Meta{}, err
	}

	var page pagecursor.Page[T]
	if params.IsJump() {
		page, err = cursor.JumpTo(ctx, params.Jump)
	} else {
		page, err = cursor.LoadPage(ctx, params.Page)
	}
	if err != nil {
		return pagecursor.Page[T]{}, pagination.Meta{}, err
	}

	state := cursor.State()
	log.Debug().
		Int("requested", params.Target()).
		Int("page", state.CurrentPage).
		Int("last_page", state.LastPage).
		Str("query", cursor.Query().String()).
		Msg("page resolved")

	return page, pagination.NewMeta(state, page, params.Target(), params.PageSize), nil
}

// stateOf rebuilds the cursor position recorded in meta.
func stateOf(meta pagination.Meta) pagecursor.State {
	return pagecursor.State{CurrentPage: meta.CurrentPage, LastPage: meta.LastPage}
}
