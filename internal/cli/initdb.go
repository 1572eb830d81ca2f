package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tansive/archsrv/internal/archsrv/db"
)

func newInitDBCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Drop and recreate the architectures table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runInitDB(cmd.Context(), opts); err != nil {
				return err
			}
			if opts.jsonOutput {
				printJSON(cmd.OutOrStdout(), map[string]bool{"status": true})
			} else {
				cmd.Println("architectures table reinitialized")
			}
			return nil
		},
	}
}

func runInitDB(ctx context.Context, opts *options) error {
	c, err := loadConfig(opts)
	if err != nil {
		return err
	}
	ctx = log.Logger.WithContext(ctx)

	pool, err := db.NewPool(ctx, c)
	if err != nil {
		return err
	}
	defer pool.Close()

	ctx, err = db.ConnCtx(ctx, pool)
	if err != nil {
		return err
	}
	defer db.DB(ctx).Close(ctx)

	if err := db.DB(ctx).ResetArchitectures(ctx); err != nil {
		return err
	}
	return nil
}
