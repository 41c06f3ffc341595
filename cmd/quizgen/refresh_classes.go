package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agenthands/kgquiz/internal/app"
	"github.com/agenthands/kgquiz/internal/resources"
)

func newRefreshClassesCmd(opts *rootOptions) *cobra.Command {
	var (
		out         string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "refresh-classes",
		Short: "Recount the instances of every known class and rewrite the class table.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := opts.cfg
			tables, err := resources.Load(resources.Paths{
				Blacklist: cfg.Resources.Blacklist,
				Prefixes:  cfg.Resources.Prefixes,
				Classes:   cfg.Resources.Classes,
			})
			if err != nil {
				return err
			}

			d, err := app.NewDriver(ctx, cfg, tables, opts.logger)
			if err != nil {
				return err
			}
			defer d.Close(ctx)

			counts, err := app.RefreshClassCounts(ctx, d, tables.Classes.Classes(), concurrency, opts.logger)
			if err != nil {
				return err
			}

			if out == "" {
				out = cfg.Resources.Classes
			}
			if err := resources.WriteClasses(out, counts, tables.Prefixes); err != nil {
				return err
			}
			opts.logger.Info("class table written", zap.String("path", out), zap.Int("classes", len(counts)))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d classes to %s\n", len(counts), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: resources.classes from the config)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "parallel count queries")
	return cmd
}
