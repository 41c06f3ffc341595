package main

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/agenthands/kgquiz/internal/app"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var (
		count  int
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print generated questions as JSON, one per line.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			ctx := cmd.Context()
			a, err := app.Build(ctx, opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			qs, err := a.Generator.GenerateN(ctx, count)
			if err != nil {
				return err
			}
			for _, q := range qs {
				var out []byte
				if pretty {
					out, err = json.MarshalIndent(q, "", "  ")
				} else {
					out, err = json.Marshal(q)
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of questions to generate")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}
