package main

import (
	"github.com/spf13/cobra"
)

func newOptionsCmd(c *cli) *cobra.Command {
	var block string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List blocks, years, categories and report modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.service.Options(cmd.Context(), block)
			if err != nil {
				return err
			}
			return outputTo(cmd.OutOrStdout(), c.format, opts)
		},
	}
	cmd.Flags().StringVar(&block, "block", "", "block whose categories are listed (default: the first configured block)")
	return cmd
}
