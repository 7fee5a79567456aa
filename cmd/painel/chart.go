package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newChartCmd(c *cli) *cobra.Command {
	var (
		sel selectionFlags
		out string
	)

	cmd := &cobra.Command{
		Use:   "chart <1|2>",
		Short: "Render chart 1 (schools) or 2 (enrollment) as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("chart index %q is not a number", args[0])
			}

			img, err := c.service.ChartPNG(cmd.Context(), sel.query(), index)
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = fmt.Sprintf("chart%d.png", index)
			}
			return writeResult(cmd, c.format, path, img)
		},
	}
	sel.register(cmd)
	cmd.Flags().StringVar(&out, "out", "", "destination file (default: chart<N>.png)")
	return cmd
}
