package main

import (
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/painel/internal/core"
)

// viewSummary is the printable part of a view; figures are left out.
type viewSummary struct {
	Selection core.Selection  `json:"selection" yaml:"selection"`
	Mode      core.ModeOption `json:"mode" yaml:"mode"`
	Warnings  []core.Warning  `json:"warnings" yaml:"warnings"`
	Rows      int             `json:"rows" yaml:"rows"`
	Charts    []string        `json:"charts" yaml:"charts"`
}

func newViewCmd(c *cli) *cobra.Command {
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Resolve a selection and summarize the resulting charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := c.service.View(cmd.Context(), sel.query())
			if err != nil {
				return err
			}

			summary := viewSummary{
				Selection: v.Selection,
				Mode:      v.Mode,
				Warnings:  v.Warnings,
				Rows:      v.Rows,
			}
			for _, ch := range v.Charts {
				summary.Charts = append(summary.Charts, ch.Title)
			}
			return outputTo(cmd.OutOrStdout(), c.format, summary)
		},
	}
	sel.register(cmd)
	return cmd
}
