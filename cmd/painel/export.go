package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/painel/internal/core"
)

// fileResult reports a file written by a command.
type fileResult struct {
	File  string `json:"file" yaml:"file"`
	Bytes int    `json:"bytes" yaml:"bytes"`
}

func newExportCmd(c *cli) *cobra.Command {
	var (
		sel selectionFlags
		out string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered rows to an xlsx file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := c.service.Export(cmd.Context(), sel.query())
			if err != nil {
				return err
			}
			return writeResult(cmd, c.format, out, data)
		},
	}
	sel.register(cmd)
	cmd.Flags().StringVar(&out, "out", core.ExportFileName, "destination file")
	return cmd
}

func writeResult(cmd *cobra.Command, format OutputFormat, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return outputTo(cmd.OutOrStdout(), format, fileResult{File: path, Bytes: len(data)})
}
