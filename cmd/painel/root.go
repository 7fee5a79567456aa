package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/painel/internal/application"
	"github.com/JonMunkholm/painel/internal/config"
	"github.com/JonMunkholm/painel/internal/core"
	"github.com/JonMunkholm/painel/internal/logging"
)

// cli holds the state shared by every subcommand once the root command has
// loaded the configuration and the dataset.
type cli struct {
	datasetPath string
	sheet       string
	output      string

	format  OutputFormat
	service *core.Service
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "painel",
		Short: "School library dashboard data from the command line",
		Long: `Painel runs the dashboard pipeline without the web server.

It loads the dataset, applies a selection (block, years, categories and
report mode) and prints the sidebar options, writes the filtered rows as
xlsx or renders one of the two charts as PNG.

Examples:
  painel options --block "By Region"
  painel export --block "By Region" --year 2022 --out filtered.xlsx
  painel chart 2 --mode staff --out enrollment.png`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.datasetPath, "dataset", "", "xlsx dataset (default: DATASET_PATH)")
	root.PersistentFlags().StringVar(&c.sheet, "sheet", "", "worksheet to read (default: DATASET_SHEET or the first sheet)")
	root.PersistentFlags().StringVarP(&c.output, "output", "o", "yaml", "output format: yaml or json")

	root.AddCommand(newOptionsCmd(c), newViewCmd(c), newExportCmd(c), newChartCmd(c))
	return root
}

// setup loads the configuration, applies flag overrides and opens the dataset.
func (c *cli) setup(cmd *cobra.Command) error {
	format, err := parseOutputFormat(c.output)
	if err != nil {
		return err
	}
	c.format = format

	// Missing .env is fine; the environment and defaults still apply.
	_ = godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.datasetPath != "" {
		cfg.Dataset.Path = c.datasetPath
	}
	if c.sheet != "" {
		cfg.Dataset.Sheet = c.sheet
	}

	// stdout carries command output
	logging.SetupWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	c.service, err = application.Open(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", core.FormatUserError(err), err)
	}
	return nil
}

// selectionFlags binds the selection flags shared by view, export and chart.
type selectionFlags struct {
	block      string
	years      []string
	categories []string
	mode       string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.block, "block", "", "analysis block (default: the first configured block)")
	cmd.Flags().StringSliceVar(&f.years, "year", nil, "years to include, repeatable (default: all)")
	cmd.Flags().StringSliceVar(&f.categories, "category", nil, "categories to include, repeatable (default: ALL)")
	cmd.Flags().StringVar(&f.mode, "mode", "", "report mode: library or staff (default: library)")
}

func (f *selectionFlags) query() core.Query {
	return core.Query{
		Block:      f.block,
		Years:      f.years,
		Categories: f.categories,
		Mode:       f.mode,
	}
}
