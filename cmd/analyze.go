package cmd

import (
	"fmt"

	"github.com/KaramelBytes/carstats/internal/analysis"
	"github.com/KaramelBytes/carstats/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaOutputPath string
	anaFormat     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Parse listings and print mean, standard deviation and correlations",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := cfg.OutputFormat
		if cmd.Flags().Changed("format") {
			format = anaFormat
		}

		ds := loadDataset(cmd, inputPath(args))
		rep := analysis.Build(ds)
		out, err := rep.Render(format)
		if err != nil {
			return err
		}

		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, []byte(out)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report")
	analyzeCmd.Flags().StringVarP(&anaFormat, "format", "f", "text", "report format: text|markdown|json|yaml")
}
