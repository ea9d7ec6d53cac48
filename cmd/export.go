package cmd

import (
	"fmt"

	"github.com/KaramelBytes/carstats/internal/analysis"
	"github.com/KaramelBytes/carstats/internal/export"
	"github.com/spf13/cobra"
)

var expOutputPath string

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the cleaned listings and their statistics to an XLSX workbook",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds := loadDataset(cmd, inputPath(args))
		rep := analysis.Build(ds)
		if err := export.WriteXLSX(expOutputPath, ds, rep); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d rows (%d skipped) to %s\n", rep.Parsed, rep.Skipped, expOutputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&expOutputPath, "output", "o", "carstats.xlsx", "workbook path")
}
