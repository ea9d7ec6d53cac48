package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/carstats/internal/parser"
	"github.com/KaramelBytes/carstats/internal/plot"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

var (
	plotX          string
	plotY          string
	plotOutputPath string
	plotNoFit      bool
	plotWidthIn    float64
	plotHeightIn   float64
)

var plotCmd = &cobra.Command{
	Use:   "plot [file]",
	Short: "Render a scatter plot of two listing columns",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range []string{plotX, plotY} {
			if _, ok := cfg.Schema().Index(name); !ok {
				return fmt.Errorf("unsupported column: %s (use %s)", name, strings.Join(parser.ColumnNames, "|"))
			}
		}
		ds := loadDataset(cmd, inputPath(args))

		opt := plot.DefaultOptions()
		opt.Fit = !plotNoFit
		if plotWidthIn > 0 {
			opt.Width = vg.Length(plotWidthIn) * vg.Inch
		}
		if plotHeightIn > 0 {
			opt.Height = vg.Length(plotHeightIn) * vg.Inch
		}
		if err := plot.Scatter(plotOutputPath, ds, plotX, plotY, opt); err != nil {
			if errors.Is(err, plot.ErrNoData) {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %v\n", err)
				return nil
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s vs %s plot to %s\n", plotY, plotX, plotOutputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().StringVar(&plotX, "x", "kilometers", "column on the x axis")
	plotCmd.Flags().StringVar(&plotY, "y", "price", "column on the y axis")
	plotCmd.Flags().StringVarP(&plotOutputPath, "output", "o", "scatter.png", "image path (extension selects format)")
	plotCmd.Flags().BoolVar(&plotNoFit, "no-fit", false, "omit the least-squares line")
	plotCmd.Flags().Float64Var(&plotWidthIn, "width", 6, "image width in inches")
	plotCmd.Flags().Float64Var(&plotHeightIn, "height", 4, "image height in inches")
}
