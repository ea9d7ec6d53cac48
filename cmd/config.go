package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/carstats/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set carstats configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "data_file: %s\n", cfg.DataFile)
		fmt.Fprintf(out, "output_format: %s\n", cfg.OutputFormat)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "min_fields: %d\n", cfg.MinFields)
		fmt.Fprintf(out, "year_column: %d\n", cfg.YearColumn)
		fmt.Fprintf(out, "engine_column: %d\n", cfg.EngineColumn)
		fmt.Fprintf(out, "kilometers_column: %d\n", cfg.KilometersColumn)
		fmt.Fprintf(out, "price_column: %d\n", cfg.PriceColumn)
		fmt.Fprintf(out, "delimiter: %q\n", cfg.Delimiter)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		atoi := func() (int, error) {
			i, err := strconv.Atoi(val)
			if err != nil {
				return 0, fmt.Errorf("invalid int for %s: %w", key, err)
			}
			return i, nil
		}
		next := *cfg
		var err error
		switch key {
		case "data_file":
			next.DataFile = val
		case "output_format":
			next.OutputFormat = val
		case "log_level":
			next.LogLevel = val
		case "delimiter":
			next.Delimiter = val
		case "min_fields":
			next.MinFields, err = atoi()
		case "year_column":
			next.YearColumn, err = atoi()
		case "engine_column":
			next.EngineColumn, err = atoi()
		case "kilometers_column":
			next.KilometersColumn, err = atoi()
		case "price_column":
			next.PriceColumn, err = atoi()
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err != nil {
			return err
		}
		if err := cfgpkg.Save(&next, cfgFile); err != nil {
			return err
		}
		cfg = &next
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
