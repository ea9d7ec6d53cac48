package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/carstats/internal/config"
	"github.com/KaramelBytes/carstats/internal/logging"
	"github.com/KaramelBytes/carstats/internal/parser"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile      string
	debug        bool
	flagLogLevel string

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "carstats",
	Short: "carstats: clean used-car listings and summarize them",
	Long: `carstats reads a CSV export of used-car listings, keeps rows whose kilometers,
year, engine size and price parse as numbers, and reports mean, standard
deviation and Pearson correlation over the cleaned columns.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		loadConfig(cmd.ErrOrStderr())
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.carstats/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
}

func loadConfig(stderr io.Writer) {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Defaults()
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("log-level") && flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	logger = logging.NewLogger(cfg.LogLevel, stderr)
}

// inputPath picks the CSV to read: the positional argument or the configured data file.
func inputPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return cfg.DataFile
}

// loadDataset runs the row parser and reports progress on stderr. File-level
// failures are reported as warnings and yield an empty dataset.
func loadDataset(cmd *cobra.Command, path string) *parser.Dataset {
	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "Reading %s\n", path)

	ds, err := parser.ParseFile(path, cfg.Schema())
	if err != nil {
		switch {
		case errors.Is(err, parser.ErrFileNotFound):
			fmt.Fprintf(stderr, "⚠ Warning: %v\n", err)
		case errors.Is(err, parser.ErrFileUnreadable):
			fmt.Fprintf(stderr, "⚠ Warning: could not open the file: %v\n", err)
		default:
			fmt.Fprintf(stderr, "⚠ Warning: %v\n", err)
		}
		logger.Debug("parse failed", slog.String("path", path), slog.Any("err", err))
		return ds
	}
	logger.Debug("parsed listings",
		slog.String("path", path),
		slog.Int("lines", ds.Lines),
		slog.Int("records", ds.Len()),
		slog.Int("skipped", ds.Skipped),
		slog.Int("too_few_fields", ds.SkipReasons[parser.SkipTooFewFields]),
		slog.Int("non_numeric", ds.SkipReasons[parser.SkipNonNumeric]),
		slog.Int("unreadable", ds.SkipReasons[parser.SkipUnreadable]),
	)
	return ds
}
