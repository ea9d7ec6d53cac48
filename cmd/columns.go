package cmd

import (
	"fmt"

	"github.com/KaramelBytes/carstats/internal/parser"
	"github.com/spf13/cobra"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Show which CSV fields feed each numeric column",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := cfg.Schema()
		out := cmd.OutOrStdout()
		for _, name := range parser.ColumnNames {
			idx, _ := s.Index(name)
			fmt.Fprintf(out, "%-10s field %d\n", name, idx)
		}
		fmt.Fprintf(out, "rows need at least %d fields split on %q\n", s.MinFields, s.Delimiter)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}
