package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/playbook/pkg/playbook/records"
	"github.com/cognicore/playbook/pkg/playbook/store/sqlite"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many records of each kind the database holds",
	RunE:  runStats,
}

var statsDB string

func init() {
	statsCmd.Flags().StringVar(&statsDB, "db", "", "SQLite database path (env "+envDB+", default "+defaultDB+")")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	st, err := sqlite.OpenSQLite(ctx, dbPath(statsDB))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	out := cmd.OutOrStdout()
	total := 0
	for _, kind := range records.AllKinds {
		n, err := st.Count(ctx, kind)
		if err != nil {
			return fmt.Errorf("count %s: %w", kind, err)
		}
		total += n
		fmt.Fprintf(out, "%-10s %d\n", kind, n)
	}
	fmt.Fprintf(out, "%-10s %d\n", "total", total)
	return nil
}
