package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognicore/playbook/pkg/playbook"
	"github.com/cognicore/playbook/pkg/playbook/export"
	"github.com/cognicore/playbook/pkg/playbook/records"
	"github.com/cognicore/playbook/pkg/playbook/store"
	"github.com/cognicore/playbook/pkg/playbook/store/sqlite"
)

const defaultDB = "playbook.db"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Extract documents and replace the contents of the database",
	Long:  "Extracts records from playbook documents (or reads a previously exported JSON result) and stores them in a SQLite database, replacing whatever it held before.",
	RunE:  runSeed,
}

var (
	seedFlags    docFlags
	seedFromJSON string
	seedDB       string
)

func init() {
	seedFlags.register(seedCmd)
	seedCmd.Flags().StringVar(&seedFromJSON, "from-json", "", "Seed from an exported JSON result instead of documents")
	seedCmd.Flags().StringVar(&seedDB, "db", "", "SQLite database path (env "+envDB+", default "+defaultDB+")")
	seedCmd.MarkFlagsMutuallyExclusive("in", "from-json")
	seedCmd.MarkFlagsOneRequired("in", "from-json")

	rootCmd.AddCommand(seedCmd)
}

func dbPath(flag string) string {
	return firstNonEmpty(flag, os.Getenv(envDB), defaultDB)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var res *playbook.Result
	if seedFromJSON != "" {
		f, err := os.Open(seedFromJSON)
		if err != nil {
			return fmt.Errorf("failed to open result file: %w", err)
		}
		defer f.Close()
		if res, err = export.Read(f); err != nil {
			return err
		}
	} else {
		var err error
		if res, err = seedFlags.extract(ctx); err != nil {
			return err
		}
	}

	st, err := sqlite.OpenSQLite(ctx, dbPath(seedDB))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	report, err := store.Seed(ctx, st, res, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, kind := range records.AllKinds {
		fmt.Fprintf(out, "%-10s inserted %d", kind, report.Inserted[kind])
		if n := report.Failed[kind]; n > 0 {
			fmt.Fprintf(out, ", failed %d", n)
		}
		fmt.Fprintln(out)
	}
	return nil
}
