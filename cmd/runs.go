package cmd

import (
	"fmt"

	"github.com/KaramelBytes/arffkit/internal/store"
	"github.com/spf13/cobra"
)

var runsDB string

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List analysis runs stored with reduce --analysis-db",
	RunE: func(cmd *cobra.Command, args []string) error {
		if runsDB == "" {
			return fmt.Errorf("--db is required")
		}
		st, err := store.Open(runsDB)
		if err != nil {
			return err
		}
		defer st.Close()
		runs, err := st.Runs(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "(no runs)")
			return nil
		}
		for _, r := range runs {
			fmt.Fprintf(out, "- %s: %s (%s) ids=%d positive=%d negative=%d dropped=%d\n",
				r.ID, r.Input, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Identifiers,
				r.Tally.Positive, r.Tally.Negative, r.Tally.Dropped)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().StringVar(&runsDB, "db", "", "SQLite database written by reduce --analysis-db")
}
