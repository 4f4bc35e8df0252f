package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/KaramelBytes/arffkit/internal/analysis"
	"github.com/KaramelBytes/arffkit/internal/arff"
	"github.com/KaramelBytes/arffkit/internal/reduce"
	"github.com/KaramelBytes/arffkit/internal/store"
	"github.com/KaramelBytes/arffkit/internal/utils"
	"github.com/spf13/cobra"
)

var (
	redArffOut     string
	redAnalysisOut string
	redAnalysisDB  string
	redConsolidate string
	redQuiet       bool
)

var reduceCmd = &cobra.Command{
	Use:   "reduce <arff_in>",
	Short: "Reduce duplicate identifiers by majority class vote",
	Long: `Analyze every record sharing an identifier, then write one record per identifier:
singletons pass through unchanged, duplicates collapse into one record with the
majority class and consolidated tracked attributes, and ties are dropped.
Records whose attributes are all missing are left out of the reduced file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if redArffOut == "" && redAnalysisOut == "" && redAnalysisDB == "" {
			return errors.New("no action requested: set --arff-out, --analysis-out or --analysis-db")
		}
		c, err := config()
		if err != nil {
			return err
		}
		opt, err := c.AnalysisOptions()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("consolidate") {
			pol, err := analysis.ParsePolicy(redConsolidate)
			if err != nil {
				return err
			}
			opt.Consolidate = pol
		}

		path := args[0]
		ds, err := arff.ParseFile(path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		logger.Debug("parsed dataset", "file", path, "records", len(ds.Records), "attributes", ds.Schema.Len())

		table, err := analysis.NewAnalyzer(opt, logger).Analyze(ds.Schema, ds.Records)
		if err != nil {
			return err
		}

		// the reduced file leaves out rows with no real attribute values;
		// the analysis above still counted them
		kept, filtered := reduce.DropAllMissing(ds.Records, opt)
		res := reduce.NewReducer(opt, logger).Reduce(kept, table)

		out := cmd.OutOrStdout()
		if redArffOut != "" {
			if err := utils.WriteWith(redArffOut, func(w io.Writer) error {
				return arff.Write(w, ds.Header, res.Records)
			}); err != nil {
				return fmt.Errorf("write reduced arff: %w", err)
			}
			fmt.Fprint(out, res.Tally.Lines())
			if !redQuiet {
				fmt.Fprintf(out, "✓ Wrote %d records to %s\n", len(res.Records), redArffOut)
			}
		}
		if redAnalysisOut != "" {
			if err := utils.WriteWith(redAnalysisOut, func(w io.Writer) error {
				return analysis.WriteCSV(w, opt.IDField, table)
			}); err != nil {
				return fmt.Errorf("write analysis: %w", err)
			}
			if !redQuiet {
				fmt.Fprintf(out, "✓ Wrote analysis of %d identifiers to %s\n", table.Len(), redAnalysisOut)
			}
		}
		if redAnalysisDB != "" {
			st, err := store.Open(redAnalysisDB)
			if err != nil {
				return err
			}
			defer st.Close()
			id, err := st.SaveRun(cmd.Context(), store.Run{Input: path, Tally: res.Tally, Table: table})
			if err != nil {
				return err
			}
			if !redQuiet {
				fmt.Fprintf(out, "✓ Stored run %s in %s\n", id, redAnalysisDB)
			}
		}
		if !redQuiet {
			sum := reduce.NewSummary(filepath.Base(path), len(ds.Records), filtered, table, res)
			fmt.Fprintln(out)
			fmt.Fprint(out, sum.Markdown())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reduceCmd)
	reduceCmd.Flags().StringVar(&redArffOut, "arff-out", "", "path to write the reduced ARFF file")
	reduceCmd.Flags().StringVar(&redAnalysisOut, "analysis-out", "", "path to write the per-identifier analysis (CSV)")
	reduceCmd.Flags().StringVar(&redAnalysisDB, "analysis-db", "", "SQLite database to store the analysis run in")
	reduceCmd.Flags().StringVar(&redConsolidate, "consolidate", "", "which non-missing value wins on conflicts: last|first (overrides config)")
	reduceCmd.Flags().BoolVar(&redQuiet, "quiet", false, "suppress progress and summary output")
}
