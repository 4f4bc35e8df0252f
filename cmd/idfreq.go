package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/KaramelBytes/arffkit/internal/idfreq"
	"github.com/KaramelBytes/arffkit/internal/utils"
	"github.com/spf13/cobra"
)

var idfreqCmd = &cobra.Command{
	Use:   "idfreq <infile> <outfile>",
	Short: "Count how often each record identifier occurs",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, outPath := args[0], args[1]
		f, err := os.Open(in)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		counts, err := idfreq.Counts(f)
		if err != nil {
			return fmt.Errorf("count identifiers in %s: %w", in, err)
		}
		if err := utils.WriteWith(outPath, func(w io.Writer) error {
			return idfreq.Write(w, counts)
		}); err != nil {
			return fmt.Errorf("write frequencies: %w", err)
		}
		logger.Debug("counted identifiers", "file", in, "distinct", len(counts))
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d identifier counts to %s\n", len(counts), outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(idfreqCmd)
}
