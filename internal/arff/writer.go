package arff

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
)

// Write emits header lines verbatim, the @data marker, then one CSV row per record.
func Write(w io.Writer, header []string, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, line := range header {
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if _, err := bw.WriteString("@data\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	cw := csv.NewWriter(bw)
	for _, rec := range records {
		if err := cw.Write(rec.values); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return bw.Flush()
}
