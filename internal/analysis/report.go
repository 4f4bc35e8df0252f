package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV serializes the table, one row per identifier in first-seen order.
// Each tracked attribute contributes <raw>_miss, <raw>_present and <raw>_value columns.
func WriteCSV(w io.Writer, idField string, t *Table) error {
	cw := csv.NewWriter(w)
	head := []string{idField, "total_freq", "pos_freq", "neg_freq"}
	for _, ta := range t.Tracked {
		head = append(head, ta.Raw+"_miss", ta.Raw+"_present", ta.Raw+"_value")
	}
	if err := cw.Write(head); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	row := make([]string, 0, len(head))
	for _, id := range t.order {
		a := t.byID[id]
		row = row[:0]
		row = append(row, id,
			strconv.Itoa(a.TotalFreq),
			strconv.Itoa(a.PosFreq),
			strconv.Itoa(a.NegFreq))
		for _, ta := range t.Tracked {
			occ := a.Attrs[ta.Name]
			row = append(row, strconv.Itoa(occ.Missing), strconv.Itoa(occ.Present), occ.Value)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write report row %s: %w", id, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
