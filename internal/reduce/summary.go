package reduce

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/arffkit/internal/analysis"
)

// Summary describes one reduce run for display.
type Summary struct {
	Name       string
	Records    int
	Filtered   int
	IDs        int
	Duplicated int
	Written    int
	Skipped    int
	Tally      Tally
	Warnings   analysis.Warnings
}

// NewSummary collects run figures from the analysis table and reduction result.
func NewSummary(name string, records, filtered int, t *analysis.Table, res Result) Summary {
	return Summary{
		Name:       name,
		Records:    records,
		Filtered:   filtered,
		IDs:        t.Len(),
		Duplicated: t.Duplicated(),
		Written:    len(res.Records),
		Skipped:    res.Skipped,
		Tally:      res.Tally,
		Warnings:   t.Warnings,
	}
}

// Lines renders the three decision counts, one per line.
func (t Tally) Lines() string {
	return fmt.Sprintf("%d sets of ID duplicates reduced with Positive class\n"+
		"%d sets of ID duplicates reduced with Negative class\n"+
		"%d sets of ID duplicates completely removed\n",
		t.Positive, t.Negative, t.Dropped)
}

// Markdown renders a compact block for terminal output.
func (s Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("[DUPLICATE SUMMARY]\n")
	if s.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", s.Name))
	}
	b.WriteString(fmt.Sprintf("Records: %d (all-missing filtered: %d)\n", s.Records, s.Filtered))
	b.WriteString(fmt.Sprintf("Identifiers: %d (duplicated: %d)\n", s.IDs, s.Duplicated))
	b.WriteString(fmt.Sprintf("Rows written: %d\n\n", s.Written))

	b.WriteString("[DECISIONS]\n")
	b.WriteString(s.Tally.Lines())

	if s.Warnings.UnknownClass > 0 || s.Warnings.ValueConflicts > 0 || s.Skipped > 0 {
		b.WriteString("\n[NOTES]\n")
		if s.Warnings.UnknownClass > 0 {
			b.WriteString(fmt.Sprintf("- %d records with an unexpected class label\n", s.Warnings.UnknownClass))
		}
		if s.Warnings.ValueConflicts > 0 {
			b.WriteString(fmt.Sprintf("- %d conflicting tracked attribute values\n", s.Warnings.ValueConflicts))
		}
		if s.Skipped > 0 {
			b.WriteString(fmt.Sprintf("- %d records skipped with no usable analysis\n", s.Skipped))
		}
	}
	return b.String()
}
