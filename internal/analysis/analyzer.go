package analysis

import (
	"io"
	"log/slog"

	"github.com/KaramelBytes/arffkit/internal/arff"
)

// ValueOccurrences counts how often a tracked attribute was missing or
// present across one identifier's records, and the value kept for it.
type ValueOccurrences struct {
	Missing int
	Present int
	Value   string
}

// Analysis summarizes every record sharing one identifier.
type Analysis struct {
	TotalFreq int
	PosFreq   int
	NegFreq   int
	// Attrs is keyed by normalized attribute name.
	Attrs map[string]*ValueOccurrences
}

// Attr returns the occurrences for a tracked attribute, or nil.
func (a *Analysis) Attr(name string) *ValueOccurrences {
	return a.Attrs[arff.FieldName(name)]
}

// TrackedAttr pairs a normalized attribute name with its declared form.
type TrackedAttr struct {
	Name string
	Raw  string
}

// Warnings counts data-quality findings raised during analysis.
type Warnings struct {
	UnknownClass   int
	ValueConflicts int
}

// Table maps identifiers to their Analysis. Iteration follows the order in
// which identifiers were first seen.
type Table struct {
	Tracked  []TrackedAttr
	Warnings Warnings

	missing string
	order   []string
	byID    map[string]*Analysis
}

// NewTable creates an empty table for the given tracked attributes.
func NewTable(tracked []TrackedAttr, missingToken string) *Table {
	return &Table{
		Tracked: tracked,
		missing: missingToken,
		byID:    make(map[string]*Analysis),
	}
}

// Get returns the analysis for id, if any record carried it.
func (t *Table) Get(id string) (*Analysis, bool) {
	a, ok := t.byID[id]
	return a, ok
}

// IDs returns identifiers in first-seen order.
func (t *Table) IDs() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

func (t *Table) Len() int { return len(t.order) }

// Duplicated counts identifiers seen more than once.
func (t *Table) Duplicated() int {
	n := 0
	for _, a := range t.byID {
		if a.TotalFreq > 1 {
			n++
		}
	}
	return n
}

func (t *Table) getOrCreate(id string) *Analysis {
	if a, ok := t.byID[id]; ok {
		return a
	}
	a := &Analysis{Attrs: make(map[string]*ValueOccurrences, len(t.Tracked))}
	for _, ta := range t.Tracked {
		a.Attrs[ta.Name] = &ValueOccurrences{Value: t.missing}
	}
	t.byID[id] = a
	t.order = append(t.order, id)
	return a
}

// Analyzer builds a Table from one pass over the records.
type Analyzer struct {
	opt Options
	log *slog.Logger
}

// NewAnalyzer returns an analyzer. A nil logger discards warnings.
func NewAnalyzer(opt Options, log *slog.Logger) *Analyzer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Analyzer{opt: opt, log: log}
}

// Analyze scans records once. Unexpected class labels and conflicting
// attribute values are logged and counted but never stop the scan.
func (a *Analyzer) Analyze(schema *arff.Schema, records []arff.Record) (*Table, error) {
	if err := a.opt.Validate(schema); err != nil {
		return nil, err
	}
	tracked := make([]TrackedAttr, 0, len(a.opt.Tracked))
	for _, name := range a.opt.Tracked {
		tracked = append(tracked, TrackedAttr{Name: arff.FieldName(name), Raw: schema.Raw(name)})
	}
	t := NewTable(tracked, a.opt.MissingToken)

	for _, rec := range records {
		id := rec.Get(a.opt.IDField)
		an := t.getOrCreate(id)
		an.TotalFreq++

		switch class := rec.Get(a.opt.ClassField); class {
		case a.opt.PositiveLabel:
			an.PosFreq++
		case a.opt.NegativeLabel:
			an.NegFreq++
		default:
			t.Warnings.UnknownClass++
			a.log.Warn("unexpected class label", slog.String("id", id), slog.String("class", class))
		}

		for _, ta := range t.Tracked {
			occ := an.Attrs[ta.Name]
			value := rec.Get(ta.Name)
			if value == a.opt.MissingToken {
				occ.Missing++
				continue
			}
			occ.Present++
			if occ.Value == a.opt.MissingToken {
				occ.Value = value
				continue
			}
			if value != occ.Value {
				t.Warnings.ValueConflicts++
				a.log.Warn("conflicting attribute values",
					slog.String("id", id),
					slog.String("attribute", ta.Raw),
					slog.String("kept", a.kept(occ.Value, value)),
					slog.String("other", a.other(occ.Value, value)))
				if a.opt.Consolidate != KeepFirst {
					occ.Value = value
				}
			}
		}
	}
	return t, nil
}

func (a *Analyzer) kept(prev, next string) string {
	if a.opt.Consolidate == KeepFirst {
		return prev
	}
	return next
}

func (a *Analyzer) other(prev, next string) string {
	if a.opt.Consolidate == KeepFirst {
		return next
	}
	return prev
}
