package reduce

import (
	"io"
	"log/slog"

	"github.com/KaramelBytes/arffkit/internal/analysis"
	"github.com/KaramelBytes/arffkit/internal/arff"
)

// Tally counts duplicate decisions by outcome.
type Tally struct {
	Positive int
	Negative int
	Dropped  int
}

// Result is the output of one reduction pass.
type Result struct {
	Records []arff.Record
	// Decisions holds one entry per identifier with more than one record.
	Decisions map[string]Label
	Tally     Tally
	// Skipped counts records whose identifier had no usable analysis.
	Skipped int
}

// Reducer collapses duplicate identifiers using a prebuilt analysis table.
type Reducer struct {
	opt analysis.Options
	log *slog.Logger
}

// NewReducer returns a reducer. A nil logger discards warnings.
func NewReducer(opt analysis.Options, log *slog.Logger) *Reducer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Reducer{opt: opt, log: log}
}

// Reduce emits at most one record per identifier, in order of first
// appearance. Singletons pass through unchanged; duplicates are replaced by
// one synthesized record carrying the majority class and the consolidated
// tracked values, or dropped on a tie.
func (r *Reducer) Reduce(records []arff.Record, t *analysis.Table) Result {
	res := Result{Decisions: make(map[string]Label)}
	for _, rec := range records {
		id := rec.Get(r.opt.IDField)
		if _, done := res.Decisions[id]; done {
			continue
		}
		an, ok := t.Get(id)
		total := 0
		if ok {
			total = an.TotalFreq
		}
		switch {
		case total == 1:
			res.Records = append(res.Records, rec)
		case total > 1:
			label := Decide(an.PosFreq, an.NegFreq)
			res.Decisions[id] = label
			if label == Drop {
				res.Tally.Dropped++
				continue
			}
			overrides := map[string]string{r.opt.ClassField: r.classValue(label)}
			for _, ta := range t.Tracked {
				overrides[ta.Name] = an.Attrs[ta.Name].Value
			}
			res.Records = append(res.Records, rec.With(overrides))
			if label == Positive {
				res.Tally.Positive++
			} else {
				res.Tally.Negative++
			}
		default:
			res.Skipped++
			r.log.Warn("identifier has no positive total frequency",
				slog.String("id", id), slog.Int("total_freq", total))
		}
	}
	return res
}

func (r *Reducer) classValue(l Label) string {
	if l == Positive {
		return r.opt.PositiveLabel
	}
	return r.opt.NegativeLabel
}
