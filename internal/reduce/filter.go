package reduce

import (
	"github.com/KaramelBytes/arffkit/internal/analysis"
	"github.com/KaramelBytes/arffkit/internal/arff"
)

// AllAttrsMissing reports whether every value other than the identifier and
// class is the missing token.
func AllAttrsMissing(rec arff.Record, opt analysis.Options) bool {
	idIdx, classIdx := -1, -1
	if i, ok := rec.Schema().Index(opt.IDField); ok {
		idIdx = i
	}
	if i, ok := rec.Schema().Index(opt.ClassField); ok {
		classIdx = i
	}
	for i, v := range rec.Values() {
		if i == idIdx || i == classIdx {
			continue
		}
		if v != opt.MissingToken {
			return false
		}
	}
	return true
}

// DropAllMissing returns the records that carry at least one real attribute
// value, and how many were removed.
func DropAllMissing(records []arff.Record, opt analysis.Options) ([]arff.Record, int) {
	kept := make([]arff.Record, 0, len(records))
	for _, rec := range records {
		if AllAttrsMissing(rec, opt) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept, len(records) - len(kept)
}
