package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/arffkit/internal/arff"
)

// Policy selects which non-missing value survives when an identifier's
// records disagree on a tracked attribute.
type Policy string

const (
	// KeepLast keeps the last non-missing value seen in input order.
	KeepLast Policy = "last"
	// KeepFirst keeps the first non-missing value seen in input order.
	KeepFirst Policy = "first"
)

// ParsePolicy accepts "last" or "first" (case-insensitive). Empty means KeepLast.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last":
		return KeepLast, nil
	case "first":
		return KeepFirst, nil
	default:
		return "", fmt.Errorf("unsupported consolidation policy: %s (use last|first)", s)
	}
}

// Options controls how records are grouped, classified and consolidated.
type Options struct {
	// IDField names the grouping key attribute.
	IDField string
	// ClassField names the class label attribute.
	ClassField    string
	PositiveLabel string
	NegativeLabel string
	// MissingToken marks a missing attribute value.
	MissingToken string
	// Tracked lists attributes whose values are consolidated across duplicates.
	Tracked     []string
	Consolidate Policy
}

// DefaultOptions returns the settings used for the KF9/BLOSUM2 datasets.
func DefaultOptions() Options {
	return Options{
		IDField:       "ID",
		ClassField:    "Class",
		PositiveLabel: "Positive",
		NegativeLabel: "Negative",
		MissingToken:  "?",
		Tracked:       []string{"KF9_1", "BLOSUM2_1"},
		Consolidate:   KeepLast,
	}
}

// Validate checks that every attribute the options refer to exists in the schema.
func (o Options) Validate(s *arff.Schema) error {
	need := append([]string{o.IDField, o.ClassField}, o.Tracked...)
	for _, name := range need {
		if _, ok := s.Index(name); !ok {
			return fmt.Errorf("attribute %q not declared in header", name)
		}
	}
	return nil
}
