package reduce

import "fmt"

// Label is the outcome of a duplicate decision.
type Label int

const (
	// Drop means no representative record is kept.
	Drop Label = iota
	Positive
	Negative
)

func (l Label) String() string {
	switch l {
	case Positive:
		return "Positive"
	case Negative:
		return "Negative"
	default:
		return "Drop"
	}
}

// Decide applies the majority vote: ties (including 0-0) drop the identifier,
// otherwise the more frequent class wins.
func Decide(pos, neg int) Label {
	if pos < 0 || neg < 0 {
		panic(fmt.Sprintf("%d positives and %d negatives makes no sense", pos, neg))
	}
	switch {
	case pos == neg:
		return Drop
	case pos > neg:
		return Positive
	default:
		return Negative
	}
}
