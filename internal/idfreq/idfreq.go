// Package idfreq counts record identifiers in raw ARFF text.
package idfreq

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
)

// An identifier is the run of uppercase letters at the start of a data line.
// Header directives start with '@' and never match.
var idRe = regexp.MustCompile(`^[A-Z]+`)

// Count holds one identifier and its number of occurrences.
type Count struct {
	ID    string
	Count int
}

// Counts scans r line by line and returns identifier counts in first-seen order.
func Counts(r io.Reader) ([]Count, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	index := map[string]int{}
	var out []Count
	for sc.Scan() {
		id := idRe.FindString(sc.Text())
		if id == "" {
			continue
		}
		if i, ok := index[id]; ok {
			out[i].Count++
			continue
		}
		index[id] = len(out)
		out = append(out, Count{ID: id, Count: 1})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return out, nil
}

// Write emits "id,count" lines.
func Write(w io.Writer, counts []Count) error {
	bw := bufio.NewWriter(w)
	for _, c := range counts {
		if _, err := fmt.Fprintf(bw, "%s,%d\n", c.ID, c.Count); err != nil {
			return err
		}
	}
	return bw.Flush()
}
