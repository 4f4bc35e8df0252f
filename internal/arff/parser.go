package arff

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
)

var dataTagRe = regexp.MustCompile(`(?i)^@data`)

// Dataset is a fully materialized ARFF file. Header holds every line before
// the @data marker verbatim, line endings included.
type Dataset struct {
	Header  []string
	Schema  *Schema
	Records []Record
}

// ParseFile opens path and parses it as ARFF.
func ParseFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open arff: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads an ARFF header up to the @data marker, then parses the data
// section as CSV rows. Blank lines and '%' comments in the data are skipped.
func Parse(r io.Reader) (*Dataset, error) {
	br := bufio.NewReader(r)
	var header []string
	found := false
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if dataTagRe.MatchString(line) {
				found = true
				break
			}
			header = append(header, line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read header: %w", err)
		}
	}
	if !found {
		return nil, fmt.Errorf("missing @data section")
	}
	schema, err := BuildSchema(header)
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}

	// line numbers reported by csv are relative to the data section
	offset := len(header) + 1

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.Comment = '%'

	ds := &Dataset{Header: header, Schema: schema}
	for {
		row, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read data: %w", err)
		}
		line, _ := cr.FieldPos(0)
		rec, err := NewRecord(schema, row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+offset, err)
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}
