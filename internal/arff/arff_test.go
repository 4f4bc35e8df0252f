package arff

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sample = `@relation proteins
% generated
@attribute ID string
@attribute KF9.1 numeric
@attribute BLOSUM2.1 numeric
@attribute Class {Positive,Negative}

@DATA
A,5,?,Positive
% a comment row

A,?,9,Positive
B,1,2,Negative
`

func TestParse_HeaderSchemaAndRecords(t *testing.T) {
	ds, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(ds.Header) != 7 {
		t.Fatalf("header lines = %d, want 7: %q", len(ds.Header), ds.Header)
	}
	if ds.Header[0] != "@relation proteins\n" {
		t.Fatalf("header not verbatim: %q", ds.Header[0])
	}
	want := []Field{
		{Name: "ID", Raw: "ID"},
		{Name: "KF9_1", Raw: "KF9.1"},
		{Name: "BLOSUM2_1", Raw: "BLOSUM2.1"},
		{Name: "Class", Raw: "Class"},
	}
	if diff := cmp.Diff(want, ds.Schema.Fields); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
	if len(ds.Records) != 3 {
		t.Fatalf("records = %d, want 3", len(ds.Records))
	}
	if got := ds.Records[1].Get("BLOSUM2_1"); got != "9" {
		t.Fatalf("BLOSUM2_1 = %q, want 9", got)
	}
	if got := ds.Records[1].Get("BLOSUM2.1"); got != "9" {
		t.Fatalf("raw name lookup = %q, want 9", got)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no data marker", "@attribute ID string\nA\n", "missing @data"},
		{"no attributes", "@relation x\n@data\nA\n", "no @attribute"},
		{"duplicate attribute", "@attribute a.b string\n@attribute a_b string\n@data\n", "duplicate attribute"},
		{"short row", "@attribute ID string\n@attribute Class string\n@data\nA,Positive\nB\n", "line 5"},
	}
	for _, c := range cases {
		_, err := Parse(strings.NewReader(c.in))
		if err == nil {
			t.Errorf("%s: expected error", c.name)
			continue
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Errorf("%s: error %q does not mention %q", c.name, err, c.want)
		}
	}
}

func TestRecordWith_DoesNotMutate(t *testing.T) {
	ds, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	orig := ds.Records[0]
	mod := orig.With(map[string]string{"Class": "Negative", "KF9.1": "7", "nope": "x"})
	if orig.Get("Class") != "Positive" || orig.Get("KF9_1") != "5" {
		t.Fatalf("original mutated: %v", orig.Values())
	}
	if diff := cmp.Diff([]string{"A", "7", "?", "Negative"}, mod.Values()); diff != "" {
		t.Fatalf("modified record (-want +got):\n%s", diff)
	}
}

func TestNewRecord_CountMismatch(t *testing.T) {
	s, err := BuildSchema([]string{"@attribute ID string\n", "@attribute Class string\n"})
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if _, err := NewRecord(s, []string{"A"}); err == nil {
		t.Fatalf("expected count mismatch error")
	}
}

func TestWrite_HeaderVerbatimThenRows(t *testing.T) {
	ds, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, ds.Header, ds.Records[2:]); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "@relation proteins\n% generated\n@attribute ID string\n@attribute KF9.1 numeric\n" +
		"@attribute BLOSUM2.1 numeric\n@attribute Class {Positive,Negative}\n\n@data\nB,1,2,Negative\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}
