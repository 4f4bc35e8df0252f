package analysis

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/KaramelBytes/arffkit/internal/arff"
)

const header = `@relation proteins
@attribute ID string
@attribute KF9.1 numeric
@attribute BLOSUM2.1 numeric
@attribute Other numeric
@attribute Class {Positive,Negative}
@data
`

func parse(t *testing.T, rows ...string) *arff.Dataset {
	t.Helper()
	ds, err := arff.Parse(strings.NewReader(header + strings.Join(rows, "\n") + "\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return ds
}

func analyze(t *testing.T, opt Options, log *slog.Logger, ds *arff.Dataset) *Table {
	t.Helper()
	tbl, err := NewAnalyzer(opt, log).Analyze(ds.Schema, ds.Records)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return tbl
}

func TestAnalyze_CountsPerIdentifier(t *testing.T) {
	ds := parse(t,
		"A,5,?,1,Positive",
		"A,?,9,1,Positive",
		"B,1,2,1,Negative",
		"C,?,?,1,Positive",
		"C,?,?,1,Negative",
	)
	tbl := analyze(t, DefaultOptions(), nil, ds)

	if diff := cmp.Diff([]string{"A", "B", "C"}, tbl.IDs()); diff != "" {
		t.Fatalf("ids (-want +got):\n%s", diff)
	}
	a, _ := tbl.Get("A")
	want := &Analysis{
		TotalFreq: 2, PosFreq: 2,
		Attrs: map[string]*ValueOccurrences{
			"KF9_1":     {Missing: 1, Present: 1, Value: "5"},
			"BLOSUM2_1": {Missing: 1, Present: 1, Value: "9"},
		},
	}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Fatalf("analysis A (-want +got):\n%s", diff)
	}
	c, _ := tbl.Get("C")
	if c.TotalFreq != 2 || c.PosFreq != 1 || c.NegFreq != 1 {
		t.Fatalf("analysis C = %+v", c)
	}
	if c.Attr("KF9.1").Value != "?" {
		t.Fatalf("all-missing attribute should keep the missing token, got %q", c.Attr("KF9.1").Value)
	}
	if tbl.Duplicated() != 2 {
		t.Fatalf("duplicated = %d, want 2", tbl.Duplicated())
	}

	// missing + present always equals the identifier's total
	for _, id := range tbl.IDs() {
		an, _ := tbl.Get(id)
		for name, occ := range an.Attrs {
			if occ.Missing+occ.Present != an.TotalFreq {
				t.Errorf("%s/%s: missing %d + present %d != total %d", id, name, occ.Missing, occ.Present, an.TotalFreq)
			}
		}
	}
}

func TestAnalyze_UnknownClassCountsTowardTotalOnly(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))
	ds := parse(t,
		"X,1,1,1,Maybe",
		"X,1,1,1,Positive",
		"Y,1,1,1,",
	)
	tbl := analyze(t, DefaultOptions(), log, ds)
	x, _ := tbl.Get("X")
	if x.TotalFreq != 2 || x.PosFreq != 1 || x.NegFreq != 0 {
		t.Fatalf("analysis X = %+v", x)
	}
	y, _ := tbl.Get("Y")
	if y.TotalFreq != 1 || y.PosFreq+y.NegFreq != 0 {
		t.Fatalf("analysis Y = %+v", y)
	}
	if tbl.Warnings.UnknownClass != 2 {
		t.Fatalf("unknown class warnings = %d, want 2", tbl.Warnings.UnknownClass)
	}
	if !strings.Contains(logs.String(), "unexpected class label") || !strings.Contains(logs.String(), "class=Maybe") {
		t.Fatalf("missing structured warning in logs: %s", logs.String())
	}
}

func TestAnalyze_ConflictPolicies(t *testing.T) {
	rows := []string{
		"A,1,?,0,Positive",
		"A,2,?,0,Positive",
		"A,?,?,0,Negative",
		"A,3,?,0,Positive",
	}
	cases := []struct {
		policy Policy
		want   string
	}{
		{KeepLast, "3"},
		{KeepFirst, "1"},
	}
	for _, c := range cases {
		var logs bytes.Buffer
		opt := DefaultOptions()
		opt.Consolidate = c.policy
		tbl := analyze(t, opt, slog.New(slog.NewTextHandler(&logs, nil)), parse(t, rows...))
		a, _ := tbl.Get("A")
		occ := a.Attr("KF9_1")
		if occ.Value != c.want {
			t.Errorf("%s: value = %q, want %q", c.policy, occ.Value, c.want)
		}
		if occ.Present != 3 || occ.Missing != 1 {
			t.Errorf("%s: occurrences = %+v", c.policy, occ)
		}
		if tbl.Warnings.ValueConflicts != 2 {
			t.Errorf("%s: conflicts = %d, want 2", c.policy, tbl.Warnings.ValueConflicts)
		}
		if !strings.Contains(logs.String(), "attribute=KF9.1") {
			t.Errorf("%s: conflict warning should name the declared attribute: %s", c.policy, logs.String())
		}
	}
}

func TestAnalyze_ValidatesAttributes(t *testing.T) {
	opt := DefaultOptions()
	opt.Tracked = []string{"KF9_1", "Missing_Attr"}
	ds := parse(t, "A,1,1,1,Positive")
	if _, err := NewAnalyzer(opt, nil).Analyze(ds.Schema, ds.Records); err == nil {
		t.Fatalf("expected error for undeclared tracked attribute")
	}
}

func TestWriteCSV(t *testing.T) {
	ds := parse(t,
		"C,4,?,0,Positive",
		"C,?,?,0,Negative",
		"A,5,7,0,Positive",
	)
	tbl := analyze(t, DefaultOptions(), nil, ds)
	var buf bytes.Buffer
	if err := WriteCSV(&buf, "ID", tbl); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "ID,total_freq,pos_freq,neg_freq,KF9.1_miss,KF9.1_present,KF9.1_value,BLOSUM2.1_miss,BLOSUM2.1_present,BLOSUM2.1_value\n" +
		"C,2,1,1,1,1,4,2,0,?\n" +
		"A,1,1,0,0,1,5,0,1,7\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("report (-want +got):\n%s", diff)
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{"": KeepLast, "last": KeepLast, "FIRST": KeepFirst} {
		got, err := ParsePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParsePolicy(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParsePolicy("mode"); err == nil {
		t.Errorf("expected error for unknown policy")
	}
}
