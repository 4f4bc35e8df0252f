package arff

import (
	"fmt"
	"regexp"
	"strings"
)

var attributeRe = regexp.MustCompile(`(?i)^@attribute\s([\w.]+)\s.*`)

// Field is one declared attribute. Name is the normalized form used for
// lookups; Raw is the name exactly as declared in the header.
type Field struct {
	Name string
	Raw  string
}

// Schema is the ordered record shape derived from @attribute declarations.
type Schema struct {
	Fields []Field
	index  map[string]int
}

// FieldName normalizes an attribute name: dots become underscores so
// "KF9.1" and "KF9_1" address the same column.
func FieldName(raw string) string {
	return strings.ReplaceAll(raw, ".", "_")
}

// BuildSchema scans header lines for attribute declarations. Lines that are
// not declarations (@relation, comments, blanks) are ignored.
func BuildSchema(header []string) (*Schema, error) {
	s := &Schema{index: make(map[string]int)}
	for _, line := range header {
		m := attributeRe.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
		if m == nil {
			continue
		}
		f := Field{Name: FieldName(m[1]), Raw: m[1]}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("duplicate attribute %q", f.Raw)
		}
		s.index[f.Name] = len(s.Fields)
		s.Fields = append(s.Fields, f)
	}
	if len(s.Fields) == 0 {
		return nil, fmt.Errorf("no @attribute declarations in header")
	}
	return s, nil
}

// Index returns the column position of a field, accepting raw or normalized names.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[FieldName(name)]
	return i, ok
}

// Raw returns the declared name for a field, or name itself if unknown.
func (s *Schema) Raw(name string) string {
	if i, ok := s.Index(name); ok {
		return s.Fields[i].Raw
	}
	return name
}

func (s *Schema) Len() int { return len(s.Fields) }

// Record is one data row bound to its schema. Records are values: With
// returns a modified copy and never touches the receiver.
type Record struct {
	schema *Schema
	values []string
}

// NewRecord binds values to a schema. The value count must match.
func NewRecord(s *Schema, values []string) (Record, error) {
	if len(values) != s.Len() {
		return Record{}, fmt.Errorf("got %d values, schema has %d attributes", len(values), s.Len())
	}
	v := make([]string, len(values))
	copy(v, values)
	return Record{schema: s, values: v}, nil
}

func (r Record) Schema() *Schema { return r.schema }

// Get returns the named field's value, or "" if the schema has no such field.
func (r Record) Get(name string) string {
	if i, ok := r.schema.Index(name); ok {
		return r.values[i]
	}
	return ""
}

// Values returns a copy of the row in schema order.
func (r Record) Values() []string {
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

// With returns a copy of r with the given fields replaced. Unknown names are ignored.
func (r Record) With(overrides map[string]string) Record {
	v := r.Values()
	for name, val := range overrides {
		if i, ok := r.schema.Index(name); ok {
			v[i] = val
		}
	}
	return Record{schema: r.schema, values: v}
}
