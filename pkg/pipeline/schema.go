package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"autovalue/pkg/dataprep"
)

// Schema is the frozen, ordered list of feature columns a model was trained
// on. It also carries the typed lookups built from that list, so callers
// never assemble column names by hand.
type Schema struct {
	columns []string
	index   map[string]int
	dummies map[string]map[string]int // field -> category value -> column index
}

// NewSchema validates and indexes an ordered column list. Column names must
// be non-empty and distinct. The input slice is copied.
func NewSchema(columns []string) (*Schema, error) {
	if len(columns) == 0 {
		return nil, errors.New("schema: no columns")
	}
	s := &Schema{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
		dummies: map[string]map[string]int{},
	}
	for i, c := range s.columns {
		if strings.TrimSpace(c) == "" {
			return nil, fmt.Errorf("schema: column %d is empty", i)
		}
		if _, dup := s.index[c]; dup {
			return nil, fmt.Errorf("schema: duplicate column %q", c)
		}
		s.index[c] = i
	}
	for field := range dataprep.CategoricalFields {
		prefix := dataprep.DummyName(field, "")
		for i, c := range s.columns {
			value, ok := strings.CutPrefix(c, prefix)
			if !ok || value == "" {
				continue
			}
			if s.dummies[field] == nil {
				s.dummies[field] = map[string]int{}
			}
			s.dummies[field][value] = i
		}
	}
	return s, nil
}

// Columns returns a copy of the ordered column names.
func (s *Schema) Columns() []string { return append([]string(nil), s.columns...) }

// Len is the width of every feature vector built against this schema.
func (s *Schema) Len() int { return len(s.columns) }

// Index returns the position of a column, or false when the schema lacks it.
func (s *Schema) Index(column string) (int, bool) {
	i, ok := s.index[column]
	return i, ok
}

// Dummy returns the position of the one-hot column for field=value. A miss
// means value is either the field's baseline category or was never seen in
// training; the two cases cannot be told apart from the schema alone.
func (s *Schema) Dummy(field, value string) (int, bool) {
	i, ok := s.dummies[field][value]
	return i, ok
}

// DummyColumns returns the positions of every one-hot column of field,
// in schema order.
func (s *Schema) DummyColumns(field string) []int {
	out := make([]int, 0, len(s.dummies[field]))
	for _, i := range s.dummies[field] {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Vector allocates a zeroed feature vector of the schema's width.
func (s *Schema) Vector() []float64 { return make([]float64, len(s.columns)) }
