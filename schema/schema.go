// Package schema owns the column order of the hybrid feature vector.
// Both the dataset builder and the scorer assemble vectors through it, so the
// two orderings can never drift apart.
package schema

import (
	"fmt"
	"hybrid-guard/domain"
	"hybrid-guard/errors"
)

const LabelColumn = "label"

// URLColumns is the fixed order of the URL family, appended after the text terms.
var URLColumns = []string{
	domain.HavingIPAddress,
	domain.URLLength,
	domain.HavingAtSymbol,
	domain.DoubleSlashRedirecting,
	domain.PrefixSuffix,
	domain.HavingSubDomain,
}

// Schema is the ordered list [term_1 .. term_V, six URL columns].
type Schema struct {
	terms   []string
	columns []string
	index   map[string]int
}

// FeatureColumns lists [terms.., URL columns] without validating them.
func FeatureColumns(terms []string) []string {
	columns := make([]string, 0, len(terms)+len(URLColumns))
	columns = append(columns, terms...)
	return append(columns, URLColumns...)
}

// New builds the schema from the fitted vocabulary, in vocabulary order.
func New(terms []string) (Schema, error) {
	columns := FeatureColumns(terms)

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; dup {
			return Schema{}, fmt.Errorf("%w: duplicate column %q", errors.ErrSchemaMismatch, c)
		}
		if c == LabelColumn {
			return Schema{}, fmt.Errorf("%w: %q is reserved", errors.ErrSchemaMismatch, c)
		}
		index[c] = i
	}
	return Schema{terms: terms, columns: columns, index: index}, nil
}

// TextWidth is V, the size of the fitted vocabulary.
func (s Schema) TextWidth() int {
	return len(s.terms)
}

// Width is V+6.
func (s Schema) Width() int {
	return len(s.columns)
}

func (s Schema) Columns() []string {
	return append([]string(nil), s.columns...)
}

// LabeledColumns is Columns followed by the label column.
func (s Schema) LabeledColumns() []string {
	return append(s.Columns(), LabelColumn)
}

// FirstMismatch returns the first position where columns differs from the schema
// by name, or -1 when both lists are identical.
func (s Schema) FirstMismatch(columns []string) int {
	for i := 0; i < max(len(columns), len(s.columns)); i++ {
		if i >= len(columns) || i >= len(s.columns) || columns[i] != s.columns[i] {
			return i
		}
	}
	return -1
}

// Index returns the position of a named feature column.
func (s Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Assemble concatenates the text vector and the URL features in schema order.
// Zero-filled families are passed in explicitly by the caller: a fixed-width
// classifier needs every column present, so the family that does not apply to a
// sample is all zeros rather than omitted. A zero is therefore indistinguishable
// from a genuinely absent term when reading feature importances.
func (s Schema) Assemble(text []float64, url domain.URLFeatureSet) ([]float64, error) {
	if len(text) != s.TextWidth() {
		return nil, fmt.Errorf("%w: text vector has width %d, expected %d",
			errors.ErrSchemaMismatch, len(text), s.TextWidth())
	}
	vector := make([]float64, 0, s.Width())
	vector = append(vector, text...)
	byName := url.ByName()
	for _, c := range URLColumns {
		vector = append(vector, float64(byName[c]))
	}
	return vector, nil
}
