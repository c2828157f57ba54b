package dataset

import (
	"fmt"
	"hybrid-guard/errors"
	"hybrid-guard/schema"
	"math"
)

// Table is a dense, column-named block of rows.
type Table struct {
	Columns []string
	Rows    [][]float64
}

// Len is the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Merge stacks tables row-wise, aligning every row by column name onto the
// labeled column order of the schema. Columns a table does not carry are 0.
// A column unknown to the schema fails the merge.
func Merge(s schema.Schema, tables ...Table) (Table, error) {
	columns := s.LabeledColumns()
	position := make(map[string]int, len(columns))
	for i, c := range columns {
		position[c] = i
	}

	merged := Table{Columns: columns}
	for ti, t := range tables {
		mapping := make([]int, len(t.Columns))
		for ci, c := range t.Columns {
			p, ok := position[c]
			if !ok {
				return Table{}, fmt.Errorf("%w: table %d carries unknown column %q", errors.ErrSchemaMismatch, ti, c)
			}
			mapping[ci] = p
		}
		for ri, row := range t.Rows {
			if len(row) != len(t.Columns) {
				return Table{}, fmt.Errorf("%w: table %d row %d has %d values for %d columns",
					errors.ErrSchemaMismatch, ti, ri, len(row), len(t.Columns))
			}
			out := make([]float64, len(columns))
			for ci, v := range row {
				if math.IsNaN(v) {
					v = 0
				}
				out[mapping[ci]] = v
			}
			merged.Rows = append(merged.Rows, out)
		}
	}
	return merged, nil
}

// FeaturesAndLabels splits a merged table into the feature matrix and the label vector.
func (t Table) FeaturesAndLabels() ([][]float64, []int, error) {
	labelAt := -1
	for i, c := range t.Columns {
		if c == schema.LabelColumn {
			labelAt = i
		}
	}
	if labelAt != len(t.Columns)-1 {
		return nil, nil, fmt.Errorf("%w: %q must be the last column", errors.ErrMissingColumn, schema.LabelColumn)
	}

	features := make([][]float64, len(t.Rows))
	labels := make([]int, len(t.Rows))
	for i, row := range t.Rows {
		features[i] = row[:labelAt]
		label := row[labelAt]
		if label != 0 && label != 1 {
			return nil, nil, fmt.Errorf("%w: row %d has label %v", errors.ErrInvalidLabel, i, label)
		}
		labels[i] = int(label)
	}
	return features, labels, nil
}
