package dataset

import (
	"hybrid-guard/errors"
	"hybrid-guard/schema"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMerge_AlignsByName(t *testing.T) {
	req := require.New(t)
	s, err := schema.New([]string{"free", "money"})
	req.NoError(err)

	// same columns in a different order, and a table missing the text family entirely
	reordered := Table{
		Columns: []string{"label", "having_Sub_Domain", "money", "free"},
		Rows:    [][]float64{{1, -1, 0.3, 0.7}},
	}
	partial := Table{
		Columns: []string{"URL_Length", "label"},
		Rows:    [][]float64{{-1, 0}},
	}

	merged, err := Merge(s, reordered, partial)
	req.NoError(err)
	req.Equal(s.LabeledColumns(), merged.Columns)
	req.Equal([][]float64{
		{0.7, 0.3, 0, 0, 0, 0, 0, -1, 1},
		{0, 0, 0, -1, 0, 0, 0, 0, 0},
	}, merged.Rows)
}

func TestMerge_Errors(t *testing.T) {
	req := require.New(t)
	s, err := schema.New([]string{"free"})
	req.NoError(err)

	_, err = Merge(s, Table{Columns: []string{"free", "unknown"}, Rows: [][]float64{{1, 1}}})
	req.ErrorIs(err, errors.ErrSchemaMismatch)

	_, err = Merge(s, Table{Columns: []string{"free", "label"}, Rows: [][]float64{{1}}})
	req.ErrorIs(err, errors.ErrSchemaMismatch)
}

func TestFeaturesAndLabels(t *testing.T) {
	req := require.New(t)

	_, _, err := Table{Columns: []string{"a"}, Rows: [][]float64{{1}}}.FeaturesAndLabels()
	req.ErrorIs(err, errors.ErrMissingColumn)

	_, _, err = Table{Columns: []string{"a", "label"}, Rows: [][]float64{{1, 3}}}.FeaturesAndLabels()
	req.ErrorIs(err, errors.ErrInvalidLabel)

	features, labels, err := Table{Columns: []string{"a", "label"}, Rows: [][]float64{{0.5, 1}}}.FeaturesAndLabels()
	req.NoError(err)
	req.Equal([][]float64{{0.5}}, features)
	req.Equal([]int{1}, labels)
}
