package dataset

import (
	"fmt"
	"hybrid-guard/domain"
	"hybrid-guard/errors"
	"hybrid-guard/schema"
	"os"

	"gopkg.in/yaml.v3"
)

// ColumnMap maps URL corpus column names onto schema column names.
type ColumnMap map[string]string

// DefaultColumnMap matches the headers of the UCI phishing websites dataset.
func DefaultColumnMap() ColumnMap {
	return ColumnMap{
		"having_IPhaving_IP_Address": domain.HavingIPAddress,
		"URLURL_Length":              domain.URLLength,
		"having_At_Symbol":           domain.HavingAtSymbol,
		"double_slash_redirecting":   domain.DoubleSlashRedirecting,
		"Prefix_Suffix":              domain.PrefixSuffix,
		"having_Sub_Domain":          domain.HavingSubDomain,
	}
}

// LoadColumnMap reads a YAML document of `source_column: schema_column` pairs.
func LoadColumnMap(path string) (ColumnMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading column map: %w", err)
	}
	var m ColumnMap
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing column map %s: %w", path, err)
	}
	return m, m.Validate()
}

// Validate checks that every URL column of the schema has exactly one source.
func (m ColumnMap) Validate() error {
	targets := make(map[string]int)
	for _, target := range m {
		targets[target]++
	}
	for _, c := range schema.URLColumns {
		switch targets[c] {
		case 1:
		case 0:
			return fmt.Errorf("%w: no source column for %q", errors.ErrMissingColumn, c)
		default:
			return fmt.Errorf("%w: %q is mapped %d times", errors.ErrSchemaMismatch, c, targets[c])
		}
	}
	if len(m) != len(schema.URLColumns) {
		return fmt.Errorf("%w: column map has %d entries, expected %d",
			errors.ErrSchemaMismatch, len(m), len(schema.URLColumns))
	}
	return nil
}

// Sources inverts the map: schema column -> source column.
func (m ColumnMap) Sources() map[string]string {
	sources := make(map[string]string, len(m))
	for source, target := range m {
		sources[target] = source
	}
	return sources
}
