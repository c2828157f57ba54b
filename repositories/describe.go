package repositories

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Describe renders a stored value as a one-line summary, keyed on its key layout.
// It returns the artifact kind and the summary.
func Describe(key string, val []byte) (string, string) {
	switch {
	case key == vectorizerKey:
		var s structpb.Struct
		if proto.Unmarshal(val, &s) != nil {
			return "VECTORIZER", "corrupted"
		}
		vocabulary := toStrings(s.GetFields()["vocabulary"])
		return "VECTORIZER", fmt.Sprintf("%d terms %s", len(vocabulary), preview(vocabulary, 5))
	case key == modelKey:
		var s structpb.Struct
		if proto.Unmarshal(val, &s) != nil {
			return "MODEL", "corrupted"
		}
		f := s.GetFields()
		return "MODEL", fmt.Sprintf("version=%s width=%d columns=%d bias=%.4f trained_at=%s",
			f["version"].GetStringValue(), len(f["weights"].GetListValue().GetValues()),
			len(f["columns"].GetListValue().GetValues()), f["bias"].GetNumberValue(), f["trained_at"].GetStringValue())
	case key == latestTableKey:
		return "POINTER", string(val)
	case strings.HasSuffix(key, ":meta"):
		var s structpb.Struct
		if proto.Unmarshal(val, &s) != nil {
			return "TABLE", "corrupted"
		}
		f := s.GetFields()
		return "TABLE", fmt.Sprintf("%d rows x %d columns, created %s",
			int(f["rows"].GetNumberValue()), len(f["columns"].GetListValue().GetValues()), f["created_at"].GetStringValue())
	case strings.Contains(key, ":row:"):
		var row structpb.ListValue
		if proto.Unmarshal(val, &row) != nil {
			return "ROW", "corrupted"
		}
		values := toNumbers(structpb.NewListValue(&row))
		label := "?"
		if len(values) > 0 {
			label = fmt.Sprintf("%.0f", values[len(values)-1])
		}
		return "ROW", fmt.Sprintf("%d values, label=%s", len(values), label)
	default:
		return "RAW", fmt.Sprintf("%d bytes", len(val))
	}
}

func preview(values []string, n int) string {
	if len(values) <= n {
		return fmt.Sprint(values)
	}
	return fmt.Sprintf("%v...", values[:n])
}
