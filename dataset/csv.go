package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"hybrid-guard/errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding/charmap"
)

// Record is one corpus row keyed by header name.
type Record map[string]string

// ReadCSV loads a whole corpus file. See ParseCSV.
func ReadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus: %w", err)
	}
	defer f.Close()

	records, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ParseCSV reads a header line followed by rows. The content must be text;
// valid UTF-8 is kept as is, anything else is decoded as Latin-1, the usual
// encoding of the Enron dump. A row with a wrong number of fields fails the read.
func ParseCSV(r io.Reader) ([]Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	mtype := mimetype.Detect(raw)
	if !strings.HasPrefix(mtype.String(), "text/") {
		return nil, fmt.Errorf("%w: detected %s", errors.ErrUnreadableEncoding, mtype.String())
	}
	if !utf8.Valid(raw) {
		raw, err = charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrUnreadableEncoding, err)
		}
	}
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))

	reader := csv.NewReader(bytes.NewReader(raw))
	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.ErrEmptyCorpus
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	header = trimAll(header)

	var records []Record
	for n := 1; ; n++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", n, err)
		}
		record := make(Record, len(header))
		for i, name := range header {
			record[name] = fields[i]
		}
		records = append(records, record)
	}
	if len(records) == 0 {
		return nil, errors.ErrEmptyCorpus
	}
	return records, nil
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
