package dataset

import (
	"fmt"
	"hybrid-guard/ai"
	"hybrid-guard/domain"
	"hybrid-guard/errors"
	"hybrid-guard/schema"
	"log/slog"
	"strconv"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/samber/lo"
)

// Text corpus headers (Enron spam dataset).
const (
	SubjectColumn  = "Subject"
	MessageColumn  = "Message"
	SpamHamColumn  = "Spam/Ham"
	ResultColumn   = "Result"
	phishingResult = -1
)

// Builder assembles the hybrid training table. It owns the vectorizer it fits,
// so the text corpus must be processed before the URL corpus.
type Builder struct {
	log         *slog.Logger
	maxFeatures int
	columnMap   ColumnMap
	vectorizer  *ai.Vectorizer
	schema      schema.Schema
}

func NewBuilder(log *slog.Logger, maxFeatures int, columnMap ColumnMap) *Builder {
	return &Builder{log: log, maxFeatures: maxFeatures, columnMap: columnMap}
}

// Vectorizer returns the vectorizer fitted by BuildFromTextCorpus.
func (b *Builder) Vectorizer() (*ai.Vectorizer, error) {
	if b.vectorizer == nil {
		return nil, errors.ErrVectorizerNotFitted
	}
	return b.vectorizer, nil
}

// Schema is only meaningful once the vectorizer is fitted.
func (b *Builder) Schema() schema.Schema {
	return b.schema
}

// BuildFromTextCorpus fits the vectorizer on the text corpus, then emits
// [tfidf .. , six zero URL features, label] per row. spam is 1, ham is 0.
func (b *Builder) BuildFromTextCorpus(records []Record) (Table, error) {
	if len(records) == 0 {
		return Table{}, fmt.Errorf("text corpus: %w", errors.ErrEmptyCorpus)
	}

	texts := make([]string, len(records))
	labels := make([]float64, len(records))
	for i, r := range records {
		text, label, err := textRow(r)
		if err != nil {
			return Table{}, fmt.Errorf("text corpus row %d: %w", i, err)
		}
		texts[i], labels[i] = text, label
	}

	vectorizer, err := ai.Fit(texts, b.maxFeatures, schema.LabelColumn)
	if err != nil {
		return Table{}, fmt.Errorf("fitting vectorizer: %w", err)
	}
	s, err := schema.New(vectorizer.Vocabulary())
	if err != nil {
		return Table{}, err
	}
	b.vectorizer, b.schema = vectorizer, s
	b.logLanguages(texts)

	table := Table{Columns: s.LabeledColumns(), Rows: make([][]float64, len(texts))}
	for i, text := range texts {
		// URL features are all zero for text samples, see schema.Assemble
		vector, err := s.Assemble(vectorizer.Transform(text), domain.URLFeatureSet{})
		if err != nil {
			return Table{}, fmt.Errorf("text corpus row %d: %w", i, err)
		}
		table.Rows[i] = append(vector, labels[i])
	}
	b.log.Info("Text corpus vectorized", "rows", len(texts), "vocabulary", vectorizer.Width())
	return table, nil
}

// BuildFromURLCorpus emits [V zeros, six pre-computed URL features, label] per row.
// The URL features are read from the corpus, not recomputed from a URL string.
// Result -1 (phishing) is label 1, anything else is 0.
func (b *Builder) BuildFromURLCorpus(records []Record) (Table, error) {
	if b.vectorizer == nil {
		return Table{}, errors.ErrVectorizerNotFitted
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("url corpus: %w", errors.ErrEmptyCorpus)
	}
	if err := b.columnMap.Validate(); err != nil {
		return Table{}, err
	}
	sources := b.columnMap.Sources()

	table := Table{Columns: b.schema.LabeledColumns(), Rows: make([][]float64, len(records))}
	for i, r := range records {
		features, label, err := urlRow(r, sources)
		if err != nil {
			return Table{}, fmt.Errorf("url corpus row %d: %w", i, err)
		}
		vector, err := b.schema.Assemble(b.vectorizer.Zero(), features)
		if err != nil {
			return Table{}, fmt.Errorf("url corpus row %d: %w", i, err)
		}
		table.Rows[i] = append(vector, label)
	}
	b.log.Info("URL corpus assembled", "rows", len(records))
	return table, nil
}

// Build runs the whole offline pipeline: text corpus, URL corpus, merge by name.
func (b *Builder) Build(text, urls []Record) (Table, error) {
	textTable, err := b.BuildFromTextCorpus(text)
	if err != nil {
		return Table{}, err
	}
	urlTable, err := b.BuildFromURLCorpus(urls)
	if err != nil {
		return Table{}, err
	}
	merged, err := Merge(b.schema, textTable, urlTable)
	if err != nil {
		return Table{}, err
	}

	malicious := lo.CountBy(merged.Rows, func(row []float64) bool { return row[len(row)-1] == 1 })
	b.log.Info("Hybrid dataset built",
		"rows", merged.Len(),
		"columns", len(merged.Columns),
		"malicious", malicious,
		"benign", merged.Len()-malicious)
	return merged, nil
}

func textRow(r Record) (string, float64, error) {
	subject, ok := r[SubjectColumn]
	if !ok {
		return "", 0, fmt.Errorf("%w: %q", errors.ErrMissingColumn, SubjectColumn)
	}
	message, ok := r[MessageColumn]
	if !ok {
		return "", 0, fmt.Errorf("%w: %q", errors.ErrMissingColumn, MessageColumn)
	}
	raw, ok := r[SpamHamColumn]
	if !ok {
		return "", 0, fmt.Errorf("%w: %q", errors.ErrMissingColumn, SpamHamColumn)
	}

	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "spam":
		return subject + " " + message, 1, nil
	case "ham":
		return subject + " " + message, 0, nil
	default:
		return "", 0, fmt.Errorf("%w: %q in %q", errors.ErrInvalidLabel, raw, SpamHamColumn)
	}
}

func urlRow(r Record, sources map[string]string) (domain.URLFeatureSet, float64, error) {
	values := make(map[string]int, len(schema.URLColumns))
	for _, column := range schema.URLColumns {
		source := sources[column]
		raw, ok := r[source]
		if !ok {
			return domain.URLFeatureSet{}, 0, fmt.Errorf("%w: %q", errors.ErrMissingColumn, source)
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || v < -1 || v > 1 {
			return domain.URLFeatureSet{}, 0, fmt.Errorf("%w: %q=%q", errors.ErrInvalidFeature, source, raw)
		}
		values[column] = v
	}

	raw, ok := r[ResultColumn]
	if !ok {
		return domain.URLFeatureSet{}, 0, fmt.Errorf("%w: %q", errors.ErrMissingColumn, ResultColumn)
	}
	result, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return domain.URLFeatureSet{}, 0, fmt.Errorf("%w: %q=%q", errors.ErrInvalidLabel, ResultColumn, raw)
	}
	label := 0.0
	if result == phishingResult {
		label = 1
	}
	return domain.URLFeatureSetFromNames(values), label, nil
}

func (b *Builder) logLanguages(texts []string) {
	languages := lo.CountValuesBy(texts, func(text string) string {
		if code := whatlanggo.Detect(text).Lang.Iso6391(); code != "" {
			return code
		}
		return "und"
	})
	b.log.Debug("Text corpus languages", "distribution", languages)
}
