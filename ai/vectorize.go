package ai

import (
	"fmt"
	"hybrid-guard/errors"
	"math"
	"sort"

	"github.com/blugelabs/bluge/analysis"
	"github.com/blugelabs/bluge/analysis/lang/en"
	"github.com/blugelabs/bluge/analysis/token"
	"github.com/blugelabs/bluge/analysis/tokenizer"
	"github.com/samber/lo"
)

// DefaultMaxFeatures is the vocabulary size used when none is configured.
const DefaultMaxFeatures = 1000

// Vectorizer maps text onto a fixed vocabulary with TF-IDF weights.
// Once fitted or restored it is never mutated, so it is safe for concurrent use.
type Vectorizer struct {
	vocabulary []string
	index      map[string]int
	idf        []float64
	analyzer   *analysis.Analyzer
}

// VectorizerSnapshot is the persisted form of a fitted vectorizer.
type VectorizerSnapshot struct {
	Vocabulary []string
	IDF        []float64
}

// NewAnalyzer returns the tokenization chain shared by fit and transform:
// unicode words, lower-cased, English stop words removed, single characters dropped.
func NewAnalyzer() *analysis.Analyzer {
	return &analysis.Analyzer{
		Tokenizer: tokenizer.NewUnicodeTokenizer(),
		TokenFilters: []analysis.TokenFilter{
			token.NewLowerCaseFilter(),
			en.StopWordsFilter(),
			token.NewLengthFilter(2, -1),
		},
	}
}

// Fit learns the vocabulary from the text corpus. The maxFeatures most frequent
// terms are kept (ties broken alphabetically) and then sorted alphabetically,
// which is the column order of the text family. Reserved terms never enter the vocabulary.
func Fit(corpus []string, maxFeatures int, reserved ...string) (*Vectorizer, error) {
	if len(corpus) == 0 {
		return nil, errors.ErrEmptyCorpus
	}
	analyzer := NewAnalyzer()
	excluded := lo.SliceToMap(reserved, func(r string) (string, struct{}) { return r, struct{}{} })

	termFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, term := range tokens(analyzer, doc) {
			if _, skip := excluded[term]; skip {
				continue
			}
			termFreq[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				docFreq[term]++
			}
		}
	}
	if len(termFreq) == 0 {
		return nil, errors.ErrEmptyVocabulary
	}

	terms := lo.Keys(termFreq)
	sort.Slice(terms, func(i, j int) bool {
		if termFreq[terms[i]] != termFreq[terms[j]] {
			return termFreq[terms[i]] > termFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if maxFeatures > 0 && len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(corpus))
	idf := lo.Map(terms, func(term string, _ int) float64 {
		return math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	})
	return newVectorizer(terms, idf, analyzer), nil
}

// Restore rebuilds a vectorizer from its snapshot.
func Restore(s VectorizerSnapshot) (*Vectorizer, error) {
	if len(s.Vocabulary) == 0 {
		return nil, errors.ErrVectorizerNotFitted
	}
	if len(s.Vocabulary) != len(s.IDF) {
		return nil, fmt.Errorf("%w: %d terms for %d idf weights",
			errors.ErrWidthMismatch, len(s.Vocabulary), len(s.IDF))
	}
	return newVectorizer(append([]string(nil), s.Vocabulary...), append([]float64(nil), s.IDF...), NewAnalyzer()), nil
}

func newVectorizer(terms []string, idf []float64, analyzer *analysis.Analyzer) *Vectorizer {
	index := make(map[string]int, len(terms))
	for i, t := range terms {
		index[t] = i
	}
	return &Vectorizer{vocabulary: terms, index: index, idf: idf, analyzer: analyzer}
}

func (v *Vectorizer) Snapshot() VectorizerSnapshot {
	return VectorizerSnapshot{
		Vocabulary: v.Vocabulary(),
		IDF:        append([]float64(nil), v.idf...),
	}
}

// Width is V, the vocabulary size.
func (v *Vectorizer) Width() int {
	return len(v.vocabulary)
}

func (v *Vectorizer) Vocabulary() []string {
	return append([]string(nil), v.vocabulary...)
}

// Transform returns the L2-normalized TF-IDF vector of text. Out-of-vocabulary
// terms contribute nothing; text without any known term yields the zero vector.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.vocabulary))
	for _, term := range tokens(v.analyzer, text) {
		if i, ok := v.index[term]; ok {
			vec[i]++
		}
	}

	var norm float64
	for i, count := range vec {
		if count == 0 {
			continue
		}
		vec[i] = count * v.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// Zero is the placeholder text vector for samples whose native family is URL.
func (v *Vectorizer) Zero() []float64 {
	return make([]float64, len(v.vocabulary))
}

func tokens(analyzer *analysis.Analyzer, text string) []string {
	stream := analyzer.Analyze([]byte(text))
	return lo.Map(stream, func(t *analysis.Token, _ int) string { return string(t.Term) })
}
