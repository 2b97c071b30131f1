// Package keywords ranks candidate words of each topic by how close their
// embeddings are to the embedding of the whole topic text.
package keywords

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pders01/factorlab/internal/embeddings"
	"github.com/pders01/factorlab/internal/models"
)

// ErrNoCandidates is returned when a text has no usable words
var ErrNoCandidates = errors.New("no keyword candidates")

// DefaultTopN is the number of keywords kept per topic
const DefaultTopN = 5

const minWordLength = 3

var wordPattern = regexp.MustCompile(`\p{L}+`)

// Embedder turns texts into embedding vectors, one per text in order
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Document is the concatenated text of one topic
type Document struct {
	Topic string
	Text  string
}

// Keyword is one ranked candidate for a topic
type Keyword struct {
	Topic string  `json:"topic"`
	Rank  int     `json:"rank"`
	Word  string  `json:"keyword"`
	Score float64 `json:"score"`
}

// Documents groups dataset rows by topic in order of first appearance
func Documents(ds models.Dataset) []Document {
	var docs []Document
	index := make(map[string]int)

	for _, row := range ds {
		if strings.TrimSpace(row.Text) == "" {
			continue
		}
		i, ok := index[row.Topic]
		if !ok {
			i = len(docs)
			index[row.Topic] = i
			docs = append(docs, Document{Topic: row.Topic})
		}
		if docs[i].Text != "" {
			docs[i].Text += " "
		}
		docs[i].Text += row.Text
	}

	return docs
}

// Candidates returns the unique lower-cased words of text that are long enough
// and not stop words, in order of first appearance
func Candidates(text string) []string {
	var words []string
	seen := make(map[string]bool)

	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if len([]rune(w)) < minWordLength || isStopWord(w) || seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}

	return words
}

// Extract ranks the candidates of doc and keeps the best topN
func Extract(ctx context.Context, e Embedder, doc Document, topN int) ([]Keyword, error) {
	candidates := Candidates(doc.Text)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("topic %q: %w", doc.Topic, ErrNoCandidates)
	}
	if topN < 1 {
		topN = DefaultTopN
	}

	vectors, err := e.Embed(ctx, append([]string{doc.Text}, candidates...))
	if err != nil {
		return nil, fmt.Errorf("topic %q: %w", doc.Topic, err)
	}
	if len(vectors) != len(candidates)+1 {
		return nil, fmt.Errorf("topic %q: expected %d embeddings, got %d", doc.Topic, len(candidates)+1, len(vectors))
	}

	matches, err := embeddings.Rank(vectors[0], vectors[1:], topN)
	if err != nil {
		return nil, fmt.Errorf("topic %q: %w", doc.Topic, err)
	}

	keywords := make([]Keyword, len(matches))
	for i, m := range matches {
		keywords[i] = Keyword{
			Topic: doc.Topic,
			Rank:  i + 1,
			Word:  candidates[m.Index],
			Score: m.Score,
		}
	}
	return keywords, nil
}

// ExtractAll runs Extract for every topic of ds. Topics without candidates
// are skipped; ErrNoCandidates is returned only when every topic is empty.
func ExtractAll(ctx context.Context, e Embedder, ds models.Dataset, topN int) ([]Keyword, error) {
	var all []Keyword
	for _, doc := range Documents(ds) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		kws, err := Extract(ctx, e, doc, topN)
		if errors.Is(err, ErrNoCandidates) {
			continue
		}
		if err != nil {
			return nil, err
		}
		all = append(all, kws...)
	}

	if len(all) == 0 {
		return nil, ErrNoCandidates
	}
	return all, nil
}
