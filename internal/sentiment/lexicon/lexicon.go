package lexicon

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"trendforge/internal/interfaces"
	"trendforge/internal/types"
)

// Model scores text by counting positive and negative words. It is built once
// and is safe for concurrent use since the word sets are read-only after New.
type Model struct {
	positive map[string]bool
	negative map[string]bool
	negators map[string]bool
}

var _ interfaces.Classifier = (*Model)(nil)

var ErrEmptyText = errors.New("no words to classify")

func New() *Model {
	return &Model{
		positive: toSet(positiveWords),
		negative: toSet(negativeWords),
		negators: toSet([]string{"not", "no", "never", "without", "fails", "failed"}),
	}
}

// Classify labels text POSITIVE or NEGATIVE by word balance. A preceding
// negator flips the polarity of the next word. The score is 0.5 on a tie and
// approaches 1 as the balance grows.
func (m *Model) Classify(ctx context.Context, text string) (types.Classification, error) {
	words := tokenize(strings.ToLower(text))
	if len(words) == 0 {
		return types.Classification{}, ErrEmptyText
	}

	pos, neg := 0, 0
	for i, w := range words {
		polarity := 0
		switch {
		case m.positive[w]:
			polarity = 1
		case m.negative[w]:
			polarity = -1
		}
		if polarity == 0 {
			continue
		}
		if i > 0 && m.negators[words[i-1]] {
			polarity = -polarity
		}
		if polarity > 0 {
			pos++
		} else {
			neg++
		}
	}

	if pos == neg {
		return types.Classification{Label: types.Positive, Score: 0.5}, nil
	}

	diff := pos - neg
	label := types.Positive
	if diff < 0 {
		label = types.Negative
		diff = -diff
	}
	score := 0.5 + 0.5*float64(diff)/float64(pos+neg+1)
	return types.Classification{Label: label, Score: score}, nil
}

// tokenize splits on anything that is not a letter or digit
func tokenize(text string) []string {
	var words []string
	var cur strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			cur.WriteRune(r)
		} else if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	return words
}

func toSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
