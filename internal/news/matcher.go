package news

import (
	"strings"

	"trendforge/internal/types"
)

// leadingTokens is how many leading words of a title are checked for an exact term
const leadingTokens = 6

// Matches reports whether title is about the asset: the lower-cased name or
// ticker is one of the first six words of the title, or appears in it as a
// standalone space-bounded word. Substrings never match, so "Canada" is not
// a hit for "ada".
func Matches(title, name, ticker string) bool {
	lower := strings.ToLower(title)
	tokens := strings.Fields(lower)
	if len(tokens) > leadingTokens {
		tokens = tokens[:leadingTokens]
	}
	padded := " " + lower + " "

	for _, term := range queryTerms(name, ticker) {
		for _, tok := range tokens {
			if tok == term {
				return true
			}
		}
		if strings.Contains(padded, " "+term+" ") {
			return true
		}
	}
	return false
}

// Filter keeps the relevant headlines of pool in order, at most limit of them
func Filter(pool []types.Headline, name, ticker string, limit int) []types.Headline {
	out := []types.Headline{}
	for _, h := range pool {
		if limit > 0 && len(out) >= limit {
			break
		}
		if Matches(h.Title, name, ticker) {
			out = append(out, h)
		}
	}
	return out
}

func queryTerms(name, ticker string) []string {
	terms := make([]string, 0, 2)
	for _, t := range []string{name, ticker} {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}
