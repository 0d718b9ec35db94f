package search

import (
	"sort"
	"strings"
	"unicode"
)

// Candidate is one searchable chunk. Key is opaque to the scorer.
type Candidate struct {
	Key  string
	Text string
}

type Hit struct {
	Candidate
	Score int
}

// Tokenize lowercases text and splits it on anything that is not a letter or digit.
// Tokens shorter than two runes are dropped.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			out = append(out, f)
		}
	}
	return out
}

// Score counts the distinct query terms present in text.
func Score(queryTerms []string, text string) int {
	present := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		present[tok] = struct{}{}
	}
	seen := make(map[string]struct{})
	score := 0
	for _, term := range queryTerms {
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		if _, ok := present[term]; ok {
			score++
		}
	}
	return score
}

// TopK returns up to k candidates with a positive score, best first.
// Ties keep the candidates' original order.
func TopK(query string, candidates []Candidate, k int) []Hit {
	terms := Tokenize(query)
	if len(terms) == 0 || k <= 0 {
		return nil
	}
	var hits []Hit
	for _, c := range candidates {
		if s := Score(terms, c.Text); s > 0 {
			hits = append(hits, Hit{Candidate: c, Score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}
