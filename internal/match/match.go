// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match scores candidate titles against a free-text query and
// selects the best match. The scoring constants are load-bearing: cached
// records and downstream acceptance decisions depend on these exact values,
// so they are not configuration.
package match

import (
	"regexp"
	"sort"
	"strings"
)

// Threshold is the minimum final score for a candidate to be accepted.
// Anything below it is reported as "no match", not an error.
const Threshold = 0.3

// queryAllowed matches everything CleanQuery keeps: word characters,
// whitespace, light punctuation, and CJK ideographs.
var queryAllowed = regexp.MustCompile(`[^\w\s\-:,.\x{4e00}-\x{9fff}]`)

var spaces = regexp.MustCompile(`\s+`)

// CleanQuery normalizes a title for searching: collapses whitespace and
// strips characters outside the allow-list.
func CleanQuery(title string) string {
	title = spaces.ReplaceAllString(strings.TrimSpace(title), " ")
	return queryAllowed.ReplaceAllString(title, "")
}

// Score computes the similarity of a candidate title to the query,
// returning a value in [0, 1]. It is a pure function of its inputs.
//
// Evaluation order: exact equality, then literal containment of the query
// in the title (scored by how much longer the title is), then a weighted
// combination of word-set signals: coverage of the query's words, Jaccard
// overlap, length similarity, and a bonus when shared words keep their
// relative order.
func Score(query, title string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	t := strings.ToLower(strings.TrimSpace(title))

	if q == t {
		return 1.0
	}

	qWords := strings.Fields(q)
	tWords := strings.Fields(t)

	if strings.Contains(t, q) {
		var ratio float64
		if len(t) > 0 {
			ratio = float64(len(q)) / float64(len(t))
		}
		delta := len(tWords) - len(qWords)
		switch {
		case delta == 0:
			return 0.98
		case delta <= 1 && ratio > 0.8:
			return 0.95
		case delta <= 2 && ratio > 0.7:
			return 0.85
		case delta <= 3:
			return 0.75
		default:
			return 0.6
		}
	}

	if len(qWords) == 0 || len(tWords) == 0 {
		return 0.0
	}

	qSet := wordSet(qWords)
	tSet := wordSet(tWords)

	intersection := 0
	for w := range qSet {
		if tSet[w] {
			intersection++
		}
	}
	union := len(qSet) + len(tSet) - intersection

	jaccard := 0.0
	if union > 0 {
		jaccard = float64(intersection) / float64(union)
	}
	coverage := float64(intersection) / float64(len(qSet))

	maxLen := len(qWords)
	if len(tWords) > maxLen {
		maxLen = len(tWords)
	}
	lenDiff := len(qWords) - len(tWords)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	length := 1.0 - float64(lenDiff)/float64(maxLen)

	order := orderScore(qWords, tWords, qSet, tSet, intersection)

	score := coverage*0.5 + jaccard*0.3 + length*0.15 + order*0.05

	// Every query word present in the title earns a bonus.
	if coverage >= 1.0 {
		score = min1(score * 1.1)
	}
	return score
}

// orderScore rewards shared words appearing in the same relative order in
// both strings: 0.3 when ordered, 0.1 when any words are shared at all.
func orderScore(qWords, tWords []string, qSet, tSet map[string]bool, intersection int) float64 {
	if intersection == 0 {
		return 0.0
	}

	var qShared []string
	for _, w := range qWords {
		if tSet[w] {
			qShared = append(qShared, w)
		}
	}
	var tShared []string
	for _, w := range tWords {
		if qSet[w] {
			tShared = append(tShared, w)
		}
	}

	if len(qShared) <= 1 {
		return 0.0
	}

	var indices []int
	for _, w := range qShared {
		for i, tw := range tShared {
			if tw == w {
				indices = append(indices, i)
				break
			}
		}
	}
	if len(indices) <= 1 {
		return 0.0
	}
	for i := 1; i < len(indices); i++ {
		if indices[i-1] >= indices[i] {
			return 0.1
		}
	}
	return 0.3
}

// Best returns the index of the highest-scoring title and its score, or
// (-1, 0) when no title reaches the threshold.
func Best(query string, titles []string) (int, float64) {
	best := -1
	bestScore := 0.0
	for i, title := range titles {
		if s := Score(query, title); s > bestScore {
			bestScore = s
			best = i
		}
	}
	if bestScore < Threshold {
		return -1, 0
	}
	return best, bestScore
}

// Candidate pairs a title with its raw and adjusted scores during refined
// selection. It exists only while a winner is being chosen.
type Candidate struct {
	Index     int
	Title     string
	Score     float64
	Adjusted  float64
	WordDelta int
}

// BestRefined selects the best title from a large, noisy candidate set
// (registry-style sources returning up to 50 hits). On top of the base
// score it penalizes titles much longer than the query, rewards
// near-equal lengths, and breaks near-ties among the top three in favor
// of the shorter title that still covers every query word.
func BestRefined(query string, titles []string) (int, float64) {
	qWords := strings.Fields(strings.ToLower(query))

	var candidates []Candidate
	for i, title := range titles {
		score := Score(query, title)
		delta := len(strings.Fields(title)) - len(qWords)

		adjusted := score
		switch {
		case delta > 3:
			adjusted *= 0.7
		case delta > 1:
			adjusted *= 0.9
		}
		if delta >= -1 && delta <= 1 && adjusted > 0.5 {
			adjusted = min1(adjusted * 1.1)
		}

		if adjusted > 0 {
			candidates = append(candidates, Candidate{
				Index:     i,
				Title:     title,
				Score:     score,
				Adjusted:  adjusted,
				WordDelta: delta,
			})
		}
	}
	if len(candidates) == 0 {
		return -1, 0
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Adjusted > candidates[j].Adjusted
	})

	// Near-ties among the top three go to the shorter title covering
	// every query word.
	best := candidates[0]
	top := len(candidates)
	if top > 3 {
		top = 3
	}
	for i := 1; i < top; i++ {
		cand := candidates[i]
		if best.Adjusted-cand.Adjusted < 0.05 && cand.WordDelta < best.WordDelta {
			if covers(qWords, cand.Title) {
				best = cand
			}
		}
	}

	if best.Adjusted < Threshold {
		return -1, 0
	}
	return best.Index, best.Adjusted
}

// covers reports whether every query word appears in the title's word set.
func covers(qWords []string, title string) bool {
	if len(qWords) == 0 {
		return false
	}
	tSet := wordSet(strings.Fields(strings.ToLower(title)))
	for _, w := range qWords {
		if !tSet[w] {
			return false
		}
	}
	return true
}

func wordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func min1(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	return v
}
