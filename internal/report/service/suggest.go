package service

import (
	"sort"
	"strings"
)

const suggestThreshold = 0.6

// suggestHeader returns the header closest to any alias, or "" below the threshold.
func suggestHeader(headers, aliases []string) string {
	best, bestScore := "", 0.0
	for _, h := range headers {
		for _, a := range aliases {
			if s := bestSimilarity(h, NormalizeHeader(a)); s > bestScore {
				best, bestScore = h, s
			}
		}
	}
	if bestScore < suggestThreshold {
		return ""
	}
	return best
}

// bestSimilarity is the larger of plain and token-sorted similarity.
func bestSimilarity(a, b string) float64 {
	x := similarity(a, b)
	if y := similarity(tokenSort(a), tokenSort(b)); y > x {
		return y
	}
	return x
}

// similarity is 1 - distance/maxLen in [0..1], using optimal string alignment distance.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	m := len(ra)
	if len(rb) > m {
		m = len(rb)
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	return 1 - float64(osaDistance(ra, rb))/float64(m)
}

// osaDistance counts insertions, deletions, substitutions and adjacent transpositions.
// Only three rows of the DP matrix are kept.
func osaDistance(a, b []rune) int {
	prev2 := make([]int, len(b)+1)
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			v := minInt(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				v = minInt(v, prev2[j-2]+1)
			}
			cur[j] = v
		}
		prev2, prev, cur = prev, cur, prev2
	}
	return prev[len(b)]
}

func tokenSort(s string) string {
	f := strings.Fields(s)
	sort.Strings(f)
	return strings.Join(f, " ")
}

func minInt(vs ...int) int {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
