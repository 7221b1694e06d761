// Package stats implements the small set of ranking and quantile
// primitives the extract builders depend on. The tie-breaking and
// degenerate-bucket behavior is part of the output contract, so it is
// spelled out here instead of being left to a library default.
package stats

import (
	"math"
	"sort"
)

// QuantileEdges returns the q+1 bucket boundaries of values at
// probabilities 0, 1/q, ..., 1, using linear interpolation over the
// sorted data.
func QuantileEdges(values []float64, q int) []float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	edges := make([]float64, 0, q+1)
	n := len(sorted)
	for i := 0; i <= q; i++ {
		p := float64(i) / float64(q)
		h := p * float64(n-1)
		lo := int(math.Floor(h))
		hi := lo + 1
		if hi >= n {
			edges = append(edges, sorted[n-1])
			continue
		}
		frac := h - float64(lo)
		edges = append(edges, sorted[lo]+frac*(sorted[hi]-sorted[lo]))
	}
	return edges
}

// QuantileScores buckets values into q equal-population groups and returns
// a 1..q score per value (ascending: the highest values score q). Duplicate
// bucket boundaries are merged; if fewer than q distinct buckets survive,
// the split is degenerate and every score is nil. Callers that need the
// inverted orientation (recency) flip the result with InvertScores.
func QuantileScores(values []float64, q int) []*int {
	scores := make([]*int, len(values))
	if len(values) == 0 {
		return scores
	}

	edges := dedupe(QuantileEdges(values, q))
	if len(edges)-1 < q {
		return scores
	}

	for i, v := range values {
		b := bucket(edges, v)
		s := b + 1
		scores[i] = &s
	}
	return scores
}

// InvertScores maps score s to q+1-s in place, so the lowest bucket scores
// highest. Nil scores stay nil.
func InvertScores(scores []*int, q int) {
	for _, s := range scores {
		if s != nil {
			*s = q + 1 - *s
		}
	}
}

// bucket returns the index of the half-open interval (edges[i], edges[i+1]]
// containing v, with the first interval closed on the left.
func bucket(edges []float64, v float64) int {
	last := len(edges) - 2
	for i := 1; i <= last; i++ {
		if v <= edges[i] {
			return i - 1
		}
	}
	return last
}

func dedupe(edges []float64) []float64 {
	out := edges[:0]
	for i, e := range edges {
		if i == 0 || e != out[len(out)-1] {
			out = append(out, e)
		}
	}
	return out
}

// RankFirst assigns each value its 1-based position in ascending order,
// breaking ties by original order. Equal values therefore get distinct
// consecutive ranks, which keeps quantile edges over the ranks unique.
func RankFirst(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] < values[idx[b]]
	})

	ranks := make([]float64, len(values))
	for pos, i := range idx {
		ranks[i] = float64(pos + 1)
	}
	return ranks
}

// MinRankDesc ranks values descending with minimum rank on ties: equal
// values share the rank of their first (best) position, and the next
// distinct value resumes at 1 + the count of strictly greater values.
func MinRankDesc(values []float64) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] > values[idx[b]]
	})

	ranks := make([]int, len(values))
	for pos, i := range idx {
		if pos > 0 && values[i] == values[idx[pos-1]] {
			ranks[i] = ranks[idx[pos-1]]
		} else {
			ranks[i] = pos + 1
		}
	}
	return ranks
}

// MinMaxScale100 rescales values linearly to 0..100. When every value is
// identical the division is undefined; there is no relative ordering to
// express, so all values map to 100.
func MinMaxScale100(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if max == min {
		for i := range out {
			out[i] = 100
		}
		return out
	}
	for i, v := range values {
		out[i] = (v - min) / (max - min) * 100
	}
	return out
}

// Round rounds x half away from zero to the given number of decimals.
// Rounding is presentation only; rounded values never feed back into
// further computation.
func Round(x float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(x*pow) / pow
}
