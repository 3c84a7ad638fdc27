package skillgap

import (
	"maps"
	"math"
	"slices"
	"strings"
)

// charNGrams returns the character n-grams of each whitespace-separated word
// padded with one space on each side, for n in [minN, maxN]. A padded word
// shorter than n contributes itself once.
func charNGrams(text string, minN, maxN int) []string {
	var out []string
	for _, word := range strings.Fields(text) {
		w := []rune(" " + word + " ")
		for n := minN; n <= maxN; n++ {
			offset := 0
			out = append(out, string(w[offset:min(offset+n, len(w))]))
			for offset+n < len(w) {
				offset++
				out = append(out, string(w[offset:offset+n]))
			}
			if offset == 0 {
				break
			}
		}
	}
	return out
}

type sparseVec map[string]float64

// tfidfVectors fits smoothed TF-IDF weights over corpus and returns one
// L2-normalized vector per document:
//
//	idf(t) = ln((1+n)/(1+df(t))) + 1
func tfidfVectors(corpus []string, minN, maxN int) []sparseVec {
	counts := make([]map[string]int, len(corpus))
	df := map[string]int{}
	for i, doc := range corpus {
		tf := map[string]int{}
		for _, g := range charNGrams(strings.ToLower(doc), minN, maxN) {
			tf[g]++
		}
		for g := range tf {
			df[g]++
		}
		counts[i] = tf
	}

	n := float64(len(corpus))
	vecs := make([]sparseVec, len(corpus))
	for i, tf := range counts {
		v := make(sparseVec, len(tf))
		var norm float64
		for _, g := range slices.Sorted(maps.Keys(tf)) {
			w := float64(tf[g]) * (math.Log((1+n)/(1+float64(df[g]))) + 1)
			v[g] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for g := range v {
				v[g] /= norm
			}
		}
		vecs[i] = v
	}
	return vecs
}

// dot sums in sorted n-gram order so the result is reproducible to the last
// bit across runs.
func dot(a, b sparseVec) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for _, g := range slices.Sorted(maps.Keys(a)) {
		sum += a[g] * b[g]
	}
	return sum
}
