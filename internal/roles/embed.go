package roles

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// DefaultDimension is the vector size produced by the built-in embedders.
const DefaultDimension = 384

// Embedder turns text into a fixed-size vector.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(text string) []float32
}

// NGramEmbedder hashes whole words and their space-padded character
// trigrams into a signed feature vector, then L2-normalizes it.
type NGramEmbedder struct {
	dim int
}

func NewNGramEmbedder(dim int) *NGramEmbedder {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &NGramEmbedder{dim: dim}
}

func (e *NGramEmbedder) Name() string   { return "ngram" }
func (e *NGramEmbedder) Dimension() int { return e.dim }

func (e *NGramEmbedder) Embed(text string) []float32 {
	vec := make([]float64, e.dim)
	for _, word := range tokenize(text) {
		addFeature(vec, "w:"+word, 1)
		padded := []rune(" " + word + " ")
		for i := 0; i+3 <= len(padded); i++ {
			addFeature(vec, "c:"+string(padded[i:i+3]), 0.5)
		}
	}
	return normalize(vec)
}

// WordEmbedder hashes whole lowercased words only.
type WordEmbedder struct {
	dim int
}

func NewWordEmbedder(dim int) *WordEmbedder {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &WordEmbedder{dim: dim}
}

func (e *WordEmbedder) Name() string   { return "words" }
func (e *WordEmbedder) Dimension() int { return e.dim }

func (e *WordEmbedder) Embed(text string) []float32 {
	vec := make([]float64, e.dim)
	for _, word := range tokenize(text) {
		addFeature(vec, "w:"+word, 1)
	}
	return normalize(vec)
}

// EmbedderByName resolves a configured embedder, defaulting to ngram.
func EmbedderByName(name string) Embedder {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "words", "word":
		return NewWordEmbedder(DefaultDimension)
	default:
		return NewNGramEmbedder(DefaultDimension)
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
}

func addFeature(vec []float64, feature string, weight float64) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(feature))
	sum := h.Sum32()
	idx := int(sum % uint32(len(vec)))
	// High bit picks the sign so collisions cancel on average.
	if sum&(1<<31) != 0 {
		weight = -weight
	}
	vec[idx] += weight
}

func normalize(vec []float64) []float32 {
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	out := make([]float32, len(vec))
	if norm == 0 {
		return out
	}
	norm = math.Sqrt(norm)
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out
}

func euclidean(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
