package skillgap

import "strings"

// MatchKind classifies one required skill.
type MatchKind int

const (
	Missing MatchKind = iota
	Weak
	Strong
)

// Classification is an engine's verdict for one required skill.
type Classification struct {
	Kind        MatchKind
	MatchedWith string
	Similarity  float64
}

// Engine classifies a required skill against the candidate's skills. Both
// sides arrive lowercased and trimmed, and resumeSkills is never empty.
type Engine interface {
	Name() string
	Classify(required string, resumeSkills []string) Classification
}

const (
	DefaultStrongThreshold = 0.9
	DefaultWeakThreshold   = 0.4

	ngramMin = 2
	ngramMax = 4
)

// NGramEngine scores similarity as the cosine of TF-IDF vectors over
// word-bounded character 2..4-grams, fitted per required skill on the
// required skill plus all resume skills.
type NGramEngine struct {
	StrongThreshold float64
	WeakThreshold   float64
}

// NewNGramEngine returns an engine with the given weak threshold and the
// default strong threshold. Non-positive values take the defaults.
func NewNGramEngine(weakThreshold float64) *NGramEngine {
	if weakThreshold <= 0 || weakThreshold >= DefaultStrongThreshold {
		weakThreshold = DefaultWeakThreshold
	}
	return &NGramEngine{StrongThreshold: DefaultStrongThreshold, WeakThreshold: weakThreshold}
}

func (e *NGramEngine) Name() string { return "ngram" }

// Similarities returns the cosine similarity of required to each resume skill.
func (e *NGramEngine) Similarities(required string, resumeSkills []string) []float64 {
	corpus := make([]string, 0, len(resumeSkills)+1)
	corpus = append(corpus, required)
	corpus = append(corpus, resumeSkills...)
	vecs := tfidfVectors(corpus, ngramMin, ngramMax)

	sims := make([]float64, len(resumeSkills))
	for i := range resumeSkills {
		sims[i] = dot(vecs[0], vecs[i+1])
	}
	return sims
}

func (e *NGramEngine) Classify(required string, resumeSkills []string) Classification {
	sims := e.Similarities(required, resumeSkills)
	best := -1
	for i, s := range sims {
		if best < 0 || s > sims[best] {
			best = i
		}
	}
	if best < 0 {
		return Classification{Kind: Missing}
	}
	// Guard float drift on identical vectors.
	sim := min(sims[best], 1)
	switch {
	case sim >= e.StrongThreshold:
		return Classification{Kind: Strong, MatchedWith: resumeSkills[best], Similarity: sim}
	case sim >= e.WeakThreshold:
		return Classification{Kind: Weak, MatchedWith: resumeSkills[best], Similarity: sim}
	default:
		return Classification{Kind: Missing}
	}
}

// SubstringEngine is the lexical fallback: equality is strong, containment
// in either direction is weak. It reports no similarity value.
type SubstringEngine struct{}

func (SubstringEngine) Name() string { return "substring" }

func (SubstringEngine) Classify(required string, resumeSkills []string) Classification {
	for _, s := range resumeSkills {
		if s == required {
			return Classification{Kind: Strong, MatchedWith: s}
		}
	}
	for _, s := range resumeSkills {
		if strings.Contains(s, required) || strings.Contains(required, s) {
			return Classification{Kind: Weak, MatchedWith: s}
		}
	}
	return Classification{Kind: Missing}
}

// EngineByName resolves a configured engine name, defaulting to ngram.
func EngineByName(name string, weakThreshold float64) Engine {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "substring", "fallback":
		return SubstringEngine{}
	default:
		return NewNGramEngine(weakThreshold)
	}
}
