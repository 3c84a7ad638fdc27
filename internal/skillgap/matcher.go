package skillgap

import (
	"math"
	"regexp"
	"strings"
)

// WeakMatch is a required skill that only partially matched a resume skill.
type WeakMatch struct {
	Skill       string  `json:"skill"`
	MatchedWith string  `json:"matchedWith"`
	Similarity  float64 `json:"similarity,omitempty"`
}

// Result is the outcome of comparing resume skills with required skills.
type Result struct {
	StrongMatches   []string    `json:"strongMatches"`
	WeakMatches     []WeakMatch `json:"weakMatches"`
	MissingSkills   []string    `json:"missingSkills"`
	MatchPercentage float64     `json:"matchPercentage"`
}

// Matcher classifies required skills with its engine. It holds no mutable
// state and is safe for concurrent use.
type Matcher struct {
	engine Engine
}

// New returns a matcher backed by engine, or by the n-gram engine when nil.
func New(engine Engine) *Matcher {
	if engine == nil {
		engine = NewNGramEngine(DefaultWeakThreshold)
	}
	return &Matcher{engine: engine}
}

// Engine reports the active engine name.
func (m *Matcher) Engine() string { return m.engine.Name() }

// Analyze compares resumeSkills against requiredSkills. Both lists are
// lowercased and trimmed; blank entries are dropped and duplicate required
// skills are counted once.
func (m *Matcher) Analyze(resumeSkills, requiredSkills []string) Result {
	resume := normalizeSkills(resumeSkills, false)
	required := normalizeSkills(requiredSkills, true)

	res := Result{
		StrongMatches: []string{},
		WeakMatches:   []WeakMatch{},
		MissingSkills: []string{},
	}
	if len(resume) == 0 {
		res.MissingSkills = append(res.MissingSkills, required...)
		return res
	}

	for _, req := range required {
		c := m.engine.Classify(req, resume)
		switch c.Kind {
		case Strong:
			res.StrongMatches = append(res.StrongMatches, req)
		case Weak:
			res.WeakMatches = append(res.WeakMatches, WeakMatch{
				Skill:       req,
				MatchedWith: c.MatchedWith,
				Similarity:  round2(c.Similarity),
			})
		default:
			res.MissingSkills = append(res.MissingSkills, req)
		}
	}

	if len(required) > 0 {
		score := float64(len(res.StrongMatches)) + 0.5*float64(len(res.WeakMatches))
		res.MatchPercentage = round2(100 * score / float64(len(required)))
	}
	return res
}

func normalizeSkills(in []string, dedupe bool) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if dedupe {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
		}
		out = append(out, s)
	}
	return out
}

var skillSeparators = regexp.MustCompile(`[,;|\n\x{2022}\x{00B7}]+`)

// SplitSkills breaks a free-form skills section into individual entries.
func SplitSkills(section string) []string {
	var out []string
	for _, part := range skillSeparators.Split(section, -1) {
		part = strings.Trim(strings.TrimSpace(part), "-*")
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
