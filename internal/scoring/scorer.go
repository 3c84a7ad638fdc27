package scoring

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"resume-reviewer/internal/resume"
)

// ErrInvalidWeights is returned when weights do not sum to 100.
var ErrInvalidWeights = errors.New("scoring weights must be non-negative and sum to 100")

// DefaultExperienceDensity is the fraction of target keywords an experience
// section must contain to score 100. It is a tuning knob, not a derived value.
const DefaultExperienceDensity = 0.5

const (
	maxEvidenceKeywords = 10
	maxEvidenceTerms    = 5
	keywordSuggestTerms = 3
)

var (
	tokenPattern = regexp.MustCompile(`\b\w{3,}\b`)

	formattingSections = []resume.Section{resume.SectionEducation, resume.SectionExperience, resume.SectionSkills}
)

// Config tunes a Scorer. Zero values take the defaults.
type Config struct {
	Weights           Weights
	StopWords         StopWords
	ExperienceDensity float64
}

// Scorer computes compatibility breakdowns. It is stateless after
// construction and safe for concurrent use.
type Scorer struct {
	weights   Weights
	stopWords StopWords
	density   float64
}

// New validates cfg and builds a Scorer.
func New(cfg Config) (*Scorer, error) {
	if cfg.Weights == (Weights{}) {
		cfg.Weights = DefaultWeights()
	}
	if !cfg.Weights.Valid() {
		return nil, ErrInvalidWeights
	}
	if cfg.StopWords == nil {
		cfg.StopWords = BasicStopWords
	}
	if cfg.ExperienceDensity <= 0 {
		cfg.ExperienceDensity = DefaultExperienceDensity
	}
	return &Scorer{weights: cfg.Weights, stopWords: cfg.StopWords, density: cfg.ExperienceDensity}, nil
}

// Weights returns the weights in use.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Keywords returns the distinct lowercased tokens of at least three word
// characters in text, minus stop words, in order of first appearance.
func (s *Scorer) Keywords(text string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if s.stopWords.Has(tok) {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

func (s *Scorer) keywordSet(text string) map[string]struct{} {
	kws := s.Keywords(text)
	set := make(map[string]struct{}, len(kws))
	for _, k := range kws {
		set[k] = struct{}{}
	}
	return set
}

// Score rates doc against the target text (a job description or a
// synthesized role description). It never fails: empty inputs produce
// zero scores.
func (s *Scorer) Score(doc resume.Document, target string) Breakdown {
	targetKeywords := s.Keywords(target)

	b := Breakdown{
		Keywords:       s.scoreKeywords(doc, targetKeywords),
		Experience:     s.scoreExperience(doc.Sections.Get(resume.SectionExperience), targetKeywords),
		Projects:       scoreProjects(doc.Sections.Get(resume.SectionProjects)),
		Certifications: scoreCertifications(doc.Sections.Get(resume.SectionCertifications)),
		Formatting:     scoreFormatting(doc.Sections),
	}

	w := s.weights
	total := float64(w.Keywords)*b.Keywords.Score +
		float64(w.Experience)*b.Experience.Score +
		float64(w.Projects)*b.Projects.Score +
		float64(w.Certifications)*b.Certifications.Score +
		float64(w.Formatting)*b.Formatting.Score
	b.OverallScore = round2(total / 100)
	b.Suggestions = suggestions(b)
	return b
}

func (s *Scorer) scoreKeywords(doc resume.Document, target []string) KeywordScore {
	have := s.keywordSet(doc.RawText + " " + doc.Sections.Get(resume.SectionSkills))

	out := KeywordScore{Matching: []string{}, Missing: []string{}}
	var matched int
	for _, kw := range target {
		if _, ok := have[kw]; ok {
			matched++
			if len(out.Matching) < maxEvidenceKeywords {
				out.Matching = append(out.Matching, kw)
			}
			continue
		}
		if len(out.Missing) < maxEvidenceKeywords {
			out.Missing = append(out.Missing, kw)
		}
	}
	if len(target) > 0 {
		out.Score = math.Min(100*float64(matched)/float64(len(target)), 100)
	}
	return out
}

func (s *Scorer) scoreExperience(section string, target []string) ExperienceScore {
	if strings.TrimSpace(section) == "" {
		return ExperienceScore{Score: 0, Message: "No experience section found."}
	}
	have := s.keywordSet(section)

	out := ExperienceScore{RelevantTerms: []string{}}
	var matched int
	for _, kw := range target {
		if _, ok := have[kw]; ok {
			matched++
			if len(out.RelevantTerms) < maxEvidenceTerms {
				out.RelevantTerms = append(out.RelevantTerms, kw)
			}
		}
	}
	divisor := 1.0
	if len(target) > 0 {
		divisor = float64(len(target)) * s.density
	}
	out.Score = math.Min(100*float64(matched)/divisor, 100)
	return out
}

func scoreProjects(section string) ProjectScore {
	if strings.TrimSpace(section) == "" {
		return ProjectScore{Score: 0, Message: "No projects section found."}
	}
	words := len(strings.Fields(section))
	out := ProjectScore{WordCount: words}
	switch {
	case words > 100:
		out.Score = 100
	case words > 50:
		out.Score = 70
	default:
		out.Score = 40
	}
	return out
}

func scoreCertifications(section string) CertificationScore {
	if strings.TrimSpace(section) == "" {
		return CertificationScore{Score: 0}
	}
	return CertificationScore{Score: 100}
}

func scoreFormatting(sections resume.Sections) FormattingScore {
	out := FormattingScore{MissingSections: []string{}}
	found := 0
	for _, name := range formattingSections {
		if strings.TrimSpace(sections.Get(name)) != "" {
			found++
			continue
		}
		out.MissingSections = append(out.MissingSections, string(name))
	}
	out.Score = 100 * float64(found) / float64(len(formattingSections))
	return out
}

func suggestions(b Breakdown) []string {
	out := []string{}
	if b.Keywords.Score < 70 {
		missing := b.Keywords.Missing
		if len(missing) > keywordSuggestTerms {
			missing = missing[:keywordSuggestTerms]
		}
		out = append(out, "Add more keywords from the job description, especially: "+strings.Join(missing, ", "))
	}
	if b.Experience.Score < 50 {
		out = append(out, "Tailor your experience bullet points to better match the target role's requirements.")
	}
	if b.Projects.Score == 0 {
		out = append(out, "Add a projects section to demonstrate practical application of your skills.")
	}
	if b.Formatting.Score < 100 {
		out = append(out, "Ensure your resume has these standard sections: "+strings.Join(b.Formatting.MissingSections, ", "))
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
