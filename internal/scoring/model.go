package scoring

// Weights holds the share of each dimension in the overall score, in
// percentage points. Integer points keep the sum exact.
type Weights struct {
	Keywords       int `json:"keywords"`
	Experience     int `json:"experience"`
	Projects       int `json:"projects"`
	Certifications int `json:"certifications"`
	Formatting     int `json:"formatting"`
}

// DefaultWeights returns the standard 40/30/15/10/5 split.
func DefaultWeights() Weights {
	return Weights{Keywords: 40, Experience: 30, Projects: 15, Certifications: 10, Formatting: 5}
}

// Sum returns the total of all weights.
func (w Weights) Sum() int {
	return w.Keywords + w.Experience + w.Projects + w.Certifications + w.Formatting
}

// Valid reports whether the weights are non-negative and sum to 100.
func (w Weights) Valid() bool {
	for _, v := range []int{w.Keywords, w.Experience, w.Projects, w.Certifications, w.Formatting} {
		if v < 0 {
			return false
		}
	}
	return w.Sum() == 100
}

type KeywordScore struct {
	Score    float64  `json:"score"`
	Matching []string `json:"matchingKeywords"`
	Missing  []string `json:"missingKeywords"`
}

type ExperienceScore struct {
	Score         float64  `json:"score"`
	RelevantTerms []string `json:"relevantTermsFound,omitempty"`
	Message       string   `json:"message,omitempty"`
}

type ProjectScore struct {
	Score     float64 `json:"score"`
	WordCount int     `json:"wordCount"`
	Message   string  `json:"message,omitempty"`
}

type CertificationScore struct {
	Score float64 `json:"score"`
}

type FormattingScore struct {
	Score           float64  `json:"score"`
	MissingSections []string `json:"missingSections"`
}

// Breakdown is the result of scoring one document against one target text.
type Breakdown struct {
	OverallScore   float64            `json:"overallScore"`
	Keywords       KeywordScore       `json:"keywords"`
	Experience     ExperienceScore    `json:"experience"`
	Projects       ProjectScore       `json:"projects"`
	Certifications CertificationScore `json:"certifications"`
	Formatting     FormattingScore    `json:"formatting"`
	Suggestions    []string           `json:"suggestions"`
}
