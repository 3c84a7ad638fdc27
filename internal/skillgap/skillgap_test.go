package skillgap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharNGramsWordBounded(t *testing.T) {
	grams := charNGrams("go", 2, 4)
	// " go " -> 2-grams, 3-grams, then the whole padded word once.
	assert.Equal(t, []string{" g", "go", "o ", " go", "go ", " go "}, grams)

	assert.Equal(t, []string{" a", "a "}, charNGrams("a", 2, 4)[:2])
	assert.Empty(t, charNGrams("   ", 2, 4))
}

func TestNGramEngineIdenticalSkillIsStrong(t *testing.T) {
	e := NewNGramEngine(DefaultWeakThreshold)
	c := e.Classify("python", []string{"react", "python"})
	assert.Equal(t, Strong, c.Kind)
	assert.Equal(t, "python", c.MatchedWith)
	assert.InDelta(t, 1.0, c.Similarity, 1e-9)
}

func TestNGramEngineSimilarity(t *testing.T) {
	e := NewNGramEngine(DefaultWeakThreshold)
	sims := e.Similarities("react", []string{"react.js", "docker"})
	require.Len(t, sims, 2)
	assert.InDelta(t, 0.47, sims[0], 0.01)
	assert.Zero(t, sims[1])
}

func TestAnalyzeBasic(t *testing.T) {
	m := New(nil)
	res := m.Analyze([]string{"Python", "JavaScript", "React"}, []string{"Python", "React", "Docker"})

	assert.Equal(t, []string{"python", "react"}, res.StrongMatches)
	assert.Empty(t, res.WeakMatches)
	assert.Equal(t, []string{"docker"}, res.MissingSkills)
	assert.Equal(t, 66.67, res.MatchPercentage)
}

func TestAnalyzeFuzzyMatch(t *testing.T) {
	m := New(nil)
	res := m.Analyze([]string{"React.js"}, []string{"React"})

	assert.Empty(t, res.MissingSkills)
	if assert.Len(t, res.WeakMatches, 1) {
		w := res.WeakMatches[0]
		assert.Equal(t, "react", w.Skill)
		assert.Equal(t, "react.js", w.MatchedWith)
		assert.GreaterOrEqual(t, w.Similarity, DefaultWeakThreshold)
	}
	assert.Equal(t, 50.0, res.MatchPercentage)
}

func TestAnalyzeEmptyInputs(t *testing.T) {
	m := New(nil)

	res := m.Analyze(nil, []string{" Go ", "SQL"})
	assert.Equal(t, []string{"go", "sql"}, res.MissingSkills)
	assert.Empty(t, res.StrongMatches)
	assert.Zero(t, res.MatchPercentage)

	res = m.Analyze([]string{"go"}, nil)
	assert.Empty(t, res.MissingSkills)
	assert.Zero(t, res.MatchPercentage)

	res = m.Analyze([]string{"", "  "}, []string{"go"})
	assert.Equal(t, []string{"go"}, res.MissingSkills)
}

func TestAnalyzeDedupesRequired(t *testing.T) {
	m := New(SubstringEngine{})
	res := m.Analyze([]string{"go"}, []string{"Go", "go ", "rust"})

	assert.Equal(t, []string{"go"}, res.StrongMatches)
	assert.Equal(t, []string{"rust"}, res.MissingSkills)
	assert.Equal(t, 50.0, res.MatchPercentage)
}

func TestMatchPercentageIdentity(t *testing.T) {
	cases := []struct {
		resume   []string
		required []string
	}{
		{[]string{"python", "flask", "sql"}, []string{"python", "django", "postgresql", "docker"}},
		{[]string{"kubernetes", "terraform"}, []string{"k8s", "terraform", "helm"}},
		{[]string{"node.js", "typescript"}, []string{"node", "javascript", "typescript"}},
	}
	for _, engine := range []Engine{NewNGramEngine(0), SubstringEngine{}} {
		m := New(engine)
		for _, tc := range cases {
			res := m.Analyze(tc.resume, tc.required)
			total := len(res.StrongMatches) + len(res.WeakMatches) + len(res.MissingSkills)
			require.Equal(t, len(tc.required), total)

			score := float64(len(res.StrongMatches)) + 0.5*float64(len(res.WeakMatches))
			want := round2(100 * score / float64(total))
			assert.Equal(t, want, res.MatchPercentage, engine.Name())
			assert.GreaterOrEqual(t, res.MatchPercentage, 0.0)
			assert.LessOrEqual(t, res.MatchPercentage, 100.0)
		}
	}
}

func TestSubstringEngineNeverMissesContainedSkills(t *testing.T) {
	m := New(SubstringEngine{})
	res := m.Analyze([]string{"react.js", "postgres"}, []string{"react", "postgresql", "react.js"})

	assert.Equal(t, []string{"react.js"}, res.StrongMatches)
	assert.Equal(t, []WeakMatch{
		{Skill: "react", MatchedWith: "react.js"},
		{Skill: "postgresql", MatchedWith: "postgres"},
	}, res.WeakMatches)
	assert.Empty(t, res.MissingSkills)
}

func TestEngineByName(t *testing.T) {
	assert.Equal(t, "substring", EngineByName("Substring", 0.4).Name())
	assert.Equal(t, "ngram", EngineByName("", 0.4).Name())
	assert.Equal(t, "ngram", New(EngineByName("unknown", 0.4)).Engine())
}

func TestSplitSkills(t *testing.T) {
	got := SplitSkills("Python, Go; SQL | Docker\n• Kubernetes\n- AWS\n\n")
	assert.Equal(t, []string{"Python", "Go", "SQL", "Docker", "Kubernetes", "AWS"}, got)
	assert.Empty(t, SplitSkills("  "))
}

// The substring engine is not a strict subset of the n-gram engine: short
// skills contained in longer tokens share too few n-grams to reach the weak
// threshold. This table pins where the two engines agree and where they part.
func TestEnginesAgreementOnContainedSkills(t *testing.T) {
	ngram := NewNGramEngine(0)
	sub := SubstringEngine{}

	tests := []struct {
		required  string
		resume    string
		wantNGram MatchKind
	}{
		{"react", "react.js", Weak},
		{"aws", "aws lambda", Weak},
		{"docker", "docker compose", Weak},
		{"postgres", "postgresql", Weak},
		{"python", "python3", Weak},
		{"sql", "postgresql", Missing},
		{"go", "golang", Missing},
		{"java", "javascript", Missing},
		{"git", "github", Missing},
		{"c", "objective-c", Missing},
	}
	for _, tc := range tests {
		t.Run(tc.required+"/"+tc.resume, func(t *testing.T) {
			skills := []string{tc.resume}
			assert.Equal(t, Weak, sub.Classify(tc.required, skills).Kind)
			assert.Equal(t, tc.wantNGram, ngram.Classify(tc.required, skills).Kind)
		})
	}

	for _, skill := range []string{"kubernetes", "react.js", "aws lambda"} {
		assert.Equal(t, Strong, sub.Classify(skill, []string{skill}).Kind)
		assert.Equal(t, Strong, ngram.Classify(skill, []string{skill}).Kind)
	}
}

func TestNGramSimilarityIsReproducible(t *testing.T) {
	e := NewNGramEngine(0)
	resume := []string{"postgresql", "react.js", "aws lambda", "docker compose", "golang"}
	first := e.Similarities("postgres", resume)
	for i := 0; i < 50; i++ {
		require.Equal(t, first, e.Similarities("postgres", resume))
	}
}
