package resume

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `
        John Doe
        john.doe@example.com
        (123) 456-7890
        linkedin.com/in/johndoe

        EDUCATION
        B.S. Computer Science, University of Tech
        2018 - 2022

        EXPERIENCE
        Software Engineer, Tech Corp
        2022 - Present
        - Built amazing things.

        SKILLS
        Python, JavaScript, SQL
        `

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bullets become spaces", in: "•• Go\n– Rust", want: "Go\n  Rust"},
		{name: "blank lines collapse", in: "a\n\n   \n\nb", want: "a\nb"},
		{name: "trims", in: "  \n hello \n ", want: "hello"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestExtractContact(t *testing.T) {
	info := ExtractContact(Normalize(sampleResume))

	require.NotNil(t, info.Email)
	assert.Equal(t, "john.doe@example.com", *info.Email)
	require.NotNil(t, info.Phone)
	assert.Equal(t, "(123) 456-7890", *info.Phone)
	require.NotEmpty(t, info.Links)
	assert.Contains(t, info.Links[0], "linkedin.com/in/johndoe")
	assert.NotContains(t, info.Links, "john.doe@example.com")
}

func TestExtractContactKeepsDuplicateLinks(t *testing.T) {
	info := ExtractContact("see github.com/jd and github.com/jd again")
	assert.Nil(t, info.Email)
	assert.Nil(t, info.Phone)
	assert.Equal(t, []string{"github.com/jd", "github.com/jd"}, info.Links)
}

func TestExtractContactNoMatches(t *testing.T) {
	info := ExtractContact("nothing to see here")
	assert.Nil(t, info.Email)
	assert.Nil(t, info.Phone)
	assert.NotNil(t, info.Links)
	assert.Empty(t, info.Links)
}

func TestSegmentSections(t *testing.T) {
	sections := Segment(Normalize(sampleResume))

	assert.Len(t, sections, len(AllSections))
	assert.Contains(t, sections[SectionEducation], "B.S. Computer Science")
	assert.Contains(t, sections[SectionExperience], "Software Engineer")
	assert.Contains(t, sections[SectionSkills], "Python, JavaScript")
	assert.NotContains(t, sections[SectionSkills], "SKILLS")
	assert.Empty(t, sections[SectionProjects])
	assert.Empty(t, sections[SectionCertifications])
	assert.Empty(t, sections[SectionOther])
}

func TestSegmentNoHeadersGoesToOther(t *testing.T) {
	text := "Just a paragraph about me.\nNo headers here."
	sections := Segment(text)

	assert.Equal(t, text, sections[SectionOther])
	for _, name := range AllSections[:5] {
		assert.Empty(t, sections[name], name)
	}
}

func TestSegmentRejectsLongHeaderLines(t *testing.T) {
	text := "I have a lot of EXPERIENCE building distributed systems at scale for years\nSKILLS\nGo, Kafka"
	sections := Segment(text)

	assert.Empty(t, sections[SectionExperience])
	assert.Equal(t, "Go, Kafka", sections[SectionSkills])
}

func TestSegmentFirstSynonymWins(t *testing.T) {
	// "Experience" appears first in the text but EXPERIENCE is earlier in the
	// synonym list, so the upper-case header opens the section.
	text := "Experience\nintern work\nEDUCATION\nBSc\nEXPERIENCE\nsenior work"
	sections := Segment(text)

	assert.Equal(t, "senior work", sections[SectionExperience])
	assert.Equal(t, "BSc", sections[SectionEducation])
}

func TestSegmentSingleLineSectionKeepsHeaderLine(t *testing.T) {
	sections := Segment("EDUCATION\nBSc CS\nSkills: Python, Flask, SQL\nPROJECTS\nChat bot built with Flask")
	assert.Equal(t, "BSc CS", sections[SectionEducation])
	assert.Equal(t, "Skills: Python, Flask, SQL", sections[SectionSkills])
	assert.Equal(t, "Chat bot built with Flask", sections[SectionProjects])

	sections = Segment("EDUCATION\nBSc\nSKILLS")
	assert.Equal(t, "BSc", sections[SectionEducation])
	assert.Equal(t, "SKILLS", sections[SectionSkills])
}

func TestSegmentIsIdempotent(t *testing.T) {
	text := Normalize(sampleResume)
	assert.Equal(t, Segment(text), Segment(text))
}

func TestSegmentContentIsSubsequenceOfInput(t *testing.T) {
	text := Normalize(sampleResume)
	sections := Segment(text)

	pos := 0
	for _, name := range []Section{SectionEducation, SectionExperience, SectionSkills} {
		content := sections[name]
		idx := strings.Index(text[pos:], content)
		require.GreaterOrEqual(t, idx, 0, "section %s not found in order", name)
		pos += idx + len(content)
	}
}

func TestCustomRulesUseExplicitOrder(t *testing.T) {
	seg := NewSegmenter([]HeaderRule{
		{Section: SectionSkills, Synonyms: []string{"Toolbox"}},
		{Section: SectionOther, Synonyms: []string{"ignored"}},
	})
	sections := seg.Segment("Intro\nToolbox\nGo, SQL")
	assert.Equal(t, "Go, SQL", sections[SectionSkills])
	assert.Empty(t, sections[SectionOther])
}

func TestParseJoinsPages(t *testing.T) {
	doc := Parse([]string{"Jane Roe\njane@roe.dev\nEDUCATION\nMSc", "SKILLS\nGo, SQL"})

	assert.Equal(t, "Jane Roe\njane@roe.dev\nEDUCATION\nMSc\nSKILLS\nGo, SQL", doc.RawText)
	assert.Equal(t, "MSc", doc.Sections[SectionEducation])
	assert.Equal(t, "Go, SQL", doc.Sections[SectionSkills])
	require.NotNil(t, doc.Contact.Email)
	assert.Equal(t, "jane@roe.dev", *doc.Contact.Email)
}

type stubExtractor struct {
	pages []string
	err   error
}

func (s stubExtractor) ExtractPages(context.Context, []byte, string, string) ([]string, error) {
	return s.pages, s.err
}

func TestParseFileWrapsExtractionErrors(t *testing.T) {
	p := NewParser(stubExtractor{err: errors.New("corrupt xref table")})
	_, err := p.ParseFile(context.Background(), []byte("x"), "application/pdf", "cv.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtraction)
	assert.Contains(t, err.Error(), "corrupt xref table")
}

func TestParseFileSuccess(t *testing.T) {
	p := NewParser(stubExtractor{pages: []string{"PROJECTS\nChat bot"}})
	doc, err := p.ParseFile(context.Background(), nil, "text/plain", "cv.txt")
	require.NoError(t, err)
	assert.Equal(t, "Chat bot", doc.Sections[SectionProjects])
}

func TestSectionsUnmarshalFillsMissingKeys(t *testing.T) {
	var s Sections
	require.NoError(t, s.UnmarshalJSON([]byte(`{"skills":"Go"}`)))
	assert.Len(t, s, len(AllSections))
	assert.Equal(t, "Go", s.Get(SectionSkills))
	assert.Equal(t, "", s.Get(SectionOther))
}
