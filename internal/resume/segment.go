package resume

import (
	"regexp"
	"sort"
	"strings"
)

// MaxHeaderLineLen is the exclusive upper bound on the trimmed length of a
// line accepted as a section header. Longer lines are treated as prose that
// happens to contain a section word.
const MaxHeaderLineLen = 50

// HeaderRule lists the literal headers that open a section. Synonyms are
// matched case-sensitively on word boundaries and tried in order.
type HeaderRule struct {
	Section  Section
	Synonyms []string
}

// DefaultHeaderRules is the recognized header vocabulary. Rule order breaks
// ties between headers found at the same offset.
var DefaultHeaderRules = []HeaderRule{
	{Section: SectionEducation, Synonyms: []string{"EDUCATION", "ACADEMIC BACKGROUND", "QUALIFICATIONS", "Education", "Academic Background"}},
	{Section: SectionExperience, Synonyms: []string{"EXPERIENCE", "WORK EXPERIENCE", "PROFESSIONAL EXPERIENCE", "EMPLOYMENT HISTORY", "Experience", "Work Experience"}},
	{Section: SectionSkills, Synonyms: []string{"SKILLS", "TECHNICAL SKILLS", "CORE COMPETENCIES", "TECHNOLOGIES", "Skills", "Technical Skills"}},
	{Section: SectionProjects, Synonyms: []string{"PROJECTS", "ACADEMIC PROJECTS", "PERSONAL PROJECTS", "Projects", "Key Projects"}},
	{Section: SectionCertifications, Synonyms: []string{"CERTIFICATIONS", "CERTIFICATES", "COURSES", "Certifications", "Certificates"}},
}

// Segmenter splits normalized resume text into sections. It holds only
// compiled patterns and is safe for concurrent use.
type Segmenter struct {
	rules []compiledRule
}

type compiledRule struct {
	section  Section
	patterns []*regexp.Regexp
}

type headerHit struct {
	offset  int
	section Section
	rule    int
}

// NewSegmenter compiles rules. Rules naming SectionOther are ignored since
// other only ever receives headerless text.
func NewSegmenter(rules []HeaderRule) *Segmenter {
	s := &Segmenter{}
	for _, rule := range rules {
		if rule.Section == SectionOther {
			continue
		}
		cr := compiledRule{section: rule.Section}
		for _, syn := range rule.Synonyms {
			if strings.TrimSpace(syn) == "" {
				continue
			}
			cr.patterns = append(cr.patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(syn)+`\b`))
		}
		s.rules = append(s.rules, cr)
	}
	return s
}

var defaultSegmenter = NewSegmenter(DefaultHeaderRules)

// Segment splits text with DefaultHeaderRules.
func Segment(text string) Sections {
	return defaultSegmenter.Segment(text)
}

// Segment finds at most one header per section, orders the headers by
// position and assigns each section the text between its header line and the
// next header. Text before the first header is not assigned. When no header
// is found the whole text goes to other.
func (s *Segmenter) Segment(text string) Sections {
	out := NewSections()

	hits := s.findHeaders(text)
	if len(hits) == 0 {
		out[SectionOther] = text
		return out
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].offset != hits[j].offset {
			return hits[i].offset < hits[j].offset
		}
		return hits[i].rule < hits[j].rule
	})

	for i, hit := range hits {
		end := len(text)
		if i+1 < len(hits) {
			end = hits[i+1].offset
		}
		out[hit.section] = stripHeaderLine(text[hit.offset:end])
	}
	return out
}

func (s *Segmenter) findHeaders(text string) []headerHit {
	var hits []headerHit
	for ruleIdx, rule := range s.rules {
		if offset, ok := firstHeader(text, rule.patterns); ok {
			hits = append(hits, headerHit{offset: offset, section: rule.section, rule: ruleIdx})
		}
	}
	return hits
}

// firstHeader returns the offset of the first match, trying synonyms in
// order, whose containing line is short enough to be a header.
func firstHeader(text string, patterns []*regexp.Regexp) (int, bool) {
	for _, re := range patterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if len(containingLine(text, loc[0], loc[1])) < MaxHeaderLineLen {
				return loc[0], true
			}
		}
	}
	return 0, false
}

func containingLine(text string, start, end int) string {
	lineStart := strings.LastIndexByte(text[:start], '\n') + 1
	lineEnd := len(text)
	if idx := strings.IndexByte(text[end:], '\n'); idx >= 0 {
		lineEnd = end + idx
	}
	return strings.TrimSpace(text[lineStart:lineEnd])
}

func stripHeaderLine(chunk string) string {
	chunk = strings.TrimSpace(chunk)
	idx := strings.IndexByte(chunk, '\n')
	if idx < 0 {
		// Inline header such as "Skills: Go, SQL" keeps the whole line.
		return chunk
	}
	return strings.TrimSpace(chunk[idx:])
}
