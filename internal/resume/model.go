package resume

import "encoding/json"

// Section names a recognized part of a resume.
type Section string

const (
	SectionEducation      Section = "education"
	SectionExperience     Section = "experience"
	SectionSkills         Section = "skills"
	SectionProjects       Section = "projects"
	SectionCertifications Section = "certifications"
	SectionOther          Section = "other"
)

// AllSections lists every section in canonical order.
var AllSections = []Section{
	SectionEducation,
	SectionExperience,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
	SectionOther,
}

// Sections maps every section to its content. A Sections built by
// NewSections or Segment always carries all six keys; absent sections
// hold the empty string.
type Sections map[Section]string

// NewSections returns a Sections with every key present and empty.
func NewSections() Sections {
	s := make(Sections, len(AllSections))
	for _, name := range AllSections {
		s[name] = ""
	}
	return s
}

// Get returns the content of a section, or "" when absent.
func (s Sections) Get(name Section) string {
	return s[name]
}

// UnmarshalJSON fills missing keys so decoded values keep the six-key shape.
func (s *Sections) UnmarshalJSON(data []byte) error {
	raw := map[Section]string{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := NewSections()
	for _, name := range AllSections {
		out[name] = raw[name]
	}
	*s = out
	return nil
}

// Contact holds the contact details found anywhere in a document.
type Contact struct {
	Email *string  `json:"email"`
	Phone *string  `json:"phone"`
	Links []string `json:"links"`
}

// Document is the parsed form of one resume. It is not modified after Parse.
type Document struct {
	RawText  string   `json:"rawText"`
	Sections Sections `json:"sections"`
	Contact  Contact  `json:"contact"`
}
