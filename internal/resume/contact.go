package resume

import "regexp"

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[\-.\s]?)?(\(?\d{3}\)?[\-.\s]?)?\d{3}[\-.\s]?\d{4}`)
	linkPattern  = regexp.MustCompile(`\b(?:https?://|www\.|[a-zA-Z0-9-]+\.[a-z]{2,})[^\s]*\b`)
)

// ExtractContact finds the first email, the first phone number and every
// URL-like token in text. Links keep their order of appearance and
// duplicates, except that a link equal to the email is dropped.
func ExtractContact(text string) Contact {
	contact := Contact{Links: []string{}}

	if m := emailPattern.FindString(text); m != "" {
		contact.Email = &m
	}
	if m := phonePattern.FindString(text); m != "" {
		contact.Phone = &m
	}
	for _, link := range linkPattern.FindAllString(text, -1) {
		if contact.Email != nil && link == *contact.Email {
			continue
		}
		contact.Links = append(contact.Links, link)
	}
	return contact
}
