package resume

import (
	"regexp"
	"strings"
)

var (
	nonASCIIRun = regexp.MustCompile(`[^\x00-\x7F]+`)
	blankLines  = regexp.MustCompile(`\n\s*\n`)
)

// Normalize replaces runs of non-ASCII characters (bullets, smart quotes)
// with a single space, collapses blank lines and trims the result.
func Normalize(text string) string {
	text = nonASCIIRun.ReplaceAllString(text, " ")
	text = blankLines.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
