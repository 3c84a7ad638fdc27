package roles

import "strings"

// Role is a reference job role in the retrieval corpus.
type Role struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Skills      []string `json:"skills" yaml:"skills"`
}

// Text is the string a role is embedded from.
func (r Role) Text() string {
	return r.Title + " " + r.Description + " " + strings.Join(r.Skills, " ")
}

// Record pairs a role with the vector computed when it was added.
type Record struct {
	Role   Role
	Vector []float32
}

// Match is a search hit. Distance is Euclidean; lower is closer.
type Match struct {
	Role
	Distance float64 `json:"distance"`
}

// CommonTitles are offered to clients as selectable target roles.
var CommonTitles = []string{
	"Frontend Developer",
	"Backend Developer",
	"Full Stack Developer",
	"Data Scientist",
	"Machine Learning Engineer",
	"DevOps Engineer",
	"Product Manager",
	"UI/UX Designer",
}

// MergeTitles returns common followed by indexed titles, without duplicates.
func MergeTitles(common, indexed []string) []string {
	out := make([]string, 0, len(common)+len(indexed))
	seen := map[string]struct{}{}
	for _, list := range [][]string{common, indexed} {
		for _, t := range list {
			key := strings.ToLower(strings.TrimSpace(t))
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
