package recommend

import (
	"sort"
	"strings"
	"unicode"
)

const (
	maxProjects      = 3
	fallbackProjects = 2
	maxActions       = 7
)

// Engine maps skill gaps and score weaknesses to projects and actions.
type Engine struct {
	templates []templateGroup
	tips      []string
}

// NewEngine returns an engine with the built-in project templates.
func NewEngine() *Engine {
	return &Engine{templates: defaultTemplates, tips: defaultTips}
}

// Generate builds deterministic recommendations for the input.
func (e *Engine) Generate(in Input) Recommendations {
	return Recommendations{
		TargetRole:          in.TargetRole,
		RecommendedProjects: e.projects(in.MissingSkills),
		GeneralTips:         append([]string(nil), e.tips...),
		Actions:             generateActions(in),
	}
}

func (e *Engine) projects(missing []string) []Project {
	out := make([]Project, 0, maxProjects)
	seen := map[string]bool{}
	for _, skill := range missing {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}
		for _, group := range e.templates {
			if !strings.Contains(skill, group.Key) && !strings.Contains(group.Key, skill) {
				continue
			}
			for _, p := range group.Projects {
				if seen[p.Title] {
					continue
				}
				seen[p.Title] = true
				out = append(out, p)
			}
		}
	}

	if len(out) == 0 {
		for _, group := range e.templates {
			if group.Key == fallbackKey {
				n := min(fallbackProjects, len(group.Projects))
				out = append(out, group.Projects[:n]...)
				break
			}
		}
	}
	if len(out) > maxProjects {
		out = out[:maxProjects]
	}
	return out
}

func generateActions(in Input) []Action {
	candidates := make([]Action, 0, 16)
	mappers := []func(Input) []Action{
		func(in Input) []Action {
			return fromMissingSkills(in.MissingSkills, in.TargetRole)
		},
		func(in Input) []Action {
			return fromWeakMatches(in.WeakMatches)
		},
		func(in Input) []Action {
			return fromMissingKeywords(in.Breakdown.Keywords.Missing, in.Breakdown.Keywords.Score)
		},
		func(in Input) []Action {
			return fromMissingSections(in.Breakdown.Formatting.MissingSections)
		},
		fromSectionScores,
	}
	for _, mapper := range mappers {
		candidates = append(candidates, mapper(in)...)
	}

	deduped := dedupe(candidates)
	sortActions(deduped)
	if len(deduped) > maxActions {
		deduped = deduped[:maxActions]
	}
	for i := range deduped {
		deduped[i].Order = i + 1
	}
	return deduped
}

func severityRank(value string) int {
	switch value {
	case "critical":
		return 3
	case "warning":
		return 2
	default:
		return 1
	}
}

func impactRank(value string) int {
	switch value {
	case "high":
		return 3
	case "medium":
		return 2
	default:
		return 1
	}
}

func categoryRank(value string) int {
	switch value {
	case "SKILLS":
		return 5
	case "ATS":
		return 4
	case "EXPERIENCE":
		return 3
	case "STRUCTURE":
		return 2
	default:
		return 0
	}
}

func slugify(input string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "item"
	}
	return out
}

// dedupe keeps the first action for each ID, filling its empty fields from
// later duplicates.
func dedupe(items []Action) []Action {
	seen := make(map[string]int, len(items))
	out := make([]Action, 0, len(items))
	for _, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			continue
		}
		if idx, ok := seen[id]; ok {
			out[idx] = merge(out[idx], item)
			continue
		}
		seen[id] = len(out)
		out = append(out, item)
	}
	return out
}

func merge(a, b Action) Action {
	if a.Title == "" {
		a.Title = b.Title
	}
	if a.Why == "" {
		a.Why = b.Why
	}
	if a.Action == "" {
		a.Action = b.Action
	}
	if a.Category == "" {
		a.Category = b.Category
	}
	if a.Severity == "" {
		a.Severity = b.Severity
	}
	if a.Impact == "" {
		a.Impact = b.Impact
	}
	return a
}

func sortActions(items []Action) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if severityRank(a.Severity) != severityRank(b.Severity) {
			return severityRank(a.Severity) > severityRank(b.Severity)
		}
		if impactRank(a.Impact) != impactRank(b.Impact) {
			return impactRank(a.Impact) > impactRank(b.Impact)
		}
		if categoryRank(a.Category) != categoryRank(b.Category) {
			return categoryRank(a.Category) > categoryRank(b.Category)
		}
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
}
