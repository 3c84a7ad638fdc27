package recommend

import (
	"fmt"
	"strings"

	"resume-reviewer/internal/skillgap"
)

const (
	keywordGapThreshold    = 70
	experienceGapThreshold = 50
	maxListedKeywords      = 10
)

func fromMissingSkills(skills []string, targetRole string) []Action {
	out := make([]Action, 0, len(skills))
	role := strings.TrimSpace(targetRole)
	if role == "" {
		role = "the target role"
	}
	for i, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		// The first few gaps are the ones most worth closing.
		severity, impact := "warning", "high"
		if i >= 3 {
			severity, impact = "info", "medium"
		}
		out = append(out, Action{
			ID:       "SKILL_MISSING_" + slugify(skill),
			Category: "SKILLS",
			Severity: severity,
			Title:    "Build evidence of " + skill,
			Why:      fmt.Sprintf("%s is expected for %s and was not found on the resume.", skill, role),
			Action:   fmt.Sprintf("Ship a small project using %s and list it under Skills and Projects.", skill),
			Impact:   impact,
		})
	}
	return out
}

func fromWeakMatches(matches []skillgap.WeakMatch) []Action {
	out := make([]Action, 0, len(matches))
	for _, m := range matches {
		if strings.TrimSpace(m.Skill) == "" {
			continue
		}
		out = append(out, Action{
			ID:       "SKILL_WEAK_" + slugify(m.Skill),
			Category: "SKILLS",
			Severity: "info",
			Title:    "Name " + m.Skill + " explicitly",
			Why:      fmt.Sprintf("The resume mentions %q, which only partially matches %q.", m.MatchedWith, m.Skill),
			Action:   fmt.Sprintf("Use the exact term %q where you describe related work.", m.Skill),
			Impact:   "medium",
		})
	}
	return out
}

func fromMissingKeywords(missing []string, score float64) []Action {
	if score >= keywordGapThreshold || len(missing) == 0 {
		return nil
	}
	keywords := missing
	if len(keywords) > maxListedKeywords {
		keywords = keywords[:maxListedKeywords]
	}
	return []Action{
		{
			ID:       "ATS_MISSING_JD_KEYWORDS",
			Category: "ATS",
			Severity: "warning",
			Title:    "Add missing job keywords",
			Why:      "Improves ATS match and helps recruiters quickly spot relevant skills.",
			Action:   "Work missing keywords naturally into Skills and Experience bullets. Focus on: " + strings.Join(keywords, ", "),
			Impact:   "high",
		},
	}
}

func fromMissingSections(sections []string) []Action {
	out := make([]Action, 0, len(sections))
	for _, section := range sections {
		out = append(out, Action{
			ID:       "STRUCTURE_MISSING_" + slugify(section),
			Category: "STRUCTURE",
			Severity: "warning",
			Title:    "Add a " + section + " section",
			Why:      "ATS parsers look for standard section headers.",
			Action:   fmt.Sprintf("Add a clearly labeled %s section.", strings.ToUpper(section)),
			Impact:   "medium",
		})
	}
	return out
}

func fromSectionScores(in Input) []Action {
	var out []Action
	b := in.Breakdown
	if b.Experience.Score < experienceGapThreshold {
		out = append(out, Action{
			ID:       "EXPERIENCE_TAILOR",
			Category: "EXPERIENCE",
			Severity: "warning",
			Title:    "Tailor experience to the role",
			Why:      "Few role-relevant terms appear in the experience section.",
			Action:   "Rewrite experience bullets around the tools and outcomes the role asks for.",
			Impact:   "high",
		})
	}
	if b.Projects.Score == 0 {
		out = append(out, Action{
			ID:       "EXPERIENCE_ADD_PROJECTS",
			Category: "EXPERIENCE",
			Severity: "info",
			Title:    "Add a projects section",
			Why:      "Projects show applied skills when work history is thin.",
			Action:   "Describe two or three projects with stack and measurable results.",
			Impact:   "medium",
		})
	}
	if b.Certifications.Score == 0 {
		out = append(out, Action{
			ID:       "SKILLS_CERTIFICATIONS",
			Category: "SKILLS",
			Severity: "info",
			Title:    "Consider a relevant certification",
			Why:      "Certifications are a quick signal of baseline knowledge.",
			Action:   "List completed courses or certifications in their own section.",
			Impact:   "low",
		})
	}
	return out
}
