package recommend

import (
	"resume-reviewer/internal/scoring"
	"resume-reviewer/internal/skillgap"
)

// Project is a portfolio project suggested to close a skill gap.
type Project struct {
	Title       string   `json:"title"`
	TechStack   []string `json:"techStack"`
	Difficulty  string   `json:"difficulty"`
	Description string   `json:"description"`
	Bullets     []string `json:"bullets"`
}

// Action is a ranked, deterministic next step derived from the analysis.
type Action struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Severity string `json:"severity"`
	Title    string `json:"title"`
	Why      string `json:"why"`
	Action   string `json:"action"`
	Impact   string `json:"impact"`
	Order    int    `json:"order"`
}

// Recommendations is the output of Engine.Generate.
type Recommendations struct {
	TargetRole          string    `json:"targetRole"`
	RecommendedProjects []Project `json:"recommendedProjects"`
	GeneralTips         []string  `json:"generalTips"`
	Actions             []Action  `json:"actions"`
}

// Input is the analysis data recommendations are built from.
type Input struct {
	TargetRole    string
	MissingSkills []string
	WeakMatches   []skillgap.WeakMatch
	Breakdown     scoring.Breakdown
}
