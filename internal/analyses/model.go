package analyses

import (
	"time"

	"resume-reviewer/internal/insights"
	"resume-reviewer/internal/recommend"
	"resume-reviewer/internal/resume"
	"resume-reviewer/internal/scoring"
	"resume-reviewer/internal/skillgap"
)

// GenericSkills are required when no job description is given and no
// reference role is indexed.
var GenericSkills = []string{"Python", "JavaScript", "SQL", "Git"}

// RoleSource records where the required skills came from.
type RoleSource string

const (
	RoleSourceJobDescription RoleSource = "job_description"
	RoleSourceRetrieved      RoleSource = "retrieved"
	RoleSourceGeneric        RoleSource = "generic"
)

// TargetRoleData describes the target the resume was scored against.
type TargetRoleData struct {
	Role            string     `json:"role"`
	DescriptionUsed string     `json:"descriptionUsed"`
	MatchedRole     string     `json:"matchedRole,omitempty"`
	Source          RoleSource `json:"source"`
}

// Report is the combined result of one analysis.
type Report struct {
	ID              string                    `json:"analysisId"`
	DocumentID      string                    `json:"documentId,omitempty"`
	TargetRole      TargetRoleData            `json:"targetRoleData"`
	RequiredSkills  []string                  `json:"requiredSkills"`
	ATS             scoring.Breakdown         `json:"atsAnalysis"`
	SkillGap        skillgap.Result           `json:"skillGap"`
	Recommendations recommend.Recommendations `json:"recommendations"`
	Insights        insights.Insights         `json:"llmInsights"`
	CreatedAt       time.Time                 `json:"createdAt"`
}

// Summary is the list view of a stored report.
type Summary struct {
	ID              string    `json:"analysisId"`
	DocumentID      string    `json:"documentId,omitempty"`
	TargetRole      string    `json:"targetRole"`
	OverallScore    float64   `json:"overallScore"`
	MatchPercentage float64   `json:"matchPercentage"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (r Report) Summary() Summary {
	return Summary{
		ID:              r.ID,
		DocumentID:      r.DocumentID,
		TargetRole:      r.TargetRole.Role,
		OverallScore:    r.ATS.OverallScore,
		MatchPercentage: r.SkillGap.MatchPercentage,
		CreatedAt:       r.CreatedAt,
	}
}

// Request asks for an analysis of a stored document or an inline parsed one.
// Exactly one of DocumentID and Document must be set.
type Request struct {
	DocumentID     string
	Document       *resume.Document
	TargetRole     string
	JobDescription string
}
