package insights

import "resume-reviewer/internal/resume"

// Source records where an Insights value came from.
type Source string

const (
	SourceLLM      Source = "llm"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

type ATSScore struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

type ProjectIdea struct {
	Title     string   `json:"title"`
	TechStack []string `json:"tech_stack"`
	Impact    string   `json:"impact"`
}

// Insights is the qualitative review produced by the language model, or the
// deterministic fallback when it is unavailable. Field names follow the
// JSON contract given to the model.
type Insights struct {
	ATSScore               ATSScore      `json:"ats_score"`
	MissingSkills          []string      `json:"missing_skills"`
	ProjectRecommendations []ProjectIdea `json:"project_recommendations"`
	LearningRoadmap        []string      `json:"learning_roadmap"`
	ResumeImprovements     []string      `json:"resume_improvements"`
	Source                 Source        `json:"source"`
}

// Input is what a Generator reviews.
type Input struct {
	Document     resume.Document
	TargetRole   string
	Requirements []string
}
