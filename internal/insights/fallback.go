package insights

import "fmt"

// Fallback returns the fixed review used when no model answer is available.
func Fallback(targetRole string) Insights {
	return Insights{
		ATSScore: ATSScore{
			Score:       75,
			Explanation: "Offline estimate: good keyword density but missing some advanced terms.",
		},
		MissingSkills: []string{"Advanced Pattern Matching", "System Design", "Cloud Native"},
		ProjectRecommendations: []ProjectIdea{
			{
				Title:     fmt.Sprintf("Advanced %s System", targetRole),
				TechStack: []string{"Relevant Tech 1", "Relevant Tech 2"},
				Impact:    "Build a scalable system to demonstrate architecture skills.",
			},
		},
		LearningRoadmap: []string{
			"Month 1: Master fundamentals and missing skills.",
			"Month 2: Build a capstone project.",
			"Month 3: Mock interviews and system design.",
		},
		ResumeImprovements: []string{
			"Quantify your bullet points more.",
			"Add a summary section specific to this role.",
		},
		Source: SourceFallback,
	}
}
