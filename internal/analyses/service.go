package analyses

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"resume-reviewer/internal/documents"
	"resume-reviewer/internal/insights"
	"resume-reviewer/internal/recommend"
	"resume-reviewer/internal/resume"
	"resume-reviewer/internal/roles"
	"resume-reviewer/internal/scoring"
	"resume-reviewer/internal/shared/metrics"
	"resume-reviewer/internal/shared/telemetry"
	"resume-reviewer/internal/skillgap"
)

const (
	// MaxJobDescriptionLen bounds the job description in runes.
	MaxJobDescriptionLen = 20000

	descriptionPreviewLen = 200
)

// DocumentGetter loads stored documents.
type DocumentGetter interface {
	Get(ctx context.Context, id string) (documents.Document, error)
}

// RoleSearcher finds reference roles for a free-text target role.
type RoleSearcher interface {
	SearchSimilarRoles(ctx context.Context, query string, k int) []roles.Match
}

// Service assembles reports. Roles and Insights are optional.
type Service struct {
	Repo        Repo
	Documents   DocumentGetter
	Roles       RoleSearcher
	Scorer      *scoring.Scorer
	Matcher     *skillgap.Matcher
	Recommender *recommend.Engine
	Insights    *insights.Service
}

// Analyze scores a resume against the target role and stores the report.
// Only input validation, document lookup and persistence can fail.
func (s *Service) Analyze(ctx context.Context, req Request) (Report, error) {
	start := time.Now()
	metrics.IncAnalysisStarted()

	report, err := s.analyze(ctx, req)
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Warn("analyses.failed", map[string]any{
			"documentId": req.DocumentID,
			"targetRole": req.TargetRole,
			"error":      err.Error(),
		})
		return Report{}, err
	}

	elapsed := float64(time.Since(start).Microseconds()) / 1000
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(elapsed)
	metrics.ObserveMatchPercentage(report.SkillGap.MatchPercentage)
	telemetry.Info("analyses.completed", map[string]any{
		"analysisId":       report.ID,
		"documentId":       report.DocumentID,
		"targetRole":       report.TargetRole.Role,
		"role_source":      string(report.TargetRole.Source),
		"overall_score":    report.ATS.OverallScore,
		"match_percentage": report.SkillGap.MatchPercentage,
		"insights_source":  string(report.Insights.Source),
		"duration_ms":      elapsed,
	})
	return report, nil
}

func (s *Service) analyze(ctx context.Context, req Request) (Report, error) {
	role := strings.TrimSpace(req.TargetRole)
	if role == "" {
		return Report{}, fmt.Errorf("%w: targetRole is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.JobDescription) > MaxJobDescriptionLen {
		return Report{}, fmt.Errorf("%w: jobDescription exceeds %d characters", ErrInvalidInput, MaxJobDescriptionLen)
	}

	doc, documentID, err := s.resolveDocument(ctx, req)
	if err != nil {
		return Report{}, err
	}

	target, jd, required := s.resolveTarget(ctx, role, req.JobDescription)
	resumeSkills := skillgap.SplitSkills(doc.Sections.Get(resume.SectionSkills))

	var (
		breakdown scoring.Breakdown
		gap       skillgap.Result
		review    insights.Insights
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		breakdown = s.Scorer.Score(doc, jd)
		return nil
	})
	g.Go(func() error {
		gap = s.Matcher.Analyze(resumeSkills, required)
		return nil
	})
	g.Go(func() error {
		review = s.generateInsights(gctx, insights.Input{Document: doc, TargetRole: role, Requirements: required})
		return nil
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{
		ID:             uuid.NewString(),
		DocumentID:     documentID,
		TargetRole:     target,
		RequiredSkills: required,
		ATS:            breakdown,
		SkillGap:       gap,
		Recommendations: s.Recommender.Generate(recommend.Input{
			TargetRole:    role,
			MissingSkills: gap.MissingSkills,
			WeakMatches:   gap.WeakMatches,
			Breakdown:     breakdown,
		}),
		Insights:  review,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, report); err != nil {
		return Report{}, fmt.Errorf("save report: %w", err)
	}
	return report, nil
}

func (s *Service) resolveDocument(ctx context.Context, req Request) (resume.Document, string, error) {
	documentID := strings.TrimSpace(req.DocumentID)
	switch {
	case req.Document != nil && documentID != "":
		return resume.Document{}, "", fmt.Errorf("%w: provide either documentId or document, not both", ErrInvalidInput)
	case req.Document != nil:
		doc := *req.Document
		if doc.Sections == nil {
			doc.Sections = resume.NewSections()
		}
		return doc, "", nil
	case documentID != "":
		stored, err := s.Documents.Get(ctx, documentID)
		if err != nil {
			return resume.Document{}, "", fmt.Errorf("load document: %w", err)
		}
		return stored.Parsed, stored.ID, nil
	default:
		return resume.Document{}, "", fmt.Errorf("%w: documentId or document is required", ErrInvalidInput)
	}
}

// resolveTarget picks the text the resume is scored against and the skills it
// must cover: keywords of an explicit job description, else the closest
// indexed role, else GenericSkills.
func (s *Service) resolveTarget(ctx context.Context, role, jobDescription string) (TargetRoleData, string, []string) {
	target := TargetRoleData{Role: role}

	if jd := strings.TrimSpace(jobDescription); jd != "" {
		target.Source = RoleSourceJobDescription
		target.DescriptionUsed = previewDescription(jd)
		return target, jd, s.Scorer.Keywords(jd)
	}

	if s.Roles != nil {
		if matches := s.Roles.SearchSimilarRoles(ctx, role, 1); len(matches) > 0 {
			found := matches[0]
			jd := found.Title + " " + found.Description + " " + strings.Join(found.Skills, " ")
			target.Source = RoleSourceRetrieved
			target.MatchedRole = found.Title
			target.DescriptionUsed = previewDescription(jd)
			return target, jd, append([]string{}, found.Skills...)
		}
	}

	target.Source = RoleSourceGeneric
	target.DescriptionUsed = previewDescription("")
	return target, "", append([]string{}, GenericSkills...)
}

func (s *Service) generateInsights(ctx context.Context, in insights.Input) insights.Insights {
	if s.Insights == nil {
		return insights.Fallback(in.TargetRole)
	}
	return s.Insights.Generate(ctx, in)
}

// previewDescription keeps the first 200 characters followed by an ellipsis,
// or "Generic" when there was no description at all.
func previewDescription(jd string) string {
	if jd == "" {
		return "Generic"
	}
	runes := []rune(jd)
	if len(runes) > descriptionPreviewLen {
		runes = runes[:descriptionPreviewLen]
	}
	return string(runes) + "..."
}

// Get returns a stored report.
func (s *Service) Get(ctx context.Context, analysisID string) (Report, error) {
	id := strings.TrimSpace(analysisID)
	if _, err := uuid.Parse(id); err != nil {
		return Report{}, fmt.Errorf("%w: invalid analysis id", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns recent report summaries.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Summary, error) {
	return s.Repo.List(ctx, limit, offset)
}
