package service

import (
	"context"
	"cyberlearn_backend/internal/assessment"
	"cyberlearn_backend/internal/catalog"
	"cyberlearn_backend/internal/event"
	"cyberlearn_backend/internal/model"
	"cyberlearn_backend/internal/repository"
	"cyberlearn_backend/pkg/logger"
	"cyberlearn_backend/pkg/monitoring"

	"go.uber.org/zap"
)

type AssessmentService struct {
	Repo     *repository.AssessmentRepository
	Progress *ProgressService
	Catalog  *catalog.Catalog
	Events   event.Publisher
}

func NewAssessmentService(
	repo *repository.AssessmentRepository,
	progress *ProgressService,
	c *catalog.Catalog,
	events event.Publisher,
) *AssessmentService {
	return &AssessmentService{
		Repo:     repo,
		Progress: progress,
		Catalog:  c,
		Events:   events,
	}
}

type GenerateAssessmentRequest struct {
	Topic      string `json:"topic" form:"topic"`
	Level      string `json:"level" form:"level"`
	CareerGoal string `json:"career_goal" form:"career_goal"`
}

type GeneratedAssessment struct {
	Success        bool                    `json:"success"`
	AssessmentID   string                  `json:"assessment_id"`
	Topic          string                  `json:"topic"`
	Level          string                  `json:"level"`
	CareerGoal     string                  `json:"career_goal"`
	TotalQuestions int                     `json:"total_questions"`
	TotalPoints    int                     `json:"total_points"`
	Questions      []model.LearnerQuestion `json:"questions"`
}

type SubmissionResult struct {
	Success         bool     `json:"success"`
	ResultID        string   `json:"result_id"`
	Score           int      `json:"score"`
	TotalPoints     int      `json:"total_points"`
	Percentage      float64  `json:"percentage"`
	SkillLevel      string   `json:"skill_level"`
	Recommendations []string `json:"recommendations"`
	CorrectAnswers  int      `json:"correct_answers"`
	TotalQuestions  int      `json:"total_questions"`
}

// Generate validates the request, builds the fixed question set and persists
// it. Nothing is stored when validation fails.
func (s *AssessmentService) Generate(ctx context.Context, req GenerateAssessmentRequest) (*GeneratedAssessment, error) {
	if req.CareerGoal == "" {
		req.CareerGoal = catalog.GoalStudent
	}
	a, err := assessment.NewAssessment(s.Catalog, req.Topic, req.Level, req.CareerGoal)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, err
	}

	monitoring.AssessmentsGenerated.WithLabelValues(a.Topic, a.Level).Inc()
	logger.Log.Info("Assessment generated",
		zap.String("assessmentID", a.ID),
		zap.String("topic", a.Topic),
		zap.String("level", a.Level),
	)
	publish(ctx, s.Events, event.AssessmentGenerated, map[string]any{
		"assessment_id": a.ID,
		"topic":         a.Topic,
		"level":         a.Level,
		"career_goal":   a.CareerGoal,
	})

	return &GeneratedAssessment{
		Success:        true,
		AssessmentID:   a.ID,
		Topic:          a.Topic,
		Level:          a.Level,
		CareerGoal:     a.CareerGoal,
		TotalQuestions: len(a.Questions),
		TotalPoints:    a.TotalPoints,
		Questions:      assessment.Project(a),
	}, nil
}

// GetAssessment returns the learner projection of a stored assessment.
func (s *AssessmentService) GetAssessment(ctx context.Context, id string) (*GeneratedAssessment, error) {
	a, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &GeneratedAssessment{
		Success:        true,
		AssessmentID:   a.ID,
		Topic:          a.Topic,
		Level:          a.Level,
		CareerGoal:     a.CareerGoal,
		TotalQuestions: len(a.Questions),
		TotalPoints:    a.TotalPoints,
		Questions:      assessment.Project(a),
	}, nil
}

// Submit scores sub against its assessment, stores the result and updates
// the learner's progress.
func (s *AssessmentService) Submit(ctx context.Context, userID string, sub model.Submission) (*SubmissionResult, error) {
	a, err := s.Repo.FindByID(ctx, sub.AssessmentID)
	if err != nil {
		return nil, err
	}
	if sub.CareerGoal == "" {
		sub.CareerGoal = a.CareerGoal
	}

	out := assessment.Evaluate(a, sub)
	result := &model.AssessmentResult{
		ID:              model.GenerateUUID(),
		AssessmentID:    a.ID,
		UserID:          userID,
		Topic:           a.Topic,
		Submission:      sub,
		Score:           out.Score,
		TotalPoints:     out.TotalPoints,
		Percentage:      out.Percentage,
		SkillLevel:      out.SkillLevel,
		Recommendations: out.Recommendations,
		CorrectAnswers:  out.CorrectAnswers,
		TotalQuestions:  out.TotalQuestions,
		CreatedAt:       model.Now(),
	}
	if err := s.Repo.CreateResult(ctx, result); err != nil {
		return nil, err
	}

	monitoring.SubmissionsScored.WithLabelValues(result.SkillLevel).Inc()
	logger.Log.Info("Assessment scored",
		zap.String("resultID", result.ID),
		zap.String("assessmentID", a.ID),
		zap.Int("score", result.Score),
		zap.Int("totalPoints", result.TotalPoints),
		zap.String("skillLevel", result.SkillLevel),
	)

	if _, err := s.Progress.RecordAssessment(ctx, userID, a.Topic, result.SkillLevel); err != nil {
		return nil, err
	}
	publish(ctx, s.Events, event.AssessmentCompleted, map[string]any{
		"result_id":     result.ID,
		"assessment_id": a.ID,
		"user_id":       userID,
		"percentage":    result.Percentage,
		"skill_level":   result.SkillLevel,
	})

	return &SubmissionResult{
		Success:         true,
		ResultID:        result.ID,
		Score:           result.Score,
		TotalPoints:     result.TotalPoints,
		Percentage:      result.Percentage,
		SkillLevel:      result.SkillLevel,
		Recommendations: result.Recommendations,
		CorrectAnswers:  result.CorrectAnswers,
		TotalQuestions:  result.TotalQuestions,
	}, nil
}

func (s *AssessmentService) GetResult(ctx context.Context, id string) (*model.AssessmentResult, error) {
	return s.Repo.FindResultByID(ctx, id)
}
