package service

import (
	"context"
	"cyberlearn_backend/internal/catalog"
	"cyberlearn_backend/internal/event"
	"cyberlearn_backend/internal/model"
	"cyberlearn_backend/internal/repository"
	"cyberlearn_backend/internal/util"
	"cyberlearn_backend/pkg/logger"
	"fmt"

	"go.uber.org/zap"
)

const defaultModule = "Module 1: Introduction"

type SessionService struct {
	Repo     *repository.SessionRepository
	Plans    *repository.LearningPlanRepository
	Progress *ProgressService
	Events   event.Publisher
}

func NewSessionService(
	repo *repository.SessionRepository,
	plans *repository.LearningPlanRepository,
	progress *ProgressService,
	events event.Publisher,
) *SessionService {
	return &SessionService{Repo: repo, Plans: plans, Progress: progress, Events: events}
}

type SessionStarted struct {
	Success       bool   `json:"success"`
	SessionID     string `json:"session_id"`
	PlanID        string `json:"plan_id"`
	CurrentModule string `json:"current_module"`
}

type ProgressUpdate struct {
	Success            bool    `json:"success"`
	ProgressPercentage float64 `json:"progress_percentage"`
	TimeSpent          int     `json:"time_spent"`
}

// Start opens a study session on an existing plan. The first chapter of the
// plan becomes the current module.
func (s *SessionService) Start(ctx context.Context, planID, userID string) (*SessionStarted, error) {
	if planID == "" {
		return nil, fmt.Errorf("%w: plan_id is required", util.ErrInvalidInput)
	}
	plan, err := s.Plans.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	module := defaultModule
	if chapters := plan.TableOfContents.Chapters; len(chapters) > 0 {
		module = chapters[0].Title
	}

	now := model.Now()
	sess := &model.LearningSession{
		ID:            model.GenerateUUID(),
		PlanID:        plan.ID,
		UserID:        userID,
		CurrentModule: module,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.Create(ctx, sess); err != nil {
		return nil, err
	}
	if _, err := s.Progress.Award(ctx, userID, catalog.AchievementFirstSession); err != nil {
		return nil, err
	}

	logger.Log.Info("Learning session started", zap.String("sessionID", sess.ID), zap.String("planID", plan.ID))
	publish(ctx, s.Events, event.SessionStarted, map[string]any{
		"session_id": sess.ID,
		"plan_id":    plan.ID,
		"user_id":    userID,
	})

	return &SessionStarted{
		Success:       true,
		SessionID:     sess.ID,
		PlanID:        plan.ID,
		CurrentModule: module,
	}, nil
}

func (s *SessionService) Get(ctx context.Context, id string) (*model.LearningSession, error) {
	return s.Repo.FindByID(ctx, id)
}

// UpdateProgress sets the session completion and adds timeSpent minutes to
// both the session and the learner's totals.
func (s *SessionService) UpdateProgress(ctx context.Context, sessionID string, percentage float64, timeSpent int) (*ProgressUpdate, error) {
	if percentage < 0 || percentage > 100 {
		return nil, fmt.Errorf("%w: progress_percentage must be between 0 and 100", util.ErrInvalidInput)
	}
	if timeSpent < 0 {
		return nil, fmt.Errorf("%w: time_spent must not be negative", util.ErrInvalidInput)
	}
	var finished bool
	sess, err := s.Repo.Update(ctx, sessionID, func(sess *model.LearningSession) error {
		finished = sess.ProgressPercentage < 100 && percentage >= 100
		sess.ProgressPercentage = percentage
		sess.TimeSpent += timeSpent
		return nil
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.Progress.RecordStudyTime(ctx, sess.UserID, timeSpent, percentage, finished); err != nil {
		return nil, err
	}

	return &ProgressUpdate{
		Success:            true,
		ProgressPercentage: sess.ProgressPercentage,
		TimeSpent:          sess.TimeSpent,
	}, nil
}
