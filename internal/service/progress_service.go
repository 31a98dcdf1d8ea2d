package service

import (
	"context"
	"cyberlearn_backend/internal/catalog"
	"cyberlearn_backend/internal/event"
	"cyberlearn_backend/internal/model"
	"cyberlearn_backend/internal/repository"
	"cyberlearn_backend/pkg/logger"
	"cyberlearn_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// ProgressTrackerPercent is the session progress that unlocks
// progress_tracker.
const ProgressTrackerPercent = 25.0

type ProgressService struct {
	Repo    *repository.ProgressRepository
	Catalog *catalog.Catalog
	Events  event.Publisher
}

func NewProgressService(repo *repository.ProgressRepository, c *catalog.Catalog, events event.Publisher) *ProgressService {
	return &ProgressService{Repo: repo, Catalog: c, Events: events}
}

type UserProgressView struct {
	*model.UserProgress
	UnlockedAchievements []model.Achievement `json:"unlocked_achievements"`
}

func (s *ProgressService) Achievements() []model.Achievement {
	return s.Catalog.Achievements
}

// GetUserProgress returns the learner's progress together with the details
// of each unlocked achievement. A record is created on first access.
func (s *ProgressService) GetUserProgress(ctx context.Context, userID string) (*UserProgressView, error) {
	p, err := s.Repo.FindOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := &UserProgressView{UserProgress: p, UnlockedAchievements: []model.Achievement{}}
	for _, id := range p.Achievements {
		if a, ok := s.Catalog.Achievement(id); ok {
			view.UnlockedAchievements = append(view.UnlockedAchievements, a)
		}
	}
	return view, nil
}

// unlock adds the achievement to p in memory. It reports false when p already
// holds it or the id is not in the catalog.
func (s *ProgressService) unlock(p *model.UserProgress, id string) (model.Achievement, bool) {
	if p.HasAchievement(id) {
		return model.Achievement{}, false
	}
	a, ok := s.Catalog.Achievement(id)
	if !ok {
		logger.Log.Warn("Unknown achievement", zap.String("achievement", id))
		return model.Achievement{}, false
	}
	p.Achievements = append(p.Achievements, id)
	p.TotalPoints += a.Points
	return a, true
}

// announce reports an achievement once it has been stored.
func (s *ProgressService) announce(ctx context.Context, userID string, a model.Achievement) {
	monitoring.AchievementsAwarded.WithLabelValues(a.ID).Inc()
	logger.Log.Info("Achievement unlocked", zap.String("userID", userID), zap.String("achievement", a.ID))
	publish(ctx, s.Events, event.AchievementUnlocked, map[string]any{
		"user_id":     userID,
		"achievement": a,
	})
}

// Award unlocks achievement id for the learner once and adds its points.
func (s *ProgressService) Award(ctx context.Context, userID, id string) (bool, error) {
	var (
		unlocked model.Achievement
		ok       bool
	)
	if _, err := s.Repo.Update(ctx, userID, func(p *model.UserProgress) bool {
		unlocked, ok = s.unlock(p, id)
		return ok
	}); err != nil {
		return false, err
	}
	if ok {
		s.announce(ctx, userID, unlocked)
	}
	return ok, nil
}

// RecordAssessment counts a scored submission and remembers the derived
// skill level for its topic.
func (s *ProgressService) RecordAssessment(ctx context.Context, userID, topic, skillLevel string) (*model.UserProgress, error) {
	var (
		unlocked model.Achievement
		ok       bool
	)
	p, err := s.Repo.Update(ctx, userID, func(p *model.UserProgress) bool {
		p.AssessmentsCompleted++
		if p.SkillLevels == nil {
			p.SkillLevels = map[string]string{}
		}
		p.SkillLevels[topic] = skillLevel
		unlocked, ok = s.unlock(p, catalog.AchievementFirstAssessment)
		return true
	})
	if err != nil {
		return nil, err
	}
	if ok {
		s.announce(ctx, userID, unlocked)
	}
	return p, nil
}

// RecordStudyTime adds minutes to the learner's total and unlocks
// progress_tracker once a session reaches ProgressTrackerPercent. finished
// marks the update that brought a session to 100%.
func (s *ProgressService) RecordStudyTime(ctx context.Context, userID string, minutes int, percentage float64, finished bool) (*model.UserProgress, error) {
	var (
		unlocked model.Achievement
		ok       bool
	)
	p, err := s.Repo.Update(ctx, userID, func(p *model.UserProgress) bool {
		if minutes > 0 {
			p.TotalTimeSpent += minutes
		}
		if percentage >= ProgressTrackerPercent {
			unlocked, ok = s.unlock(p, catalog.AchievementProgressTracker)
		}
		if finished {
			p.PlansCompleted++
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if ok {
		s.announce(ctx, userID, unlocked)
	}
	return p, nil
}
