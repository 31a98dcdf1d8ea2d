package model

import "time"

type Achievement struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
	Category    string `json:"category" yaml:"category"`
	Points      int    `json:"points" yaml:"points"`
}

type UserProgress struct {
	ID                   string            `json:"id"`
	UserID               string            `json:"user_id"`
	TotalPoints          int               `json:"total_points"`
	Achievements         []string          `json:"achievements"`
	SkillLevels          map[string]string `json:"skill_levels"`
	LearningStreak       int               `json:"learning_streak"`
	TotalTimeSpent       int               `json:"total_time_spent"`
	AssessmentsCompleted int               `json:"assessments_completed"`
	PlansCompleted       int               `json:"plans_completed"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

// HasAchievement reports whether id is already unlocked.
func (p *UserProgress) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// CareerProfile is the result of classifying free-form background text.
type CareerProfile struct {
	CareerGoal      string              `json:"career_goal"`
	SuggestedLevel  string              `json:"suggested_level"`
	SuggestedTopics []string            `json:"suggested_topics"`
	MatchedKeywords map[string][]string `json:"matched_keywords"`
	Scores          map[string]int      `json:"scores"`
}
