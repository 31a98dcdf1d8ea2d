package model

import "time"

type LearningPlan struct {
	ID                   string          `json:"id"`
	Topic                string          `json:"topic"`
	Level                string          `json:"level"`
	DurationWeeks        int             `json:"duration_weeks"`
	FocusAreas           []string        `json:"focus_areas"`
	Curriculum           string          `json:"curriculum"`
	TableOfContents      TableOfContents `json:"table_of_contents"`
	UserBackground       string          `json:"user_background"`
	AssessmentResultID   string          `json:"assessment_result_id,omitempty"`
	PersonalizationNotes string          `json:"personalization_notes,omitempty"`
	Approved             bool            `json:"approved"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

type TableOfContents struct {
	Chapters           []Chapter `json:"chapters"`
	TotalChapters      int       `json:"total_chapters"`
	TotalEstimatedTime string    `json:"total_estimated_time"`
	DifficultyLevel    string    `json:"difficulty_level"`
}

type Chapter struct {
	ID            string    `json:"id"`
	Number        int       `json:"number"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	EstimatedTime string    `json:"estimated_time"`
	Sections      []Section `json:"sections"`
}

type Section struct {
	ID            string `json:"id"`
	Number        string `json:"number"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	EstimatedTime string `json:"estimated_time"`
}
