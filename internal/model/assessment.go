package model

import "time"

const (
	QuestionTypeMCQ       = "mcq"
	QuestionTypePractical = "practical"
	QuestionTypeFillBlank = "fill_blank"
	QuestionTypeCoding    = "coding"
)

// Question is immutable once generated.
type Question struct {
	ID            string   `json:"id"`
	QuestionType  string   `json:"question_type"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	Points        int      `json:"points"`
}

type Assessment struct {
	ID          string     `json:"id"`
	Topic       string     `json:"topic"`
	Level       string     `json:"level"`
	CareerGoal  string     `json:"career_goal"`
	Questions   []Question `json:"questions"`
	TotalPoints int        `json:"total_points"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LearnerQuestion is the projection of a Question sent to learners.
type LearnerQuestion struct {
	ID           string   `json:"id"`
	QuestionType string   `json:"question_type"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	Difficulty   string   `json:"difficulty"`
	Points       int      `json:"points"`
}

func (q Question) ForLearner() LearnerQuestion {
	return LearnerQuestion{
		ID:           q.ID,
		QuestionType: q.QuestionType,
		QuestionText: q.QuestionText,
		Options:      q.Options,
		Difficulty:   q.Difficulty,
		Points:       q.Points,
	}
}

type QuestionResponse struct {
	QuestionID string `json:"question_id" binding:"required"`
	Answer     string `json:"answer"`
	TimeSpent  int    `json:"time_spent"`
}

type Submission struct {
	AssessmentID    string             `json:"assessment_id" binding:"required"`
	Responses       []QuestionResponse `json:"responses"`
	CareerGoal      string             `json:"career_goal"`
	CurrentRole     *string            `json:"current_role,omitempty"`
	ExperienceYears *int               `json:"experience_years,omitempty"`
}

// AssessmentResult is append-only.
type AssessmentResult struct {
	ID              string     `json:"id"`
	AssessmentID    string     `json:"assessment_id"`
	UserID          string     `json:"user_id"`
	Topic           string     `json:"topic"`
	Submission      Submission `json:"submission"`
	Score           int        `json:"score"`
	TotalPoints     int        `json:"total_points"`
	Percentage      float64    `json:"percentage"`
	SkillLevel      string     `json:"skill_level"`
	Recommendations []string   `json:"recommendations"`
	CorrectAnswers  int        `json:"correct_answers"`
	TotalQuestions  int        `json:"total_questions"`
	CreatedAt       time.Time  `json:"created_at"`
}
