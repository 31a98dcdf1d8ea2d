package model

import "time"

const (
	SenderUser = "user"
	SenderAI   = "ai"
)

type LearningSession struct {
	ID                 string    `json:"id"`
	PlanID             string    `json:"plan_id"`
	UserID             string    `json:"user_id"`
	CurrentModule      string    `json:"current_module"`
	ProgressPercentage float64   `json:"progress_percentage"`
	TimeSpent          int       `json:"time_spent"`
	QuestionsAsked     int       `json:"questions_asked"`
	AIInteractions     int       `json:"ai_interactions"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type ChatMessage struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Sender      string    `json:"sender"`
	Message     string    `json:"message"`
	MessageType string    `json:"message_type"`
	Timestamp   time.Time `json:"timestamp"`
}
