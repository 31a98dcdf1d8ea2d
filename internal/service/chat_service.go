package service

import (
	"context"
	"cyberlearn_backend/internal/catalog"
	"cyberlearn_backend/internal/generation"
	"cyberlearn_backend/internal/model"
	"cyberlearn_backend/internal/prompt"
	"cyberlearn_backend/internal/repository"
	"cyberlearn_backend/internal/util"
	"cyberlearn_backend/pkg/logger"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	// ChatContextMessages is how many earlier turns are sent with a question.
	ChatContextMessages  = 10
	DefaultHistoryLimit  = 50
	MaxHistoryLimit      = 100
	MaxChatMessageLength = 4000
)

type ChatService struct {
	Repo      *repository.ChatRepository
	Sessions  *repository.SessionRepository
	Plans     *repository.LearningPlanRepository
	Progress  *ProgressService
	Generator generation.ContentGenerator
	Catalog   *catalog.Catalog
}

func NewChatService(
	repo *repository.ChatRepository,
	sessions *repository.SessionRepository,
	plans *repository.LearningPlanRepository,
	progress *ProgressService,
	generator generation.ContentGenerator,
	c *catalog.Catalog,
) *ChatService {
	return &ChatService{
		Repo:      repo,
		Sessions:  sessions,
		Plans:     plans,
		Progress:  progress,
		Generator: generator,
		Catalog:   c,
	}
}

type ChatReply struct {
	Success    bool   `json:"success"`
	AIResponse string `json:"ai_response"`
	MessageID  string `json:"message_id"`
}

type ChatHistory struct {
	SessionID string              `json:"session_id"`
	Messages  []model.ChatMessage `json:"messages"`
	Total     int64               `json:"total"`
}

// Ask answers a learner question within a session. Both turns are stored and
// the session counters advance.
func (s *ChatService) Ask(ctx context.Context, sessionID, message string) (*ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", util.ErrInvalidInput)
	}
	if len(message) > MaxChatMessageLength {
		return nil, fmt.Errorf("%w: message exceeds %d characters", util.ErrInvalidInput, MaxChatMessageLength)
	}
	sess, err := s.Sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	plan, err := s.Plans.FindByID(ctx, sess.PlanID)
	if err != nil && !errors.Is(err, util.ErrNotFound) {
		return nil, err
	}
	topic := ""
	if plan != nil {
		topic = s.Catalog.TopicText(plan.Topic)
	}

	history, err := s.Repo.History(ctx, sess.ID, ChatContextMessages)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, &model.ChatMessage{
		ID:          model.GenerateUUID(),
		SessionID:   sess.ID,
		Sender:      model.SenderUser,
		Message:     message,
		MessageType: "text",
		Timestamp:   model.Now(),
	}); err != nil {
		return nil, err
	}

	answer, err := s.Generator.Generate(ctx, generation.Request{
		Kind:   generation.KindChat,
		System: prompt.ChatSystem,
		Prompt: prompt.ChatPrompt(plan, sess.CurrentModule, history, message),
		Vars: map[string]any{
			"topic":   topic,
			"module":  sess.CurrentModule,
			"message": message,
		},
		MaxTokens: 800,
	})
	if err != nil {
		return nil, fmt.Errorf("generate chat reply: %w", err)
	}

	reply := &model.ChatMessage{
		ID:          model.GenerateUUID(),
		SessionID:   sess.ID,
		Sender:      model.SenderAI,
		Message:     answer,
		MessageType: "text",
		Timestamp:   model.Now(),
	}
	if err := s.Repo.Create(ctx, reply); err != nil {
		return nil, err
	}

	sess, err = s.Sessions.Update(ctx, sess.ID, func(sess *model.LearningSession) error {
		sess.QuestionsAsked++
		sess.AIInteractions++
		return nil
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.Progress.Award(ctx, sess.UserID, catalog.AchievementAIHelper); err != nil {
		return nil, err
	}

	logger.Log.Debug("Chat turn answered", zap.String("sessionID", sess.ID), zap.Int("questions", sess.QuestionsAsked))
	return &ChatReply{Success: true, AIResponse: answer, MessageID: reply.ID}, nil
}

// History returns up to limit of the session's latest messages, oldest
// first, and the number of messages stored for it.
func (s *ChatService) History(ctx context.Context, sessionID string, limit int) (*ChatHistory, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	msgs, err := s.Repo.History(ctx, sessionID, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.Repo.Count(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &ChatHistory{SessionID: sessionID, Messages: msgs, Total: total}, nil
}
