package repository

import (
	"context"
	"cyberlearn_backend/internal/model"
	"cyberlearn_backend/internal/store"
	"cyberlearn_backend/internal/util"
	"cyberlearn_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	maxCachedMessages = 100
	chatCacheTTL      = 24 * time.Hour
)

// ChatRepository persists chat messages in the record store and mirrors the
// most recent ones per session in Redis when a client is configured.
type ChatRepository struct {
	messages store.Collection
	Redis    *redis.Client
}

func NewChatRepository(s store.Store, rdb *redis.Client) *ChatRepository {
	return &ChatRepository{messages: s.Collection(CollChatMessages), Redis: rdb}
}

func historyKey(sessionID string) string {
	return fmt.Sprintf("chat:history:%s", sessionID)
}

func (r *ChatRepository) Create(ctx context.Context, msg *model.ChatMessage) error {
	if err := insert(ctx, r.messages, msg, "chat message"); err != nil {
		return err
	}
	r.cache(ctx, msg)
	return nil
}

func (r *ChatRepository) cache(ctx context.Context, msg *model.ChatMessage) {
	if r.Redis == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	key := historyKey(msg.SessionID)
	pipe := r.Redis.Pipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, maxCachedMessages-1)
	pipe.Expire(ctx, key, chatCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log.Warn("Failed to cache chat message", zap.String("sessionID", msg.SessionID), zap.Error(err))
	}
}

// History returns up to limit of the session's latest messages in
// chronological order.
func (r *ChatRepository) History(ctx context.Context, sessionID string, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 {
		return []model.ChatMessage{}, nil
	}
	if msgs, ok := r.cached(ctx, sessionID, limit); ok {
		return msgs, nil
	}

	cur := r.messages.Find(store.Document{"session_id": sessionID}).
		Sort("timestamp", store.Descending).
		Limit(int64(limit))
	msgs, err := findAll[model.ChatMessage](ctx, cur)
	if err != nil {
		return nil, err
	}
	reverse(msgs)
	return msgs, nil
}

// cached serves History from Redis only when the cache holds at least limit
// entries, since a shorter list may have been trimmed or expired.
func (r *ChatRepository) cached(ctx context.Context, sessionID string, limit int) ([]model.ChatMessage, bool) {
	if r.Redis == nil || limit > maxCachedMessages {
		return nil, false
	}
	raw, err := r.Redis.LRange(ctx, historyKey(sessionID), 0, int64(limit-1)).Result()
	if err != nil || len(raw) < limit {
		return nil, false
	}
	msgs := make([]model.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var m model.ChatMessage
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			return nil, false
		}
		msgs = append(msgs, m)
	}
	reverse(msgs)
	return msgs, true
}

func (r *ChatRepository) Count(ctx context.Context, sessionID string) (int64, error) {
	n, err := r.messages.CountDocuments(ctx, store.Document{"session_id": sessionID})
	if err != nil {
		return 0, util.Persistence("count chat messages", err)
	}
	return n, nil
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
