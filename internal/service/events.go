package service

import (
	"context"
	"cyberlearn_backend/internal/event"
	"cyberlearn_backend/pkg/logger"

	"go.uber.org/zap"
)

// publish sends a domain event. Delivery failures are logged and never fail
// the request that caused them.
func publish(ctx context.Context, p event.Publisher, eventType string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, eventType, payload); err != nil {
		logger.Log.Warn("Failed to publish event", zap.String("event", eventType), zap.Error(err))
	}
}
