package service

import (
	"context"

	"ai-search-be/internal/pkg/logger"
	"ai-search-be/pkg/events"
)

// NewAnswerAuditHandler logs every answered chat as one structured line.
// It is subscribed to CHAT_ANSWERED so pipeline quality can be followed
// from the log file without touching the request path.
func NewAnswerAuditHandler(log logger.ILogger) func(ctx context.Context, event events.Event) error {
	return func(ctx context.Context, event events.Event) error {
		details := make(map[string]interface{}, len(event.Payload())+1)
		for k, v := range event.Payload() {
			details[k] = v
		}
		details["event"] = event.EventType()
		log.Info("AUDIT", "Chat answered", details)
		return nil
	}
}
