package events

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var _ domain.EventPublisher = (*LogPublisher)(nil)

// LogPublisher writes events to the log when no broker is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	p.logger.Info("event",
		zap.String("routing_key", routingKey),
		zap.ByteString("payload", body),
	)
	return nil
}
