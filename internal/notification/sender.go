package notification

import (
	"context"

	"github.com/Rakesh-Biswal/reminder-service/internal/logger"
)

// Sender delivers a rendered message to an SMS destination.
type Sender interface {
	Send(ctx context.Context, destination string, msg Message) error
}

// NoopSender renders and logs messages without delivering them.
// It backs configurations without SMS credentials.
type NoopSender struct{}

// Send logs the rendered message and reports success.
func (NoopSender) Send(ctx context.Context, destination string, msg Message) error {
	body, err := msg.Render()
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "SMS delivery skipped, no sender configured",
		"destination", destination, "kind", string(msg.Kind), "body", body)

	return nil
}
