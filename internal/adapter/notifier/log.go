package notifier

import (
	"context"

	"grynvault-backend/internal/domain/notification"

	"go.uber.org/zap"
)

// Log writes messages to the application log instead of delivering them.
type Log struct{ log *zap.Logger }

func NewLog(log *zap.Logger) *Log { return &Log{log: log} }

func (l *Log) Send(_ context.Context, msg notification.Message) error {
	l.log.Info("notification",
		zap.String("template_id", msg.TemplateID),
		zap.String("recipient", msg.Recipient),
		zap.Any("fields", msg.Fields),
	)
	return nil
}
