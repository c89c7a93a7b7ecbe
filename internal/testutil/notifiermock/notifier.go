package notifiermock

import (
	"context"
	"sync"

	"grynvault-backend/internal/domain/notification"
)

// Notifier records every message and returns SendFn's result.
type Notifier struct {
	SendFn func(ctx context.Context, msg notification.Message) error

	mu   sync.Mutex
	sent []notification.Message
}

func (m *Notifier) Send(ctx context.Context, msg notification.Message) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	if m.SendFn != nil {
		return m.SendFn(ctx, msg)
	}
	return nil
}

// Sent returns a copy of the recorded messages.
func (m *Notifier) Sent() []notification.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]notification.Message, len(m.sent))
	copy(out, m.sent)
	return out
}
