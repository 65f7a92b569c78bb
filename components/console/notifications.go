package console

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// FlashLevel classifies a notification for styling.
type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashError   FlashLevel = "error"
)

// Flash is one user-visible notification.
type Flash struct {
	ID      string
	Level   FlashLevel
	Message string
}

// NewFlash builds a notification with a fresh id.
func NewFlash(level FlashLevel, message string) Flash {
	return Flash{ID: uuid.NewString(), Level: level, Message: message}
}

// FlashHub queues notifications until the next render drains them.
type FlashHub struct {
	mu      sync.Mutex
	pending []Flash
}

// NewFlashHub creates an empty hub.
func NewFlashHub() *FlashHub {
	return &FlashHub{}
}

// Notify queues a notification.
func (h *FlashHub) Notify(_ context.Context, flash Flash) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = append(h.pending, flash)
}

// Drain returns queued notifications and clears the queue.
func (h *FlashHub) Drain() []Flash {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.pending
	h.pending = nil
	return out
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, Flash) {}

func normalizeNotifier(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}
