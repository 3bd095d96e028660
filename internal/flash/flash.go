// Package flash implements the transient notification queue: a single
// short-lived status message with auto-expiry. A new message supersedes the
// current one; superseded messages are dropped, never delayed.
package flash

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tonightlabs/tonight/internal/models"
)

// DefaultTTL is the standard display duration for a notification.
const DefaultTTL = 2500 * time.Millisecond

// Queue holds at most one visible notification. Safe for concurrent use;
// expiry fires from a timer goroutine.
type Queue struct {
	mu      sync.Mutex
	current *models.Notification
	timer   *time.Timer
	seq     uint64
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{}
}

// Post replaces the displayed notification and restarts the expiry timer.
func (q *Queue) Post(message string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.timer != nil {
		q.timer.Stop()
	}
	q.seq++
	seq := q.seq
	q.current = &models.Notification{
		Message:   message,
		ExpiresAt: time.Now().Add(ttl),
	}
	q.timer = time.AfterFunc(ttl, func() {
		q.expire(seq)
	})

	slog.Debug("flash posted", "message", message, "ttl", ttl)
}

// Current returns the visible message, or "" when nothing is displayed.
func (q *Queue) Current() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current == nil {
		return ""
	}
	return q.current.Message
}

// Clear drops the displayed notification and cancels its expiry.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	q.current = nil
	q.seq++
}

// expire clears the message only if it has not been superseded since the
// timer was armed.
func (q *Queue) expire(seq uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.seq != seq {
		return
	}
	q.current = nil
	q.timer = nil
}
