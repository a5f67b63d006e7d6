// Package notify keeps the transient error popups shown by the form.
//
// Every notification owns its own expiry timer, delivered to the Bubble Tea
// loop as an ExpiredMsg carrying the notification id. After Close the queue
// is inert and late expiry messages are ignored.
package notify

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Anchor is the screen position a popup is drawn at.
type Anchor struct {
	Row int
	Col int
}

// Notification is one transient error message.
type Notification struct {
	ID        int64
	Text      string
	Anchor    Anchor
	CreatedAt time.Time
}

// ExpiredMsg is emitted when a notification's timer fires.
type ExpiredMsg struct {
	ID int64
}

// Queue holds the active notifications in creation order.
type Queue struct {
	mu     sync.Mutex
	items  []Notification
	ttl    time.Duration
	lastID int64
	closed bool

	now func() time.Time
}

// NewQueue creates a queue whose notifications live for ttl.
func NewQueue(ttl time.Duration) *Queue {
	return &Queue{
		ttl: ttl,
		now: time.Now,
	}
}

// TTL returns the lifetime of each notification.
func (q *Queue) TTL() time.Duration { return q.ttl }

// Add enqueues a notification and returns the command that expires it.
// Ids derive from the creation time in milliseconds and are bumped when two
// notifications land in the same millisecond.
func (q *Queue) Add(text string, at Anchor) (Notification, tea.Cmd) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return Notification{}, nil
	}

	now := q.now()
	id := now.UnixMilli()
	if id <= q.lastID {
		id = q.lastID + 1
	}
	q.lastID = id

	n := Notification{ID: id, Text: text, Anchor: at, CreatedAt: now}
	q.items = append(q.items, n)

	return n, expireCmd(id, q.ttl)
}

func expireCmd(id int64, ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return ExpiredMsg{ID: id}
	})
}

// Expire removes the notification with the given id. It reports whether
// anything was removed.
func (q *Queue) Expire(id int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a snapshot of the active notifications.
func (q *Queue) Items() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Notification(nil), q.items...)
}

// Len returns the number of active notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close drops all notifications and disables the queue.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.items = nil
}
