package studio

import "sync"

// Notice is a transient status message.
type Notice struct {
	Text    string
	IsError bool
}

// NoticeQueue is a bounded FIFO of transient status messages. Pushing never
// blocks; when the queue is full the oldest entry is dropped. The display
// layer drains it at its own pace.
type NoticeQueue struct {
	mu      sync.Mutex
	entries []Notice
	max     int
}

// DefaultNoticeCapacity bounds the queue; messages beyond it displace the
// oldest rather than block the producer.
const DefaultNoticeCapacity = 16

// NewNoticeQueue creates a queue holding at most max entries. A max of zero
// or less uses DefaultNoticeCapacity.
func NewNoticeQueue(max int) *NoticeQueue {
	if max <= 0 {
		max = DefaultNoticeCapacity
	}
	return &NoticeQueue{max: max}
}

// Push enqueues a notice, dropping the oldest entry if the queue is full.
func (q *NoticeQueue) Push(n Notice) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) >= q.max {
		q.entries = q.entries[1:]
	}
	q.entries = append(q.entries, n)
}

// Pop dequeues the oldest notice, reporting false when the queue is empty.
func (q *NoticeQueue) Pop() (Notice, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) == 0 {
		return Notice{}, false
	}
	n := q.entries[0]
	q.entries = q.entries[1:]
	return n, true
}

// Len returns the number of queued notices.
func (q *NoticeQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}
