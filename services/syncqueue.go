package services

import "sync"

// SaveQueue serializes cart persistence writes per user: each write waits for
// the previous write by the same user to settle before it runs, so a user's
// successive saves hit the store in submission order. A failed write reports
// its error to its own caller only and never blocks the writes queued after
// it. Writes for different users do not wait on each other.
type SaveQueue struct {
	mu    sync.Mutex
	tails map[string]chan struct{}
}

func NewSaveQueue() *SaveQueue {
	return &SaveQueue{tails: make(map[string]chan struct{})}
}

// Do enqueues fn behind any in-flight write for userID and runs it once its
// turn comes, returning fn's error.
func (q *SaveQueue) Do(userID string, fn func() error) error {
	q.mu.Lock()
	prev := q.tails[userID]
	done := make(chan struct{})
	q.tails[userID] = done
	q.mu.Unlock()

	defer func() {
		close(done)
		q.mu.Lock()
		if q.tails[userID] == done {
			delete(q.tails, userID)
		}
		q.mu.Unlock()
	}()

	if prev != nil {
		<-prev
	}
	return fn()
}
