package notify

import "sync"

// Queue buffers notifications for a UI that renders them on its own schedule.
type Queue struct {
	mu      sync.Mutex
	items   []Notification
	loading []Notification
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Loading(message string) Handle {
	n := Notification{Kind: KindLoading, Handle: newHandle(), Message: message}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.loading = append(q.loading, n)
	return n.Handle
}

func (q *Queue) Success(message string) {
	q.push(Notification{Kind: KindSuccess, Message: message})
}

func (q *Queue) Error(title, message string) {
	q.push(Notification{Kind: KindError, Title: title, Message: message})
}

func (q *Queue) Dismiss(h Handle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, n := range q.loading {
		if n.Handle == h {
			q.loading = append(q.loading[:i], q.loading[i+1:]...)
			return
		}
	}
}

func (q *Queue) push(n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, n)
}

// Drain returns and clears the finished (success/error) notifications.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

// Loadings returns the loading notifications that are still active.
func (q *Queue) Loadings() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Notification, len(q.loading))
	copy(out, q.loading)
	return out
}
