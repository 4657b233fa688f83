// Package notify delivers user-facing notifications (toasts) from the lifecycle controller.
package notify

import (
	"github.com/google/uuid"
)

// Handle identifies an outstanding loading notification.
type Handle string

// Kind classifies a notification.
type Kind string

const (
	KindLoading Kind = "loading"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is a single message shown to the user.
type Notification struct {
	Kind    Kind
	Handle  Handle
	Title   string
	Message string
}

// Notifier is the sink the lifecycle controller reports to. Calls are
// fire-and-forget; nothing a Notifier returns (other than the loading
// handle) is consumed by the caller.
type Notifier interface {
	Loading(message string) Handle
	Success(message string)
	Error(title, message string)
	Dismiss(h Handle)
}

func newHandle() Handle {
	return Handle(uuid.NewString())
}
