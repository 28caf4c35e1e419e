package store

import "log"

// Severity indicates how a notification should be presented.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notification is a user-visible event emitted by the facade. How it
// is rendered (toast, terminal line, banner) is the consumer's
// business.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
}

// Notifier receives user-visible notifications.
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier writes notifications to the process log. It is the
// default when no notifier is supplied.
type LogNotifier struct{}

func (LogNotifier) Notify(n Notification) {
	log.Printf("store: [%s] %s: %s", n.Severity, n.Title, n.Description)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }
