// Package notify carries user-facing outcome notifications out of the
// state stores. Delivery is fire-and-forget; stores never depend on a
// notification succeeding.
package notify

import "github.com/sirupsen/logrus"

// Severity classifies a notification for the consuming surface
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notifier accepts (title, description, severity) tuples
type Notifier interface {
	Notify(title, description string, severity Severity)
}

// LogNotifier writes notifications to the application log. It stands in
// wherever no richer delivery channel is wired.
type LogNotifier struct {
	log *logrus.Logger
}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier(log *logrus.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify logs the notification at a level matching its severity
func (n *LogNotifier) Notify(title, description string, severity Severity) {
	entry := n.log.WithFields(logrus.Fields{
		"title":    title,
		"severity": severity,
	})

	switch severity {
	case SeverityError:
		entry.Warn(description)
	default:
		entry.Info(description)
	}
}

// NopNotifier discards all notifications
type NopNotifier struct{}

// Notify does nothing
func (NopNotifier) Notify(string, string, Severity) {}
