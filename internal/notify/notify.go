// Package notify delivers user-visible toast notifications emitted by the
// state core. Delivery is fire-and-forget: no sink may block or fail a store
// operation.
package notify

import "go.uber.org/zap"

// Severity classifies a toast.
type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Error   Severity = "error"
)

// Sink accepts user-visible notifications.
type Sink interface {
	Notify(sev Severity, msg string)
}

// LogSink writes toasts to the structured log. It is the default sink when an
// embedder does not provide a UI-facing one.
type LogSink struct {
	Log *zap.Logger
}

func (s LogSink) Notify(sev Severity, msg string) {
	if s.Log == nil {
		return
	}
	s.Log.Info("toast",
		zap.String("severity", string(sev)),
		zap.String("message", msg),
	)
}

// Discard drops every notification. Useful in tests.
type Discard struct{}

func (Discard) Notify(Severity, string) {}
