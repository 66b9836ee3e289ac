// Package notify delivers best-effort desktop notifications.
//
// A backend is selected once at startup by probing the PATH; when no popup
// tool is installed every notification still reaches the log. Notify never
// blocks on popup delivery and never returns an error to the caller.
package notify

import (
	"os/exec"
	"time"

	"github.com/ternarybob/arbor"
)

// Severity classifies a notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityError
)

const (
	infoTimeout  = 3 * time.Second
	errorTimeout = 5 * time.Second
)

// Backend delivers one desktop popup.
type Backend interface {
	Name() string
	Send(message, title string, timeout time.Duration) error
}

// Notifier fans a notification out to the selected backend and the log.
type Notifier struct {
	backend Backend
	log     arbor.ILogger
}

// New builds a notifier using the first available popup backend.
func New(log arbor.ILogger) *Notifier {
	return &Notifier{backend: Detect(), log: log}
}

// NewWithBackend builds a notifier around an explicit backend. A nil backend
// means console-only delivery.
func NewWithBackend(log arbor.ILogger, backend Backend) *Notifier {
	return &Notifier{backend: backend, log: log}
}

// Detect probes the PATH for popup tools, in priority order.
func Detect() Backend {
	if path, err := exec.LookPath("notify-send"); err == nil {
		return &notifySendBackend{path: path}
	}
	if path, err := exec.LookPath("kdialog"); err == nil {
		return &kdialogBackend{path: path}
	}
	if path, err := exec.LookPath("zenity"); err == nil {
		return &zenityBackend{path: path}
	}
	return nil
}

// Notify sends a notification. Popup failures are logged, never escalated.
func (n *Notifier) Notify(message, title string, sev Severity) {
	timeout := infoTimeout
	if sev == SeverityError {
		timeout = errorTimeout
	}

	if n.backend != nil {
		if err := n.backend.Send(message, title, timeout); err != nil {
			n.log.Warn().Err(err).Str("backend", n.backend.Name()).Msg("Failed to send notification")
		}
	}

	switch sev {
	case SeverityError:
		n.log.Error().Str("title", title).Msg(message)
	default:
		n.log.Info().Str("title", title).Msg(message)
	}
}

// Info sends an informational notification.
func (n *Notifier) Info(message string) {
	n.Notify(message, "INFO", SeverityInfo)
}

// Error sends an error notification.
func (n *Notifier) Error(message string) {
	n.Notify(message, "ERROR", SeverityError)
}
