// Package notifsvc delivers UI notifications. The frontend renders toasts
// itself; on the server side notifications land in the log so operators see
// the same trail the user does.
package notifsvc

import (
	"fmt"
	"sync"

	"github.com/spaceacademy/backoffice/core"
)

type consoleNotifier struct {
	logger core.Logger
}

var _ core.Notifier = (*consoleNotifier)(nil)

func NewConsoleNotifier(logger core.Logger) core.Notifier {
	return &consoleNotifier{logger: logger}
}

func (n consoleNotifier) Notify(notif core.Notification) {
	msg := fmt.Sprintf("notification (%s): %s", notif.Severity, notif.Title)
	if notif.Description != "" {
		msg += " - " + notif.Description
	}
	if notif.Severity == core.SeverityError {
		n.logger.Warn(msg)
		return
	}
	n.logger.Info(msg)
}

// NotifierMock records notifications for assertions.
type NotifierMock struct {
	mu   sync.Mutex
	Sent []core.Notification
}

var _ core.Notifier = (*NotifierMock)(nil)

func NewNotifierMock() *NotifierMock {
	return &NotifierMock{Sent: make([]core.Notification, 0)}
}

func (n *NotifierMock) Notify(notif core.Notification) {
	n.mu.Lock()
	n.Sent = append(n.Sent, notif)
	n.mu.Unlock()
}

func (n *NotifierMock) Reset() {
	n.mu.Lock()
	n.Sent = n.Sent[:0]
	n.mu.Unlock()
}
