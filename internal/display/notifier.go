package display

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*AlertNotifier)(nil)

// alertMsg carries a notification into the Bubble Tea loop.
type alertMsg struct {
	text   string
	urgent bool
}

// AlertNotifier turns console notifications into on-screen alerts.
// Messages sent before the program starts are queued and delivered once
// it is attached.
type AlertNotifier struct {
	log *logger.Logger

	mu      sync.Mutex
	send    func(tea.Msg)
	pending []alertMsg
}

// NewAlertNotifier creates a notifier with no program attached.
func NewAlertNotifier(log *logger.Logger) *AlertNotifier {
	return &AlertNotifier{log: log}
}

// Notify shows an informational message.
func (n *AlertNotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.deliver(alertMsg{text: message})
	return nil
}

// NotifyUrgent shows a blocking alert; any key dismisses it.
func (n *AlertNotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	n.deliver(alertMsg{text: message, urgent: true})
	return nil
}

// attach routes alerts to send and flushes the queue. send must not be
// called from inside Update.
func (n *AlertNotifier) attach(send func(tea.Msg)) {
	n.mu.Lock()
	n.send = send
	queued := n.pending
	n.pending = nil
	n.mu.Unlock()

	for _, m := range queued {
		send(m)
	}
}

func (n *AlertNotifier) deliver(m alertMsg) {
	n.mu.Lock()
	send := n.send
	if send == nil {
		n.pending = append(n.pending, m)
	}
	n.mu.Unlock()

	if send != nil {
		send(m)
	}
}
