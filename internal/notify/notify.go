// Package notify raises desktop notifications when the productivity tier of
// the tracked day changes.
package notify

import (
	"fmt"
	"sync"

	"github.com/ashlinalex1/mindstride/internal/activity"
	"github.com/ashlinalex1/mindstride/internal/domain"
	"github.com/gen2brain/beeep"
)

// AppName is shown as the sender of desktop notifications.
const AppName = "MindStride"

// Notifier delivers one notification.
type Notifier interface {
	Notify(title, message string) error
}

type desktopNotifier struct{}

// NewDesktopNotifier returns a Notifier backed by the OS notification center.
func NewDesktopNotifier() Notifier {
	beeep.AppName = AppName
	return desktopNotifier{}
}

func (desktopNotifier) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// TierWatcher notifies when a summary moves to a different status tier.
// The first non-empty summary only sets the baseline.
type TierWatcher struct {
	n Notifier

	mu   sync.Mutex
	last domain.StatusTier
}

func NewTierWatcher(n Notifier) *TierWatcher {
	return &TierWatcher{n: n}
}

// Observe reports whether a notification was sent for s.
func (w *TierWatcher) Observe(s domain.ActivitySummary) (bool, error) {
	if s.IsEmpty() {
		return false, nil
	}
	status := activity.Status(s)

	w.mu.Lock()
	prev := w.last
	w.last = status.Tier
	w.mu.Unlock()

	if prev == "" || prev == status.Tier {
		return false, nil
	}
	title := fmt.Sprintf("%s: %s", AppName, label(status.Tier))
	msg := fmt.Sprintf("%s (%d%% study, %s tracked)",
		status.Message, activity.ProductivityPercentage(s), activity.FormatDuration(s.TotalMinutes()))
	if err := w.n.Notify(title, msg); err != nil {
		return false, fmt.Errorf("sending tier notification: %w", err)
	}
	return true, nil
}

func label(t domain.StatusTier) string {
	switch t {
	case domain.TierExcellent:
		return "Excellent"
	case domain.TierGood:
		return "Good"
	case domain.TierAverage:
		return "Average"
	default:
		return "Needs improvement"
	}
}
