package world

import (
	"github.com/charmbracelet/log"

	"github.com/tomz197/swoosh/internal/object"
)

// safeNotifier shields the simulation from a misbehaving notifier. Panics
// are logged and swallowed.
type safeNotifier struct {
	next   object.Notifier
	logger *log.Logger
}

func newSafeNotifier(n object.Notifier, logger *log.Logger) *safeNotifier {
	return &safeNotifier{next: n, logger: logger}
}

func (s *safeNotifier) call(cue string, fn func(object.Notifier)) {
	if s.next == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("notifier failed", "cue", cue, "panic", r)
		}
	}()
	fn(s.next)
}

func (s *safeNotifier) NotifyTurn() {
	s.call("turn", object.Notifier.NotifyTurn)
}

func (s *safeNotifier) NotifyShieldHit() {
	s.call("shield-hit", object.Notifier.NotifyShieldHit)
}

func (s *safeNotifier) NotifyCrash() {
	s.call("crash", object.Notifier.NotifyCrash)
}

func (s *safeNotifier) NotifyPickup() {
	s.call("pickup", object.Notifier.NotifyPickup)
}
