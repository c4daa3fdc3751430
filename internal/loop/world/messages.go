package world

import (
	"time"

	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/object"
)

// Messenger displays transient messages to the player.
type Messenger interface {
	Show(msg string, now time.Time)
}

// MilestoneBoard shows one message at a time with a fade in and out. A new
// message replaces the current one. It also announces the configured
// distance milestones, each once.
type MilestoneBoard struct {
	milestones []config.Milestone
	next       int // index of the next milestone to announce

	text     string
	start    time.Time
	duration time.Duration
	fade     time.Duration
}

// NewMilestoneBoard creates an empty board.
func NewMilestoneBoard(cfg config.Config) *MilestoneBoard {
	return &MilestoneBoard{
		milestones: cfg.Milestones,
		duration:   cfg.MessageDuration,
		fade:       cfg.MessageFade,
	}
}

// Show replaces the current message.
func (b *MilestoneBoard) Show(msg string, now time.Time) {
	b.text = msg
	b.start = now
}

// Update announces every milestone the traveled distance has reached.
func (b *MilestoneBoard) Update(traveled float64, now time.Time) {
	for b.next < len(b.milestones) && traveled >= b.milestones[b.next].Distance {
		b.Show(b.milestones[b.next].Message, now)
		b.next++
	}
}

// Current returns the visible message and its opacity in [0, 1].
func (b *MilestoneBoard) Current(now time.Time) (string, float64, bool) {
	if b.text == "" {
		return "", 0, false
	}
	elapsed := now.Sub(b.start)
	switch {
	case elapsed < 0 || elapsed >= b.duration:
		return "", 0, false
	case elapsed < b.fade:
		return b.text, float64(elapsed) / float64(b.fade), true
	case elapsed > b.duration-b.fade:
		return b.text, float64(b.duration-elapsed) / float64(b.fade), true
	default:
		return b.text, 1, true
	}
}

// Shift moves the display window forward after a pause.
func (b *MilestoneBoard) Shift(d time.Duration) {
	b.start = b.start.Add(d)
}

// Draw renders the message in the upper part of the view. The terminal
// has no partial opacity, so the faded ends are hidden.
func (b *MilestoneBoard) Draw(s object.Surface, now time.Time) {
	text, alpha, ok := b.Current(now)
	if !ok || alpha < 0.3 {
		return
	}
	s.Text(s.Width()/2, s.Height()*0.25, text)
}
