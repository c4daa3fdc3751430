package world

import (
	"math"
	"testing"
	"time"

	"github.com/tomz197/swoosh/internal/loop/config"
)

// TestMilestonesAnnouncedOnce verifies each milestone message appears exactly once
func TestMilestonesAnnouncedOnce(t *testing.T) {
	b := NewMilestoneBoard(config.Default())

	b.Update(999, t0)
	if _, _, ok := b.Current(t0); ok {
		t.Fatal("Expected no message before the first milestone")
	}

	b.Update(1000, t0)
	text, _, ok := b.Current(t0.Add(time.Second))
	if !ok || text != "Breaking atmosphere..." {
		t.Fatalf("Expected the first milestone, got %q", text)
	}

	b.Update(1500, t0.Add(2*time.Second))
	if b.start != t0 {
		t.Error("Expected the milestone not to restart")
	}

	b.Update(30000, t0.Add(5*time.Second))
	text, _, _ = b.Current(t0.Add(6 * time.Second))
	if text != "Unknown signals ahead..." {
		t.Errorf("Expected the latest milestone to win, got %q", text)
	}
	if b.next != 3 {
		t.Errorf("Expected three milestones consumed, got %d", b.next)
	}
}

// TestMessageFades verifies the fade in, hold and fade out of a message
func TestMessageFades(t *testing.T) {
	b := NewMilestoneBoard(config.Default())
	b.Show("hi", t0)

	tests := []struct {
		at    time.Duration
		alpha float64
		ok    bool
	}{
		{250 * time.Millisecond, 0.5, true},
		{time.Second, 1, true},
		{2750 * time.Millisecond, 0.5, true},
		{3 * time.Second, 0, false},
	}
	for _, tt := range tests {
		_, alpha, ok := b.Current(t0.Add(tt.at))
		if ok != tt.ok || math.Abs(alpha-tt.alpha) > 1e-9 {
			t.Errorf("At %v: expected (%v, %v), got (%v, %v)", tt.at, tt.alpha, tt.ok, alpha, ok)
		}
	}
}

// TestMessageReplaced verifies a new message replaces the current one
func TestMessageReplaced(t *testing.T) {
	b := NewMilestoneBoard(config.Default())
	b.Show("first", t0)
	b.Show("second", t0.Add(time.Second))

	text, alpha, ok := b.Current(t0.Add(time.Second))
	if !ok || text != "second" || alpha != 0 {
		t.Errorf("Expected second message fading in, got %q %v %v", text, alpha, ok)
	}
}

// TestMessageDrawHiddenWhileFaint verifies faint messages are not drawn
func TestMessageDrawHiddenWhileFaint(t *testing.T) {
	b := NewMilestoneBoard(config.Default())
	b.Show("hi", t0)

	s := &textSurface{}
	b.Draw(s, t0.Add(50*time.Millisecond))
	if len(s.texts) != 0 {
		t.Errorf("Expected nothing drawn while faint, got %v", s.texts)
	}
	b.Draw(s, t0.Add(time.Second))
	if len(s.texts) != 1 || s.texts[0] != "hi" {
		t.Errorf("Expected the message drawn, got %v", s.texts)
	}
}
