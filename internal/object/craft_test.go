package object

import (
	"math"
	"testing"
	"time"

	"github.com/tomz197/swoosh/internal/input"
	"github.com/tomz197/swoosh/internal/loop/config"
)

const tolerance = 1e-9

// TestCraftStartPosition verifies the craft starts centred near the bottom
func TestCraftStartPosition(t *testing.T) {
	c := NewCraft(config.Default(), nil)
	if c.X != 600 || c.Y != 640 {
		t.Errorf("Expected (600, 640), got (%v, %v)", c.X, c.Y)
	}
	if c.Radius != 24 {
		t.Errorf("Expected radius 24, got %v", c.Radius)
	}
}

// TestCraftIdleTick verifies one idle tick moves up by the smoothed velocity times dt
func TestCraftIdleTick(t *testing.T) {
	cfg := config.Default()
	c := NewCraft(cfg, nil)
	base := cfg.Craft.SpeedFraction * cfg.ViewHeight
	y := c.Y

	c.Update(config.TickTime, t0)

	want := y - base*config.TickTime.Seconds()
	if math.Abs(c.Y-want) > tolerance {
		t.Errorf("Expected y %v, got %v", want, c.Y)
	}
	if c.X != 600 {
		t.Errorf("Expected x unchanged, got %v", c.X)
	}
}

// TestCraftArcSwoop verifies the half-sine path out and back
func TestCraftArcSwoop(t *testing.T) {
	cfg := config.Default()
	n := &countingNotifier{}
	c := NewCraft(cfg, n)
	arcRadius := cfg.Craft.ArcRadiusFraction * cfg.ViewWidth

	c.StartMovement(input.Right, t0)
	if n.turns != 1 {
		t.Errorf("Expected one turn cue, got %d", n.turns)
	}

	c.Update(config.TickTime, t0.Add(cfg.Craft.ArcDuration/2))
	if math.Abs(c.X-(600+arcRadius)) > tolerance {
		t.Errorf("Expected peak x %v, got %v", 600+arcRadius, c.X)
	}

	c.Update(config.TickTime, t0.Add(cfg.Craft.ArcDuration))
	if math.Abs(c.X-600) > 1e-6 {
		t.Errorf("Expected return to 600, got %v", c.X)
	}
	if _, ok := c.Arc(); ok {
		t.Error("Expected arc to be cleared after completion")
	}
}

// TestCraftNewArcReplacesOld verifies that a second movement replaces the active arc
func TestCraftNewArcReplacesOld(t *testing.T) {
	c := NewCraft(config.Default(), nil)

	c.StartMovement(input.Right, t0)
	c.Update(config.TickTime, t0.Add(200*time.Millisecond))
	x := c.X

	later := t0.Add(200 * time.Millisecond)
	c.StartMovement(input.Left, later)
	arc, ok := c.Arc()
	if !ok {
		t.Fatal("Expected an active arc")
	}
	if arc.Direction != input.Left || arc.StartX != x || !arc.Start.Equal(later) {
		t.Errorf("Expected fresh left arc from %v, got %+v", x, arc)
	}
}

// TestCraftWallBounce verifies clamping and direction flip at the view edge
func TestCraftWallBounce(t *testing.T) {
	cfg := config.Default()
	n := &countingNotifier{}
	c := NewCraft(cfg, n)
	c.X = 1100

	c.StartMovement(input.Right, t0)
	bounceAt := t0.Add(cfg.Craft.ArcDuration / 2)
	c.Update(config.TickTime, bounceAt)

	limit := cfg.ViewWidth - c.Radius
	if c.X != limit {
		t.Errorf("Expected x clamped to %v, got %v", limit, c.X)
	}
	arc, ok := c.Arc()
	if !ok {
		t.Fatal("Expected a bounce arc")
	}
	if arc.Direction != input.Left || arc.StartX != limit || !arc.Start.Equal(bounceAt) {
		t.Errorf("Expected left arc from the wall, got %+v", arc)
	}
	if n.turns != 2 {
		t.Errorf("Expected turn cues for start and bounce, got %d", n.turns)
	}
}

// TestCraftPauseFreezesArc verifies resume continues from the paused progress
func TestCraftPauseFreezesArc(t *testing.T) {
	c := NewCraft(config.Default(), nil)
	c.StartMovement(input.Right, t0)
	c.Update(config.TickTime, t0.Add(200*time.Millisecond))

	before, _ := c.Progress(t0.Add(200 * time.Millisecond))

	c.Pause(t0.Add(200 * time.Millisecond))
	c.Pause(t0.Add(5 * time.Second))
	if got, _ := c.Progress(t0.Add(8 * time.Second)); got != before {
		t.Errorf("Expected frozen progress %v while paused, got %v", before, got)
	}

	resumeAt := t0.Add(10 * time.Second)
	c.Resume(resumeAt)
	c.Resume(resumeAt.Add(time.Second))

	got, ok := c.Progress(resumeAt)
	if !ok {
		t.Fatal("Expected arc to survive the pause")
	}
	if math.Abs(got-before) > tolerance {
		t.Errorf("Expected progress %v after resume, got %v", before, got)
	}
}

// TestCraftShieldExpiresOnce verifies the shield turns off exactly once after its duration
func TestCraftShieldExpiresOnce(t *testing.T) {
	cfg := config.Default()
	c := NewCraft(cfg, nil)
	c.ActivateShield()

	transitions := 0
	warned := false
	active := c.ShieldActive()
	now := t0
	for i := 0; i < 2*config.TickRate*int(cfg.Craft.ShieldDuration/time.Second); i++ {
		now = now.Add(config.TickTime)
		c.Update(config.TickTime, now)
		if c.ShieldWarning() {
			warned = true
		}
		if active && !c.ShieldActive() {
			transitions++
		}
		if !active && c.ShieldActive() {
			t.Fatal("Shield re-activated on its own")
		}
		active = c.ShieldActive()
	}

	if transitions != 1 {
		t.Errorf("Expected one expiry, got %d", transitions)
	}
	if !warned {
		t.Error("Expected the warning state before expiry")
	}
	if c.ShieldWarning() {
		t.Error("Expected warning cleared after expiry")
	}
}

// TestCraftTeleport verifies teleporting drops the arc and shows the craft
func TestCraftTeleport(t *testing.T) {
	c := NewCraft(config.Default(), nil)
	c.StartMovement(input.Left, t0)
	c.Hide()

	c.Teleport(300, -1000)
	if _, ok := c.Arc(); ok {
		t.Error("Expected arc cleared by teleport")
	}
	if !c.Visible() || c.X != 300 || c.Y != -1000 {
		t.Errorf("Expected visible craft at (300, -1000), got (%v, %v) visible=%v", c.X, c.Y, c.Visible())
	}
}

// TestCraftNudgeClamps verifies external displacement keeps the craft inside the view
func TestCraftNudgeClamps(t *testing.T) {
	c := NewCraft(config.Default(), nil)
	c.Nudge(-5000, 3)
	if c.X != c.Radius {
		t.Errorf("Expected x clamped to %v, got %v", c.Radius, c.X)
	}
	if c.Y != 643 {
		t.Errorf("Expected y 643, got %v", c.Y)
	}
}

// TestCraftTrailBounded verifies the trail never exceeds its configured length
func TestCraftTrailBounded(t *testing.T) {
	cfg := config.Default()
	c := NewCraft(cfg, nil)
	now := t0
	for i := 0; i < 600; i++ {
		now = now.Add(config.TickTime)
		c.Update(config.TickTime, now)
		if len(c.Trail()) > cfg.Craft.TrailLength {
			t.Fatalf("Trail grew to %d", len(c.Trail()))
		}
	}
	if len(c.Trail()) == 0 {
		t.Error("Expected trail points while moving")
	}
}
