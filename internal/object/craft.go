package object

import (
	"math"
	"time"

	"github.com/tomz197/swoosh/internal/input"
	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/physics"
)

// Arc is an in-progress swoop: the craft leaves StartX on a half-sine and
// returns to it after the arc duration.
type Arc struct {
	StartX, StartY float64
	Start          time.Time
	Direction      Direction
}

// TrailPoint is one dot of the fading trail behind the craft.
type TrailPoint struct {
	X, Y    float64
	Opacity float64
}

// Craft is the player-controlled ship. It auto-advances upward and steers
// with discrete arcs. At most one arc is active at a time.
type Craft struct {
	X, Y             float64
	Radius           float64
	VerticalVelocity float64 // world units per second, positive is forward

	arc     *Arc
	visible bool
	moved   bool

	shield        bool
	shieldLeft    time.Duration
	shieldWarning bool
	shieldPulse   float64

	trail []TrailPoint

	paused   bool
	pausedAt time.Time

	cfg       config.CraftConfig
	startX    float64
	startY    float64
	width     float64
	baseSpeed float64
	arcRadius float64
	notifier  Notifier
}

// NewCraft creates a craft at its start position. n may be nil.
func NewCraft(cfg config.Config, n Notifier) *Craft {
	base := cfg.Craft.SpeedFraction * cfg.ViewHeight
	c := &Craft{
		Radius:    cfg.Units(cfg.Craft.RadiusUnits),
		cfg:       cfg.Craft,
		startX:    cfg.Craft.StartX * cfg.ViewWidth,
		startY:    cfg.Craft.StartY * cfg.ViewHeight,
		width:     cfg.ViewWidth,
		baseSpeed: base,
		arcRadius: cfg.Craft.ArcRadiusFraction * cfg.ViewWidth,
		notifier:  n,
	}
	c.Reset()
	return c
}

// Reset puts the craft back at its start position with no arc, shield or
// trail.
func (c *Craft) Reset() {
	c.X = c.startX
	c.Y = c.startY
	c.VerticalVelocity = c.baseSpeed
	c.arc = nil
	c.visible = true
	c.moved = false
	c.shield = false
	c.shieldLeft = 0
	c.shieldWarning = false
	c.shieldPulse = 0
	c.trail = c.trail[:0]
	c.paused = false
}

// StartMovement replaces any active arc with a fresh one from the current
// position. Ignored while paused.
func (c *Craft) StartMovement(dir Direction, now time.Time) {
	if c.paused {
		return
	}
	c.notifyTurn()
	c.arc = &Arc{StartX: c.X, StartY: c.Y, Start: now, Direction: dir}
	c.moved = true
}

// StopMovement acknowledges a key release. Arcs always run to completion,
// so this does not alter the kinematics.
func (c *Craft) StopMovement() {}

// Update advances the craft by dt. Arc progress is measured against now.
func (c *Craft) Update(dt time.Duration, now time.Time) {
	if c.paused {
		return
	}
	secs := dt.Seconds()

	s := c.cfg.SpeedSmoothing
	c.VerticalVelocity = c.VerticalVelocity*s + c.baseSpeed*(1-s)
	c.Y -= c.VerticalVelocity * secs

	if c.arc != nil {
		c.updateArc(now)
	}

	c.updateTrail()
	c.updateShield(dt)
}

// updateArc applies the half-sine swoop and bounces off the view edges.
func (c *Craft) updateArc(now time.Time) {
	progress := c.progressAt(now)
	angle := float64(c.arc.Direction) * math.Pi * progress
	newX := c.arc.StartX + math.Sin(angle)*c.arcRadius

	bounced := false
	lo, hi := c.Radius, c.width-c.Radius
	if newX < lo || newX > hi {
		dir, x := input.Left, hi
		if newX < lo {
			dir, x = input.Right, lo
		}
		c.notifyTurn()
		c.arc = &Arc{StartX: x, StartY: c.Y, Start: now, Direction: dir}
		c.X = x
		bounced = true
	} else {
		c.X = newX
	}

	// Forward speed pulses during a turn.
	c.VerticalVelocity = c.baseSpeed + math.Sin(progress*math.Pi)*c.baseSpeed*c.cfg.BoostFraction

	if progress >= 1 && !bounced {
		c.arc = nil
	}
}

func (c *Craft) updateTrail() {
	if n := len(c.trail); n == 0 ||
		physics.Distance(c.X, c.Y, c.trail[n-1].X, c.trail[n-1].Y) > c.cfg.TrailSpacing {
		c.trail = append(c.trail, TrailPoint{X: c.X, Y: c.Y, Opacity: 1})
	}

	kept := c.trail[:0]
	for _, p := range c.trail {
		p.Opacity -= c.cfg.TrailFade
		if p.Opacity > 0 {
			kept = append(kept, p)
		}
	}
	if over := len(kept) - c.cfg.TrailLength; over > 0 {
		kept = append(kept[:0], kept[over:]...)
	}
	c.trail = kept
}

func (c *Craft) updateShield(dt time.Duration) {
	if !c.shield {
		return
	}
	c.shieldLeft -= dt
	c.shieldPulse += 0.1

	if c.shieldLeft < c.cfg.ShieldWarning && !c.shieldWarning {
		c.shieldWarning = true
		c.shieldPulse = 0
	}
	if c.shieldLeft <= 0 {
		c.shield = false
		c.shieldLeft = 0
		c.shieldWarning = false
	}
}

// ActivateShield turns the shield on for the full configured duration.
func (c *Craft) ActivateShield() {
	c.shield = true
	c.shieldLeft = c.cfg.ShieldDuration
	c.shieldWarning = false
	c.shieldPulse = 0
}

// ShieldActive reports whether the shield is up.
func (c *Craft) ShieldActive() bool { return c.shield }

// ShieldRemaining returns the time left on the shield.
func (c *Craft) ShieldRemaining() time.Duration { return c.shieldLeft }

// ShieldWarning reports whether the shield is about to expire.
func (c *Craft) ShieldWarning() bool { return c.shieldWarning }

// Pause freezes the craft. Pausing twice keeps the first timestamp.
func (c *Craft) Pause(now time.Time) {
	if c.paused {
		return
	}
	c.paused = true
	c.pausedAt = now
}

// Resume shifts an in-progress arc forward by the paused duration so it
// continues from the progress it had when paused.
func (c *Craft) Resume(now time.Time) {
	if !c.paused {
		return
	}
	c.paused = false
	if c.arc == nil {
		return
	}
	c.arc.Start = c.arc.Start.Add(now.Sub(c.pausedAt))
	if now.Sub(c.arc.Start) >= c.cfg.ArcDuration {
		c.arc = nil
	}
}

// Paused reports whether the craft is paused.
func (c *Craft) Paused() bool { return c.paused }

// Progress returns the progress of the active arc in [0, 1]. While paused
// the progress is frozen at the pause instant.
func (c *Craft) Progress(now time.Time) (float64, bool) {
	if c.arc == nil {
		return 0, false
	}
	if c.paused {
		now = c.pausedAt
	}
	return c.progressAt(now), true
}

func (c *Craft) progressAt(now time.Time) float64 {
	elapsed := now.Sub(c.arc.Start)
	return math.Max(0, math.Min(1, float64(elapsed)/float64(c.cfg.ArcDuration)))
}

// Arc returns a copy of the active arc.
func (c *Craft) Arc() (Arc, bool) {
	if c.arc == nil {
		return Arc{}, false
	}
	return *c.arc, true
}

// Moved reports whether the player has steered since the last reset.
func (c *Craft) Moved() bool { return c.moved }

// Visible reports whether the craft is drawn and can collide.
func (c *Craft) Visible() bool { return c.visible }

// Hide removes the craft from view, e.g. while inside a wormhole.
func (c *Craft) Hide() { c.visible = false }

// Teleport places the craft at (x, y), makes it visible and drops any arc
// so the swoop does not pull it back toward its old start.
func (c *Craft) Teleport(x, y float64) {
	c.X, c.Y = x, y
	c.arc = nil
	c.visible = true
	c.trail = c.trail[:0]
}

// Nudge displaces the craft outside of the arc kinematics and keeps it
// inside the view horizontally.
func (c *Craft) Nudge(dx, dy float64) {
	c.X = math.Max(c.Radius, math.Min(c.width-c.Radius, c.X+dx))
	c.Y += dy
}

// Trail returns the current trail points, oldest first.
func (c *Craft) Trail() []TrailPoint { return c.trail }

func (c *Craft) notifyTurn() {
	if c.notifier != nil {
		c.notifier.NotifyTurn()
	}
}

// Draw renders the trail, the craft and its shield.
func (c *Craft) Draw(ctx DrawContext) {
	s := ctx.Surface
	for _, p := range c.trail {
		if p.Opacity < 0.25 {
			continue
		}
		s.Dot(p.X, ctx.Camera.RelativeY(p.Y))
	}

	if !c.visible {
		return
	}
	relY := ctx.Camera.RelativeY(c.Y)
	s.Circle(c.X, relY, c.Radius, true)

	if !c.shield {
		return
	}
	scale := 1 + math.Sin(c.shieldPulse)*0.2
	if c.shieldWarning {
		scale = 1 + math.Sin(c.shieldPulse*2)*0.3
		// Blink the outer ring while the shield runs out.
		if int(c.shieldPulse*2)%2 == 0 {
			return
		}
	}
	r := c.Radius * 1.5 * scale
	s.Circle(c.X, relY, r, false)
	s.Circle(c.X, relY, r*1.1, false)
}
