package object

import (
	"math/rand"

	"github.com/tomz197/swoosh/internal/input"
	"github.com/tomz197/swoosh/internal/loop/config"
)

// Comet streaks horizontally across the view leaving a fading trail. It
// removes itself once it has left the opposite side.
type Comet struct {
	Body
	Direction Direction
	Trail     []*Particle

	speed  float64 // per second
	viewW  float64
	fade   float64
	shrink float64
}

// NewComet creates a comet just outside a random side of the view at world y.
func NewComet(cfg config.Config, rng *rand.Rand, y float64) *Comet {
	cc := cfg.Obstacles.Comet
	size := cfg.Units(cc.SizeUnits)

	x, dir := -size, input.Right
	if rng.Float64() >= 0.5 {
		x, dir = cfg.ViewWidth+size, input.Left
	}
	return &Comet{
		Body:      newBody(config.KindComet, x, y, size, cfg, rng),
		Direction: dir,
		speed:     cfg.Units(cc.SpeedUnits),
		viewW:     cfg.ViewWidth,
		fade:      cc.TrailFade,
		shrink:    cc.TrailShrink,
	}
}

// Update moves the comet, grows the trail and reports when it is gone.
func (c *Comet) Update(ctx UpdateContext) bool {
	c.spin()
	c.X += c.speed * float64(c.Direction) * ctx.Delta.Seconds()

	c.Trail = append(c.Trail, NewParticle(c.X, c.Y, 0, 0, c.Size*0.5, c.fade, c.shrink))
	kept := c.Trail[:0]
	for _, p := range c.Trail {
		if p.Update() {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	c.Trail = kept

	return c.offScreen()
}

func (c *Comet) offScreen() bool {
	if c.Direction == input.Right {
		return c.X > c.viewW+c.Size*2
	}
	return c.X < -c.Size*2
}

// Collides is a circle test against the head.
func (c *Comet) Collides(craft *Craft) bool {
	return c.circleHit(craft, c.Size)
}

func (c *Comet) Draw(ctx DrawContext) {
	relY, ok := c.onScreen(ctx, c.Size)
	if !ok {
		return
	}
	for _, p := range c.Trail {
		p.Draw(ctx)
	}
	ctx.Surface.Circle(c.X, relY, c.Size, true)
}
