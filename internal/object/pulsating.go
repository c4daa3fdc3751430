package object

import (
	"math/rand"

	"github.com/tomz197/swoosh/internal/loop/config"
)

// Pulsating is a round asteroid that slowly grows and snaps back to its
// base size.
type Pulsating struct {
	Body
	BaseSize float64

	growth  float64 // per second
	maxSize float64
}

// NewPulsating creates a pulsating asteroid at its base size.
func NewPulsating(cfg config.Config, rng *rand.Rand, x, y, size float64) *Pulsating {
	return &Pulsating{
		Body:     newBody(config.KindPulsating, x, y, size, cfg, rng),
		BaseSize: size,
		growth:   cfg.Units(cfg.Obstacles.Pulsating.GrowthUnits),
		maxSize:  size * cfg.Obstacles.Pulsating.MaxFactor,
	}
}

// Update grows the asteroid and resets it once it exceeds its maximum.
func (p *Pulsating) Update(ctx UpdateContext) bool {
	p.spin()
	p.Size += p.growth * ctx.Delta.Seconds()
	if p.Size > p.maxSize {
		p.Size = p.BaseSize
	}
	return false
}

// Collides is a circle test against the current size.
func (p *Pulsating) Collides(c *Craft) bool {
	return p.circleHit(c, p.Size)
}

func (p *Pulsating) Draw(ctx DrawContext) {
	relY, ok := p.onScreen(ctx, p.Size)
	if !ok {
		return
	}
	ctx.Surface.Circle(p.X, relY, p.Size, true)
}
