package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/physics"
)

// coreFactor is the share of a black hole's size that is solid.
const coreFactor = 0.8

// BlackHole pulls the craft toward its centre within its influence radius.
// Only the core is lethal.
type BlackHole struct {
	Body
	Advanced  bool
	Force     float64 // displacement per tick at the centre
	Influence float64

	pulse float64
}

// NewBlackHole creates a black hole. Advanced holes are larger and pull
// harder.
func NewBlackHole(cfg config.Config, rng *rand.Rand, x, y float64, advanced bool) *BlackHole {
	bc := cfg.Obstacles.BlackHole
	factor, force, reach := bc.SizeFactor, bc.ForceUnits, bc.InfluenceFactor
	if advanced {
		factor, force, reach = bc.AdvancedFactor, bc.AdvancedForce, bc.AdvancedReach
	}
	size := cfg.Units(bc.SizeUnits) * factor
	return &BlackHole{
		Body:      newBody(config.KindBlackHole, x, y, size, cfg, rng),
		Advanced:  advanced,
		Force:     cfg.Units(force),
		Influence: size * reach,
	}
}

// Update animates the rings and pulls the craft.
func (b *BlackHole) Update(ctx UpdateContext) bool {
	b.spin()
	b.pulse += 0.03
	if ctx.Craft != nil && ctx.Craft.Visible() {
		b.Pull(ctx.Craft)
	}
	return false
}

// Pull nudges the craft toward the centre with a quadratic falloff.
func (b *BlackHole) Pull(c *Craft) {
	dx, dy := c.X-b.X, c.Y-b.Y
	d := math.Hypot(dx, dy)
	if d >= b.Influence || d == 0 {
		return
	}
	falloff := math.Pow(1-d/b.Influence, 2)
	force := b.Force * falloff
	angle := math.Atan2(dy, dx)
	c.Nudge(-math.Cos(angle)*force, -math.Sin(angle)*force)
}

// Collides tests the core only.
func (b *BlackHole) Collides(c *Craft) bool {
	return physics.CirclesOverlap(b.X, b.Y, b.Size*coreFactor, c.X, c.Y, c.Radius)
}

// Draw renders four pulsing rings around the core.
func (b *BlackHole) Draw(ctx DrawContext) {
	relY, ok := b.onScreen(ctx, b.Influence)
	if !ok {
		return
	}
	for i := 0; i < 4; i++ {
		phase := b.pulse + float64(i)*math.Pi/2
		r := b.Size * (1.2 + float64(i)*0.3) * (1 + math.Sin(phase)*0.2)
		ctx.Surface.Circle(b.X, relY, r, false)
	}
	ctx.Surface.Circle(b.X, relY, b.Size*coreFactor, true)
}
