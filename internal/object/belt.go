package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/physics"
)

// Belt is a wide rotating ellipse spanning the middle of the view.
type Belt struct {
	Body
	Width, Height float64
}

// NewBelt creates a belt centred horizontally at world y.
func NewBelt(cfg config.Config, rng *rand.Rand, y float64) *Belt {
	w := cfg.ViewWidth * 0.5
	h := cfg.Units(2)
	return &Belt{
		Body:   newBody(config.KindBelt, cfg.ViewWidth/2, y, math.Max(w, h)/2, cfg, rng),
		Width:  w,
		Height: h,
	}
}

// Update rotates the belt.
func (b *Belt) Update(UpdateContext) bool {
	b.spin()
	return false
}

// Collides tests the craft centre against the rotated ellipse. The craft
// radius is not added.
func (b *Belt) Collides(c *Craft) bool {
	local := b.localOffset(c)
	return physics.PointInEllipse(local.X, local.Y, b.Width/2, b.Height/2)
}

// Draw renders the belt as a filled rotated ellipse.
func (b *Belt) Draw(ctx DrawContext) {
	relY, ok := b.onScreen(ctx, b.Size)
	if !ok {
		return
	}
	ctx.Surface.Ellipse(b.X, relY, b.Width/2, b.Height/2, b.Rotation, true)
}
