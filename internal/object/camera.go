package object

import (
	"math"

	"github.com/tomz197/swoosh/internal/loop/config"
)

// Camera maps world Y to view Y. It follows the craft by exponentially
// smoothing a target velocity; the position itself is never lerped.
type Camera struct {
	Y             float64 // world Y of the top edge of the view
	Velocity      float64 // world units per tick
	TotalDistance float64 // accumulated |Velocity|; the score basis

	idealOffset   float64
	interpolation float64
	smoothing     float64
	boost         float64
	shakeX        float64
	shakeY        float64
}

// NewCamera creates a camera already at rest on the craft at craftY.
func NewCamera(cfg config.Config, craftY float64) *Camera {
	ideal := cfg.Camera.IdealOffsetFraction * cfg.ViewHeight
	return &Camera{
		Y:             craftY - ideal,
		idealOffset:   ideal,
		interpolation: cfg.Camera.Interpolation,
		smoothing:     cfg.Camera.Smoothing,
		boost:         1,
	}
}

// Update advances the camera by one tick toward the craft. speedFactor
// below 1 lets the camera coast to a stop after a crash.
func (c *Camera) Update(craftY, speedFactor float64) {
	target := craftY - c.idealOffset
	targetVelocity := (target - c.Y) * c.interpolation * speedFactor * c.boost
	c.Velocity = c.Velocity*c.smoothing + targetVelocity*(1-c.smoothing)
	c.Y += c.Velocity
	c.TotalDistance += math.Abs(c.Velocity)
}

// RelativeY converts a world Y to a view Y.
func (c *Camera) RelativeY(worldY float64) float64 {
	return worldY - c.Y
}

// SetBoost multiplies the follow speed, e.g. during the cutscene. 1 is normal.
func (c *Camera) SetBoost(f float64) {
	c.boost = f
}

// SetShake stores the screen shake offset for this frame.
func (c *Camera) SetShake(dx, dy float64) {
	c.shakeX, c.shakeY = dx, dy
}

// Shake returns the current screen shake offset.
func (c *Camera) Shake() (dx, dy float64) {
	return c.shakeX, c.shakeY
}
