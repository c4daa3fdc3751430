package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/swoosh/internal/loop/config"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect in world coordinates. Motion and
// fading are applied per tick. A particle with Text set is a floating label.
type Particle struct {
	X, Y    float64
	VX, VY  float64 // per tick
	Size    float64
	Opacity float64
	Fade    float64 // opacity lost per tick
	Shrink  float64 // size multiplier per tick, 1 keeps the size
	Text    string
}

// NewParticle takes a particle from the pool.
func NewParticle(x, y, vx, vy, size, fade, shrink float64) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		X:       x,
		Y:       y,
		VX:      vx,
		VY:      vy,
		Size:    size,
		Opacity: 1,
		Fade:    fade,
		Shrink:  shrink,
	}
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnDebris creates evenly spread fragments for a destroyed obstacle of
// the given size.
func SpawnDebris(x, y, size, unit float64, cfg config.DebrisConfig, rng *rand.Rand) []*Particle {
	particles := make([]*Particle, 0, cfg.Count)
	base := unit * cfg.SpeedUnits
	for i := 0; i < cfg.Count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(cfg.Count)
		speed := base * (2 + rng.Float64()*3)
		particles = append(particles, NewParticle(
			x, y,
			math.Cos(angle)*speed, math.Sin(angle)*speed,
			size*(0.1+rng.Float64()*0.2),
			cfg.Fade, cfg.Shrink,
		))
	}
	return particles
}

// SpawnExplosion creates particles in a random circular burst, used when
// the craft is destroyed.
func SpawnExplosion(x, y, radius, unit float64, cfg config.DebrisConfig, rng *rand.Rand) []*Particle {
	particles := make([]*Particle, 0, cfg.Explosion)
	base := unit * cfg.SpeedUnits
	for i := 0; i < cfg.Explosion; i++ {
		angle := rng.Float64() * 2 * math.Pi
		// 50% to 150% of the base speed
		speed := base * 2 * (0.5 + rng.Float64())
		particles = append(particles, NewParticle(
			x, y,
			math.Cos(angle)*speed, math.Sin(angle)*speed,
			radius*(0.2+rng.Float64()*0.3),
			cfg.Fade/2, cfg.Shrink,
		))
	}
	return particles
}

// ScorePopup creates a floating label that drifts upward and fades.
func ScorePopup(x, y, unit float64, text string, cfg config.DebrisConfig) *Particle {
	p := NewParticle(x, y, 0, -cfg.PopupSpeed, unit, cfg.Fade, 1)
	p.Text = text
	return p
}

// Update moves and fades the particle by one tick. Returns true once it
// has faded out.
func (p *Particle) Update() bool {
	p.X += p.VX
	p.Y += p.VY
	p.Opacity -= p.Fade
	p.Size *= p.Shrink
	return p.Opacity <= 0
}

// Draw renders the particle. Faint particles are skipped since the
// terminal has no partial opacity.
func (p *Particle) Draw(ctx DrawContext) {
	if p.Opacity < 0.25 {
		return
	}
	relY := ctx.Camera.RelativeY(p.Y)
	if p.Text != "" {
		ctx.Surface.Text(p.X, relY, p.Text)
		return
	}
	if p.Size < 4 {
		ctx.Surface.Dot(p.X, relY)
		return
	}
	ctx.Surface.Circle(p.X, relY, p.Size, true)
}
