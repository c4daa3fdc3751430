package world

import (
	"math/rand"

	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/object"
)

// PowerUpManager spawns shield pickups at a randomized distance cadence,
// independent of the obstacle rows.
type PowerUpManager struct {
	cfg      config.PowerUpConfig
	rng      *rand.Rand
	notifier object.Notifier

	pickups []*object.ShieldPickup
	nextAt  float64 // traveled distance of the next spawn

	viewW, viewH float64
	cull         float64
	size, margin float64
	collected    int
}

// NewPowerUpManager creates a manager whose first pickup appears at the
// configured enable distance.
func NewPowerUpManager(cfg config.Config, rng *rand.Rand, n object.Notifier) *PowerUpManager {
	return &PowerUpManager{
		cfg:      cfg.PowerUps,
		rng:      rng,
		notifier: n,
		nextAt:   cfg.PowerUps.EnableDistance,
		viewW:    cfg.ViewWidth,
		viewH:    cfg.ViewHeight,
		cull:     cfg.ViewHeight * cfg.Obstacles.CullFraction,
		size:     cfg.Units(cfg.PowerUps.SizeUnits),
		margin:   cfg.Units(cfg.PowerUps.MarginUnits),
	}
}

// Pickups returns the active pickups.
func (p *PowerUpManager) Pickups() []*object.ShieldPickup { return p.pickups }

// Collected returns how many pickups the craft has taken.
func (p *PowerUpManager) Collected() int { return p.collected }

// Update spawns a pickup when due, grants shields on contact and culls
// pickups left behind.
func (p *PowerUpManager) Update(ctx object.UpdateContext, traveled float64) {
	if traveled >= p.nextAt {
		x := p.margin + p.rng.Float64()*(p.viewW-2*p.margin)
		p.pickups = append(p.pickups, object.NewShieldPickup(x, ctx.Camera.Y-p.viewH, p.size))
		p.nextAt = traveled + p.cfg.MinInterval + p.rng.Float64()*(p.cfg.MaxInterval-p.cfg.MinInterval)
	}

	craft := ctx.Craft
	kept := p.pickups[:0]
	for _, pu := range p.pickups {
		pu.Update()
		if craft.Visible() && pu.Collides(craft) {
			if p.notifier != nil {
				p.notifier.NotifyPickup()
			}
			craft.ActivateShield()
			p.collected++
			continue
		}
		if ctx.Camera.RelativeY(pu.Y) > p.cull {
			continue
		}
		kept = append(kept, pu)
	}
	clear(p.pickups[len(kept):])
	p.pickups = kept
}

// Draw renders every pickup.
func (p *PowerUpManager) Draw(ctx object.DrawContext) {
	for _, pu := range p.pickups {
		pu.Draw(ctx)
	}
}
