package object

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/physics"
)

// Gate is one end of a wormhole. Entering an active entry gate hides the
// craft and, after a short delay, places it at the exit gate with a shield.
// Gates never collide; instead they suppress other collisions nearby.
type Gate struct {
	Body
	Exit    bool
	Active  bool
	Paired  bool
	Partner *Gate

	teleport float64
	safeZone float64
	delay    time.Duration
	arrival  time.Time // zero unless a transport is pending
	pulse    float64
}

func newGate(cfg config.Config, rng *rand.Rand, x, y float64, exit bool) *Gate {
	size := cfg.Units(cfg.Wormhole.SizeUnits)
	return &Gate{
		Body:     newBody(config.KindWormhole, x, y, size, cfg, rng),
		Exit:     exit,
		Active:   true,
		teleport: size * cfg.Wormhole.TeleportFactor,
		safeZone: size * cfg.Wormhole.SafeZoneFactor,
		delay:    cfg.Wormhole.Delay,
	}
}

// NewWormhole creates a linked entry and exit gate.
func NewWormhole(cfg config.Config, rng *rand.Rand, entryX, entryY, exitX, exitY float64) (entry, exit *Gate) {
	entry = newGate(cfg, rng, entryX, entryY, false)
	exit = newGate(cfg, rng, exitX, exitY, true)
	entry.Partner, exit.Partner = exit, entry
	return entry, exit
}

// InSafeZone reports whether (x, y) is close enough to the gate to be
// shielded from other obstacles.
func (g *Gate) InSafeZone(x, y float64) bool {
	return physics.Distance(x, y, g.X, g.Y) < g.safeZone
}

// CheckTeleport starts a transport if the craft reached an unused entry gate.
func (g *Gate) CheckTeleport(c *Craft, now time.Time) bool {
	if g.Exit || !g.Active || g.Paired {
		return false
	}
	if physics.Distance(c.X, c.Y, g.X, g.Y) >= g.teleport {
		return false
	}
	return g.Transport(c, now)
}

// Transport pairs both gates and hides the craft until arrival. A gate
// pair transports only once; later calls return false. It panics if the
// gate has no partner since gates are always created in pairs.
func (g *Gate) Transport(c *Craft, now time.Time) bool {
	if g.Partner == nil {
		panic("object: wormhole gate has no partner")
	}
	if g.Paired {
		return false
	}
	g.Paired = true
	g.Partner.Paired = true
	g.Active = false
	c.Hide()
	g.arrival = now.Add(g.delay)
	return true
}

// Pending reports whether a transport is waiting to complete.
func (g *Gate) Pending() bool {
	return !g.arrival.IsZero()
}

// Update animates the gate and completes a pending transport once the
// delay has passed. Transports are started by CheckTeleport.
func (g *Gate) Update(ctx UpdateContext) bool {
	g.spin()
	g.pulse += 0.02

	if ctx.Craft == nil || !g.Pending() || ctx.Now.Before(g.arrival) {
		return false
	}

	g.arrival = time.Time{}
	ctx.Craft.Teleport(g.Partner.X, g.Partner.Y)
	ctx.Craft.ActivateShield()
	g.Partner.pulse = 0
	if ctx.Notifier != nil {
		ctx.Notifier.NotifyPickup()
	}
	return false
}

// Shift delays a pending arrival by the paused duration.
func (g *Gate) Shift(d time.Duration) {
	if g.Pending() {
		g.arrival = g.arrival.Add(d)
	}
}

// Collides is always false for gates.
func (g *Gate) Collides(*Craft) bool {
	return false
}

// Draw renders a pulsing ring. Used gates are drawn as a dotted outline.
func (g *Gate) Draw(ctx DrawContext) {
	relY, ok := g.onScreen(ctx, g.safeZone)
	if !ok {
		return
	}
	r := g.Size * (1 + math.Sin(g.pulse)*0.1)
	if g.Paired && !g.Exit {
		for i := 0; i < 12; i++ {
			a := g.Rotation + float64(i)*math.Pi/6
			ctx.Surface.Dot(g.X+math.Cos(a)*r, relY+math.Sin(a)*r)
		}
		return
	}
	ctx.Surface.Circle(g.X, relY, r, false)
	ctx.Surface.Circle(g.X, relY, r*0.6, false)
}
