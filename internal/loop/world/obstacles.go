// Package world runs the scrolling simulation: obstacle scheduling,
// pickups, messages and the per-tick orchestration of every entity.
package world

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/object"
)

// Phase is the obstacle manager's stage. Phases only move forward.
type Phase int

const (
	PhaseTutorial Phase = iota // no obstacles, movement hints
	PhaseCutscene              // camera boost, shake and motion lines
	PhaseActive                // normal spawning
)

func (p Phase) String() string {
	switch p {
	case PhaseTutorial:
		return "tutorial"
	case PhaseCutscene:
		return "cutscene"
	case PhaseActive:
		return "active"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// motionLine is a decorative streak drawn during the cutscene, in view
// coordinates.
type motionLine struct {
	x, y   float64
	length float64
	speed  float64 // per tick
}

// weightedKind is one entry of the cumulative spawn table.
type weightedKind struct {
	kind config.Kind
	cum  float64
}

// ObstacleManager schedules, updates and collides every obstacle.
type ObstacleManager struct {
	cfg      config.Config
	rng      *rand.Rand
	logger   *log.Logger
	messages Messenger
	notifier object.Notifier

	obstacles []object.Obstacle
	particles []*object.Particle
	gates     []*object.Gate // scratch, rebuilt every tick

	phase      Phase
	nextSpawnY float64
	unit       float64

	hintShown     bool
	followUpAt    time.Time
	followUpShown bool
	cutsceneStart time.Time
	lines         []motionLine

	unlocked []config.Kind
	table    []weightedKind

	cometsOn      bool
	lastComet     time.Time
	cometInterval time.Duration

	destroyed int
	bonus     int
}

// NewObstacleManager creates a manager in the tutorial phase. Types that
// unlock at zero distance are available immediately without a message.
func NewObstacleManager(cfg config.Config, rng *rand.Rand, messages Messenger, n object.Notifier, logger *log.Logger) *ObstacleManager {
	m := &ObstacleManager{
		cfg:      cfg,
		rng:      rng,
		logger:   logger,
		messages: messages,
		notifier: n,
		unit:     cfg.BaseUnit(),
	}
	for _, t := range cfg.Types {
		if t.Unlock <= 0 {
			m.unlocked = append(m.unlocked, t.Kind)
		}
	}
	m.rebuildTable()
	return m
}

// Phase returns the current stage.
func (m *ObstacleManager) Phase() Phase { return m.phase }

// Obstacles returns the active obstacles. The slice must not be modified.
func (m *ObstacleManager) Obstacles() []object.Obstacle { return m.obstacles }

// Destroyed returns how many obstacles the shielded craft has destroyed.
func (m *ObstacleManager) Destroyed() int { return m.destroyed }

// Bonus returns the score earned from destroyed obstacles.
func (m *ObstacleManager) Bonus() int { return m.bonus }

// Unlocked returns the unlocked kinds in unlock order.
func (m *ObstacleManager) Unlocked() []config.Kind {
	return slices.Clone(m.unlocked)
}

// IsUnlocked reports whether kind may spawn.
func (m *ObstacleManager) IsUnlocked(kind config.Kind) bool {
	return slices.Contains(m.unlocked, kind)
}

// Update runs one tick given the remaining distance. It reports whether
// the craft crashed into an obstacle.
func (m *ObstacleManager) Update(ctx object.UpdateContext, remaining float64) (crashed bool) {
	traveled := m.cfg.TotalDistance - remaining
	m.updateUnlocks(traveled, ctx.Now)

	// 1. tutorial and cutscene
	if m.phase != PhaseActive {
		m.updateIntro(ctx, traveled)
	}

	if m.phase == PhaseActive {
		// 2. due rows and comets
		m.spawnRows(ctx, traveled)
		m.spawnComet(ctx)

		// 3. teleports intercept before collisions
		m.collectGates()
		if ctx.Craft.Visible() {
			for _, g := range m.gates {
				if g.CheckTeleport(ctx.Craft, ctx.Now) {
					m.logger.Debug("wormhole entered", "x", g.X, "y", g.Y)
				}
			}
		}

		// 4. collision sweep
		crashed = m.sweep(ctx)
	}

	// 5. cull what scrolled behind
	m.cull(ctx.Camera)

	// 6. particles
	m.Settle()

	// 7. animate survivors
	kept := m.obstacles[:0]
	for _, o := range m.obstacles {
		if !o.Update(ctx) {
			kept = append(kept, o)
		}
	}
	clear(m.obstacles[len(kept):])
	m.obstacles = kept

	return crashed
}

// Settle ages particles only. Used after the craft is destroyed.
func (m *ObstacleManager) Settle() {
	kept := m.particles[:0]
	for _, p := range m.particles {
		if p.Update() {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(m.particles[len(kept):])
	m.particles = kept
}

// AddParticles queues effect particles such as the craft explosion.
func (m *ObstacleManager) AddParticles(ps ...*object.Particle) {
	m.particles = append(m.particles, ps...)
}

// updateUnlocks unlocks every type whose distance has been reached and
// announces each one once.
func (m *ObstacleManager) updateUnlocks(traveled float64, now time.Time) {
	changed := false
	for _, t := range m.cfg.Types {
		if traveled < t.Unlock || m.IsUnlocked(t.Kind) {
			continue
		}
		m.unlocked = append(m.unlocked, t.Kind)
		changed = true
		m.logger.Debug("obstacle unlocked", "kind", t.Kind, "distance", traveled)
		if m.messages != nil && t.Message != "" {
			m.messages.Show(t.Message, now)
		}
		if t.Kind == config.KindComet {
			m.cometsOn = true
			m.lastComet = now
			m.cometInterval = m.randomCometInterval()
		}
	}
	if changed {
		m.rebuildTable()
	}
}

// rebuildTable renormalises the spawn weights. Simple obstacles take the
// configured share once any special type is available.
func (m *ObstacleManager) rebuildTable() {
	m.table = m.table[:0]

	var special float64
	for _, k := range m.unlocked {
		if t, ok := m.cfg.Type(k); ok && k != config.KindSimple {
			special += t.Weight
		}
	}

	simpleShare := 1.0
	if special > 0 {
		simpleShare = m.cfg.Obstacles.SimpleShare
	}
	cum := 0.0
	if m.IsUnlocked(config.KindSimple) {
		cum = simpleShare
		m.table = append(m.table, weightedKind{kind: config.KindSimple, cum: cum})
	}
	if special == 0 {
		return
	}
	rest := 1 - cum
	for _, k := range m.unlocked {
		t, _ := m.cfg.Type(k)
		if k == config.KindSimple || t.Weight <= 0 {
			continue
		}
		cum += rest * t.Weight / special
		m.table = append(m.table, weightedKind{kind: k, cum: cum})
	}
}

// drawKind picks an unlocked kind by weight.
func (m *ObstacleManager) drawKind() config.Kind {
	if len(m.table) == 0 {
		return config.KindSimple
	}
	r := m.rng.Float64() * m.table[len(m.table)-1].cum
	for _, w := range m.table {
		if r < w.cum {
			return w.kind
		}
	}
	return m.table[len(m.table)-1].kind
}

// updateIntro drives the tutorial hints and the cutscene.
func (m *ObstacleManager) updateIntro(ctx object.UpdateContext, traveled float64) {
	tc := m.cfg.Tutorial
	craft := ctx.Craft

	if m.phase == PhaseTutorial {
		if traveled >= tc.HintDistance && !craft.Moved() && !m.hintShown {
			m.show(tc.MoveHint, ctx.Now)
			m.hintShown = true
		}
		if craft.Moved() && m.followUpAt.IsZero() {
			m.followUpAt = ctx.Now.Add(tc.FollowUpDelay)
		}
		if !m.followUpAt.IsZero() && !m.followUpShown && !ctx.Now.Before(m.followUpAt) {
			m.show(tc.FollowUp, ctx.Now)
			m.followUpShown = true
		}
		if traveled >= tc.EndDistance {
			m.startCutscene(ctx)
		}
		return
	}

	elapsed := ctx.Now.Sub(m.cutsceneStart)
	if elapsed > tc.CutsceneDuration {
		m.endCutscene(ctx)
		return
	}

	progress := float64(elapsed) / float64(tc.CutsceneDuration)
	intensity := math.Sin(progress*math.Pi) * tc.ShakeAmplitude
	ctx.Camera.SetShake((m.rng.Float64()-0.5)*intensity, (m.rng.Float64()-0.5)*intensity)

	for i := range m.lines {
		l := &m.lines[i]
		l.y += l.speed
		if l.y > m.cfg.ViewHeight {
			l.y = -l.length
			l.x = m.rng.Float64() * m.cfg.ViewWidth
		}
	}
}

func (m *ObstacleManager) startCutscene(ctx object.UpdateContext) {
	tc := m.cfg.Tutorial
	m.phase = PhaseCutscene
	m.cutsceneStart = ctx.Now
	ctx.Camera.SetBoost(tc.CutsceneBoost)

	m.lines = make([]motionLine, tc.MotionLines)
	for i := range m.lines {
		m.lines[i] = motionLine{
			x:      m.rng.Float64() * m.cfg.ViewWidth,
			y:      m.rng.Float64() * m.cfg.ViewHeight,
			length: 20 + m.rng.Float64()*30,
			speed:  15 + m.rng.Float64()*10,
		}
	}
	m.logger.Debug("phase changed", "phase", m.phase)
}

func (m *ObstacleManager) endCutscene(ctx object.UpdateContext) {
	m.phase = PhaseActive
	ctx.Camera.SetBoost(1)
	ctx.Camera.SetShake(0, 0)
	m.lines = nil
	m.nextSpawnY = ctx.Camera.Y - m.cfg.ViewHeight*m.cfg.Tutorial.SpawnLeadFraction
	m.logger.Debug("phase changed", "phase", m.phase, "nextSpawnY", m.nextSpawnY)
}

func (m *ObstacleManager) show(msg string, now time.Time) {
	if m.messages != nil && msg != "" {
		m.messages.Show(msg, now)
	}
}

// collectGates gathers the wormhole gates among the active obstacles.
func (m *ObstacleManager) collectGates() {
	m.gates = m.gates[:0]
	for _, o := range m.obstacles {
		if g, ok := o.(*object.Gate); ok {
			m.gates = append(m.gates, g)
		}
	}
}

// sweep collides the craft with every non-gate obstacle unless it is in a
// gate's safe zone.
func (m *ObstacleManager) sweep(ctx object.UpdateContext) bool {
	craft := ctx.Craft
	if !craft.Visible() {
		return false
	}
	for _, g := range m.gates {
		if g.InSafeZone(craft.X, craft.Y) {
			return false
		}
	}

	debris := m.cfg.Obstacles.Debris
	kept := m.obstacles[:0]
	crashed := false
	for i, o := range m.obstacles {
		if _, gate := o.(*object.Gate); gate || !o.Collides(craft) {
			kept = append(kept, o)
			continue
		}
		if !craft.ShieldActive() {
			crashed = true
			kept = append(kept, m.obstacles[i:]...)
			break
		}

		b := o.Base()
		if m.notifier != nil {
			m.notifier.NotifyShieldHit()
		}
		m.particles = append(m.particles, o.DestructionParticles(m.rng)...)
		m.particles = append(m.particles, object.ScorePopup(b.X, b.Y, m.unit, fmt.Sprintf("+%d", debris.BonusPerKill), debris))
		m.bonus += debris.BonusPerKill
		m.destroyed++
		m.logger.Debug("obstacle destroyed", "kind", b.Kind, "destroyed", m.destroyed)
	}
	clear(m.obstacles[len(kept):])
	m.obstacles = kept
	return crashed
}

// cull drops obstacles that scrolled far behind the camera.
func (m *ObstacleManager) cull(cam *object.Camera) {
	limit := m.cfg.ViewHeight * m.cfg.Obstacles.CullFraction
	kept := m.obstacles[:0]
	for _, o := range m.obstacles {
		if cam.RelativeY(o.Base().Y) <= limit {
			kept = append(kept, o)
		}
	}
	clear(m.obstacles[len(kept):])
	m.obstacles = kept
}

// Shift moves every stored timestamp forward after a pause.
func (m *ObstacleManager) Shift(d time.Duration) {
	if !m.followUpAt.IsZero() {
		m.followUpAt = m.followUpAt.Add(d)
	}
	if !m.cutsceneStart.IsZero() {
		m.cutsceneStart = m.cutsceneStart.Add(d)
	}
	if m.cometsOn {
		m.lastComet = m.lastComet.Add(d)
	}
	for _, o := range m.obstacles {
		o.Shift(d)
	}
}

// Draw renders motion lines, obstacles and particles.
func (m *ObstacleManager) Draw(ctx object.DrawContext) {
	for _, l := range m.lines {
		ctx.Surface.Line(l.x, l.y, l.x, l.y+l.length)
	}
	for _, o := range m.obstacles {
		o.Draw(ctx)
	}
	for _, p := range m.particles {
		p.Draw(ctx)
	}
}
