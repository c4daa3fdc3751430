package world

import (
	"math"
	"time"

	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/object"
	"github.com/tomz197/swoosh/internal/physics"
)

// slot is a horizontal span of the view as fractions of its width.
type slot struct {
	start, end float64
}

// spawnRows spawns every row that became due. A due row is skipped while
// the field is at capacity, but the row position still advances. A row that
// starts below capacity is cut short once the field fills.
func (m *ObstacleManager) spawnRows(ctx object.UpdateContext, traveled float64) {
	o := m.cfg.Obstacles
	h := m.cfg.ViewHeight
	for m.nextSpawnY > ctx.Camera.Y-h {
		gap := h * (o.MinGapFraction + m.rng.Float64()*(o.MaxGapFraction-o.MinGapFraction))
		m.nextSpawnY -= gap
		if len(m.obstacles) >= o.MaxActive {
			m.logger.Debug("row skipped", "active", len(m.obstacles))
			continue
		}
		m.spawnRow(ctx, traveled)
	}
}

// density maps overall progress to the cluster size multiplier.
func (m *ObstacleManager) density(traveled float64) float64 {
	o := m.cfg.Obstacles
	progress := math.Max(0, math.Min(1, traveled/m.cfg.TotalDistance))
	return o.StartDensity + (o.MaxDensity-o.StartDensity)*math.Pow(progress, o.DensityExponent)
}

// rowCount draws 1, 2 or 3 slots using the configured row weights.
func (m *ObstacleManager) rowCount() int {
	w := m.cfg.Obstacles.RowWeights
	total := w[0] + w[1] + w[2]
	r := m.rng.Float64() * total
	switch {
	case r < w[0]:
		return 1
	case r < w[0]+w[1]:
		return 2
	default:
		return 3
	}
}

func (m *ObstacleManager) spawnRow(ctx object.UpdateContext, traveled float64) {
	mult := m.density(traveled)
	count := m.rowCount()
	before := len(m.obstacles)

	if count == 1 {
		kind := m.drawKind()
		if kind == config.KindSimple {
			m.spawnCluster(traveled, mult, slot{0, 1})
		} else {
			start := 0.2 + m.rng.Float64()*0.6
			m.spawnKind(ctx, kind, traveled, slot{start, start + 0.2})
		}
	} else {
		var last config.Kind
		for _, s := range m.slots(count) {
			kind := m.drawKind()
			switch {
			case kind != config.KindSimple && kind == last:
				// Two identical specials side by side are too punishing.
				m.spawnCluster(traveled, mult/2, s)
			case kind == config.KindSimple:
				m.spawnCluster(traveled, mult/2, s)
				last = kind
			default:
				m.spawnKind(ctx, kind, traveled, s)
				last = kind
			}
		}
	}

	m.logger.Debug("row spawned", "y", m.nextSpawnY, "slots", count, "obstacles", len(m.obstacles)-before)
}

// slots splits the middle 80% of the view into jittered spans.
func (m *ObstacleManager) slots(count int) []slot {
	segment := 0.8 / float64(count)
	jitter := segment * 0.2
	out := make([]slot, count)
	for i := range out {
		start := 0.1 + float64(i)*segment + (m.rng.Float64()*2-1)*jitter
		out[i] = slot{start, start + segment*0.5}
	}
	return out
}

// bigSize draws a size for a large obstacle.
func (m *ObstacleManager) bigSize() float64 {
	o := m.cfg.Obstacles
	return m.unit * (o.MinSizeUnits + m.rng.Float64()*(o.MaxSizeUnits-o.MinSizeUnits))
}

// spawnCluster places a handful of simple asteroids evenly across s. The
// cluster grows with distance and the density multiplier.
func (m *ObstacleManager) spawnCluster(traveled, mult float64, s slot) {
	o := m.cfg.Obstacles
	base := 2 + int(traveled/o.ClusterStep)
	count := min(base+int(math.Floor(m.rng.Float64()*mult)), o.MaxCluster)

	left := s.start * m.cfg.ViewWidth
	span := (s.end - s.start) * m.cfg.ViewWidth
	section := span / (float64(count) + 1.2)
	for i := 0; i < count; i++ {
		size := m.unit * (o.SimpleMinUnits + m.rng.Float64()*(o.SimpleMaxUnits-o.SimpleMinUnits))
		minX := left + section*(float64(i)+0.6)
		maxX := left + section*(float64(i)+1.6)
		x, y := m.findPosition(size, minX, maxX, m.nextSpawnY, o.PlacementAttempts)
		if !m.add(object.NewSimple(m.cfg, m.rng, x, y, size)) {
			return
		}
	}
}

// spawnKind places one special obstacle inside s. It panics on a kind it
// does not know how to build since the type table is fixed at startup.
func (m *ObstacleManager) spawnKind(ctx object.UpdateContext, kind config.Kind, traveled float64, s slot) {
	w := m.cfg.ViewWidth
	minX, maxX := s.start*w, s.end*w
	attempts := m.cfg.Obstacles.PlacementAttempts

	switch kind {
	case config.KindSimple:
		m.spawnCluster(traveled, m.density(traveled), s)
	case config.KindComplex:
		size := m.bigSize() * 0.8
		margin := size * 3
		lo, hi := math.Max(minX, margin), math.Min(maxX, w-margin)
		if lo > hi {
			lo, hi = margin, w-margin
		}
		x, y := m.findPosition(size*2.5, lo, hi, m.nextSpawnY, 15)
		m.add(object.NewComplex(m.cfg, m.rng, x, y, size))
	case config.KindBelt:
		m.add(object.NewBelt(m.cfg, m.rng, m.nextSpawnY))
	case config.KindPulsating:
		size := m.bigSize()
		x, y := m.findPosition(size, minX, maxX, m.nextSpawnY, attempts)
		m.add(object.NewPulsating(m.cfg, m.rng, x, y, size))
	case config.KindMoving:
		size := m.bigSize()
		x, y := m.findPosition(size, minX, maxX, m.nextSpawnY, attempts)
		m.add(object.NewMoving(m.cfg, m.rng, x, y, size))
	case config.KindShooting:
		size := m.bigSize()
		x, y := m.findPosition(size, minX, maxX, m.nextSpawnY, attempts)
		m.add(object.NewShooting(m.cfg, m.rng, x, y, size, ctx.Now))
	case config.KindBlackHole:
		bc := m.cfg.Obstacles.BlackHole
		advanced := traveled > bc.AdvancedAfter
		hole := object.NewBlackHole(m.cfg, m.rng, 0, m.nextSpawnY, advanced)
		hole.X = math.Max(hole.Size, math.Min(w-hole.Size, minX+m.rng.Float64()*(maxX-minX)))
		m.add(hole)
	case config.KindWormhole:
		m.spawnWormhole()
	case config.KindComet:
		m.add(object.NewComet(m.cfg, m.rng, ctx.Craft.Y-m.rng.Float64()*m.cfg.ViewHeight*0.5))
	default:
		panic("world: unknown obstacle kind " + string(kind))
	}
}

// spawnWormhole places an entry gate ringed by escorts and its exit gate
// further ahead.
func (m *ObstacleManager) spawnWormhole() {
	// Gates only work in pairs.
	if m.room() < 2 {
		return
	}
	wc := m.cfg.Wormhole
	w := m.cfg.ViewWidth
	size := m.cfg.Units(wc.SizeUnits)
	margin := size * 4

	entryX := margin + m.rng.Float64()*(w-margin*2)
	entryY := m.nextSpawnY
	exitX := margin + m.rng.Float64()*(w-margin*2)
	exitY := entryY - m.cfg.ViewHeight*wc.ExitFraction
	entry, exit := object.NewWormhole(m.cfg, m.rng, entryX, entryY, exitX, exitY)

	escorts := min(wc.MinEscorts+m.rng.Intn(wc.MaxEscorts-wc.MinEscorts+1), m.room()-2)
	for i := 0; i < escorts; i++ {
		angle := 2 * math.Pi * float64(i) / float64(escorts)
		dist := m.unit * (wc.EscortMinUnits + m.rng.Float64()*(wc.EscortMaxUnits-wc.EscortMinUnits))
		x := entryX + math.Cos(angle)*dist
		y := entryY + math.Sin(angle)*dist
		if x <= margin || x >= w-margin {
			continue
		}
		m.add(object.NewSimple(m.cfg, m.rng, x, y, m.unit*(1+m.rng.Float64())))
	}

	m.add(entry)
	m.add(exit)
}

// spawnComet launches a comet when the timer elapses.
func (m *ObstacleManager) spawnComet(ctx object.UpdateContext) {
	if !m.cometsOn || ctx.Now.Sub(m.lastComet) <= m.cometInterval {
		return
	}
	m.spawnKind(ctx, config.KindComet, 0, slot{0, 1})
	m.lastComet = ctx.Now
	m.cometInterval = m.randomCometInterval()
}

func (m *ObstacleManager) randomCometInterval() time.Duration {
	cc := m.cfg.Obstacles.Comet
	return cc.MinInterval + time.Duration(m.rng.Int63n(int64(cc.MaxInterval-cc.MinInterval)+1))
}

// findPosition tries random spots in [minX, maxX] around baseY that keep
// clear of existing obstacles, falling back to one more random spot.
func (m *ObstacleManager) findPosition(size, minX, maxX, baseY float64, attempts int) (float64, float64) {
	jitter := m.cfg.ViewHeight * m.cfg.Obstacles.JitterFraction
	pick := func() (float64, float64) {
		return minX + m.rng.Float64()*(maxX-minX), baseY + (m.rng.Float64()-0.5)*jitter
	}
	for i := 0; i < attempts; i++ {
		x, y := pick()
		if !m.overlaps(x, y, size) {
			return x, y
		}
	}
	return pick()
}

func (m *ObstacleManager) overlaps(x, y, size float64) bool {
	for _, o := range m.obstacles {
		b := o.Base()
		if physics.Distance(x, y, b.X, b.Y) < size+b.Size*1.5 {
			return true
		}
	}
	return false
}

// room is how many more obstacles fit under the active limit.
func (m *ObstacleManager) room() int {
	return max(0, m.cfg.Obstacles.MaxActive-len(m.obstacles))
}

// add appends o unless the field is full.
func (m *ObstacleManager) add(o object.Obstacle) bool {
	if m.room() == 0 {
		return false
	}
	m.obstacles = append(m.obstacles, o)
	return true
}
