package world

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/tomz197/swoosh/internal/input"
	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/object"
)

// TestUnlockNotifiedOnce verifies that crossing an unlock distance announces the type exactly once
func TestUnlockNotifiedOnce(t *testing.T) {
	f := newFixture()
	complexType, _ := f.cfg.Type(config.KindComplex)
	total := f.cfg.TotalDistance

	for _, traveled := range []float64{0, 500, 1999, 2000, 2000, 2500, 3000, 3999} {
		f.manager.Update(f.ctx(t0), total-traveled)
	}

	if got := f.messages.count(complexType.Message); got != 1 {
		t.Errorf("Expected one unlock message, got %d in %v", got, f.messages.shown)
	}
	if !f.manager.IsUnlocked(config.KindComplex) {
		t.Error("Expected complex to be unlocked")
	}
	if f.manager.IsUnlocked(config.KindMoving) {
		t.Error("Expected moving to stay locked before 4000")
	}
}

// TestUnlockedSetNeverShrinks verifies the unlocked set only grows with distance
func TestUnlockedSetNeverShrinks(t *testing.T) {
	f := newFixture()
	var prev []config.Kind
	for traveled := 0.0; traveled <= f.cfg.TotalDistance; traveled += 750 {
		f.manager.Update(f.ctx(t0), f.cfg.TotalDistance-traveled)
		got := f.manager.Unlocked()
		for _, k := range prev {
			if !slices.Contains(got, k) {
				t.Fatalf("Kind %s disappeared at %v", k, traveled)
			}
		}
		prev = got
	}
	if len(prev) != len(f.cfg.Types) {
		t.Errorf("Expected every type unlocked at the end, got %v", prev)
	}
}

// TestSpawnTableWeights verifies simple keeps its share and the table sums to one
func TestSpawnTableWeights(t *testing.T) {
	f := newFixture()
	if got := f.manager.drawKind(); got != config.KindSimple {
		t.Fatalf("Expected only simple at the start, got %s", got)
	}

	f.manager.updateUnlocks(f.cfg.TotalDistance, t0)
	table := f.manager.table
	if table[0].kind != config.KindSimple || math.Abs(table[0].cum-f.cfg.Obstacles.SimpleShare) > 1e-9 {
		t.Errorf("Expected simple share %v, got %+v", f.cfg.Obstacles.SimpleShare, table[0])
	}
	if last := table[len(table)-1].cum; math.Abs(last-1) > 1e-9 {
		t.Errorf("Expected cumulative weight 1, got %v", last)
	}
	for _, w := range table {
		if w.kind == config.KindComet {
			t.Error("Expected comets to stay out of spawn rows")
		}
	}
}

// TestTutorialToActive verifies the intro phases run once and in order
func TestTutorialToActive(t *testing.T) {
	f := newFixture()
	tc := f.cfg.Tutorial
	total := f.cfg.TotalDistance

	f.manager.Update(f.ctx(t0), total-tc.HintDistance)
	if f.messages.count(tc.MoveHint) != 1 {
		t.Fatalf("Expected the movement hint, got %v", f.messages.shown)
	}

	f.craft.StartMovement(input.Left, t0)
	f.manager.Update(f.ctx(t0), total-40)
	f.manager.Update(f.ctx(t0.Add(tc.FollowUpDelay)), total-60)
	if f.messages.count(tc.FollowUp) != 1 {
		t.Fatalf("Expected the follow-up message, got %v", f.messages.shown)
	}

	start := t0.Add(2 * time.Second)
	f.manager.Update(f.ctx(start), total-tc.EndDistance)
	if f.manager.Phase() != PhaseCutscene {
		t.Fatalf("Expected cutscene, got %s", f.manager.Phase())
	}
	if len(f.manager.lines) != tc.MotionLines {
		t.Errorf("Expected %d motion lines, got %d", tc.MotionLines, len(f.manager.lines))
	}

	f.manager.Update(f.ctx(start.Add(tc.CutsceneDuration/2)), total-200)
	if dx, dy := f.camera.Shake(); dx == 0 && dy == 0 {
		t.Error("Expected screen shake mid-cutscene")
	}
	if len(f.manager.Obstacles()) != 0 {
		t.Error("Expected no obstacles before the active phase")
	}

	f.manager.Update(f.ctx(start.Add(tc.CutsceneDuration+time.Millisecond)), total-300)
	if f.manager.Phase() != PhaseActive {
		t.Fatalf("Expected active phase, got %s", f.manager.Phase())
	}
	if dx, dy := f.camera.Shake(); dx != 0 || dy != 0 {
		t.Error("Expected shake reset after the cutscene")
	}
	if f.manager.nextSpawnY >= f.camera.Y {
		t.Errorf("Expected first row ahead of the camera, got %v", f.manager.nextSpawnY)
	}
}

// TestCrashWithoutShield verifies a hit without shield reports a crash and keeps the obstacle
func TestCrashWithoutShield(t *testing.T) {
	f := newFixture()
	f.activate()
	rock := object.NewSimple(f.cfg, testRand(), f.craft.X, f.craft.Y, 30)
	f.manager.obstacles = []object.Obstacle{rock}

	if !f.manager.Update(f.ctx(t0), f.cfg.TotalDistance-5000) {
		t.Fatal("Expected a crash")
	}
	if !slices.Contains(f.manager.Obstacles(), object.Obstacle(rock)) {
		t.Error("Expected the obstacle to survive a crash")
	}
}

// TestShieldDestroysObstacle verifies shielded hits destroy, score and emit debris
func TestShieldDestroysObstacle(t *testing.T) {
	f := newFixture()
	f.activate()
	f.craft.ActivateShield()
	rock := object.NewSimple(f.cfg, testRand(), f.craft.X, f.craft.Y, 30)
	f.manager.obstacles = []object.Obstacle{rock}

	if f.manager.Update(f.ctx(t0), f.cfg.TotalDistance-5000) {
		t.Fatal("Expected no crash with a shield")
	}
	if slices.Contains(f.manager.Obstacles(), object.Obstacle(rock)) {
		t.Error("Expected the obstacle to be removed")
	}
	if f.manager.Destroyed() != 1 || f.manager.Bonus() != 10 {
		t.Errorf("Expected 1 destroyed and 10 bonus, got %d and %d", f.manager.Destroyed(), f.manager.Bonus())
	}
	if f.notifier.shieldHits != 1 {
		t.Errorf("Expected one shield hit cue, got %d", f.notifier.shieldHits)
	}
	if want := f.cfg.Obstacles.Debris.Count + 1; len(f.manager.particles) != want {
		t.Errorf("Expected %d particles including the popup, got %d", want, len(f.manager.particles))
	}
}

// TestSafeZoneSuppressesCollisions verifies no crash while the craft is next to a gate
func TestSafeZoneSuppressesCollisions(t *testing.T) {
	f := newFixture()
	f.activate()
	entry, exit := object.NewWormhole(f.cfg, testRand(), f.craft.X+50, f.craft.Y, 300, f.craft.Y-640)
	entry.Paired, exit.Paired = true, true
	rock := object.NewSimple(f.cfg, testRand(), f.craft.X, f.craft.Y, 30)
	f.manager.obstacles = []object.Obstacle{rock, entry, exit}

	if f.manager.Update(f.ctx(t0), f.cfg.TotalDistance-5000) {
		t.Error("Expected the safe zone to suppress the crash")
	}
}

// TestTeleportBeforeCollision verifies a gate intercepts the craft before a co-located obstacle
func TestTeleportBeforeCollision(t *testing.T) {
	f := newFixture()
	f.activate()
	entry, exit := object.NewWormhole(f.cfg, testRand(), f.craft.X, f.craft.Y, 300, f.craft.Y-640)
	rock := object.NewSimple(f.cfg, testRand(), f.craft.X+10, f.craft.Y, 30)
	f.manager.obstacles = []object.Obstacle{rock, entry, exit}

	if f.manager.Update(f.ctx(t0), f.cfg.TotalDistance-5000) {
		t.Fatal("Expected no crash while entering the gate")
	}
	if f.craft.Visible() || !entry.Pending() {
		t.Error("Expected the craft to be in transit")
	}

	f.manager.Update(f.ctx(t0.Add(f.cfg.Wormhole.Delay)), f.cfg.TotalDistance-5000)
	if f.craft.X != 300 || !f.craft.ShieldActive() {
		t.Errorf("Expected arrival at the exit with a shield, got x %v", f.craft.X)
	}
}

// TestCullBehindCamera verifies obstacles far behind are dropped and those ahead kept
func TestCullBehindCamera(t *testing.T) {
	f := newFixture()
	behind := object.NewSimple(f.cfg, testRand(), 600, f.camera.Y+f.cfg.ViewHeight*1.6, 20)
	ahead := object.NewSimple(f.cfg, testRand(), 600, f.camera.Y-3*f.cfg.ViewHeight, 20)
	f.manager.obstacles = []object.Obstacle{behind, ahead}

	f.manager.cull(f.camera)
	got := f.manager.Obstacles()
	if len(got) != 1 || got[0] != object.Obstacle(ahead) {
		t.Errorf("Expected only the obstacle ahead to remain, got %d", len(got))
	}
}

// TestRowsSpawnAndRespectCapacity verifies due rows spawn up to the active limit
func TestRowsSpawnAndRespectCapacity(t *testing.T) {
	f := newFixture()
	f.activate()
	f.manager.nextSpawnY = f.camera.Y

	f.manager.spawnRows(f.ctx(t0), 0)
	if len(f.manager.Obstacles()) == 0 {
		t.Fatal("Expected rows to spawn")
	}
	if f.manager.nextSpawnY > f.camera.Y-f.cfg.ViewHeight {
		t.Errorf("Expected nextSpawnY past the view edge, got %v", f.manager.nextSpawnY)
	}
	for _, o := range f.manager.Obstacles() {
		if o.Base().Kind != config.KindSimple {
			t.Errorf("Expected only simple obstacles at the start, got %s", o.Base().Kind)
		}
	}

	full := make([]object.Obstacle, f.cfg.Obstacles.MaxActive)
	for i := range full {
		full[i] = object.NewSimple(f.cfg, testRand(), 600, f.camera.Y+100, 10)
	}
	f.manager.obstacles = full
	before := f.manager.nextSpawnY
	f.camera.Y -= f.cfg.ViewHeight

	f.manager.spawnRows(f.ctx(t0), 0)
	if len(f.manager.Obstacles()) != f.cfg.Obstacles.MaxActive {
		t.Errorf("Expected no spawns at capacity, got %d", len(f.manager.Obstacles()))
	}
	if f.manager.nextSpawnY >= before {
		t.Error("Expected skipped rows to still advance")
	}
}

// TestRowStopsAtCapacity verifies a row started just under the limit never overfills the field
func TestRowStopsAtCapacity(t *testing.T) {
	f := newFixture()
	f.activate()
	limit := f.cfg.Obstacles.MaxActive
	for i := 0; i < limit-1; i++ {
		f.manager.obstacles = append(f.manager.obstacles, object.NewSimple(f.cfg, testRand(), 600, f.camera.Y+100, 10))
	}
	f.manager.nextSpawnY = f.camera.Y

	f.manager.spawnRows(f.ctx(t0), 30000)
	if got := len(f.manager.Obstacles()); got != limit {
		t.Errorf("Expected the row to fill exactly to %d, got %d", limit, got)
	}
}

// TestWormholeNeedsRoomForBothGates verifies a pair is not split by the active limit
func TestWormholeNeedsRoomForBothGates(t *testing.T) {
	f := newFixture()
	f.activate()
	limit := f.cfg.Obstacles.MaxActive
	for i := 0; i < limit-1; i++ {
		f.manager.obstacles = append(f.manager.obstacles, object.NewSimple(f.cfg, testRand(), 600, f.camera.Y+100, 10))
	}

	f.manager.spawnWormhole()
	if got := len(f.manager.Obstacles()); got != limit-1 {
		t.Errorf("Expected no gate without room for its partner, got %d obstacles", got)
	}

	f.manager.obstacles = f.manager.obstacles[:limit-2]
	f.manager.spawnWormhole()
	gates := 0
	for _, o := range f.manager.Obstacles() {
		if _, ok := o.(*object.Gate); ok {
			gates++
		}
	}
	if gates != 2 || len(f.manager.Obstacles()) != limit {
		t.Errorf("Expected both gates and no escorts, got %d gates in %d obstacles", gates, len(f.manager.Obstacles()))
	}
}

// TestSpawnEveryKind verifies each kind builds an obstacle of that kind
func TestSpawnEveryKind(t *testing.T) {
	for _, typ := range config.Default().Types {
		t.Run(string(typ.Kind), func(t *testing.T) {
			f := newFixture()
			f.activate()
			f.manager.spawnKind(f.ctx(t0), typ.Kind, 30000, slot{0.3, 0.5})

			found := false
			for _, o := range f.manager.Obstacles() {
				if o.Base().Kind == typ.Kind {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected a %s obstacle", typ.Kind)
			}
		})
	}
}

// TestWormholeSpawnsLinkedPair verifies gates come in linked pairs with the exit ahead
func TestWormholeSpawnsLinkedPair(t *testing.T) {
	f := newFixture()
	f.activate()
	f.manager.spawnWormhole()

	var entry, exit *object.Gate
	for _, o := range f.manager.Obstacles() {
		if g, ok := o.(*object.Gate); ok {
			if g.Exit {
				exit = g
			} else {
				entry = g
			}
		}
	}
	if entry == nil || exit == nil {
		t.Fatal("Expected an entry and an exit gate")
	}
	if entry.Partner != exit || exit.Partner != entry {
		t.Error("Expected the gates to be linked")
	}
	if exit.Y >= entry.Y {
		t.Errorf("Expected exit ahead of entry, got %v >= %v", exit.Y, entry.Y)
	}
}

// TestUnknownKindPanics verifies a kind without a builder is an invariant violation
func TestUnknownKindPanics(t *testing.T) {
	f := newFixture()
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for an unknown kind")
		}
	}()
	f.manager.spawnKind(f.ctx(t0), config.Kind("asteroid-of-doom"), 0, slot{0, 1})
}

// TestCometTimer verifies comets launch on their own cadence once unlocked
func TestCometTimer(t *testing.T) {
	f := newFixture()
	f.activate()
	f.manager.updateUnlocks(f.cfg.TotalDistance, t0)
	f.manager.obstacles = nil

	f.manager.spawnComet(f.ctx(t0.Add(f.cfg.Obstacles.Comet.MinInterval / 2)))
	if len(f.manager.Obstacles()) != 0 {
		t.Fatal("Expected no comet before the interval")
	}

	f.manager.spawnComet(f.ctx(t0.Add(f.cfg.Obstacles.Comet.MaxInterval + time.Second)))
	if len(f.manager.Obstacles()) != 1 || f.manager.Obstacles()[0].Base().Kind != config.KindComet {
		t.Fatalf("Expected one comet, got %d obstacles", len(f.manager.Obstacles()))
	}
}

// TestClusterStaysInSlot verifies clustered asteroids stay within their slot
func TestClusterStaysInSlot(t *testing.T) {
	f := newFixture()
	f.activate()
	s := slot{0.5, 0.7}
	f.manager.spawnCluster(20000, f.cfg.Obstacles.MaxDensity, s)

	n := len(f.manager.Obstacles())
	if n < 2 || n > f.cfg.Obstacles.MaxCluster {
		t.Fatalf("Expected 2-%d asteroids, got %d", f.cfg.Obstacles.MaxCluster, n)
	}
	for _, o := range f.manager.Obstacles() {
		x := o.Base().X
		if x < s.start*f.cfg.ViewWidth || x > s.end*f.cfg.ViewWidth {
			t.Errorf("Asteroid at x %v outside slot", x)
		}
	}
}
