package world

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/swoosh/internal/clock"
	"github.com/tomz197/swoosh/internal/draw"
	"github.com/tomz197/swoosh/internal/input"
	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/object"
)

func newSimulation(t *testing.T, cfg config.Config, n object.Notifier) (*Simulation, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(t0)
	sim, err := New(cfg, Options{
		Clock:    clk,
		Rand:     rand.New(rand.NewSource(3)),
		Notifier: n,
		Logger:   quietLogger(),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return sim, clk
}

func step(sim *Simulation, clk *clock.Manual) {
	clk.Advance(config.TickTime)
	sim.Tick()
}

// TestNewRejectsInvalidConfig verifies configuration errors surface from New
func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.TotalDistance = 0

	_, err := New(cfg, Options{Logger: quietLogger()})
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}

// TestNewRejectsUnknownKind verifies an unbuildable obstacle type fails before the run starts
func TestNewRejectsUnknownKind(t *testing.T) {
	cfg := config.Default()
	cfg.Types = append(cfg.Types, config.ObstacleType{Kind: "laser", Unlock: 200, Weight: 5})

	_, err := New(cfg, Options{Logger: quietLogger()})
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}

// TestIdleRunScrolls verifies the camera advances and distance accrues without input
func TestIdleRunScrolls(t *testing.T) {
	sim, clk := newSimulation(t, config.Default(), nil)
	for i := 0; i < 120; i++ {
		step(sim, clk)
	}

	if sim.Status() != StatusPlaying {
		t.Fatalf("Expected playing, got %s", sim.Status())
	}
	if sim.Traveled() <= 0 {
		t.Error("Expected distance to accrue")
	}
	if got := sim.Traveled() + sim.Remaining(); math.Abs(got-config.Default().TotalDistance) > 1e-6 {
		t.Errorf("Expected traveled + remaining to equal the total, got %v", got)
	}
}

// TestCrashCoastsToGameOver verifies a crash plays out the deceleration before ending
func TestCrashCoastsToGameOver(t *testing.T) {
	n := &countingNotifier{}
	sim, clk := newSimulation(t, config.Default(), n)
	craft := sim.Craft()
	sim.obstacles.phase = PhaseActive
	sim.obstacles.nextSpawnY = sim.Camera().Y - 10*config.ViewHeight
	sim.obstacles.obstacles = []object.Obstacle{
		object.NewSimple(config.Default(), testRand(), craft.X, craft.Y, 30),
	}

	step(sim, clk)
	if sim.Status() != StatusDying {
		t.Fatalf("Expected dying, got %s", sim.Status())
	}
	if n.crashes != 1 || craft.Visible() {
		t.Errorf("Expected one crash cue and a hidden craft, got %d cues", n.crashes)
	}
	if len(sim.obstacles.particles) == 0 {
		t.Error("Expected explosion particles")
	}

	died := clk.Now()
	for i := 0; i < 200 && !sim.Status().Finished(); i++ {
		step(sim, clk)
	}
	if sim.Status() != StatusGameOver {
		t.Fatalf("Expected game over, got %s", sim.Status())
	}
	if elapsed := clk.Now().Sub(died); elapsed < config.Default().Camera.Deceleration {
		t.Errorf("Expected game over after the deceleration window, got %v", elapsed)
	}
	if sim.Result().Victory {
		t.Error("Expected a crash not to count as victory")
	}
}

// TestShortRunReachesVictory verifies covering the total distance ends the run in victory
func TestShortRunReachesVictory(t *testing.T) {
	cfg := config.Default()
	cfg.TotalDistance = 300
	sim, clk := newSimulation(t, cfg, nil)

	for i := 0; i < 2000 && !sim.Status().Finished(); i++ {
		step(sim, clk)
	}

	if sim.Status() != StatusVictory {
		t.Fatalf("Expected victory, got %s", sim.Status())
	}
	res := sim.Result()
	if !res.Victory || res.Distance != 300 || res.Score != 300 {
		t.Errorf("Expected a 300 point victory, got %+v", res)
	}

	step(sim, clk)
	if sim.Status() != StatusVictory {
		t.Error("Expected the terminal status to stick")
	}
}

// TestPauseFreezesRun verifies nothing advances while paused and timers shift on resume
func TestPauseFreezesRun(t *testing.T) {
	sim, clk := newSimulation(t, config.Default(), nil)
	for i := 0; i < 30; i++ {
		step(sim, clk)
	}
	sim.board.Show("hello", clk.Now())

	sim.Apply([]input.Event{{Kind: input.Tap}})
	if sim.Status() != StatusPaused {
		t.Fatalf("Expected paused, got %s", sim.Status())
	}
	traveled := sim.Traveled()
	y := sim.Craft().Y
	for i := 0; i < 60; i++ {
		step(sim, clk)
	}
	clk.Advance(10 * time.Second)
	if sim.Traveled() != traveled || sim.Craft().Y != y {
		t.Error("Expected the run to stay frozen while paused")
	}

	sim.Apply([]input.Event{{Kind: input.MoveStart, Direction: input.Left}})
	if sim.Craft().Moved() {
		t.Error("Expected steering to be ignored while paused")
	}

	sim.Apply([]input.Event{{Kind: input.Tap}})
	if sim.Status() != StatusPlaying {
		t.Fatalf("Expected playing, got %s", sim.Status())
	}
	if _, _, ok := sim.board.Current(clk.Now()); !ok {
		t.Error("Expected the message to survive the pause")
	}
}

// TestNotifierPanicIsContained verifies a failing audio backend cannot stop the run
func TestNotifierPanicIsContained(t *testing.T) {
	sim, clk := newSimulation(t, config.Default(), panickyNotifier{})

	sim.Apply([]input.Event{{Kind: input.MoveStart, Direction: input.Right}})
	step(sim, clk)

	if _, ok := sim.Craft().Arc(); !ok {
		t.Error("Expected the craft to start an arc")
	}
	if sim.Status() != StatusPlaying {
		t.Errorf("Expected playing, got %s", sim.Status())
	}
}

// TestSafeNotifierNilIsSilent verifies a missing notifier is ignored
func TestSafeNotifierNilIsSilent(t *testing.T) {
	n := newSafeNotifier(nil, quietLogger())
	n.NotifyTurn()
	n.NotifyShieldHit()
	n.NotifyCrash()
	n.NotifyPickup()
}

// TestSafeNotifierForwards verifies cues reach a healthy notifier
func TestSafeNotifierForwards(t *testing.T) {
	inner := &countingNotifier{}
	n := newSafeNotifier(inner, quietLogger())
	n.NotifyTurn()
	n.NotifyPickup()
	n.NotifyPickup()

	if inner.turns != 1 || inner.pickups != 2 {
		t.Errorf("Expected 1 turn and 2 pickups, got %+v", inner)
	}
}

// shapeLog records the order of shape calls.
type shapeLog struct {
	textSurface
	calls []string
}

func (s *shapeLog) Circle(x, y, r float64, filled bool) {
	s.calls = append(s.calls, fmt.Sprintf("circle %.0f", x))
}
func (s *shapeLog) Polygon(points []draw.Point, filled bool) { s.calls = append(s.calls, "polygon") }

// TestCraftDrawnOnTop verifies obstacles are drawn before the craft
func TestCraftDrawnOnTop(t *testing.T) {
	sim, _ := newSimulation(t, config.Default(), nil)
	craft := sim.Craft()
	rock := object.NewSimple(config.Default(), testRand(), craft.X+200, craft.Y-100, 30)
	sim.obstacles.obstacles = append(sim.obstacles.obstacles, rock)

	surface := &shapeLog{}
	sim.Draw(surface)

	rockAt, craftAt := -1, -1
	for i, c := range surface.calls {
		switch c {
		case "polygon":
			rockAt = i
		case fmt.Sprintf("circle %.0f", craft.X):
			craftAt = i
		}
	}
	if rockAt < 0 || craftAt < 0 {
		t.Fatalf("Expected both the rock and the craft drawn, got %v", surface.calls)
	}
	if craftAt < rockAt {
		t.Errorf("Expected the craft after the rock, got %v", surface.calls)
	}
}
