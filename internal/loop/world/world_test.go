package world

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/swoosh/internal/draw"
	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/object"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(7))
}

// recordedMessages captures every message shown.
type recordedMessages struct {
	shown []string
}

func (r *recordedMessages) Show(msg string, now time.Time) {
	r.shown = append(r.shown, msg)
}

func (r *recordedMessages) count(msg string) int {
	n := 0
	for _, s := range r.shown {
		if s == msg {
			n++
		}
	}
	return n
}

// countingNotifier records every cue.
type countingNotifier struct {
	turns, shieldHits, crashes, pickups int
}

func (n *countingNotifier) NotifyTurn()      { n.turns++ }
func (n *countingNotifier) NotifyShieldHit() { n.shieldHits++ }
func (n *countingNotifier) NotifyCrash()     { n.crashes++ }
func (n *countingNotifier) NotifyPickup()    { n.pickups++ }

// panickyNotifier fails on every cue.
type panickyNotifier struct{}

func (panickyNotifier) NotifyTurn()      { panic("audio device gone") }
func (panickyNotifier) NotifyShieldHit() { panic("audio device gone") }
func (panickyNotifier) NotifyCrash()     { panic("audio device gone") }
func (panickyNotifier) NotifyPickup()    { panic("audio device gone") }

// fixture bundles a manager with the entities it acts on.
type fixture struct {
	cfg      config.Config
	craft    *object.Craft
	camera   *object.Camera
	messages *recordedMessages
	notifier *countingNotifier
	manager  *ObstacleManager
}

func newFixture() *fixture {
	cfg := config.Default()
	f := &fixture{
		cfg:      cfg,
		messages: &recordedMessages{},
		notifier: &countingNotifier{},
	}
	f.craft = object.NewCraft(cfg, f.notifier)
	f.camera = object.NewCamera(cfg, f.craft.Y)
	f.manager = NewObstacleManager(cfg, testRand(), f.messages, f.notifier, quietLogger())
	return f
}

func (f *fixture) ctx(now time.Time) object.UpdateContext {
	return object.UpdateContext{
		Delta:    config.TickTime,
		Now:      now,
		Rand:     testRand(),
		Camera:   f.camera,
		Craft:    f.craft,
		Notifier: f.notifier,
	}
}

// activate skips the intro so rows and collisions run.
func (f *fixture) activate() {
	f.manager.phase = PhaseActive
	f.manager.nextSpawnY = f.camera.Y - 10*f.cfg.ViewHeight
}

// textSurface records text labels and ignores shapes.
type textSurface struct {
	texts []string
}

func (s *textSurface) Width() float64                            { return config.ViewWidth }
func (s *textSurface) Height() float64                           { return config.ViewHeight }
func (s *textSurface) Circle(x, y, r float64, filled bool)       {}
func (s *textSurface) Ellipse(x, y, rx, ry, rot float64, f bool) {}
func (s *textSurface) Polygon(points []draw.Point, filled bool)  {}
func (s *textSurface) Line(x1, y1, x2, y2 float64)               {}
func (s *textSurface) Dot(x, y float64)                          {}
func (s *textSurface) Text(x, y float64, str string)             { s.texts = append(s.texts, str) }
