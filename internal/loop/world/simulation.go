package world

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/swoosh/internal/clock"
	"github.com/tomz197/swoosh/internal/input"
	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/object"
)

// Status is the state of a run. GameOver and Victory are terminal.
type Status int

const (
	StatusPlaying Status = iota
	StatusPaused
	StatusDying // crashed, camera coasting to a stop
	StatusGameOver
	StatusVictory
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusDying:
		return "dying"
	case StatusGameOver:
		return "game over"
	case StatusVictory:
		return "victory"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Finished reports whether the run has ended.
func (s Status) Finished() bool {
	return s == StatusGameOver || s == StatusVictory
}

// Result summarises a run.
type Result struct {
	Score     int // distance plus bonus
	Distance  int
	Bonus     int
	Destroyed int
	Victory   bool
}

// Options are the collaborators of a Simulation. Zero values fall back to
// the real clock, a time-seeded generator, no audio and the default logger.
type Options struct {
	Clock    clock.Clock
	Rand     *rand.Rand
	Notifier object.Notifier
	Logger   *log.Logger
}

// Simulation owns one run: the camera, the craft and every manager. It is
// advanced by Tick at a fixed rate and is not safe for concurrent use.
type Simulation struct {
	cfg      config.Config
	clock    clock.Clock
	rng      *rand.Rand
	logger   *log.Logger
	notifier *safeNotifier

	camera    *object.Camera
	craft     *object.Craft
	obstacles *ObstacleManager
	powerups  *PowerUpManager
	board     *MilestoneBoard
	layers    *LayerTracker

	status   Status
	pausedAt time.Time
	diedAt   time.Time
}

// New validates cfg and builds a fresh run.
func New(cfg config.Config, opts Options) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	n := newSafeNotifier(opts.Notifier, opts.Logger)
	craft := object.NewCraft(cfg, n)
	board := NewMilestoneBoard(cfg)

	s := &Simulation{
		cfg:       cfg,
		clock:     opts.Clock,
		rng:       opts.Rand,
		logger:    opts.Logger,
		notifier:  n,
		camera:    object.NewCamera(cfg, craft.Y),
		craft:     craft,
		obstacles: NewObstacleManager(cfg, opts.Rand, board, n, opts.Logger),
		powerups:  NewPowerUpManager(cfg, opts.Rand, n),
		board:     board,
		layers:    NewLayerTracker(cfg),
	}
	return s, nil
}

// Tick advances the run by one fixed step.
func (s *Simulation) Tick() {
	now := s.clock.Now()

	switch s.status {
	case StatusPlaying:
		s.play(now)
	case StatusDying:
		s.coast(now)
	}
}

func (s *Simulation) play(now time.Time) {
	s.camera.Update(s.craft.Y, 1)
	s.craft.Update(config.TickTime, now)

	ctx := object.UpdateContext{
		Delta:    config.TickTime,
		Now:      now,
		Rand:     s.rng,
		Camera:   s.camera,
		Craft:    s.craft,
		Notifier: s.notifier,
	}
	remaining := s.Remaining()
	traveled := s.Traveled()

	if s.obstacles.Update(ctx, remaining) {
		s.crash(now)
		return
	}
	s.powerups.Update(ctx, traveled)
	s.board.Update(traveled, now)
	s.layers.Update(remaining, now)

	if remaining <= 0 {
		s.status = StatusVictory
		s.logger.Debug("run finished", "status", s.status, "score", s.Result().Score)
	}
}

func (s *Simulation) crash(now time.Time) {
	s.status = StatusDying
	s.diedAt = now
	s.notifier.NotifyCrash()
	s.craft.Hide()
	s.obstacles.AddParticles(object.SpawnExplosion(
		s.craft.X, s.craft.Y, s.craft.Radius, s.cfg.BaseUnit(), s.cfg.Obstacles.Debris, s.rng,
	)...)
	s.logger.Debug("craft destroyed", "x", s.craft.X, "y", s.craft.Y, "distance", s.Traveled())
}

// coast lets the camera decelerate after a crash before the run ends.
func (s *Simulation) coast(now time.Time) {
	elapsed := now.Sub(s.diedAt)
	decel := s.cfg.Camera.Deceleration
	factor := math.Max(0, 1-float64(elapsed)/float64(decel))
	s.camera.Update(s.craft.Y, factor)
	s.obstacles.Settle()

	if elapsed >= decel {
		s.status = StatusGameOver
		s.logger.Debug("run finished", "status", s.status, "score", s.Result().Score)
	}
}

// Apply feeds input events to the run. Movement only steers while playing;
// a tap toggles pause.
func (s *Simulation) Apply(events []input.Event) {
	for _, e := range events {
		switch e.Kind {
		case input.MoveStart:
			if s.status == StatusPlaying {
				s.craft.StartMovement(e.Direction, s.clock.Now())
			}
		case input.MoveStop:
			s.craft.StopMovement()
		case input.Tap:
			switch s.status {
			case StatusPlaying:
				s.Pause()
			case StatusPaused:
				s.Resume()
			}
		}
	}
}

// Pause freezes the run. It is a no-op unless playing.
func (s *Simulation) Pause() {
	if s.status != StatusPlaying {
		return
	}
	now := s.clock.Now()
	s.status = StatusPaused
	s.pausedAt = now
	s.craft.Pause(now)
}

// Resume continues a paused run, shifting every stored timestamp by the
// paused duration.
func (s *Simulation) Resume() {
	if s.status != StatusPaused {
		return
	}
	now := s.clock.Now()
	d := now.Sub(s.pausedAt)
	s.craft.Resume(now)
	s.obstacles.Shift(d)
	s.board.Shift(d)
	s.layers.Shift(d)
	s.status = StatusPlaying
}

// Status returns the run state.
func (s *Simulation) Status() Status { return s.status }

// Traveled returns the distance covered so far.
func (s *Simulation) Traveled() float64 {
	return math.Min(s.camera.TotalDistance, s.cfg.TotalDistance)
}

// Remaining returns the distance left to the goal.
func (s *Simulation) Remaining() float64 {
	return math.Max(0, s.cfg.TotalDistance-s.camera.TotalDistance)
}

// Result returns the current score breakdown. It is final once the status
// is terminal.
func (s *Simulation) Result() Result {
	dist := int(s.Traveled())
	bonus := s.obstacles.Bonus()
	return Result{
		Score:     dist + bonus,
		Distance:  dist,
		Bonus:     bonus,
		Destroyed: s.obstacles.Destroyed(),
		Victory:   s.status == StatusVictory,
	}
}

// Craft returns the player craft.
func (s *Simulation) Craft() *object.Craft { return s.craft }

// Camera returns the camera.
func (s *Simulation) Camera() *object.Camera { return s.camera }

// Obstacles returns the obstacle manager.
func (s *Simulation) Obstacles() *ObstacleManager { return s.obstacles }

// PowerUps returns the pickup manager.
func (s *Simulation) PowerUps() *PowerUpManager { return s.powerups }

// Layer returns the current atmosphere layer.
func (s *Simulation) Layer() config.Layer { return s.layers.Current() }

// Shake returns the screen shake offset for this frame.
func (s *Simulation) Shake() (float64, float64) { return s.camera.Shake() }

// Draw renders the world. While paused everything is drawn as of the
// pause instant.
func (s *Simulation) Draw(surface object.Surface) {
	now := s.clock.Now()
	if s.status == StatusPaused {
		now = s.pausedAt
	}
	ctx := object.DrawContext{Surface: surface, Camera: s.camera, Now: now}

	s.obstacles.Draw(ctx)
	s.powerups.Draw(ctx)
	s.craft.Draw(ctx)
	s.board.Draw(surface, now)
	s.layers.Draw(surface)
}
