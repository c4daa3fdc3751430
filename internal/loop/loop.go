// Package loop drives one terminal session: title screen, the running
// simulation with its HUD, pause, and the game-over screen with the
// player's rank.
package loop

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/swoosh/internal/clock"
	"github.com/tomz197/swoosh/internal/draw"
	"github.com/tomz197/swoosh/internal/input"
	"github.com/tomz197/swoosh/internal/leaderboard"
	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/loop/world"
	"github.com/tomz197/swoosh/internal/object"
)

// Render limits. The view keeps its aspect ratio inside the terminal.
const (
	maxRenderWidth  = 240
	shutdownDisplay = 3 * time.Second
	topEntries      = 5
)

// Options configures a session. Zero values fall back to defaults.
type Options struct {
	Config       *config.Config // nil means config.Default()
	Player       string
	Leaderboard  *leaderboard.Board // nil disables ranking
	Notifier     object.Notifier
	Logger       *log.Logger
	TermSizeFunc draw.TermSizeFunc
	Clock        clock.Clock
	Seed         int64         // non-zero makes every run reproducible
	IdleTimeout  time.Duration // closes a session parked on a menu; 0 disables
	Shutdown     <-chan struct{}
}

type screen int

const (
	screenTitle screen = iota
	screenPlaying
	screenOver
	screenShutdown
)

// session is the per-connection state behind Run.
type session struct {
	opts   Options
	cfg    config.Config
	logger *log.Logger
	clock  clock.Clock
	stream *input.Stream

	sim    *world.Simulation
	runs   int
	screen screen

	result   world.Result
	rank     int
	top      []leaderboard.Entry
	boardErr error

	canvas *draw.Canvas
	frame  *draw.Frame
	cw     *draw.ChunkWriter
	w      io.Writer

	prevScreen screen
	prevPaused bool
	lastInput  time.Time
	shutdownAt time.Time
	running    bool
}

// Run plays sessions on r and w until the player quits, the reader ends,
// the session idles out or shutdown completes.
func Run(r io.Reader, w io.Writer, opts Options) error {
	s, err := newSession(w, opts)
	if err != nil {
		return err
	}
	s.stream = input.StartStream(bufio.NewReader(r))

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	for s.running {
		frameStart := time.Now()

		events := s.stream.Poll(s.clock.Now())
		if s.stream.Closed() {
			s.running = false
		}
		if err := s.update(events); err != nil {
			return err
		}
		if !s.running {
			break
		}
		if err := s.render(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.TickTime {
			time.Sleep(config.TickTime - elapsed)
		}
	}

	draw.ClearScreen(w)
	return nil
}

func newSession(w io.Writer, opts Options) (*session, error) {
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loop: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}

	canvas := draw.NewScaledCanvas(80, 24, cfg.ViewWidth, cfg.ViewHeight)
	return &session{
		opts:       opts,
		cfg:        cfg,
		logger:     opts.Logger,
		clock:      opts.Clock,
		canvas:     canvas,
		frame:      draw.NewFrame(canvas),
		cw:         draw.NewChunkWriter(w, 0, 0),
		w:          w,
		prevScreen: -1,
		lastInput:  opts.Clock.Now(),
		running:    true,
	}, nil
}

// update applies one frame of input and advances the simulation.
func (s *session) update(events []input.Event) error {
	now := s.clock.Now()
	if len(events) > 0 {
		s.lastInput = now
	}
	if has(events, input.Quit) {
		s.running = false
		return nil
	}
	s.checkShutdown(now)

	switch s.screen {
	case screenTitle, screenOver:
		if has(events, input.Tap) || has(events, input.Confirm) {
			return s.start()
		}
		if s.opts.IdleTimeout > 0 && now.Sub(s.lastInput) > s.opts.IdleTimeout {
			s.logger.Info("session idle", "player", s.opts.Player)
			s.running = false
		}
	case screenPlaying:
		s.sim.Apply(events)
		s.sim.Tick()
		if s.sim.Status().Finished() {
			s.finish(now)
		}
	case screenShutdown:
		if now.Sub(s.shutdownAt) >= shutdownDisplay {
			s.running = false
		}
	}
	return nil
}

func (s *session) checkShutdown(now time.Time) {
	if s.opts.Shutdown == nil || s.screen == screenShutdown {
		return
	}
	select {
	case <-s.opts.Shutdown:
		s.screen = screenShutdown
		s.shutdownAt = now
	default:
	}
}

// start discards any previous run and begins a new one.
func (s *session) start() error {
	var rng *rand.Rand
	if s.opts.Seed != 0 {
		rng = rand.New(rand.NewSource(s.opts.Seed + int64(s.runs)))
	}
	sim, err := world.New(s.cfg, world.Options{
		Clock:    s.clock,
		Rand:     rng,
		Notifier: s.opts.Notifier,
		Logger:   s.logger,
	})
	if err != nil {
		return fmt.Errorf("loop: start run: %w", err)
	}
	if s.stream != nil {
		s.stream.Reset()
	}

	s.sim = sim
	s.runs++
	s.screen = screenPlaying
	s.result = world.Result{}
	s.rank = 0
	s.top = nil
	s.boardErr = nil
	s.logger.Debug("run started", "player", s.opts.Player, "run", s.runs)
	return nil
}

// finish records the result and reports it to the leaderboard.
func (s *session) finish(now time.Time) {
	s.result = s.sim.Result()
	s.screen = screenOver
	s.logger.Info("run finished",
		"player", s.opts.Player,
		"score", s.result.Score,
		"destroyed", s.result.Destroyed,
		"victory", s.result.Victory,
	)

	board := s.opts.Leaderboard
	if board == nil {
		return
	}
	rank, err := board.Submit(leaderboard.Entry{
		Player:    s.opts.Player,
		Score:     s.result.Score,
		Destroyed: s.result.Destroyed,
		Victory:   s.result.Victory,
		At:        now,
	})
	s.rank = rank
	s.top = board.Top(topEntries)
	if err != nil {
		s.boardErr = err
		s.logger.Error("score not saved", "player", s.opts.Player, "err", err)
	}
}

// resize fits the canvas to the terminal, clearing leftovers on change.
func (s *session) resize() {
	tw, th, err := draw.TerminalSizeRawWith(s.opts.TermSizeFunc)
	if err != nil {
		return
	}
	width, height, offCol, offRow := draw.FitArea(tw, th, s.cfg.ViewWidth/s.cfg.ViewHeight, maxRenderWidth)

	if width != s.canvas.TerminalWidth() || height != s.canvas.TerminalHeight() ||
		offCol != s.canvas.OffsetCol() || offRow != s.canvas.OffsetRow() {
		draw.ClearScreen(s.cw)
		s.canvas.ForceRedraw()
	}
	s.canvas.Resize(width, height)
	s.canvas.SetOffset(offCol, offRow)
	s.cw.SetOffset(offCol, offRow)
}

// render draws the world and the overlay for the current screen.
func (s *session) render() error {
	s.resize()

	paused := s.sim != nil && s.sim.Status() == world.StatusPaused
	if s.screen != s.prevScreen || paused != s.prevPaused {
		s.cw.WriteString("\033[H\033[2J")
		s.canvas.ForceRedraw()
		s.prevScreen = s.screen
		s.prevPaused = paused
	}

	s.frame.Reset()
	if s.sim != nil && (s.screen == screenPlaying || s.screen == screenOver) {
		s.frame.SetShake(s.sim.Shake())
		s.sim.Draw(s.frame)
	}
	s.frame.Render(s.cw)
	s.canvas.RenderBorder(s.cw)
	s.drawUI()

	return s.cw.Flush()
}

func has(events []input.Event, kind input.Kind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
