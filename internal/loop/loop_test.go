package loop

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/swoosh/internal/clock"
	"github.com/tomz197/swoosh/internal/input"
	"github.com/tomz197/swoosh/internal/leaderboard"
	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/loop/world"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

var tap = []input.Event{{Kind: input.Tap}}

func fixedSize() (int, int, error) { return 120, 40, nil }

// failingStore loads nothing and refuses every save.
type failingStore struct{}

func (failingStore) Load() ([]leaderboard.Entry, error) { return nil, nil }
func (failingStore) Save([]leaderboard.Entry) error     { return errors.New("read-only filesystem") }

func newTestSession(t *testing.T, opts Options) (*session, *clock.Manual, *bytes.Buffer) {
	t.Helper()
	clk := clock.NewManual(t0)
	opts.Clock = clk
	opts.Logger = log.New(io.Discard)
	opts.TermSizeFunc = fixedSize
	if opts.Seed == 0 {
		opts.Seed = 11
	}
	var out bytes.Buffer
	s, err := newSession(&out, opts)
	if err != nil {
		t.Fatalf("newSession failed: %v", err)
	}
	return s, clk, &out
}

func shortRun() *config.Config {
	cfg := config.Default()
	cfg.TotalDistance = 300
	return &cfg
}

// play advances until the run ends or the tick budget is spent.
func play(t *testing.T, s *session, clk *clock.Manual) {
	t.Helper()
	for i := 0; i < 3000 && s.screen == screenPlaying; i++ {
		clk.Advance(config.TickTime)
		if err := s.update(nil); err != nil {
			t.Fatalf("update failed: %v", err)
		}
	}
	if s.screen != screenOver {
		t.Fatalf("Expected the run to end, screen %d", s.screen)
	}
}

// renderText renders one frame and returns what was written.
func renderText(t *testing.T, s *session, out *bytes.Buffer) string {
	t.Helper()
	out.Reset()
	if err := s.render(); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return out.String()
}

// TestTitleStartsRun verifies a tap on the title launches a run
func TestTitleStartsRun(t *testing.T) {
	s, _, out := newTestSession(t, Options{})
	if !strings.Contains(renderText(t, s, out), "Press SPACE to Launch") {
		t.Error("Expected the launch prompt on the title screen")
	}

	if err := s.update(tap); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if s.screen != screenPlaying || s.sim == nil {
		t.Fatalf("Expected a running simulation, screen %d", s.screen)
	}
	if !strings.Contains(renderText(t, s, out), "Distance:") {
		t.Error("Expected the HUD while playing")
	}
}

// TestQuitEndsSession verifies quit stops the session from any screen
func TestQuitEndsSession(t *testing.T) {
	s, _, _ := newTestSession(t, Options{})
	s.update(tap)
	s.update([]input.Event{{Kind: input.Quit}})

	if s.running {
		t.Error("Expected quit to stop the session")
	}
}

// TestPauseOverlay verifies the paused run shows the resume hint
func TestPauseOverlay(t *testing.T) {
	s, clk, out := newTestSession(t, Options{})
	s.update(tap)
	clk.Advance(config.TickTime)
	s.update(tap)

	if s.sim.Status() != world.StatusPaused {
		t.Fatalf("Expected paused, got %s", s.sim.Status())
	}
	if !strings.Contains(renderText(t, s, out), "PAUSED") {
		t.Error("Expected the pause overlay")
	}
}

// TestVictoryReportsRank verifies a finished run is ranked and listed
func TestVictoryReportsRank(t *testing.T) {
	board, _ := leaderboard.New(nil, 0)
	s, clk, out := newTestSession(t, Options{Config: shortRun(), Leaderboard: board, Player: "ada"})
	s.update(tap)
	play(t, s, clk)

	if !s.result.Victory || s.result.Score != 300 {
		t.Fatalf("Expected a 300 point victory, got %+v", s.result)
	}
	if s.rank != 1 || len(s.top) != 1 || s.top[0].Player != "ada" {
		t.Errorf("Expected ada ranked first, got rank %d top %+v", s.rank, s.top)
	}

	text := renderText(t, s, out)
	for _, want := range []string{"Score: 300", "Rank #1", "ada"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q on the game-over screen", want)
		}
	}
}

// TestLeaderboardUnavailable verifies a failing store is reported but not fatal
func TestLeaderboardUnavailable(t *testing.T) {
	board, _ := leaderboard.New(failingStore{}, 0)
	s, clk, out := newTestSession(t, Options{Config: shortRun(), Leaderboard: board})
	s.update(tap)
	play(t, s, clk)

	if s.boardErr == nil {
		t.Fatal("Expected the save error to be kept")
	}
	if !strings.Contains(renderText(t, s, out), "leaderboard unavailable") {
		t.Error("Expected the unavailable notice")
	}
}

// TestRestartDiscardsRun verifies playing again builds a fresh simulation
func TestRestartDiscardsRun(t *testing.T) {
	s, clk, _ := newTestSession(t, Options{Config: shortRun()})
	s.update(tap)
	first := s.sim
	play(t, s, clk)

	s.update([]input.Event{{Kind: input.Confirm}})
	if s.screen != screenPlaying || s.sim == first {
		t.Fatal("Expected a new run")
	}
	if s.sim.Traveled() != 0 || s.result != (world.Result{}) {
		t.Error("Expected the new run to start from zero")
	}
}

// TestIdleTimeoutOnMenu verifies a session parked on the title is closed
func TestIdleTimeoutOnMenu(t *testing.T) {
	s, clk, _ := newTestSession(t, Options{IdleTimeout: time.Second})
	clk.Advance(500 * time.Millisecond)
	s.update(nil)
	if !s.running {
		t.Fatal("Expected the session to stay open before the timeout")
	}

	clk.Advance(time.Second)
	s.update(nil)
	if s.running {
		t.Error("Expected the idle session to close")
	}
}

// TestShutdownNotice verifies shutdown shows a countdown then ends the session
func TestShutdownNotice(t *testing.T) {
	done := make(chan struct{})
	s, clk, out := newTestSession(t, Options{Shutdown: done})
	s.update(tap)
	close(done)

	s.update(nil)
	if s.screen != screenShutdown {
		t.Fatalf("Expected the shutdown screen, got %d", s.screen)
	}
	if !strings.Contains(renderText(t, s, out), "SERVER SHUTTING DOWN") {
		t.Error("Expected the shutdown notice")
	}

	clk.Advance(shutdownDisplay)
	s.update(nil)
	if s.running {
		t.Error("Expected the session to end after the notice")
	}
}

// TestRunRejectsInvalidConfig verifies configuration errors surface from Run
func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Craft.ArcDuration = 0

	err := Run(strings.NewReader(""), io.Discard, Options{Config: &cfg, Logger: log.New(io.Discard)})
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}

// TestRunEndsWithInput verifies Run returns once the input closes and restores the cursor
func TestRunEndsWithInput(t *testing.T) {
	var out bytes.Buffer
	err := Run(strings.NewReader("q"), &out, Options{TermSizeFunc: fixedSize, Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.HasSuffix(out.String(), "\033[?25h") {
		t.Error("Expected the cursor to be shown on exit")
	}
}
