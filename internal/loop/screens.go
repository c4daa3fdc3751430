package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/swoosh/internal/loop/world"
)

var titleArt = []string{
	` ___ _    _  ___   ___  ___ _  _ `,
	`/ __| |  | |/ _ \ / _ \/ __| || |`,
	`\__ \ |/\| | (_) | (_) \__ \ __ |`,
	`|___/__/\__/\___/ \___/|___/_||_|`,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

var victoryArt = []string{
	`__   _____ ___ _____ ___  _____   __`,
	`\ \ / /_ _/ __|_   _/ _ \| _ \ \ / /`,
	` \ V / | | (__  | || (_) |   /\ V / `,
	`  \_/ |___\___| |_| \___/|_|_\ |_|  `,
}

// drawUI writes the text overlay for the current screen.
func (s *session) drawUI() {
	width := s.canvas.TerminalWidth()
	height := s.canvas.TerminalHeight()
	centerX, centerY := width/2, height/2

	switch s.screen {
	case screenTitle:
		s.drawTitle(centerX, centerY)
	case screenPlaying:
		s.drawHUD(width, height)
	case screenOver:
		s.drawOver(centerX, centerY)
	case screenShutdown:
		s.drawShutdown(centerX, centerY)
	}
}

// centre writes line centred on column centerX.
func (s *session) centre(centerX, row int, line string) {
	s.cw.WriteAt(centerX-len([]rune(line))/2, row, line)
}

func (s *session) drawArt(centerX, top int, art []string) int {
	w := 0
	for _, line := range art {
		w = max(w, len(line))
	}
	for i, line := range art {
		s.cw.WriteAt(centerX-w/2, top+i, line)
	}
	return top + len(art)
}

// blink is on for 600ms out of every 1.2s.
func (s *session) blink() bool {
	return s.clock.Now().UnixMilli()/600%2 == 0
}

func (s *session) drawTitle(centerX, centerY int) {
	row := s.drawArt(centerX, centerY-7, titleArt)
	s.centre(centerX, row+1, "~ Break through the atmosphere ~")

	controls := []string{
		"A D / < >  . . . .  Swoop",
		"SPACE  . . . . . .  Pause",
		"Q  . . . . . . . . . Quit",
	}
	row += 3
	s.centre(centerX, row, "Controls")
	for i, line := range controls {
		s.centre(centerX, row+1+i, line)
	}
	if s.blink() {
		s.centre(centerX, row+len(controls)+2, ">>  Press SPACE to Launch  <<")
	}
}

// drawHUD uses fixed-width fields so shrinking values leave no residue.
func (s *session) drawHUD(width, height int) {
	sim := s.sim
	res := sim.Result()

	s.cw.WriteAt(2, 1, fmt.Sprintf("Distance: %-8d", res.Distance))
	remaining := fmt.Sprintf("Remaining: %-8d", int(sim.Remaining()))
	s.cw.WriteAt(width-len(remaining)-1, 1, remaining)

	if res.Bonus > 0 {
		s.cw.WriteAt(2, 2, fmt.Sprintf("Bonus: +%-6d", res.Bonus))
	}

	s.cw.WriteAt(2, height, fmt.Sprintf("%-14s", sim.Layer().Name))

	shield := fmt.Sprintf("%-14s", "")
	if craft := sim.Craft(); craft.ShieldActive() {
		shield = fmt.Sprintf("Shield %4.1fs  ", craft.ShieldRemaining().Seconds())
	}
	s.cw.WriteAt(width-len(shield)-1, height, shield)

	if sim.Status() == world.StatusPaused {
		s.centre(width/2, height/2, "PAUSED")
		s.centre(width/2, height/2+2, "Press SPACE to resume")
	}
}

func (s *session) drawOver(centerX, centerY int) {
	res := s.result
	art := gameOverArt
	if res.Victory {
		art = victoryArt
	}
	row := s.drawArt(centerX, centerY-9, art) + 1

	s.centre(centerX, row, fmt.Sprintf("Score: %d", res.Score))
	s.centre(centerX, row+1, fmt.Sprintf("Distance %d + bonus %d, %d destroyed", res.Distance, res.Bonus, res.Destroyed))
	row += 3

	if s.opts.Leaderboard != nil {
		if s.boardErr != nil {
			s.centre(centerX, row, "leaderboard unavailable")
		} else if s.rank > 0 {
			s.centre(centerX, row, fmt.Sprintf("Rank #%d", s.rank))
		}
		row += 2
		for i, e := range s.top {
			s.centre(centerX, row+i, fmt.Sprintf("%d. %-12.12s %8d", i+1, e.Player, e.Score))
		}
		row += len(s.top) + 1
	}

	if s.blink() {
		s.centre(centerX, row, ">>  Press SPACE to Play Again  <<")
	}
}

func (s *session) drawShutdown(centerX, centerY int) {
	s.centre(centerX, centerY-3, "SERVER SHUTTING DOWN")
	s.centre(centerX, centerY-1, "The server is restarting for maintenance.")
	s.centre(centerX, centerY, "Please reconnect in a moment.")

	left := shutdownDisplay - s.clock.Now().Sub(s.shutdownAt)
	s.centre(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", int(left/time.Second)+1))
	s.centre(centerX, centerY+4, "Press Q to disconnect now")
}
