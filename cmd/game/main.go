package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/swoosh/internal/audio"
	"github.com/tomz197/swoosh/internal/config"
	"github.com/tomz197/swoosh/internal/leaderboard"
	"github.com/tomz197/swoosh/internal/loop"
	"github.com/tomz197/swoosh/internal/object"
)

const (
	defaultVolume = 0.5
	scoresFile    = "scores.msgpack"
)

func main() {
	logger, closeLog, err := newLogger(config.GetEnv("SWOOSH_LOG_FILE", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	board, err := leaderboard.New(leaderboard.NewFileStore(config.GetEnv("SWOOSH_SCORES", defaultScoresPath())), 0)
	if err != nil {
		// A broken score file must not keep anyone from playing.
		logger.Error("leaderboard disabled", "err", err)
		board = nil
	}

	var notifier object.Notifier = audio.Nop{}
	if config.GetEnvBool("SWOOSH_AUDIO", true) {
		volume, err := config.GetEnvFloat("SWOOSH_VOLUME", defaultVolume)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		if b, err := audio.NewBeep(volume); err != nil {
			logger.Warn("audio unavailable", "err", err)
		} else {
			defer b.Close()
			notifier = b
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	err = loop.Run(os.Stdin, os.Stdout, loop.Options{
		Player:      config.GetEnv("SWOOSH_PLAYER", config.GetEnv("USER", "player")),
		Leaderboard: board,
		Notifier:    notifier,
		Logger:      logger,
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to path, or discards everything when path is empty.
// Anything on stderr would tear the raw-mode screen.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "swoosh",
		Level:           log.DebugLevel,
	})
	return logger, func() { _ = f.Close() }, nil
}

func defaultScoresPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return scoresFile
	}
	return filepath.Join(dir, "swoosh", scoresFile)
}
