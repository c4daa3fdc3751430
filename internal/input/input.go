// Package input turns raw terminal bytes into discrete, edge-triggered game
// events.
package input

import (
	"io"
	"time"
)

// keyHoldDuration is how long a direction key is considered held after its
// last byte. Terminals send no key-up, so the hold lapsing is the release.
// It must exceed the terminal auto-repeat interval.
const keyHoldDuration = 150 * time.Millisecond

// Direction is a horizontal steering direction.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Kind identifies an input event.
type Kind int

const (
	MoveStart Kind = iota // a direction key went down
	MoveStop              // the held direction key was released
	Tap                   // space: pause/resume while playing, start from menus
	Confirm               // enter
	Quit
)

// Event is one discrete input event.
type Event struct {
	Kind      Kind
	Direction Direction // set for MoveStart and MoveStop
}

// Stream delivers input bytes via a channel and converts them to events.
type Stream struct {
	ch     chan byte
	closed bool

	held     Direction // zero when no direction is held
	lastSeen time.Time // last byte for the held direction

	partial []byte // unfinished escape sequence from the previous drain
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.ByteReader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// Poll drains all available bytes (non-blocking) and returns the events
// they produce, in order. A release is reported once the held direction
// key has been silent for keyHoldDuration.
func (s *Stream) Poll(now time.Time) []Event {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return s.parse(buf, now)
}

// parse converts bytes to events and updates the held-key state.
func (s *Stream) parse(buf []byte, now time.Time) []Event {
	var events []Event

	if len(s.partial) > 0 {
		buf = append(s.partial, buf...)
		s.partial = nil
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// The reader delivers byte by byte, so a sequence may end in the next drain.
		if b == '\x1b' && (i+1 == len(buf) || (i+2 == len(buf) && buf[i+1] == '[')) {
			s.partial = append(s.partial, buf[i:]...)
			break
		}

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C':
				events = s.press(events, Right, now)
			case 'D':
				events = s.press(events, Left, now)
			}
			i += 2
			continue
		}

		switch b {
		case 'a', 'A', 'h', 'H':
			events = s.press(events, Left, now)
		case 'd', 'D', 'l', 'L':
			events = s.press(events, Right, now)
		case ' ', 'p', 'P':
			events = append(events, Event{Kind: Tap})
		case '\r', '\n':
			events = append(events, Event{Kind: Confirm})
		case 'q', 'Q', '\x03':
			events = append(events, Event{Kind: Quit})
		}
	}

	if s.held != 0 && now.Sub(s.lastSeen) >= keyHoldDuration {
		events = append(events, Event{Kind: MoveStop, Direction: s.held})
		s.held = 0
	}
	return events
}

// press records a direction byte. Repeats of the held key only refresh the
// hold; a new key releases the old one first.
func (s *Stream) press(events []Event, dir Direction, now time.Time) []Event {
	if s.held == dir {
		s.lastSeen = now
		return events
	}
	if s.held != 0 {
		events = append(events, Event{Kind: MoveStop, Direction: s.held})
	}
	s.held = dir
	s.lastSeen = now
	return append(events, Event{Kind: MoveStart, Direction: dir})
}

// Reset forgets any held key, e.g. when switching screens.
func (s *Stream) Reset() {
	s.held = 0
}
