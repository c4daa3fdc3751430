// Package audio plays the game's short synthesised cues. Every cue is
// fire-and-forget: the simulation never waits on the speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/swoosh/internal/object"
)

const sampleRate = beep.SampleRate(44100)

// Nop discards every cue. Used when audio is disabled or for remote
// sessions that have no speaker.
type Nop struct{}

func (Nop) NotifyTurn()      {}
func (Nop) NotifyShieldHit() {}
func (Nop) NotifyCrash()     {}
func (Nop) NotifyPickup()    {}

// Beep plays cues on the local speaker through a single mixer.
type Beep struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	closed bool
}

// NewBeep opens the speaker. volume scales every cue, 1 is full level.
func NewBeep(volume float64) (*Beep, error) {
	b := &Beep{mixer: &beep.Mixer{}, volume: volume}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, err
	}
	speaker.Play(b.mixer)
	return b, nil
}

// NotifyTurn plays a short rising chirp.
func (b *Beep) NotifyTurn() {
	b.play(sweep(420, 680, 70*time.Millisecond, sampleRate))
}

// NotifyShieldHit plays a bell with an octave overtone.
func (b *Beep) NotifyShieldHit() {
	b.play(beep.Mix(
		withVolume(tone(880, 250*time.Millisecond, waveSine, sampleRate), 0.7),
		withVolume(tone(1760, 120*time.Millisecond, waveSine, sampleRate), 0.3),
	))
}

// NotifyCrash plays a decaying rumble.
func (b *Beep) NotifyCrash() {
	b.play(beep.Mix(
		rumble(600*time.Millisecond, sampleRate, time.Now().UnixNano()),
		withVolume(tone(70, 600*time.Millisecond, waveSaw, sampleRate), 0.4),
	))
}

// NotifyPickup plays a two-note chime.
func (b *Beep) NotifyPickup() {
	b.play(beep.Seq(
		tone(1046.5, 90*time.Millisecond, waveSquare, sampleRate),
		tone(1318.5, 160*time.Millisecond, waveSquare, sampleRate),
	))
}

func (b *Beep) play(s beep.Streamer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	speaker.Lock()
	b.mixer.Add(withVolume(s, b.volume))
	speaker.Unlock()
}

// Close silences and releases the speaker. Later cues are dropped.
func (b *Beep) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	speaker.Clear()
	speaker.Close()
}

var (
	_ object.Notifier = Nop{}
	_ object.Notifier = (*Beep)(nil)
)
