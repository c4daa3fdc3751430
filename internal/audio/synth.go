package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type wave int

const (
	waveSine wave = iota
	waveSquare
	waveSaw
)

// attack and release bound every cue to avoid clicks.
const (
	attack  = 5 * time.Millisecond
	release = 40 * time.Millisecond
)

// oscillator renders a fixed-length wave whose frequency may glide from
// freq to endFreq.
type oscillator struct {
	freq, endFreq float64
	wave          wave
	phase         float64
	pos, total    int
	att, rel      int
	rate          beep.SampleRate
}

func tone(freq float64, d time.Duration, w wave, rate beep.SampleRate) beep.Streamer {
	return sweepWave(freq, freq, d, w, rate)
}

func sweep(from, to float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return sweepWave(from, to, d, waveSine, rate)
}

func sweepWave(from, to float64, d time.Duration, w wave, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:    from,
		endFreq: to,
		wave:    w,
		total:   rate.N(d),
		att:     rate.N(attack),
		rel:     rate.N(release),
		rate:    rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	if o.pos >= o.total {
		return 0, false
	}
	n := 0
	for i := range samples {
		if o.pos >= o.total {
			break
		}
		var v float64
		switch o.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case waveSquare:
			v = 0.5
			if o.phase >= 0.5 {
				v = -0.5
			}
		case waveSaw:
			v = 2*o.phase - 1
		}
		v *= envelope(o.pos, o.total, o.att, o.rel)
		samples[i][0], samples[i][1] = v, v

		progress := float64(o.pos) / float64(o.total)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
		n++
	}
	return n, true
}

func (o *oscillator) Err() error { return nil }

// envelope is a linear attack/release gain in [0, 1].
func envelope(pos, total, att, rel int) float64 {
	g := 1.0
	if att > 0 && pos < att {
		g = float64(pos) / float64(att)
	}
	if left := total - pos; rel > 0 && left < rel {
		g = math.Min(g, float64(left)/float64(rel))
	}
	return g
}

// noise is exponentially decaying white noise from a small LCG so cues
// never touch the shared math/rand source.
type noise struct {
	seed       int64
	pos, total int
	rate       beep.SampleRate
}

func rumble(d time.Duration, rate beep.SampleRate, seed int64) beep.Streamer {
	return &noise{seed: seed, total: rate.N(d), rate: rate}
}

func (g *noise) Stream(samples [][2]float64) (int, bool) {
	if g.pos >= g.total {
		return 0, false
	}
	n := 0
	for i := range samples {
		if g.pos >= g.total {
			break
		}
		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		v := float64(g.seed)/float64(0x7fffffff)*2 - 1
		t := float64(g.pos) / float64(g.rate)
		v *= 0.6 * math.Exp(-t*6)
		samples[i][0], samples[i][1] = v, v
		g.pos++
		n++
	}
	return n, true
}

func (g *noise) Err() error { return nil }

// withVolume scales a stream linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
