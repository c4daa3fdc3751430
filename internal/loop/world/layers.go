package world

import (
	"math"
	"time"

	"github.com/tomz197/swoosh/internal/loop/config"
	"github.com/tomz197/swoosh/internal/object"
)

// LayerTracker follows the atmosphere layers the craft passes through and
// shows a banner on each transition. Layers only advance forward.
type LayerTracker struct {
	layers   []config.Layer
	current  int
	spacing  float64
	duration time.Duration

	lastRemaining float64 // remaining distance at the last finished transition
	bannerStart   time.Time
	active        bool
}

// NewLayerTracker starts in the first layer.
func NewLayerTracker(cfg config.Config) *LayerTracker {
	return &LayerTracker{
		layers:        cfg.Layers,
		spacing:       cfg.LayerSpacing,
		duration:      cfg.LayerDuration,
		lastRemaining: cfg.TotalDistance,
	}
}

// layerFor returns the deepest layer whose threshold remaining has reached.
func (t *LayerTracker) layerFor(remaining float64) int {
	idx := 0
	for i, l := range t.layers {
		if remaining <= l.Remaining {
			idx = i
		}
	}
	return idx
}

// Update starts a transition when the craft entered a deeper layer and
// enough distance has passed since the last one.
func (t *LayerTracker) Update(remaining float64, now time.Time) {
	if t.active {
		if now.Sub(t.bannerStart) >= t.duration {
			t.active = false
			t.lastRemaining = remaining
		}
		return
	}
	if len(t.layers) == 0 {
		return
	}
	idx := t.layerFor(remaining)
	if idx > t.current && math.Abs(remaining-t.lastRemaining) > t.spacing {
		t.current = idx
		t.active = true
		t.bannerStart = now
	}
}

// Current returns the layer the craft is in.
func (t *LayerTracker) Current() config.Layer {
	if len(t.layers) == 0 {
		return config.Layer{}
	}
	return t.layers[t.current]
}

// Banner reports whether the transition banner is showing.
func (t *LayerTracker) Banner() bool {
	return t.active
}

// Shift moves the banner window forward after a pause.
func (t *LayerTracker) Shift(d time.Duration) {
	t.bannerStart = t.bannerStart.Add(d)
}

// Draw renders the layer name and tip while the banner is showing.
func (t *LayerTracker) Draw(s object.Surface) {
	if !t.active {
		return
	}
	l := t.Current()
	s.Text(s.Width()/2, s.Height()*0.4, l.Name)
	s.Text(s.Width()/2, s.Height()*0.6, l.Tip)
}
