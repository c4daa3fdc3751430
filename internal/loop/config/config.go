// Package config centralizes all tunable game parameters.
//
// A Config is built once (usually via Default), validated, and handed by
// value to every component constructor. Nothing reads tunables from package
// state at runtime.
package config

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrInvalid is wrapped by every error returned from Validate.
var ErrInvalid = errors.New("invalid config")

// View resolution - the logical viewport every entity is positioned in.
// Rendering scales it to the terminal.
const (
	ViewWidth  = 1200
	ViewHeight = 800
)

// Simulation rate
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// Kind identifies an obstacle variant.
type Kind string

const (
	KindSimple    Kind = "simple"
	KindComplex   Kind = "complex"
	KindBelt      Kind = "belt"
	KindPulsating Kind = "pulsating"
	KindMoving    Kind = "moving"
	KindShooting  Kind = "shooting"
	KindBlackHole Kind = "blackhole"
	KindWormhole  Kind = "wormhole"
	KindComet     Kind = "comet"
)

// Known reports whether k names a variant the spawner can build.
func (k Kind) Known() bool {
	switch k {
	case KindSimple, KindComplex, KindBelt, KindPulsating, KindMoving,
		KindShooting, KindBlackHole, KindWormhole, KindComet:
		return true
	}
	return false
}

// ObstacleType describes when a variant becomes eligible to spawn.
type ObstacleType struct {
	Kind    Kind
	Unlock  float64 // distance traveled at which the type unlocks
	Weight  float64 // base weight among the special types; 0 keeps it out of spawn rows
	Message string  // shown once when the type unlocks
}

// Milestone is a message shown once when the distance traveled reaches Distance.
type Milestone struct {
	Distance float64
	Message  string
}

// Layer is an atmosphere layer entered when the remaining distance drops to
// Remaining or below.
type Layer struct {
	Name      string
	Remaining float64
	Tip       string
}

// CraftConfig tunes the player craft. Fractions are of the view dimensions.
type CraftConfig struct {
	RadiusUnits       float64       // radius in base units
	StartX, StartY    float64       // fraction of view width/height
	SpeedFraction     float64       // base vertical speed per second, fraction of view height
	ArcRadiusFraction float64       // arc radius, fraction of view width
	ArcDuration       time.Duration // duration of one arc swoop
	BoostFraction     float64       // peak vertical boost during an arc, fraction of base speed
	SpeedSmoothing    float64       // weight kept from the previous vertical velocity each tick
	ShieldDuration    time.Duration
	ShieldWarning     time.Duration // remaining time below which the shield warns
	TrailSpacing      float64       // minimum distance between trail points
	TrailFade         float64       // opacity lost by each trail point per tick
	TrailLength       int
}

// CameraConfig tunes the scrolling camera.
type CameraConfig struct {
	IdealOffsetFraction float64       // desired craft distance from the top, fraction of view height
	Interpolation       float64       // fraction of the gap to target applied to target velocity
	Smoothing           float64       // weight kept from the previous velocity each tick
	Deceleration        time.Duration // post-crash coast window
}

// ObstacleConfig tunes obstacle sizes and the spawner.
type ObstacleConfig struct {
	MinSizeUnits, MaxSizeUnits     float64 // large obstacle size range in base units
	SimpleMinUnits, SimpleMaxUnits float64
	MaxRotationSpeed               float64 // radians per tick, both directions
	MinGapFraction                 float64 // vertical gap between rows, fraction of view height
	MaxGapFraction                 float64
	CullFraction                   float64 // obstacles further than this many view heights behind the camera are dropped
	MaxActive                      int     // hard limit on active obstacles; rows are skipped or cut short at it
	SimpleShare                    float64 // weight of simple obstacles once special types unlock
	RowWeights                     [3]float64
	PlacementAttempts              int
	JitterFraction                 float64 // vertical placement jitter, fraction of view height
	StartDensity, MaxDensity       float64
	DensityExponent                float64
	ClusterStep                    float64 // distance per extra simple asteroid in a cluster
	MaxCluster                     int

	Complex   ComplexConfig
	Pulsating PulsatingConfig
	Moving    MovingConfig
	Shooting  ShootingConfig
	Comet     CometConfig
	BlackHole BlackHoleConfig
	Debris    DebrisConfig
}

// ComplexConfig tunes asteroids with orbiting satellites.
type ComplexConfig struct {
	MinSatellites, MaxSatellites int
	MinOrbitSpeed, MaxOrbitSpeed float64 // radians per tick
	OrbitFactor                  float64 // orbit distance relative to size
	SatelliteFactor              float64 // satellite size relative to size
	HitboxFactor                 float64
}

// PulsatingConfig tunes pulsating asteroids.
type PulsatingConfig struct {
	GrowthUnits float64 // size gained per second, in base units
	MaxFactor   float64 // size at which the asteroid snaps back to its base size
}

// MovingConfig tunes the horizontally drifting pentagon.
type MovingConfig struct {
	SpeedUnits        float64 // per second, in base units
	AmplitudeFraction float64 // fraction of view width
}

// ShootingConfig tunes asteroids that fire projectiles.
type ShootingConfig struct {
	Interval         time.Duration
	ProjectileUnits  float64 // projectile speed per second, in base units
	ProjectileFactor float64 // projectile size relative to size
}

// CometConfig tunes the fast horizontal comet.
type CometConfig struct {
	SizeUnits   float64
	SpeedUnits  float64 // per second, in base units
	MinInterval time.Duration
	MaxInterval time.Duration
	TrailFade   float64
	TrailShrink float64
}

// BlackHoleConfig tunes gravity wells. Advanced values apply once the
// distance traveled exceeds AdvancedAfter.
type BlackHoleConfig struct {
	SizeUnits       float64
	SizeFactor      float64
	AdvancedFactor  float64
	ForceUnits      float64 // displacement per tick at the centre, in base units
	AdvancedForce   float64
	InfluenceFactor float64 // influence radius relative to size
	AdvancedReach   float64
	AdvancedAfter   float64
}

// DebrisConfig tunes destruction particles and score popups.
type DebrisConfig struct {
	Count        int
	SpeedUnits   float64 // base particle speed per tick, in base units
	Fade         float64 // opacity lost per tick
	Shrink       float64 // size multiplier per tick
	PopupSpeed   float64 // upward popup drift per tick
	Explosion    int     // particles emitted when the craft is destroyed
	BonusPerKill int
}

// PowerUpConfig tunes shield pickups.
type PowerUpConfig struct {
	SizeUnits      float64
	MarginUnits    float64
	EnableDistance float64 // no pickups before this distance
	MinInterval    float64 // distance between pickups
	MaxInterval    float64
}

// TutorialConfig tunes the opening tutorial and cutscene.
type TutorialConfig struct {
	HintDistance      float64       // movement hint shown from here until the player moves
	EndDistance       float64       // cutscene starts here
	FollowUpDelay     time.Duration // delay between the player moving and the follow-up message
	MoveHint          string
	FollowUp          string
	CutsceneDuration  time.Duration
	CutsceneBoost     float64 // camera speed multiplier
	ShakeAmplitude    float64
	MotionLines       int
	SpawnLeadFraction float64 // first row distance above the camera after the cutscene
}

// WormholeConfig tunes wormhole gate pairs.
type WormholeConfig struct {
	SizeUnits      float64
	TeleportFactor float64 // teleport radius relative to size
	SafeZoneFactor float64 // safe zone radius relative to size
	Delay          time.Duration
	ExitFraction   float64 // exit gate distance above the entry, fraction of view height
	MinEscorts     int
	MaxEscorts     int
	EscortMinUnits float64
	EscortMaxUnits float64
}

// Config is the immutable tuning record shared by the whole simulation.
type Config struct {
	ViewWidth, ViewHeight float64
	UnitDivisor           float64 // base unit = ViewWidth / UnitDivisor
	TotalDistance         float64

	Craft     CraftConfig
	Camera    CameraConfig
	Obstacles ObstacleConfig
	PowerUps  PowerUpConfig
	Tutorial  TutorialConfig
	Wormhole  WormholeConfig

	Types      []ObstacleType
	Milestones []Milestone
	Layers     []Layer

	MessageDuration time.Duration
	MessageFade     time.Duration
	LayerDuration   time.Duration
	LayerSpacing    float64 // minimum distance between layer transitions
}

// BaseUnit returns the viewport-derived scalar every size is expressed in.
func (c Config) BaseUnit() float64 {
	return c.ViewWidth / c.UnitDivisor
}

// Units converts a value in base units to logical view units.
func (c Config) Units(n float64) float64 {
	return n * c.BaseUnit()
}

// Type returns the entry for kind.
func (c Config) Type(kind Kind) (ObstacleType, bool) {
	for _, t := range c.Types {
		if t.Kind == kind {
			return t, true
		}
	}
	return ObstacleType{}, false
}

// Default returns the shipped tuning.
func Default() Config {
	return Config{
		ViewWidth:     ViewWidth,
		ViewHeight:    ViewHeight,
		UnitDivisor:   50,
		TotalDistance: 50000,

		Craft: CraftConfig{
			RadiusUnits:       1,
			StartX:            0.5,
			StartY:            0.8,
			SpeedFraction:     0.08,
			ArcRadiusFraction: 0.2,
			ArcDuration:       800 * time.Millisecond,
			BoostFraction:     0.3,
			SpeedSmoothing:    0.95,
			ShieldDuration:    5 * time.Second,
			ShieldWarning:     1500 * time.Millisecond,
			TrailSpacing:      10,
			TrailFade:         1.0 / 180,
			TrailLength:       50,
		},
		Camera: CameraConfig{
			IdealOffsetFraction: 0.75,
			Interpolation:       0.15,
			Smoothing:           0.92,
			Deceleration:        2 * time.Second,
		},
		Obstacles: ObstacleConfig{
			MinSizeUnits:      2.5,
			MaxSizeUnits:      6.25,
			SimpleMinUnits:    0.9,
			SimpleMaxUnits:    1.4,
			MaxRotationSpeed:  0.025,
			MinGapFraction:    0.25,
			MaxGapFraction:    0.4,
			CullFraction:      1.5,
			MaxActive:         24,
			SimpleShare:       0.62,
			RowWeights:        [3]float64{0.7, 0.2, 0.1},
			PlacementAttempts: 5,
			JitterFraction:    0.15,
			StartDensity:      0.7,
			MaxDensity:        1.5,
			DensityExponent:   1.2,
			ClusterStep:       8000,
			MaxCluster:        4,
			Complex: ComplexConfig{
				MinSatellites:   2,
				MaxSatellites:   4,
				MinOrbitSpeed:   0.02,
				MaxOrbitSpeed:   0.04,
				OrbitFactor:     1.5,
				SatelliteFactor: 0.25,
				HitboxFactor:    0.9,
			},
			Pulsating: PulsatingConfig{GrowthUnits: 0.5, MaxFactor: 2},
			Moving:    MovingConfig{SpeedUnits: 2, AmplitudeFraction: 0.3},
			Shooting: ShootingConfig{
				Interval:         2 * time.Second,
				ProjectileUnits:  3,
				ProjectileFactor: 0.2,
			},
			Comet: CometConfig{
				SizeUnits:   1.2,
				SpeedUnits:  15,
				MinInterval: 9 * time.Second,
				MaxInterval: 23 * time.Second,
				TrailFade:   0.05,
				TrailShrink: 0.95,
			},
			BlackHole: BlackHoleConfig{
				SizeUnits:       3,
				SizeFactor:      1.5,
				AdvancedFactor:  2,
				ForceUnits:      0.08,
				AdvancedForce:   0.15,
				InfluenceFactor: 4,
				AdvancedReach:   5,
				AdvancedAfter:   1000,
			},
			Debris: DebrisConfig{
				Count:        10,
				SpeedUnits:   0.5,
				Fade:         0.02,
				Shrink:       0.98,
				PopupSpeed:   2,
				Explosion:    30,
				BonusPerKill: 10,
			},
		},
		PowerUps: PowerUpConfig{
			SizeUnits:      2,
			MarginUnits:    4,
			EnableDistance: 500,
			MinInterval:    1500,
			MaxInterval:    2500,
		},
		Tutorial: TutorialConfig{
			HintDistance:      25,
			EndDistance:       150,
			FollowUpDelay:     1500 * time.Millisecond,
			MoveHint:          "Use LEFT and RIGHT arrows to move in arcs",
			FollowUp:          "Breaking the atmosphere!",
			CutsceneDuration:  1500 * time.Millisecond,
			CutsceneBoost:     3,
			ShakeAmplitude:    5,
			MotionLines:       20,
			SpawnLeadFraction: 1.5,
		},
		Wormhole: WormholeConfig{
			SizeUnits:      2,
			TeleportFactor: 0.8,
			SafeZoneFactor: 1.2,
			Delay:          300 * time.Millisecond,
			ExitFraction:   0.8,
			MinEscorts:     2,
			MaxEscorts:     3,
			EscortMinUnits: 8,
			EscortMaxUnits: 10,
		},
		Types: []ObstacleType{
			{Kind: KindSimple, Unlock: 0, Weight: 1, Message: "Watch out for asteroids!"},
			{Kind: KindComplex, Unlock: 2000, Weight: 1, Message: "Warning: Asteroids with orbiting debris detected!"},
			{Kind: KindMoving, Unlock: 4000, Weight: 1, Message: "Caution: Moving asteroids detected!"},
			{Kind: KindBelt, Unlock: 7000, Weight: 1, Message: "Dense asteroid field ahead!"},
			{Kind: KindPulsating, Unlock: 10000, Weight: 0.8, Message: "Warning: Unstable asteroids ahead!"},
			{Kind: KindShooting, Unlock: 12000, Weight: 0.6, Message: "Hostile asteroids opening fire!"},
			{Kind: KindWormhole, Unlock: 15000, Weight: 0.6, Message: "Spatial anomalies detected!"},
			{Kind: KindBlackHole, Unlock: 20000, Weight: 0.4, Message: "Gravitational anomaly ahead!"},
			{Kind: KindComet, Unlock: 25000, Weight: 0, Message: "Comets incoming!"},
		},
		Milestones: []Milestone{
			{Distance: 1000, Message: "Breaking atmosphere..."},
			{Distance: 10000, Message: "Deep space detected..."},
			{Distance: 25000, Message: "Unknown signals ahead..."},
			{Distance: 40000, Message: "Approaching the void..."},
		},
		Layers: []Layer{
			{Name: "Troposphere", Remaining: 50000, Tip: "Stay calm and maintain steady control."},
			{Name: "Stratosphere", Remaining: 47000, Tip: "Watch for moving obstacles. Time your movements carefully."},
			{Name: "Mesosphere", Remaining: 44000, Tip: "Use portals wisely to navigate through difficult sections."},
			{Name: "Thermosphere", Remaining: 41000, Tip: "Complex patterns ahead. Stay focused!"},
			{Name: "Exosphere", Remaining: 38000, Tip: "Beware of black holes. Their pull is irresistible!"},
		},
		MessageDuration: 3 * time.Second,
		MessageFade:     500 * time.Millisecond,
		LayerDuration:   4 * time.Second,
		LayerSpacing:    2000,
	}
}

// Validate reports every problem with c at once. The returned error wraps
// ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}
	positive := func(name string, v float64) {
		if v <= 0 {
			fail("%s must be positive, got %v", name, v)
		}
	}
	duration := func(name string, d time.Duration) {
		if d <= 0 {
			fail("%s must be positive, got %v", name, d)
		}
	}
	fraction := func(name string, v float64) {
		if v < 0 || v >= 1 {
			fail("%s must be in [0,1), got %v", name, v)
		}
	}
	ordered := func(name string, lo, hi float64) {
		if lo > hi {
			fail("%s range is inverted: %v > %v", name, lo, hi)
		}
	}

	positive("view width", c.ViewWidth)
	positive("view height", c.ViewHeight)
	positive("unit divisor", c.UnitDivisor)
	positive("total distance", c.TotalDistance)

	cr := c.Craft
	positive("craft radius", cr.RadiusUnits)
	positive("craft speed", cr.SpeedFraction)
	positive("arc radius", cr.ArcRadiusFraction)
	duration("arc duration", cr.ArcDuration)
	duration("shield duration", cr.ShieldDuration)
	fraction("craft speed smoothing", cr.SpeedSmoothing)
	if cr.BoostFraction < 0 {
		fail("arc boost must not be negative, got %v", cr.BoostFraction)
	}
	if cr.ShieldWarning < 0 || cr.ShieldWarning > cr.ShieldDuration {
		fail("shield warning must be within the shield duration, got %v", cr.ShieldWarning)
	}
	if cr.TrailLength < 0 {
		fail("trail length must not be negative, got %d", cr.TrailLength)
	}

	cam := c.Camera
	positive("camera interpolation", cam.Interpolation)
	fraction("camera smoothing", cam.Smoothing)
	duration("camera deceleration", cam.Deceleration)

	o := c.Obstacles
	positive("obstacle min size", o.MinSizeUnits)
	positive("simple min size", o.SimpleMinUnits)
	ordered("obstacle size", o.MinSizeUnits, o.MaxSizeUnits)
	ordered("simple size", o.SimpleMinUnits, o.SimpleMaxUnits)
	positive("row gap", o.MinGapFraction)
	ordered("row gap", o.MinGapFraction, o.MaxGapFraction)
	positive("cull distance", o.CullFraction)
	if o.MaxActive <= 0 {
		fail("max active obstacles must be positive, got %d", o.MaxActive)
	}
	fraction("simple share", o.SimpleShare)
	var rowTotal float64
	for _, w := range o.RowWeights {
		if w < 0 {
			fail("row weights must not be negative, got %v", o.RowWeights)
		}
		rowTotal += w
	}
	if rowTotal <= 0 {
		fail("row weights must not all be zero")
	}
	if o.PlacementAttempts <= 0 {
		fail("placement attempts must be positive, got %d", o.PlacementAttempts)
	}
	ordered("density", o.StartDensity, o.MaxDensity)
	positive("cluster step", o.ClusterStep)
	if o.MaxCluster <= 0 {
		fail("max cluster must be positive, got %d", o.MaxCluster)
	}
	if o.Complex.MinSatellites < 0 || o.Complex.MinSatellites > o.Complex.MaxSatellites {
		fail("satellite count range is invalid: %d..%d", o.Complex.MinSatellites, o.Complex.MaxSatellites)
	}
	ordered("orbit speed", o.Complex.MinOrbitSpeed, o.Complex.MaxOrbitSpeed)
	positive("pulsating max factor", o.Pulsating.MaxFactor-1)
	duration("shooting interval", o.Shooting.Interval)
	positive("comet size", o.Comet.SizeUnits)
	duration("comet interval", o.Comet.MinInterval)
	if o.Comet.MinInterval > o.Comet.MaxInterval {
		fail("comet interval range is inverted: %v > %v", o.Comet.MinInterval, o.Comet.MaxInterval)
	}
	positive("black hole size", o.BlackHole.SizeUnits)
	positive("black hole influence", o.BlackHole.InfluenceFactor)
	if o.Debris.Count < 0 || o.Debris.Explosion < 0 {
		fail("particle counts must not be negative")
	}

	p := c.PowerUps
	positive("pickup size", p.SizeUnits)
	positive("pickup interval", p.MinInterval)
	ordered("pickup interval", p.MinInterval, p.MaxInterval)

	t := c.Tutorial
	ordered("tutorial distance", t.HintDistance, t.EndDistance)
	duration("cutscene duration", t.CutsceneDuration)
	positive("cutscene boost", t.CutsceneBoost)
	if t.MotionLines < 0 {
		fail("motion lines must not be negative, got %d", t.MotionLines)
	}

	w := c.Wormhole
	positive("wormhole size", w.SizeUnits)
	positive("wormhole teleport radius", w.TeleportFactor)
	if w.SafeZoneFactor < w.TeleportFactor {
		fail("wormhole safe zone %v is smaller than the teleport radius %v", w.SafeZoneFactor, w.TeleportFactor)
	}
	duration("wormhole delay", w.Delay)
	if w.MinEscorts < 0 || w.MinEscorts > w.MaxEscorts {
		fail("escort count range is invalid: %d..%d", w.MinEscorts, w.MaxEscorts)
	}
	ordered("escort distance", w.EscortMinUnits, w.EscortMaxUnits)

	seen := make(map[Kind]bool, len(c.Types))
	for _, typ := range c.Types {
		if seen[typ.Kind] {
			fail("obstacle type %q listed twice", typ.Kind)
		}
		seen[typ.Kind] = true
		if !typ.Kind.Known() {
			fail("obstacle type %q is unknown", typ.Kind)
		}
		if typ.Weight < 0 {
			fail("obstacle type %q has negative weight %v", typ.Kind, typ.Weight)
		}
		if typ.Unlock < 0 {
			fail("obstacle type %q has negative unlock distance %v", typ.Kind, typ.Unlock)
		}
	}
	if !seen[KindSimple] {
		fail("obstacle type %q is required", KindSimple)
	}

	if !slices.IsSortedFunc(c.Milestones, func(a, b Milestone) int {
		return cmp.Compare(a.Distance, b.Distance)
	}) {
		fail("milestones must be sorted by distance")
	}
	if !slices.IsSortedFunc(c.Layers, func(a, b Layer) int {
		return cmp.Compare(b.Remaining, a.Remaining)
	}) {
		fail("layers must be sorted by descending remaining distance")
	}

	duration("message duration", c.MessageDuration)
	if c.MessageFade < 0 || 2*c.MessageFade > c.MessageDuration {
		fail("message fade %v does not fit in the message duration %v", c.MessageFade, c.MessageDuration)
	}
	duration("layer banner duration", c.LayerDuration)

	return errors.Join(errs...)
}
