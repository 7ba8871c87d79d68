package sim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/physics"
)

// Metric accumulates a scalar over the steps of a run.
type Metric interface {
	Name() string
	Observe(s *Scene, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every tick with the events it produced.
type Observer interface {
	OnStep(s *Scene, events []Event, t float64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s *Scene, events []Event, t float64)

func (f ObserverFunc) OnStep(s *Scene, events []Event, t float64) { f(s, events, t) }

// Params are the global constants of the tick.
type Params struct {
	Gravity  float64 `yaml:"gravity" json:"gravity"`
	Friction float64 `yaml:"friction" json:"friction"`
}

func DefaultParams() Params {
	return Params{Gravity: physics.Gravity, Friction: 0.6}
}

// ScheduledShot fires Shot on tick round(At/Dt). One shot fires per tick, so
// shots due on the same tick fire on consecutive ticks in schedule order.
type ScheduledShot struct {
	At   float64
	Aim  *Aim
	Shot *Shot
}

type Config struct {
	Dt            float64
	Duration      float64
	SampleEvery   int
	Seed          int64
	ValidateState bool
	Shots         []ScheduledShot
}

// BodyState is the recorded kinematic state of one body.
type BodyState struct {
	ID       int        `json:"id"`
	Position mgl64.Vec3 `json:"position"`
	Velocity mgl64.Vec3 `json:"velocity"`
	InPocket bool       `json:"in_pocket"`
}

// Frame is a snapshot of the whole scene at one instant.
type Frame struct {
	Time   float64     `json:"time"`
	Bodies []BodyState `json:"bodies"`
}

type Result struct {
	Frames     []Frame
	Events     []Event
	Metrics    map[string]float64
	StepsTaken int
	Pocketed   []int
	Errors     []error
}

// Count returns how many events of kind k the run produced.
func (r *Result) Count(k EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
