package sim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/physics"
)

type Simulator struct {
	scene     *Scene
	params    Params
	weapons   map[string]Weapon
	metrics   []Metric
	observers []Observer

	time     float64
	inPocket map[int]bool
}

func New(scene *Scene, params Params) *Simulator {
	return &Simulator{
		scene:     scene,
		params:    params,
		weapons:   DefaultWeapons(),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		inPocket:  make(map[int]bool),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetWeapons replaces the arsenal used to resolve aimed shots.
func (s *Simulator) SetWeapons(w map[string]Weapon) { s.weapons = w }

func (s *Simulator) Scene() *Scene  { return s.scene }
func (s *Simulator) Time() float64  { return s.time }
func (s *Simulator) Params() Params { return s.params }

// Reset reracks the scene and rewinds the clock.
func (s *Simulator) Reset(rack RackConfig) error {
	if err := s.scene.Reset(rack); err != nil {
		return err
	}
	s.time = 0
	s.inPocket = make(map[int]bool)
	return nil
}

// Step advances the scene by one tick and fires shot, if any, at the end of
// it. Bodies are integrated in order, then every pair i<j is resolved in
// order, so later pairs see positions moved by earlier ones.
func (s *Simulator) Step(dt float64, shot *Shot) []Event {
	var events []Event
	bodies := s.scene.Bodies
	table := s.scene.Table

	for _, b := range bodies {
		in := table.Resolve(b)
		if in && !s.inPocket[b.ID] {
			events = append(events, Event{
				Kind:    EventPocket,
				BodyID:  b.ID,
				OtherID: -1,
				Speed:   b.Velocity.Len(),
				Time:    s.time,
				Point:   b.Position,
			})
		}
		s.inPocket[b.ID] = in

		b.Advance(dt)
		b.ApplyFriction(s.params.Friction * dt)
		b.ApplyGravity(s.params.Gravity, dt)
	}

	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			rel := a.Velocity.Sub(b.Velocity).Len()
			if physics.ResolveCollision(a, b) {
				events = append(events, Event{
					Kind:    EventBall,
					BodyID:  a.ID,
					OtherID: b.ID,
					Speed:   rel,
					Time:    s.time,
					Point:   a.Position.Add(b.Position).Mul(0.5),
				})
			}
		}
	}

	if shot != nil {
		if ev, ok := s.fire(*shot); ok {
			events = append(events, ev)
		}
	}

	s.time += dt
	return events
}

func (s *Simulator) fire(shot Shot) (Event, bool) {
	hit, ok := physics.Raycast(s.scene.Bodies, shot.Origin, shot.Direction)
	if !ok {
		return Event{}, false
	}
	m := shot.Weapon.multiplier(s.scene.opening)
	s.scene.opening = false
	physics.ApplyShotImpulse(hit.Body, hit.Contact, shot.Direction, m)
	return Event{
		Kind:    EventShot,
		BodyID:  hit.Body.ID,
		OtherID: -1,
		Speed:   hit.Body.Velocity.Len(),
		Time:    s.time,
		Point:   hit.Contact,
	}, true
}

// resolveShot turns a scheduled shot into a ray, aiming at the first body
// when only an orbit camera was given.
func (s *Simulator) resolveShot(sc ScheduledShot) (*Shot, error) {
	if sc.Shot != nil {
		return sc.Shot, nil
	}
	if sc.Aim == nil {
		return nil, fmt.Errorf("scheduled shot at t=%.3f has neither aim nor ray", sc.At)
	}
	target := s.scene.First()
	if target == nil {
		return nil, ErrEmptyScene
	}
	w, err := LookupWeapon(s.weapons, sc.Aim.Weapon)
	if err != nil {
		return nil, err
	}
	shot := sc.Aim.ShotAt(target, w)
	return &shot, nil
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration/cfg.Dt + 1e-9)
	sampleEvery := cfg.SampleEvery
	if sampleEvery <= 0 {
		sampleEvery = 1
	}

	result := &Result{
		Frames:  make([]Frame, 0, steps/sampleEvery+2),
		Events:  make([]Event, 0),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	shots := make([]ScheduledShot, len(cfg.Shots))
	copy(shots, cfg.Shots)
	sort.SliceStable(shots, func(i, j int) bool { return shots[i].At < shots[j].At })

	start := s.time
	result.Frames = append(result.Frames, s.scene.Snapshot(s.time-start))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		var shot *Shot
		if len(shots) > 0 && i >= int(math.Round(shots[0].At/cfg.Dt)) {
			sh, err := s.resolveShot(shots[0])
			if err != nil {
				return result, err
			}
			shot = sh
			shots = shots[1:]
		}

		t := s.time - start
		events := s.Step(cfg.Dt, shot)
		for k := range events {
			events[k].Time -= start
		}
		result.Events = append(result.Events, events...)

		for _, m := range s.metrics {
			m.Observe(s.scene, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.scene, events, t)
		}

		result.StepsTaken++

		if cfg.ValidateState {
			if err := s.validateScene(i, t); err != nil {
				result.Errors = append(result.Errors, err)
				break
			}
		}

		if result.StepsTaken%sampleEvery == 0 || i == steps-1 {
			result.Frames = append(result.Frames, s.scene.Snapshot(s.time-start))
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Pocketed = s.scene.Sunk()

	return result, nil
}

func (s *Simulator) validateScene(step int, t float64) error {
	for _, b := range s.scene.Bodies {
		if err := b.Validate(); err != nil {
			return SimError{Step: step, Time: t, BodyID: b.ID, Wrapped: err}
		}
	}
	return nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("sample_every must be non-negative, got %d", cfg.SampleEvery)
	}
	return nil
}
