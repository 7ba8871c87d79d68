// Package sfx turns simulation events into sound: a click per ball contact,
// a thud per pocket and a crack per shot.
package sfx

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

const (
	SampleRate = beep.SampleRate(44100)

	// Contact speed that plays at full volume.
	LoudSpeed = 4.0
	// Quietest audible cue.
	MinVolume = 0.05

	ClickDuration = 40 * time.Millisecond
	ThudDuration  = 250 * time.Millisecond
	CrackDuration = 150 * time.Millisecond
)

// Volume maps an impact speed to [MinVolume, 1].
func Volume(speed float64) float64 {
	v := math.Abs(speed) / LoudSpeed
	return math.Max(MinVolume, math.Min(1, v))
}

// Cue builds the streamer for a single event.
func Cue(e sim.Event, rate beep.SampleRate) beep.Streamer {
	switch e.Kind {
	case sim.EventBall:
		click := NewDecay(NewTone(2400, ClickDuration, WaveTriangle, rate), time.Millisecond, 6*time.Millisecond, rate)
		return gain(click, Volume(e.Speed))
	case sim.EventPocket:
		body := NewDecay(NewTone(90, ThudDuration, WaveSine, rate), 5*time.Millisecond, 80*time.Millisecond, rate)
		rattle := NewDecay(NewTone(1, ThudDuration/2, WaveNoise, rate), time.Millisecond, 20*time.Millisecond, rate)
		return gain(beep.Mix(gain(body, 0.8), gain(rattle, 0.2)), 0.9)
	case sim.EventShot:
		burst := NewDecay(NewTone(1, CrackDuration, WaveNoise, rate), 0, 25*time.Millisecond, rate)
		low := NewDecay(NewTone(70, CrackDuration, WaveSaw, rate), 2*time.Millisecond, 50*time.Millisecond, rate)
		return beep.Mix(gain(burst, 0.7), gain(low, 0.3))
	}
	return beep.Silence(0)
}

// Render lays every event's cue on a timeline of the given length.
func Render(events []sim.Event, duration float64, rate beep.SampleRate) beep.Streamer {
	sorted := append([]sim.Event(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })

	streams := []beep.Streamer{beep.Silence(-1)}
	for _, e := range sorted {
		if e.Time < 0 || e.Time >= duration {
			continue
		}
		offset := rate.N(time.Duration(e.Time * float64(time.Second)))
		streams = append(streams, beep.Seq(beep.Silence(offset), Cue(e, rate)))
	}

	total := rate.N(time.Duration(duration * float64(time.Second)))
	return beep.Take(total, beep.Mix(streams...))
}

// RenderWAV writes the event timeline as 16-bit stereo WAV.
func RenderWAV(w io.WriteSeeker, events []sim.Event, duration float64) error {
	if duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", duration)
	}
	format := beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(w, Render(events, duration, SampleRate), format); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return nil
}

// Play blocks until the timeline has played on the default audio device.
func Play(events []sim.Event, duration float64) error {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	defer speaker.Close()

	done := make(chan struct{})
	speaker.Play(beep.Seq(Render(events, duration, SampleRate), beep.Callback(func() {
		close(done)
	})))
	<-done
	return nil
}
