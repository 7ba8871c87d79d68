package sfx

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

func drain(t *testing.T, s beep.Streamer) (n int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for {
		k, ok := s.Stream(buf)
		for i := 0; i < k; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		n += k
		if !ok {
			return n, peak
		}
		if n > 10*int(SampleRate) {
			t.Fatal("streamer did not terminate")
		}
	}
}

func TestVolume(t *testing.T) {
	tests := []struct {
		speed float64
		want  float64
	}{
		{0, MinVolume},
		{2, 0.5},
		{-2, 0.5},
		{LoudSpeed, 1},
		{100, 1},
	}
	for _, tt := range tests {
		if got := Volume(tt.speed); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Volume(%g) = %g, want %g", tt.speed, got, tt.want)
		}
	}
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, w := range []Wave{WaveSine, WaveTriangle, WaveSaw, WaveNoise} {
		n, peak := drain(t, NewTone(440, 50*time.Millisecond, w, rate))
		if n != rate.N(50*time.Millisecond) {
			t.Errorf("wave %d: %d samples, want %d", w, n, rate.N(50*time.Millisecond))
		}
		if peak > 1 || peak == 0 {
			t.Errorf("wave %d: peak %f out of range", w, peak)
		}
	}
}

func TestDecayFades(t *testing.T) {
	rate := beep.SampleRate(8000)
	s := NewDecay(NewTone(0, time.Second, WaveSaw, rate), 0, 10*time.Millisecond, rate)
	buf := make([][2]float64, rate.N(time.Second))
	n, _ := s.Stream(buf)
	// a zero-frequency saw is a constant -1 before shaping
	if buf[0][0] != -1 {
		t.Errorf("first sample %f, want -1", buf[0][0])
	}
	if math.Abs(buf[n-1][0]) > 1e-6 {
		t.Errorf("tail not faded: %f", buf[n-1][0])
	}
}

func TestCueLoudness(t *testing.T) {
	soft, _ := drain(t, Cue(sim.Event{Kind: sim.EventBall, Speed: 0.1}, SampleRate))
	if soft == 0 {
		t.Fatal("empty ball cue")
	}
	_, softPeak := drain(t, Cue(sim.Event{Kind: sim.EventBall, Speed: 0.1}, SampleRate))
	_, hardPeak := drain(t, Cue(sim.Event{Kind: sim.EventBall, Speed: 4}, SampleRate))
	if hardPeak <= softPeak {
		t.Errorf("hard contact (%f) should be louder than soft (%f)", hardPeak, softPeak)
	}

	for _, kind := range []sim.EventKind{sim.EventPocket, sim.EventShot} {
		if n, _ := drain(t, Cue(sim.Event{Kind: kind}, SampleRate)); n == 0 {
			t.Errorf("%s cue is empty", kind)
		}
	}
}

func TestRenderLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	events := []sim.Event{
		{Kind: sim.EventShot, Time: 0.1},
		{Kind: sim.EventBall, Time: 0.2, Speed: 3},
		{Kind: sim.EventPocket, Time: 5},
	}
	n, peak := drain(t, Render(events, 0.5, rate))
	if n != rate.N(500*time.Millisecond) {
		t.Errorf("rendered %d samples, want %d", n, rate.N(500*time.Millisecond))
	}
	if peak == 0 {
		t.Error("render is silent")
	}

	n, peak = drain(t, Render(nil, 0.25, rate))
	if n != rate.N(250*time.Millisecond) || peak != 0 {
		t.Errorf("empty timeline: %d samples, peak %f", n, peak)
	}
}

func TestRenderWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	events := []sim.Event{{Kind: sim.EventShot, Time: 0}}
	if err := RenderWAV(f, events, 0.1); err != nil {
		t.Fatalf("RenderWAV: %v", err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data[:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Errorf("missing wav header: %q", data[:12])
	}
	samples := SampleRate.N(100 * time.Millisecond)
	if want := 44 + samples*4; len(data) != want {
		t.Errorf("file size %d, want %d", len(data), want)
	}

	if err := RenderWAV(nopSeeker{}, events, 0); err == nil {
		t.Error("expected error for zero duration")
	}
}

type nopSeeker struct{}

func (nopSeeker) Write(p []byte) (int, error)    { return len(p), nil }
func (nopSeeker) Seek(int64, int) (int64, error) { return 0, nil }
