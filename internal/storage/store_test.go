package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Frames: []sim.Frame{
			{Time: 0, Bodies: []sim.BodyState{
				{ID: 0, Position: mgl64.Vec3{-0.5, 1.01, 0}},
				{ID: 1, Position: mgl64.Vec3{0.3, 1.01, 0}},
			}},
			{Time: 0.02, Bodies: []sim.BodyState{
				{ID: 0, Position: mgl64.Vec3{-0.4, 1.01, 0}, Velocity: mgl64.Vec3{5, 0, 0}},
				{ID: 1, Position: mgl64.Vec3{0.3, 1.01, 0}},
			}},
		},
		Events: []sim.Event{
			{Kind: sim.EventShot, BodyID: 0, OtherID: -1, Speed: 5, Time: 0.01, Point: mgl64.Vec3{-0.53, 1.01, 0}},
			{Kind: sim.EventBall, BodyID: 0, OtherID: 1, Speed: 4.8, Time: 0.15},
		},
		Metrics:    map[string]float64{"pocketed": 1},
		StepsTaken: 2,
		Pocketed:   []int{1},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	info := RunInfo{Preset: "break", Weapon: "rifle", Dt: 0.01, Duration: 1.0, Seed: 42}
	runID, err := st.Save(info, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Preset != "break" || meta.Seed != 42 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Bodies != 2 || meta.Frames != 2 {
		t.Errorf("expected 2 bodies and 2 frames, got %d/%d", meta.Bodies, meta.Frames)
	}
	if meta.Events["shot"] != 1 || meta.Events["ball"] != 1 {
		t.Errorf("unexpected event counts %v", meta.Events)
	}
	if meta.Metrics["pocketed"] != 1 {
		t.Errorf("expected pocketed 1, got %f", meta.Metrics["pocketed"])
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if len(frames[1].Bodies) != 2 {
		t.Fatalf("expected 2 bodies per frame, got %d", len(frames[1].Bodies))
	}
	if got := frames[1].Bodies[0].Velocity.X(); math.Abs(got-5) > 1e-6 {
		t.Errorf("expected vx 5, got %f", got)
	}
	if math.Abs(frames[1].Time-0.02) > 1e-9 {
		t.Errorf("expected t=0.02, got %f", frames[1].Time)
	}

	events, err := st.LoadEvents(runID)
	if err != nil {
		t.Fatalf("load events failed: %v", err)
	}
	if len(events) != 2 || events[0].Kind != sim.EventShot || events[1].OtherID != 1 {
		t.Errorf("events not preserved: %+v", events)
	}
}

func TestStoreNamedRun(t *testing.T) {
	st := New(t.TempDir())
	id, err := st.Save(RunInfo{Name: "opening"}, sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	if id != "opening" {
		t.Errorf("expected run id opening, got %s", id)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for _, name := range []string{"a", "b"} {
		if _, err := st.Save(RunInfo{Name: name, Preset: "drop"}, sampleResult()); err != nil {
			t.Fatal(err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v %v", runs, err)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, RunInfo{Preset: "break", Dt: 0.01, Duration: 1}, sampleResult()); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Steps != 2 || len(data.Frames) != 2 || len(data.Events) != 2 {
		t.Errorf("unexpected export %+v", data)
	}
	if data.Events[0].Kind != sim.EventShot {
		t.Errorf("event kind lost: %v", data.Events[0].Kind)
	}
}

func TestExportJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSON(path, RunInfo{Preset: "single"}, sampleResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}
}
