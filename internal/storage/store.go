package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunInfo describes how a run was produced.
type RunInfo struct {
	Name     string
	Preset   string
	Weapon   string
	Dt       float64
	Duration float64
	Seed     int64
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Weapon    string             `json:"weapon,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Bodies    int                `json:"bodies"`
	Frames    int                `json:"frames"`
	Events    map[string]int     `json:"events"`
	Pocketed  []int              `json:"pocketed"`
	Metrics   map[string]float64 `json:"metrics"`
}

var csvHeader = []string{"time", "id", "x", "y", "z", "vx", "vy", "vz"}

func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	now := time.Now()
	runID := info.Name
	if runID == "" {
		preset := info.Preset
		if preset == "" {
			preset = "custom"
		}
		runID = fmt.Sprintf("%s_%d", preset, now.UnixNano())
	}
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	bodies := 0
	if len(result.Frames) > 0 {
		bodies = len(result.Frames[0].Bodies)
	}
	events := map[string]int{}
	for _, e := range result.Events {
		events[e.Kind.String()]++
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    info.Preset,
		Weapon:    info.Weapon,
		Timestamp: now,
		Seed:      info.Seed,
		Dt:        info.Dt,
		Duration:  info.Duration,
		Steps:     result.StepsTaken,
		Bodies:    bodies,
		Frames:    len(result.Frames),
		Events:    events,
		Pocketed:  result.Pocketed,
		Metrics:   result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "events.json"), result.Events); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, "states.csv"), result.Frames); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFrames(path string, frames []sim.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, fr := range frames {
		t := format(fr.Time)
		for _, b := range fr.Bodies {
			row := []string{
				t, strconv.Itoa(b.ID),
				format(b.Position.X()), format(b.Position.Y()), format(b.Position.Z()),
				format(b.Velocity.X()), format(b.Velocity.Y()), format(b.Velocity.Z()),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadEvents(runID string) ([]sim.Event, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "events.json"))
	if err != nil {
		return nil, err
	}
	var events []sim.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return events, nil
}

// LoadFrames rebuilds frames from states.csv. Consecutive rows sharing a
// time value belong to the same frame.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(csvHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	frames := make([]sim.Frame, 0)
	lastTime := ""
	for i := 1; i < len(records); i++ {
		rec := records[i]

		var vals [7]float64
		for j := range vals {
			src := rec[0]
			if j > 0 {
				src = rec[j+1]
			}
			v, err := strconv.ParseFloat(src, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s line %d: %w", runID, i+1, err)
			}
			vals[j] = v
		}
		id, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("run %s line %d: %w", runID, i+1, err)
		}

		if rec[0] != lastTime || len(frames) == 0 {
			frames = append(frames, sim.Frame{Time: vals[0]})
			lastTime = rec[0]
		}
		cur := &frames[len(frames)-1]
		cur.Bodies = append(cur.Bodies, sim.BodyState{
			ID:       id,
			Position: mgl64.Vec3{vals[1], vals[2], vals[3]},
			Velocity: mgl64.Vec3{vals[4], vals[5], vals[6]},
		})
	}

	return frames, nil
}
