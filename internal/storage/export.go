package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

type ExportData struct {
	Preset   string             `json:"preset"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Frames   []sim.Frame        `json:"frames"`
	Events   []sim.Event        `json:"events"`
	Pocketed []int              `json:"pocketed"`
	Metrics  map[string]float64 `json:"metrics"`
}

func newExport(info RunInfo, result *sim.Result) ExportData {
	return ExportData{
		Preset:   info.Preset,
		Dt:       info.Dt,
		Duration: info.Duration,
		Steps:    result.StepsTaken,
		Frames:   result.Frames,
		Events:   result.Events,
		Pocketed: result.Pocketed,
		Metrics:  result.Metrics,
	}
}

func WriteJSON(w io.Writer, info RunInfo, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExport(info, result))
}

func ExportJSON(path string, info RunInfo, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, info, result)
}

func ExportJSONStdout(info RunInfo, result *sim.Result) error {
	return WriteJSON(os.Stdout, info, result)
}
