package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Frames []ExportFrame `json:"frames"`
}

type ExportFrame struct {
	Tick    int          `json:"tick"`
	Photons [][3]float64 `json:"photons"`
}

func newExportData(meta RunMetadata, frames []Frame) ExportData {
	data := ExportData{Run: meta, Frames: make([]ExportFrame, len(frames))}
	for i, f := range frames {
		photons := make([][3]float64, len(f.Population))
		for j, p := range f.Population {
			photons[j] = [3]float64{p.X, p.Y, p.R}
		}
		data.Frames[i] = ExportFrame{Tick: f.Tick, Photons: photons}
	}
	return data
}

// WriteJSON encodes a run and its frames as indented JSON.
func WriteJSON(w io.Writer, meta RunMetadata, frames []Frame) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(meta, frames))
}

func ExportJSON(path string, meta RunMetadata, frames []Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, frames)
}
