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

	"github.com/san-kum/photonwalk/internal/config"
	"github.com/san-kum/photonwalk/internal/sim"
	"github.com/san-kum/photonwalk/internal/walk"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
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

type RunMetadata struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         int64              `json:"seed"`
	Params       config.Parameters  `json:"params"`
	DensityFloor float64            `json:"density_floor"`
	RadiusSteps  float64            `json:"radius_steps"`
	Reason       string             `json:"reason"`
	Ticks        int                `json:"ticks"`
	Furthest     float64            `json:"furthest"`
	Escaped      int                `json:"escaped"`
	Stride       int                `json:"stride"`
	Metrics      map[string]float64 `json:"metrics"`
}

// NewMetadata fills run metadata from a finished result.
func NewMetadata(name string, cfg *config.Config, radiusSteps float64, res *sim.Result) RunMetadata {
	return RunMetadata{
		Name:         name,
		Seed:         cfg.Seed,
		Params:       cfg.Params,
		DensityFloor: cfg.DensityFloor,
		RadiusSteps:  radiusSteps,
		Reason:       res.Reason.String(),
		Ticks:        res.Ticks,
		Furthest:     res.Furthest,
		Escaped:      res.Escaped,
		Stride:       cfg.RecordStride,
		Metrics:      res.Metrics,
	}
}

// Save writes metadata.json and trajectory.csv into a new run directory.
func (s *Store) Save(meta RunMetadata, frames []Frame) (string, error) {
	if meta.Name == "" {
		meta.Name = "walk"
	}
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Name, now.UnixNano())
	meta.Timestamp = now
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"tick", "photon", "x", "y", "r"}); err != nil {
		return "", err
	}
	for _, f := range frames {
		tick := strconv.Itoa(f.Tick)
		for i, p := range f.Population {
			row := []string{
				tick,
				strconv.Itoa(i),
				strconv.FormatFloat(p.X, 'g', -1, 64),
				strconv.FormatFloat(p.Y, 'g', -1, 64),
				strconv.FormatFloat(p.R, 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns stored runs, oldest first.
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory reads the recorded frames of a run in tick order.
func (s *Store) LoadTrajectory(runID string) ([]Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 5

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Frame{}, nil
	}

	frames := make([]Frame, 0)
	for line, record := range records[1:] {
		vals, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", trajectoryFile, line+2, err)
		}
		tick, photon := int(vals[0]), int(vals[1])

		if len(frames) == 0 || frames[len(frames)-1].Tick != tick {
			frames = append(frames, Frame{Tick: tick})
		}
		f := &frames[len(frames)-1]
		if photon != len(f.Population) {
			return nil, fmt.Errorf("%s line %d: photon %d out of order", trajectoryFile, line+2, photon)
		}
		f.Population = append(f.Population, walk.PhotonState{X: vals[2], Y: vals[3], R: vals[4]})
	}

	return frames, nil
}

func parseRecord(record []string) ([5]float64, error) {
	var vals [5]float64
	for i, field := range record {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return vals, err
		}
		vals[i] = v
	}
	return vals, nil
}
