// Package storage persists headless simulation runs: one directory per run
// holding metadata.json and a frames.csv time series.
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

	"github.com/colinbarry/verlet-cloth/internal/cloth"
	"github.com/colinbarry/verlet-cloth/internal/metrics"
)

// Frame is one recorded simulation step.
type Frame struct {
	Time        float64
	Points      int
	Constraints int
	Energy      float64
	MaxStretch  float64
}

// Recorder captures a Frame per tick. It implements engine.Observer.
type Recorder struct {
	Frames []Frame
}

func (r *Recorder) OnStep(topo *cloth.Topology, t float64) {
	r.Frames = append(r.Frames, Frame{
		Time:        t,
		Points:      topo.NumPoints(),
		Constraints: topo.NumConstraints(),
		Energy:      metrics.StretchEnergyOf(topo),
		MaxStretch:  metrics.MaxStretchOf(topo),
	})
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Columns    int                `json:"columns"`
	Rows       int                `json:"rows"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Iterations int                `json:"iterations"`
	CutsFired  int                `json:"cuts_fired"`
	Metrics    map[string]float64 `json:"metrics"`
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

var frameHeader = []string{"time", "points", "constraints", "energy", "max_stretch"}

// Save writes one run directory and returns its id.
func (s *Store) Save(meta RunMetadata, frames []Frame) (string, error) {
	runID := fmt.Sprintf("cloth%dx%d_%d", meta.Columns, meta.Rows, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(frameHeader); err != nil {
		return "", err
	}
	for _, f := range frames {
		row := []string{
			strconv.FormatFloat(f.Time, 'f', 6, 64),
			strconv.Itoa(f.Points),
			strconv.Itoa(f.Constraints),
			strconv.FormatFloat(f.Energy, 'f', 6, 64),
			strconv.FormatFloat(f.MaxStretch, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns metadata for every stored run, newest last.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
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
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads a run's time series back.
func (s *Store) LoadFrames(runID string) ([]Frame, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("storage: empty frames file for run %s", runID)
	}

	frames := make([]Frame, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(frameHeader) {
			return nil, fmt.Errorf("storage: malformed frame row in run %s", runID)
		}
		t, _ := strconv.ParseFloat(rec[0], 64)
		pts, _ := strconv.Atoi(rec[1])
		cons, _ := strconv.Atoi(rec[2])
		energy, _ := strconv.ParseFloat(rec[3], 64)
		stretch, _ := strconv.ParseFloat(rec[4], 64)
		frames = append(frames, Frame{Time: t, Points: pts, Constraints: cons, Energy: energy, MaxStretch: stretch})
	}
	return frames, nil
}
