// Package storage persists completed runs: one directory per run holding
// metadata and the recorded particle frames.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/balloonsim/internal/sim"
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
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Particles int                `json:"particles"`
	Phase     string             `json:"phase"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and frames.csv for a finished run and returns
// the generated run ID. frames.csv columns: time, then x/y per particle.
func (s *Store) Save(preset string, dt, duration float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("balloon_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	particles := 0
	if len(result.Frames) > 0 {
		particles = len(result.Frames[0])
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    preset,
		Timestamp: time.Now(),
		Dt:        dt,
		Duration:  duration,
		Particles: particles,
		Phase:     result.FinalPhase.String(),
		Metrics:   result.Metrics,
	}

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

	header := []string{"time"}
	for i := 0; i < particles; i++ {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, frame := range result.Frames {
		row := make([]string, 0, 1+2*len(frame))
		row = append(row, strconv.FormatFloat(result.Times[i], 'f', 6, 64))
		for _, p := range frame {
			row = append(row,
				strconv.FormatFloat(p.X, 'f', 6, 64),
				strconv.FormatFloat(p.Y, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
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

// Trace is one particle's recorded motion.
type Trace struct {
	Times []float64
	Xs    []float64
	Ys    []float64
}

// LoadTrace extracts a single particle's series from frames.csv.
func (s *Store) LoadTrace(runID string, particle int) (*Trace, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("storage: run %s has no frames", runID)
	}

	xCol := 1 + 2*particle
	yCol := xCol + 1
	if particle < 0 || yCol >= len(records[0]) {
		return nil, fmt.Errorf("storage: run %s has no particle %d", runID, particle)
	}

	trace := &Trace{}
	for _, rec := range records[1:] {
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, err
		}
		x, err := strconv.ParseFloat(rec[xCol], 64)
		if err != nil {
			return nil, err
		}
		y, err := strconv.ParseFloat(rec[yCol], 64)
		if err != nil {
			return nil, err
		}
		trace.Times = append(trace.Times, t)
		trace.Xs = append(trace.Xs, x)
		trace.Ys = append(trace.Ys, y)
	}
	return trace, nil
}

// ExportJSON writes a run's metadata and frames as a single JSON document.
func (s *Store) ExportJSON(runID, outPath string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	particles := meta.Particles
	export := struct {
		RunMetadata
		Times  []float64   `json:"times"`
		Frames [][]float64 `json:"frames"`
	}{RunMetadata: *meta}

	if particles > 0 {
		trace0, err := s.LoadTrace(runID, 0)
		if err != nil {
			return err
		}
		export.Times = trace0.Times
		export.Frames = make([][]float64, len(trace0.Times))
		for p := 0; p < particles; p++ {
			tr, err := s.LoadTrace(runID, p)
			if err != nil {
				return err
			}
			for i := range tr.Times {
				export.Frames[i] = append(export.Frames[i], tr.Xs[i], tr.Ys[i])
			}
		}
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, data, 0644)
}
