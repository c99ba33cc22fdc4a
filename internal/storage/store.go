// Package storage persists sampled trajectories to disk, one run
// directory per run holding a metadata.json and a states.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/odeint/internal/sampler"
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

// RunMetadata records the system/stepper/tuning that produced a run,
// alongside any summary metrics a caller wants attached (e.g. the
// harmonic oscillator's energy drift).
type RunMetadata struct {
	ID        string             `json:"id"`
	System    string             `json:"system"`
	Stepper   string             `json:"stepper"`
	Mode      string             `json:"mode"`
	Timestamp time.Time          `json:"timestamp"`
	Tolerance float64            `json:"tolerance"`
	StepSize  float64            `json:"step_size"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and states.csv for traj under a fresh run
// directory and returns its run ID.
func (s *Store) Save(system, stepper, mode string, tolerance, stepSize float64, metrics map[string]float64, traj *sampler.Trajectory) (string, error) {
	runID := fmt.Sprintf("%s_%d", system, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		System:    system,
		Stepper:   stepper,
		Mode:      mode,
		Timestamp: time.Now(),
		Tolerance: tolerance,
		StepSize:  stepSize,
		Metrics:   metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "states.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if traj.Len() == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := range traj.XVals[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := 0; i < traj.Len(); i++ {
		row := []string{strconv.FormatFloat(traj.TVals[i], 'f', 6, 64)}
		for _, val := range traj.XVals[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory reads back states.csv into a Trajectory.
func (s *Store) LoadTrajectory(runID string) (*sampler.Trajectory, error) {
	csvPath := filepath.Join(s.baseDir, runID, "states.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	traj := &sampler.Trajectory{}
	if len(records) < 2 {
		return traj, nil
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		state := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			state = append(state, val)
		}
		traj.TVals = append(traj.TVals, t)
		traj.XVals = append(traj.XVals, state)
	}

	return traj, nil
}
