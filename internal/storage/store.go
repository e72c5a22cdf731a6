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

	"github.com/san-kum/odeint/internal/config"
	"github.com/san-kum/odeint/internal/dynamo"
	"github.com/san-kum/odeint/internal/experiment"
	"github.com/san-kum/odeint/internal/export"
)

const (
	metaFile   = "metadata.json"
	configFile = "config.yaml"
	statesFile = "trajectory.csv"
)

// Store keeps finished runs on disk, one directory per run ID.
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
	ID          string             `json:"id"`
	System      string             `json:"system"`
	Integrator  string             `json:"integrator"`
	Timestamp   time.Time          `json:"timestamp"`
	T0          float64            `json:"t0"`
	TEnd        float64            `json:"t_end"`
	Samples     int                `json:"samples"`
	Evaluations int                `json:"evaluations"`
	Rejected    int                `json:"rejected"`
	Elapsed     time.Duration      `json:"elapsed"`
	Metrics     map[string]float64 `json:"metrics"`
	Error       string             `json:"error,omitempty"`
}

// Save writes res under its ID and returns that ID.
func (s *Store) Save(res *experiment.Result) (string, error) {
	if res.ID == "" {
		return "", fmt.Errorf("result has no id")
	}
	runDir := filepath.Join(s.baseDir, res.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	traj := res.Trajectory
	t0, _ := traj.At(0)
	tEnd, _ := traj.Last()
	meta := RunMetadata{
		ID:          res.ID,
		System:      res.Config.System,
		Integrator:  res.Integrator,
		Timestamp:   time.Now(),
		T0:          t0,
		TEnd:        tEnd,
		Samples:     traj.Len(),
		Evaluations: traj.Stats.Evaluations,
		Rejected:    traj.Stats.Rejected,
		Elapsed:     res.Elapsed,
		Metrics:     res.Metrics,
	}
	if res.Err != nil {
		meta.Error = res.Err.Error()
	}

	if err := config.Save(filepath.Join(runDir, configFile), res.Config); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, metaFile))
	if err != nil {
		return "", err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, statesFile))
	if err != nil {
		return "", err
	}
	if err := export.CSV(csvFile, traj); err != nil {
		csvFile.Close()
		return "", err
	}
	return res.ID, csvFile.Close()
}

// List returns every readable run, oldest first.
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metaFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}

// LoadTrajectory reads back the samples of a run. Solver statistics other
// than the sample count are not stored with the samples.
func (s *Store) LoadTrajectory(runID string) (*dynamo.Trajectory, error) {
	path := filepath.Join(s.baseDir, runID, statesFile)
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: no samples", path)
	}

	var traj *dynamo.Trajectory
	for i, record := range records[1:] {
		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", path, i+2, err)
			}
			row[j] = v
		}
		if traj == nil {
			traj = dynamo.NewTrajectory(row[0], dynamo.State(row[1:]))
			continue
		}
		if err := traj.Append(row[0], dynamo.State(row[1:])); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+2, err)
		}
	}
	return traj, nil
}
