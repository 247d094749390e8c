package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/calculus/internal/dynamo"
	"github.com/san-kum/calculus/internal/sim"
)

var ErrNotFound = errors.New("run not found")

type Store struct {
	baseDir string
	logger  *slog.Logger
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, logger: slog.Default()}
}

// WithLogger returns a copy of s that logs to l.
func (s *Store) WithLogger(l *slog.Logger) *Store {
	c := *s
	c.logger = l
	return &c
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID         string             `json:"id"`
	Kind       string             `json:"kind"`
	Expression string             `json:"expression"`
	Params     map[string]float64 `json:"params"`
	Timestamp  time.Time          `json:"timestamp"`
	Steps      int                `json:"steps"`
	Columns    []string           `json:"columns"`
}

// Save writes a trajectory under a new run directory named <kind>_<id8> and
// returns the run ID.
func (s *Store) Save(kind, expression string, params map[string]float64, traj *sim.Result) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}

	runID := fmt.Sprintf("%s_%s", kind, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.Mkdir(runDir, 0755); err != nil {
		return "", err
	}

	dim := 0
	if len(traj.States) > 0 {
		dim = len(traj.States[0])
	}
	columns := append([]string{"t"}, StateColumns(dim)...)

	meta := RunMetadata{
		ID:         runID,
		Kind:       kind,
		Expression: expression,
		Params:     params,
		Timestamp:  time.Now(),
		Steps:      len(traj.Times) - 1,
		Columns:    columns,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, "states.csv"), columns, traj); err != nil {
		return "", err
	}

	s.logger.Info("run saved", "id", runID, "dir", runDir)
	return runID, nil
}

// StateColumns names the state components: x, v for the first two and
// x<i> beyond that.
func StateColumns(dim int) []string {
	if dim <= 2 {
		return []string{"x", "v"}[:dim]
	}
	cols := make([]string, dim)
	for i := range cols {
		cols[i] = fmt.Sprintf("x%d", i)
	}
	return cols
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

func writeStates(path string, header []string, traj *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range traj.States {
		row := []string{strconv.FormatFloat(traj.Times[i], 'g', -1, 64)}
		for _, val := range traj.States[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
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
			s.logger.Debug("skipping unreadable run", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID == "." || runID == ".." || filepath.Base(runID) != runID {
		return "", fmt.Errorf("%w: invalid run id %q", ErrNotFound, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStates reads the trajectory of a saved run.
func (s *Store) LoadStates(runID string) (*sim.Result, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(dir, "states.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	res := &sim.Result{}
	if len(records) < 2 {
		return res, nil
	}

	for line, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			if vals[j], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, fmt.Errorf("%s/states.csv line %d: %w", runID, line+2, err)
			}
		}
		res.Times = append(res.Times, vals[0])
		res.States = append(res.States, dynamo.State(vals[1:]))
	}
	return res, nil
}

func (s *Store) Delete(runID string) error {
	dir, err := s.runDir(runID)
	if err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(dir, "metadata.json")); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	s.logger.Info("run deleted", "id", runID)
	return nil
}

type ExportData struct {
	RunMetadata
	Times  []float64   `json:"times"`
	States [][]float64 `json:"states"`
}

// Export writes a run's metadata and trajectory as one JSON document.
func (s *Store) Export(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	traj, err := s.LoadStates(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		Times:       traj.Times,
		States:      make([][]float64, len(traj.States)),
	}
	for i, st := range traj.States {
		data.States[i] = st
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
