package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/eigensim/internal/grid"
	"github.com/san-kum/eigensim/internal/solver"
)

const (
	metadataFile    = "metadata.json"
	eigenvaluesFile = "eigenvalues.csv"
	statesFile      = "states.csv"
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

// Dir returns the directory of a run.
func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Potential    string             `json:"potential"`
	Params       map[string]float64 `json:"params,omitempty"`
	Axes         []grid.Axis        `json:"axes"`
	K            int                `json:"k"`
	Target       float64            `json:"target"`
	Method       string             `json:"method"`
	Seed         int64              `json:"seed"`
	Timestamp    time.Time          `json:"timestamp"`
	Applications int                `json:"applications"`
	Restarts     int                `json:"restarts"`
	ElapsedMS    float64            `json:"elapsed_ms"`
	HasStates    bool               `json:"has_states"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Grid rebuilds the grid the run was solved on.
func (m *RunMetadata) Grid() (*grid.Grid, error) {
	return grid.New(m.Axes...)
}

// Save writes a run directory for sp. ID, timestamp and solver counters
// in meta are filled in from sp.
func (s *Store) Save(meta RunMetadata, sp *solver.Spectrum) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	runID, runDir, err := s.newRunDir(meta.Potential)
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.K = sp.Len()
	meta.Method = sp.Method
	meta.Applications = sp.Applications
	meta.Restarts = sp.Restarts
	meta.ElapsedMS = float64(sp.Elapsed.Microseconds()) / 1000
	meta.HasStates = sp.Vectors != nil
	meta.Metrics = sp.Metrics
	if len(meta.Axes) == 0 && sp.Grid != nil {
		meta.Axes = sp.Grid.Axes()
	}

	if err := writeRun(runDir, meta, sp); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("save run %s: %w", runID, err)
	}
	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, sp *solver.Spectrum) error {
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return err
	}
	if err := writeEigenvalues(filepath.Join(runDir, eigenvaluesFile), sp.Values); err != nil {
		return err
	}
	if meta.HasStates {
		return writeStates(filepath.Join(runDir, statesFile), sp)
	}
	return nil
}

func (s *Store) newRunDir(potential string) (string, string, error) {
	base := fmt.Sprintf("%s_%d", potential, time.Now().Unix())
	runID := base
	for i := 2; ; i++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s-%d", base, i)
	}
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

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeEigenvalues(path string, values []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"index", "energy"}); err != nil {
		return err
	}
	for i, v := range values {
		if err := w.Write([]string{strconv.Itoa(i), formatFloat(v)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeStates(path string, sp *solver.Spectrum) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	g := sp.Grid
	n, k := sp.Vectors.Dims()
	w := csv.NewWriter(f)

	header := make([]string, 0, g.Dims()+k)
	for d := 0; d < g.Dims(); d++ {
		header = append(header, string("xyz"[d]))
	}
	for j := 0; j < k; j++ {
		header = append(header, fmt.Sprintf("psi%d", j))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	r := make([]float64, g.Dims())
	row := make([]string, len(header))
	for i := 0; i < n; i++ {
		for d, x := range g.Point(i, r) {
			row[d] = formatFloat(x)
		}
		for j := 0; j < k; j++ {
			row[g.Dims()+j] = formatFloat(sp.Vectors.At(i, j))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the metadata of every run, newest first.
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
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func (s *Store) LoadEigenvalues(runID string) ([]float64, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, eigenvaluesFile))
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []float64{}, nil
	}
	values := make([]float64, 0, len(records)-1)
	for line, record := range records[1:] {
		if len(record) < 2 {
			return nil, fmt.Errorf("%s line %d: expected 2 fields", eigenvaluesFile, line+2)
		}
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", eigenvaluesFile, line+2, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// States holds stored eigenvectors. Points[i] are the coordinates of flat
// index i and Psi[j] is state j in flat order.
type States struct {
	Header []string
	Points [][]float64
	Psi    [][]float64
}

func (s *Store) LoadStates(runID string) (*States, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	if !meta.HasStates {
		return nil, fmt.Errorf("run %s: no states stored (solve with --vectors)", runID)
	}
	records, err := readCSV(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("run %s: empty %s", runID, statesFile)
	}

	dims := len(meta.Axes)
	header := records[0]
	k := len(header) - dims
	out := &States{
		Header: header,
		Points: make([][]float64, 0, len(records)-1),
		Psi:    make([][]float64, k),
	}
	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", statesFile, err)
			}
			vals[j] = v
		}
		out.Points = append(out.Points, vals[:dims])
		for j := 0; j < k; j++ {
			out.Psi[j] = append(out.Psi[j], vals[dims+j])
		}
	}
	return out, nil
}

// ExportData is the JSON form of a stored run.
type ExportData struct {
	Meta   RunMetadata `json:"meta"`
	Values []float64   `json:"values"`
	States [][]float64 `json:"states,omitempty"`
}

// ExportJSON writes a stored run as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	values, err := s.LoadEigenvalues(runID)
	if err != nil {
		return err
	}
	data := ExportData{Meta: *meta, Values: values}
	if meta.HasStates {
		st, err := s.LoadStates(runID)
		if err != nil {
			return err
		}
		data.States = st.Psi
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
