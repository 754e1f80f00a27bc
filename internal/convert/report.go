package convert

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"gds2fast/internal/freq"
	"gds2fast/internal/port"
	"gds2fast/internal/process"
	"gds2fast/internal/version"
)

// ReportVersion is the current report file format.
const ReportVersion = 1

// Report is the JSON run summary written next to a solver deck with -report.
type Report struct {
	Version   int       `json:"version"`
	Tool      string    `json:"tool"`
	Generator string    `json:"generator"`
	Created   time.Time `json:"created"`

	// Paths relative to the report file
	InputPath  string `json:"input"`
	OutputPath string `json:"output,omitempty"`

	Cell     string          `json:"cell"`
	Stack    string          `json:"stack"`
	Ports    []port.Port     `json:"ports"`
	Clusters []ClusterReport `json:"clusters,omitempty"`
	Budget   *freq.Budget    `json:"budget,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
}

// ClusterReport summarises one via cluster.
type ClusterReport struct {
	Name       string  `json:"name"`
	Layer      int     `json:"lower_layer"`
	Members    int     `json:"members"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Resistance float64 `json:"resistance"`
}

// NewReport creates a report for a finished analysis of cell.
func NewReport(tool, cell string, stack *process.Stack, a *Analysis) *Report {
	r := &Report{
		Version:   ReportVersion,
		Tool:      tool,
		Generator: version.String(tool),
		Created:   time.Now().UTC(),
		Cell:      cell,
		Stack:     stack.Name(),
		Ports:     a.Ports,
	}
	for _, c := range a.Clusters {
		r.Clusters = append(r.Clusters, ClusterReport{
			Name:       c.Name(),
			Layer:      c.LowerLayer,
			Members:    len(c.Members),
			X:          c.Centroid.X,
			Y:          c.Centroid.Y,
			Resistance: c.Resistance,
		})
	}
	for _, w := range a.Warnings {
		r.Warnings = append(r.Warnings, w.Error())
	}
	return r
}

// SetPaths records the input and output files relative to the report path.
func (r *Report) SetPaths(reportPath, input, output string) {
	r.InputPath = relative(reportPath, input)
	if output != "" {
		r.OutputPath = relative(reportPath, output)
	}
}

func relative(reportPath, p string) string {
	rel, err := filepath.Rel(filepath.Dir(reportPath), p)
	if err != nil {
		return p
	}
	return rel
}

// Save writes the report to path.
func (r *Report) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadReport reads a report written by Save.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
