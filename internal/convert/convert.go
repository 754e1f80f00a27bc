// Package convert runs a whole layout conversion: it extracts ports, detects
// via clusters, builds the solver model in memory and writes it out.
package convert

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gds2fast/internal/fastercap"
	"gds2fast/internal/fasthenry"
	"gds2fast/internal/freq"
	"gds2fast/internal/layout"
	"gds2fast/internal/port"
	"gds2fast/internal/process"
	"gds2fast/internal/via"
)

// Output file suffixes appended to the input file stem.
const (
	CapSuffix = "_out_fastercap.qui"
	IndSuffix = "_out_fasthenry.inp"
)

// Analysis is what both converters learn about a layout before building a
// solver model. Warnings holds the non-fatal problems: skipped port layers
// and missing via connections.
type Analysis struct {
	Ports    []port.Port
	Clusters []via.Cluster
	Warnings []error
}

// Analyze extracts ports and via clusters from src.
func Analyze(src layout.Source, stack *process.Stack) *Analysis {
	a := &Analysis{}
	var errs []error
	a.Ports, errs = port.Extract(src, stack)
	a.Warnings = append(a.Warnings, errs...)
	a.Clusters, errs = via.Detect(src, stack)
	a.Warnings = append(a.Warnings, errs...)
	return a
}

// CapResult is a built capacitance model.
type CapResult struct {
	*Analysis
	Mesh *fastercap.Mesh
}

// FasterCap builds the capacitance model of src. Nothing is written.
func FasterCap(src layout.Source, stack *process.Stack) (*CapResult, error) {
	if len(src.Paths()) == 0 {
		return nil, freq.ErrNoConductor
	}
	a := Analyze(src, stack)
	mesh, err := fastercap.Build(src, stack, a.Ports, a.Clusters)
	if err != nil {
		return nil, fmt.Errorf("build panel mesh: %w", err)
	}
	return &CapResult{Analysis: a, Mesh: mesh}, nil
}

// IndResult is a built inductance model.
type IndResult struct {
	*Analysis
	Graph *fasthenry.Graph
}

// FastHenry builds the inductance model of src. Nothing is written.
func FastHenry(src layout.Source, stack *process.Stack) (*IndResult, error) {
	a := Analyze(src, stack)
	graph, err := fasthenry.Build(src, stack, a.Ports, a.Clusters)
	if err != nil {
		return nil, fmt.Errorf("build filament graph: %w", err)
	}
	return &IndResult{Analysis: a, Graph: graph}, nil
}

// OutputName returns the stem of input with suffix appended, in the working
// directory.
func OutputName(input, suffix string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + suffix
}

// WriteFile writes wt to path through a buffered writer. The file is flushed
// and closed on every path; close errors are joined into the result.
func WriteFile(path string, wt io.WriterTo) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close %s: %w", path, cerr))
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
