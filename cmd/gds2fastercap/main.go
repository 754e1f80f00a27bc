// Command gds2fastercap converts a flattened layout into a FasterCap panel
// file for capacitance extraction.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gds2fast/internal/convert"
	"gds2fast/internal/fastercap"
	"gds2fast/internal/layout"
	"gds2fast/internal/logging"
	"gds2fast/internal/preview"
	"gds2fast/internal/process"
	"gds2fast/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(fastercap.Tool, flag.ContinueOnError)
	fs.SetOutput(stderr)
	stackName := fs.String("stack", "sky130", "Process stack: built-in name or YAML file")
	output := fs.String("o", "", "Output file (default <stem>"+convert.CapSuffix+")")
	previewPath := fs.String("preview", "", "Also render the layout to this PNG file")
	previewSize := fs.Int("preview-size", 1024, "Preview image size in pixels")
	reportPath := fs.String("report", "", "Write a JSON run report to this file")
	verbose := fs.Bool("v", false, "Debug logging")
	showVersion := fs.Bool("version", false, "Print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stdout, "Usage: %s [flags] <layout.yaml>\n\n", fastercap.Tool)
		fmt.Fprintf(stdout, "Writes <stem>%s in the current directory.\n\n", convert.CapSuffix)
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		fs.SetOutput(stderr)
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.String(fastercap.Tool))
		return 0
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 0
	}
	input := fs.Arg(0)

	// Warnings reach the user through the log; -v adds the per-stage detail.
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	stack, err := process.Lookup(*stackName)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load stack: %v\n", err)
		return 1
	}

	src, err := layout.Load(input)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load layout: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Loaded %s: %d paths, %d polygons, %d labels\n",
		src.CellName(), len(src.Paths()), len(src.AllPolygons()), len(src.Labels()))

	res, err := convert.FasterCap(src, stack)
	if err != nil {
		fmt.Fprintf(stderr, "Conversion failed: %v\n", err)
		return 1
	}
	if n := len(res.Warnings); n > 0 {
		fmt.Fprintf(stdout, "%d warnings logged\n", n)
	}
	fmt.Fprintf(stdout, "Ports: %d, via clusters: %d\n", len(res.Ports), len(res.Clusters))

	out := *output
	if out == "" {
		out = convert.OutputName(input, convert.CapSuffix)
	}
	if err := convert.WriteFile(out, res.Mesh); err != nil {
		fmt.Fprintf(stderr, "Failed to write output: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Wrote %s\n", out)

	if *previewPath != "" {
		img, err := preview.Render(src, stack, *previewSize)
		if err == nil {
			err = preview.WritePNG(*previewPath, img)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Failed to write preview: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Wrote %s\n", *previewPath)
	}

	if *reportPath != "" {
		r := convert.NewReport(fastercap.Tool, src.CellName(), stack, res.Analysis)
		r.SetPaths(*reportPath, input, out)
		if err := r.Save(*reportPath); err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
			return 1
		}
	}
	return 0
}
