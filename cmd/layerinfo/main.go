// Command layerinfo prints a process stack and can export it as a YAML
// template for a custom stack.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"gds2fast/internal/process"
)

func main() {
	stackName := flag.String("stack", "sky130", "Process stack: built-in name or YAML file")
	save := flag.String("save", "", "Write the stack definition to this YAML file")
	list := flag.Bool("list", false, "List built-in stacks")
	flag.Parse()

	if *list {
		fmt.Println(strings.Join(process.List(), "\n"))
		return
	}

	stack, err := process.Lookup(*stackName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load stack: %v\n", err)
		os.Exit(1)
	}
	def := stack.Definition()

	fmt.Printf("Stack: %s\n", def.Name)
	fmt.Printf("Purposes: pin=%d drawing=%d via=%d label=%d\n",
		def.Purposes.Pin, def.Purposes.Drawing, def.Purposes.Via, def.Purposes.Label)
	fmt.Printf("Dielectric: %s er=%.2f top=%.4f um\n",
		def.Dielectric.Name, def.Dielectric.Permittivity, def.Dielectric.Top)
	fmt.Printf("Substrate: %.0f Ohm/sq, %.2f um\n\n",
		def.Substrate.SheetResistivity, def.Substrate.Thickness)

	fmt.Printf("%-6s %-10s %-8s %9s %9s %9s %12s\n",
		"Layer", "Role", "Material", "Bottom", "Top", "Thick", "Resistivity")
	fmt.Println(strings.Repeat("-", 69))
	for _, n := range stack.ConductorLayers() {
		printLayer(stack.Conductor(n))
		printLayer(stack.Via(n))
	}

	if *save != "" {
		if err := stack.SaveToFile(*save); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save stack: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote %s\n", *save)
	}
}

func printLayer(l process.LayerSpec, ok bool) {
	if !ok {
		return
	}
	fmt.Printf("%-6d %-10s %-8s %9.4f %9.4f %9.4f %12.4g\n",
		l.Layer, l.Role, l.Material, l.Bottom, l.Top, l.Thickness(), l.Resistivity)
}
