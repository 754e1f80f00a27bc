package process

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownStack is returned by Lookup for names that are neither
// registered nor readable stack files.
var ErrUnknownStack = errors.New("unknown process stack")

// Registry of built-in stack definitions, filled at init and read-only after.
var registry = make(map[string]func() Definition)

func register(name string, def func() Definition) {
	registry[name] = def
}

// Get builds a registered stack by name.
func Get(name string) (*Stack, error) {
	def, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStack, name)
	}
	return New(def())
}

// List returns all registered stack names.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a -stack argument: a registered name, or a path to a YAML
// or JSON stack file.
func Lookup(nameOrPath string) (*Stack, error) {
	if _, ok := registry[strings.ToLower(nameOrPath)]; ok {
		return Get(nameOrPath)
	}
	switch strings.ToLower(filepath.Ext(nameOrPath)) {
	case ".yaml", ".yml", ".json":
		return LoadFromFile(nameOrPath)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownStack, nameOrPath)
}

// LoadFromFile loads and validates a stack from a YAML (or JSON) file.
func LoadFromFile(path string) (*Stack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse process stack %s: %w", path, err)
	}

	return New(def)
}

// SaveToFile writes the stack definition as YAML.
func (s *Stack) SaveToFile(path string) error {
	data, err := yaml.Marshal(s.Definition())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func init() {
	register("sky130", SKY130Definition)
}
