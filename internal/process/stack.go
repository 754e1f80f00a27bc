// Package process provides the process stack: per-layer elevations,
// thicknesses and resistivities used to turn 2-D layout into 3-D solver
// geometry.
package process

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

// Role distinguishes conductor layers from the via layers between them.
type Role string

const (
	RoleConductor Role = "conductor"
	RoleVia       Role = "via"
)

// LayerSpec describes one layer of the stack. Elevations are in micrometres.
//
// Conductor resistivity is in Ohm*um. Via layers are keyed by the GDS layer
// number of the conductor below them; their Resistivity is the resistance of
// a single via cut in Ohm.
type LayerSpec struct {
	Layer       int     `json:"layer" yaml:"layer" validate:"gte=0,lte=65535"`
	Role        Role    `json:"role" yaml:"role" validate:"required,oneof=conductor via"`
	Material    string  `json:"material" yaml:"material" validate:"required"`
	Bottom      float64 `json:"bottom" yaml:"bottom" validate:"gte=0"`
	Top         float64 `json:"top" yaml:"top" validate:"gtfield=Bottom"`
	Resistivity float64 `json:"resistivity" yaml:"resistivity" validate:"gt=0"`

	// Filament overrides the elevation inductance filaments sit at. Zero
	// means halfway through the layer.
	Filament float64 `json:"filament,omitempty" yaml:"filament,omitempty" validate:"omitempty,gtefield=Bottom,ltefield=Top"`
}

// Thickness returns Top - Bottom.
func (l LayerSpec) Thickness() float64 {
	return l.Top - l.Bottom
}

// Mid returns the filament elevation: Filament when set, else halfway
// through the layer.
func (l LayerSpec) Mid() float64 {
	if l.Filament != 0 {
		return l.Filament
	}
	return (l.Bottom + l.Top) / 2
}

// Purposes holds the GDS datatypes that classify shapes.
type Purposes struct {
	Pin     int `json:"pin" yaml:"pin" validate:"gte=0"`
	Drawing int `json:"drawing" yaml:"drawing" validate:"gte=0"`
	Via     int `json:"via" yaml:"via" validate:"gte=0"`
	Label   int `json:"label" yaml:"label" validate:"gte=0"`
}

// Dielectric describes the homogeneous dielectric the conductors sit in.
type Dielectric struct {
	Name         string  `json:"name" yaml:"name" validate:"required"`
	Permittivity float64 `json:"permittivity" yaml:"permittivity" validate:"gte=1"`
	Top          float64 `json:"top" yaml:"top" validate:"gt=0"`
}

// Substrate describes the lossy ground plane under the stack.
type Substrate struct {
	SheetResistivity float64 `json:"sheet_resistivity" yaml:"sheet_resistivity" validate:"gt=0"`
	Thickness        float64 `json:"thickness" yaml:"thickness" validate:"gt=0"`
}

// Definition is the serialisable form of a stack.
type Definition struct {
	Name       string      `json:"name" yaml:"name" validate:"required"`
	Purposes   Purposes    `json:"purposes" yaml:"purposes"`
	Dielectric Dielectric  `json:"dielectric" yaml:"dielectric"`
	Substrate  Substrate   `json:"substrate" yaml:"substrate"`
	Layers     []LayerSpec `json:"layers" yaml:"layers" validate:"required,min=1,dive"`
}

// Stack is an immutable, validated process stack. Build one per run and pass
// it to every component that needs elevation or resistivity data.
type Stack struct {
	def        Definition
	conductors map[int]LayerSpec
	vias       map[int]LayerSpec
}

var validate = validator.New()

// ErrDuplicateLayer is returned when a layer number appears twice for the
// same role.
var ErrDuplicateLayer = errors.New("duplicate layer")

// New validates def and builds a Stack from it. def is copied.
func New(def Definition) (*Stack, error) {
	if err := validate.Struct(def); err != nil {
		return nil, fmt.Errorf("invalid process stack %q: %w", def.Name, err)
	}

	s := &Stack{
		def:        def,
		conductors: make(map[int]LayerSpec),
		vias:       make(map[int]LayerSpec),
	}
	s.def.Layers = append([]LayerSpec(nil), def.Layers...)

	for _, l := range s.def.Layers {
		byRole := s.conductors
		if l.Role == RoleVia {
			byRole = s.vias
		}
		if _, dup := byRole[l.Layer]; dup {
			return nil, fmt.Errorf("invalid process stack %q: %s layer %d: %w", def.Name, l.Role, l.Layer, ErrDuplicateLayer)
		}
		byRole[l.Layer] = l
	}
	if len(s.conductors) == 0 {
		return nil, fmt.Errorf("invalid process stack %q: no conductor layers", def.Name)
	}
	for _, l := range s.conductors {
		if l.Top > s.def.Dielectric.Top {
			return nil, fmt.Errorf("invalid process stack %q: layer %d top %.4f above dielectric top %.4f",
				def.Name, l.Layer, l.Top, s.def.Dielectric.Top)
		}
	}
	return s, nil
}

// Name returns the stack name.
func (s *Stack) Name() string {
	return s.def.Name
}

// Definition returns a copy of the stack's definition.
func (s *Stack) Definition() Definition {
	def := s.def
	def.Layers = append([]LayerSpec(nil), s.def.Layers...)
	return def
}

// Conductor returns the conductor layer with GDS number layer.
func (s *Stack) Conductor(layer int) (LayerSpec, bool) {
	l, ok := s.conductors[layer]
	return l, ok
}

// Via returns the via layer sitting on top of conductor layer lower.
func (s *Stack) Via(lower int) (LayerSpec, bool) {
	l, ok := s.vias[lower]
	return l, ok
}

// ConductorLayers returns the conductor layer numbers in ascending order.
func (s *Stack) ConductorLayers() []int {
	layers := make([]int, 0, len(s.conductors))
	for n := range s.conductors {
		layers = append(layers, n)
	}
	sort.Ints(layers)
	return layers
}

// Purposes returns the datatype classification.
func (s *Stack) Purposes() Purposes {
	return s.def.Purposes
}

// Dielectric returns the surrounding dielectric.
func (s *Stack) Dielectric() Dielectric {
	return s.def.Dielectric
}

// Substrate returns the ground plane parameters.
func (s *Stack) Substrate() Substrate {
	return s.def.Substrate
}

// MaterialName returns the material of a (layer, purpose) pair: the via
// material for the via purpose, the conductor material otherwise, and
// "unknown" for layers the stack does not define.
func (s *Stack) MaterialName(layer, purpose int) string {
	if purpose == s.def.Purposes.Via {
		if l, ok := s.vias[layer]; ok {
			return l.Material
		}
		return "unknown"
	}
	if l, ok := s.conductors[layer]; ok {
		return l.Material
	}
	return "unknown"
}
