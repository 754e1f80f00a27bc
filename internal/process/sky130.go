package process

// SKY130 stack data.
// Elevations follow the SkyWater process stack diagram; conductor
// resistivities are R*A/l from the SKY130 RC extraction sheet, in Ohm*um.
// The substrate sheet resistivity is a ball-park figure.

// SKY130Definition returns the SKY130 LI through Metal5 stack.
func SKY130Definition() Definition {
	return Definition{
		Name: "sky130",
		Purposes: Purposes{
			Pin:     16,
			Drawing: 20,
			Via:     44,
			Label:   5,
		},
		Dielectric: Dielectric{
			Name:         "SiO2",
			Permittivity: 3.9,
			Top:          11.8834,
		},
		Substrate: Substrate{
			SheetResistivity: 4400,
			Thickness:        0.1,
		},
		Layers: []LayerSpec{
			{Layer: 67, Role: RoleConductor, Material: "LI", Bottom: 0.9361, Top: 1.0361, Resistivity: 1.28},
			{Layer: 68, Role: RoleConductor, Material: "Metal1", Bottom: 1.3761, Top: 1.7361, Resistivity: 4.50e-2},
			{Layer: 69, Role: RoleConductor, Material: "Metal2", Bottom: 2.0061, Top: 2.3661, Resistivity: 4.50e-2},
			{Layer: 70, Role: RoleConductor, Material: "Metal3", Bottom: 2.7861, Top: 3.6311, Resistivity: 3.97e-2},
			{Layer: 71, Role: RoleConductor, Material: "Metal4", Bottom: 4.0211, Top: 4.8661, Resistivity: 3.97e-2},
			{Layer: 72, Role: RoleConductor, Material: "Metal5", Bottom: 5.3711, Top: 6.6311, Resistivity: 3.59e-2},

			// Vias span from the top of the conductor below to the bottom
			// of the conductor above; resistivity is Ohm per cut.
			{Layer: 67, Role: RoleVia, Material: "Mcon", Bottom: 1.0361, Top: 1.3761, Resistivity: 9.3},
			{Layer: 68, Role: RoleVia, Material: "Via1", Bottom: 1.7361, Top: 2.0061, Resistivity: 0.375},
			{Layer: 69, Role: RoleVia, Material: "Via2", Bottom: 2.3661, Top: 2.7861, Resistivity: 0.325},
			{Layer: 70, Role: RoleVia, Material: "Via3", Bottom: 3.6311, Top: 4.0211, Resistivity: 0.35},
			{Layer: 71, Role: RoleVia, Material: "Via4", Bottom: 4.8661, Top: 5.3711, Resistivity: 0.482},
		},
	}
}

// SKY130 returns the built SKY130 stack.
func SKY130() *Stack {
	s, err := New(SKY130Definition())
	if err != nil {
		panic(err)
	}
	return s
}
