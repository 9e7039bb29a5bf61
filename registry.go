// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wirebench

// NodeType identifies one of the built-in node types.
//
type NodeType string

// Built-in node types.
//
const (
	PowerSupply NodeType = "PowerSupply"
	Motherboard NodeType = "Motherboard"
	Screen      NodeType = "Screen"
	Switch      NodeType = "Switch"
	LED         NodeType = "LED"
	Sensor      NodeType = "Sensor"
	Splitter    NodeType = "Splitter"
	CableSpool  NodeType = "CableSpool"
)

// common port names
const (
	pPower    = "power"
	pVideo    = "video"
	pData     = "data"
	pPowerIn  = "powerIn"
	pPowerOut = "powerOut"
	pIn       = "in"
	pA        = "a"
	pB        = "b"
)

// A PortSpec describes a port of a node type. Port names are unique per
// direction within a node type.
//
type PortSpec struct {
	Name string     `json:"name"`
	Kind SignalKind `json:"type"`
	Dir  Direction  `json:"dir"`
}

func in(name string, k SignalKind) PortSpec  { return PortSpec{name, k, In} }
func out(name string, k SignalKind) PortSpec { return PortSpec{name, k, Out} }

// Size is the footprint of a node on the editing surface.
//
type Size struct {
	W, H float64
}

// A TypeSpec is the blueprint of a node type: its display footprint, its ports
// and the factory for its initial properties.
//
// TypeSpecs are static data and must not be modified. Nodes get their own
// copy of the port lists when created.
//
type TypeSpec struct {
	Type    NodeType
	Label   string
	Size    Size
	Inputs  []PortSpec
	Outputs []PortSpec
	// NewProps returns the default properties for a new node.
	NewProps func() Props

	update updateFn
}

// Port returns the port with the given name and direction.
//
func (t *TypeSpec) Port(name string, dir Direction) (PortSpec, bool) {
	ports := t.Inputs
	if dir == Out {
		ports = t.Outputs
	}
	return findPort(ports, name)
}

func findPort(ports []PortSpec, name string) (PortSpec, bool) {
	for _, p := range ports {
		if p.Name == name {
			return p, true
		}
	}
	return PortSpec{}, false
}

var registry = [...]TypeSpec{
	{
		Type:     PowerSupply,
		Label:    "Power Supply",
		Size:     Size{160, 90},
		Outputs:  []PortSpec{out(pPower, Power)},
		NewProps: func() Props { return &PowerSupplyProps{Common{"Power"}, true, 12} },
		update:   updatePowerSupply,
	},
	{
		Type:    Motherboard,
		Label:   "Motherboard",
		Size:    Size{200, 130},
		Inputs:  []PortSpec{in(pPower, Power)},
		Outputs: []PortSpec{out(pVideo, Video), out(pData, Data)},
		NewProps: func() Props {
			return &MotherboardProps{Common: Common{"MB"}, Mode: ModeWhite, FPS: 60, Color: White, DosType: DosLink}
		},
		update: updateMotherboard,
	},
	{
		Type:   Screen,
		Label:  "Screen",
		Size:   Size{200, 150},
		Inputs: []PortSpec{in(pPower, Power), in(pVideo, Video)},
		NewProps: func() Props {
			return &ScreenProps{Common: Common{"Screen"}, Brightness: 100, Scale: 1, Color: White}
		},
		update: updateScreen,
	},
	{
		Type:     Switch,
		Label:    "Switch",
		Size:     Size{150, 90},
		Inputs:   []PortSpec{in(pPowerIn, Power)},
		Outputs:  []PortSpec{out(pPowerOut, Power)},
		NewProps: func() Props { return &SwitchProps{Common{"Switch"}, true} },
		update:   updateSwitch,
	},
	{
		Type:     LED,
		Label:    "LED",
		Size:     Size{140, 90},
		Inputs:   []PortSpec{in(pPower, Power)},
		NewProps: func() Props { return &LEDProps{Common{"LED"}} },
		update:   updateLED,
	},
	{
		Type:     Sensor,
		Label:    "Sensor",
		Size:     Size{160, 90},
		Inputs:   []PortSpec{in(pPower, Power)},
		Outputs:  []PortSpec{out(pData, Data)},
		NewProps: func() Props { return &SensorProps{Common{"Sensor"}} },
		update:   updateSensor,
	},
	{
		Type:     Splitter,
		Label:    "Splitter",
		Size:     Size{160, 90},
		Inputs:   []PortSpec{in(pIn, Power)},
		Outputs:  []PortSpec{out(pA, Power), out(pB, Power)},
		NewProps: func() Props { return &SplitterProps{Common{"Splitter"}} },
		update:   updateSplitter,
	},
	{
		Type:     CableSpool,
		Label:    "Cable Spool",
		Size:     Size{140, 70},
		NewProps: func() Props { return &CableSpoolProps{Common{"Cable Spool"}} },
	},
}

// Lookup returns the TypeSpec for the given node type.
//
func Lookup(t NodeType) (*TypeSpec, bool) {
	for i := range registry {
		if registry[i].Type == t {
			return &registry[i], true
		}
	}
	return nil, false
}

// Types returns the TypeSpecs of all built-in node types in toolbox order.
//
func Types() []*TypeSpec {
	ts := make([]*TypeSpec, len(registry))
	for i := range registry {
		ts[i] = &registry[i]
	}
	return ts
}
