// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wirebench

import "github.com/mitchellh/copystructure"

// Props is the property record of a node. Each node type has its own concrete
// type, always used through a pointer: *PowerSupplyProps, *MotherboardProps,
// *ScreenProps, *SwitchProps, *LEDProps, *SensorProps, *SplitterProps and
// *CableSpoolProps.
//
// Properties are accessed by name with GetProp and SetProp, using the json
// field names.
//
type Props interface {
	// DisplayName returns the user given name of the node.
	DisplayName() string
	common() *Common
}

// Common holds the properties shared by all node types.
//
type Common struct {
	Name string `json:"name"`
}

// DisplayName implements Props.
func (c *Common) DisplayName() string { return c.Name }

func (c *Common) common() *Common { return c }

// Motherboard video modes.
//
const (
	ModeWhite = "white"
	ModeColor = "color"
	ModeDosOS = "DosOS"
)

// DosLink is the only supported DosOS source type: an image URL.
//
const DosLink = "link"

// PowerSupplyProps are the properties of a PowerSupply.
//
type PowerSupplyProps struct {
	Common
	On      bool    `json:"on"`
	Voltage float64 `json:"voltage"`
}

// MotherboardProps are the properties of a Motherboard.
//
type MotherboardProps struct {
	Common
	Mode    string `json:"mode"`
	FPS     int    `json:"fps"`
	Color   string `json:"color"`
	DosType string `json:"dosType"`
	DosURL  string `json:"dosUrl"`
}

// ScreenProps are the properties of a Screen. Brightness is in percent, Color
// is the test pattern color used when Test is set.
//
type ScreenProps struct {
	Common
	Brightness float64 `json:"brightness"`
	Scale      float64 `json:"scale"`
	Color      string  `json:"color"`
	Test       bool    `json:"test"`
}

// SwitchProps are the properties of a Switch.
//
type SwitchProps struct {
	Common
	On bool `json:"on"`
}

// LEDProps are the properties of a LED.
//
type LEDProps struct{ Common }

// SensorProps are the properties of a Sensor.
//
type SensorProps struct{ Common }

// SplitterProps are the properties of a Splitter.
//
type SplitterProps struct{ Common }

// CableSpoolProps are the properties of a CableSpool.
//
type CableSpoolProps struct{ Common }

// normalize clamps property values the way the inspector does.
func (p *ScreenProps) normalize() {
	p.Brightness = clamp(p.Brightness, 0, 100)
	p.Scale = clamp(p.Scale, 0.5, 2)
}

func (p *MotherboardProps) normalize() {
	if p.FPS <= 0 {
		p.FPS = 60
	}
}

type normalizer interface {
	normalize()
}

// CloneProps returns a deep copy of p.
//
func CloneProps(p Props) Props {
	if p == nil {
		return nil
	}
	return copystructure.Must(copystructure.Copy(p)).(Props)
}
