// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wirebench

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// A SignalKind identifies what travels over a port or a cable. Cables can
// only connect ports of the same kind.
//
type SignalKind string

// Signal kinds.
//
const (
	Power SignalKind = "power"
	Video SignalKind = "video"
	Data  SignalKind = "data"
)

// Kinds returns all signal kinds.
//
func Kinds() []SignalKind {
	return []SignalKind{Power, Video, Data}
}

// Valid returns true if k is one of Power, Video or Data.
//
func (k SignalKind) Valid() bool {
	switch k {
	case Power, Video, Data:
		return true
	}
	return false
}

// Direction is the direction of a port.
//
type Direction string

// Port directions.
//
const (
	In  Direction = "in"
	Out Direction = "out"
)

// PowerSignal is the value carried by power ports.
//
type PowerSignal struct {
	On      bool    `json:"on"`
	Voltage float64 `json:"v"`
}

// Energized returns true if the signal carries power.
//
func (p PowerSignal) Energized() bool { return p.On }

func (p PowerSignal) String() string {
	if !p.On {
		return "off"
	}
	return fmt.Sprintf("on %gV", p.Voltage)
}

// VideoKind is the kind of content carried by a video signal.
//
type VideoKind string

// Video content kinds.
//
const (
	VideoNone  VideoKind = "none"
	VideoWhite VideoKind = "white"
	VideoColor VideoKind = "color"
	VideoImage VideoKind = "image"
)

// VideoSignal is the value carried by video ports. Color is only meaningful
// for VideoColor and URL for VideoImage.
//
type VideoSignal struct {
	Kind  VideoKind `json:"kind"`
	Color string    `json:"color,omitempty"`
	URL   string    `json:"url,omitempty"`
}

func (v VideoSignal) String() string {
	switch v.Kind {
	case VideoColor:
		return "color " + v.Color
	case VideoImage:
		return "image " + v.URL
	case "":
		return string(VideoNone)
	}
	return string(v.Kind)
}

// DataSignal is the value carried by data ports. An empty record (a
// motherboard's data output) has Valid set to false.
//
type DataSignal struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

func (d DataSignal) String() string {
	if !d.Valid {
		return "{}"
	}
	return fmt.Sprintf("%g", d.Value)
}

// Display colors.
//
const (
	Black   = "#000000"
	White   = "#ffffff"
	Standby = "#0b0b0b"
)

// RGB is a 24 bits color.
//
type RGB struct {
	R, G, B uint8
}

// ParseRGB parses a hex color like "#ff0000" or "#f00".
//
func ParseRGB(hex string) (RGB, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGB{}, err
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// Hex returns the color as "#rrggbb".
//
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Scale scales each channel by f, clamped to [0, 1], and rounds to the nearest
// integer.
//
func (c RGB) Scale(f float64) RGB {
	f = clamp(f, 0, 1)
	ch := func(v uint8) uint8 { return uint8(math.Round(float64(v) * f)) }
	return RGB{ch(c.R), ch(c.G), ch(c.B)}
}

// modulate applies a screen brightness in percent to a hex color. Colors that
// do not parse are rendered black.
//
func modulate(hex string, brightness float64) string {
	c, err := ParseRGB(hex)
	if err != nil {
		return Black
	}
	return c.Scale(brightness / 100).Hex()
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
