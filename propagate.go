// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wirebench

import (
	"time"
)

// ScreenMode is the display state of a Screen.
//
type ScreenMode string

// Screen states.
//
const (
	ScreenOff     ScreenMode = "off"
	ScreenOn      ScreenMode = "on"
	ScreenStandby ScreenMode = "standby"
)

// NodeState is the derived display state of a node, computed by Propagate.
// Only the fields relevant to the node's type are set.
//
type NodeState struct {
	// Screen
	Screen  ScreenMode
	Display string // flat color shown, "#rrggbb"
	Image   string // image URL shown, if any

	// LED
	Lit bool
}

// Signals is the signal table: the value present on every output port and
// the display state of every node after a propagation pass.
//
// A nil *Signals is a valid empty table.
//
type Signals struct {
	power  map[Endpoint]PowerSignal
	video  map[Endpoint]VideoSignal
	data   map[Endpoint]DataSignal
	states map[ID]NodeState
}

func newSignals() *Signals {
	return &Signals{
		power:  make(map[Endpoint]PowerSignal),
		video:  make(map[Endpoint]VideoSignal),
		data:   make(map[Endpoint]DataSignal),
		states: make(map[ID]NodeState),
	}
}

// Power returns the power signal on output port ep. Absent signals read as
// off.
//
func (s *Signals) Power(ep Endpoint) PowerSignal {
	if s == nil {
		return PowerSignal{}
	}
	return s.power[ep]
}

// Video returns the video signal on output port ep. Absent signals read as
// VideoNone.
//
func (s *Signals) Video(ep Endpoint) VideoSignal {
	if s == nil {
		return VideoSignal{Kind: VideoNone}
	}
	if v, ok := s.video[ep]; ok {
		return v
	}
	return VideoSignal{Kind: VideoNone}
}

// Data returns the data signal on output port ep. ok is false if no data is
// present.
//
func (s *Signals) Data(ep Endpoint) (d DataSignal, ok bool) {
	if s == nil {
		return DataSignal{}, false
	}
	d, ok = s.data[ep]
	return d, ok
}

// State returns the display state of node id.
//
func (s *Signals) State(id ID) NodeState {
	if s == nil {
		return NodeState{}
	}
	return s.states[id]
}

// Equal returns true if s and o hold the same values. Two empty tables are
// equal, nil or not.
//
func (s *Signals) Equal(o *Signals) bool {
	if s == nil {
		s = newSignals()
	}
	if o == nil {
		o = newSignals()
	}
	return mapEqual(s.power, o.power) && mapEqual(s.video, o.video) &&
		mapEqual(s.data, o.data) && mapEqual(s.states, o.states)
}

func mapEqual[K, V comparable](a, b map[K]V) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}

// updateFn computes the outputs and display state of a node.
//
type updateFn func(p *pass, n *Node)

// pass holds the state of a single propagation pass.
//
type pass struct {
	next *Signals
	// incoming cable for every connected input
	into map[Endpoint]*Cable
	now  time.Time
}

// source returns the output endpoint feeding input port of n.
//
func (p *pass) source(n *Node, port string) (Endpoint, bool) {
	c, ok := p.into[n.Endpoint(port)]
	if !ok {
		return Endpoint{}, false
	}
	return c.From, true
}

func (p *pass) power(n *Node, port string) PowerSignal {
	if src, ok := p.source(n, port); ok {
		return p.next.power[src]
	}
	return PowerSignal{}
}

func (p *pass) video(n *Node, port string) VideoSignal {
	if src, ok := p.source(n, port); ok {
		return p.next.Video(src)
	}
	return VideoSignal{Kind: VideoNone}
}

func (p *pass) setPower(n *Node, port string, v PowerSignal) { p.next.power[n.Endpoint(port)] = v }
func (p *pass) setVideo(n *Node, port string, v VideoSignal) { p.next.video[n.Endpoint(port)] = v }

func (p *pass) setData(n *Node, port string, v DataSignal, present bool) {
	if present {
		p.next.data[n.Endpoint(port)] = v
	} else {
		delete(p.next.data, n.Endpoint(port))
	}
}

// Propagate computes the signal table for the next tick from the table of the
// previous tick. prev may be nil. now is the time of the tick, used by
// sensors.
//
// Nodes are updated in document storage order, not in topological order. An
// input reads the value its source has in the table being built: if the
// source node comes later in storage order, this is the value from the
// previous tick. A chain of n nodes therefore settles in at most n ticks.
//
// Propagate never modifies doc.
//
func Propagate(doc *Document, prev *Signals, now time.Time) *Signals {
	p := &pass{
		next: newSignals(),
		into: make(map[Endpoint]*Cable, len(doc.cables)),
		now:  now,
	}
	for _, c := range doc.cables {
		p.into[c.To] = c
	}

	// carry over values of ports that still exist
	if prev == nil {
		prev = newSignals()
	}
	for _, n := range doc.nodes {
		for _, o := range n.Outputs {
			ep := n.Endpoint(o.Name)
			switch o.Kind {
			case Power:
				if v, ok := prev.power[ep]; ok {
					p.next.power[ep] = v
				}
			case Video:
				if v, ok := prev.video[ep]; ok {
					p.next.video[ep] = v
				}
			case Data:
				if v, ok := prev.data[ep]; ok {
					p.next.data[ep] = v
				}
			}
		}
	}

	for _, n := range doc.nodes {
		ts, ok := Lookup(n.Type)
		if !ok || ts.update == nil {
			continue
		}
		ts.update(p, n)
	}
	return p.next
}

func updatePowerSupply(p *pass, n *Node) {
	var v PowerSignal
	if ps, ok := n.Props.(*PowerSupplyProps); ok && ps.On && ps.Voltage > 0 {
		v = PowerSignal{On: true, Voltage: ps.Voltage}
	}
	p.setPower(n, pPower, v)
}

func updateSwitch(p *pass, n *Node) {
	var v PowerSignal
	if sw, ok := n.Props.(*SwitchProps); ok && sw.On {
		if up := p.power(n, pPowerIn); up.Energized() {
			v = up
		}
	}
	p.setPower(n, pPowerOut, v)
}

func updateSplitter(p *pass, n *Node) {
	var v PowerSignal
	if up := p.power(n, pIn); up.Energized() {
		v = up
	}
	p.setPower(n, pA, v)
	p.setPower(n, pB, v)
}

func updateMotherboard(p *pass, n *Node) {
	powered := p.power(n, pPower).Energized()
	v := VideoSignal{Kind: VideoNone}
	if mb, ok := n.Props.(*MotherboardProps); ok && powered {
		switch mb.Mode {
		case ModeWhite:
			v = VideoSignal{Kind: VideoWhite}
		case ModeColor:
			c := mb.Color
			if c == "" {
				c = White
			}
			v = VideoSignal{Kind: VideoColor, Color: c}
		case ModeDosOS:
			if mb.DosType == DosLink && mb.DosURL != "" {
				v = VideoSignal{Kind: VideoImage, URL: mb.DosURL}
			} else {
				v = VideoSignal{Kind: VideoWhite}
			}
		}
	}
	p.setVideo(n, pVideo, v)
	p.setData(n, pData, DataSignal{}, powered)
}

func updateScreen(p *pass, n *Node) {
	sp, _ := n.Props.(*ScreenProps)
	if sp == nil {
		sp = &ScreenProps{Brightness: 100}
	}
	var st NodeState
	switch {
	case !p.power(n, pPower).Energized():
		st = NodeState{Screen: ScreenOff, Display: Black}
	case sp.Test:
		c := sp.Color
		if c == "" {
			c = White
		}
		st = NodeState{Screen: ScreenOn, Display: modulate(c, sp.Brightness)}
	default:
		switch v := p.video(n, pVideo); v.Kind {
		case VideoWhite:
			st = NodeState{Screen: ScreenOn, Display: modulate(White, sp.Brightness)}
		case VideoColor:
			st = NodeState{Screen: ScreenOn, Display: modulate(v.Color, sp.Brightness)}
		case VideoImage:
			st = NodeState{Screen: ScreenOn, Display: Black, Image: v.URL}
		default:
			st = NodeState{Screen: ScreenStandby, Display: modulate(Standby, sp.Brightness)}
		}
	}
	p.next.states[n.ID] = st
}

func updateLED(p *pass, n *Node) {
	p.next.states[n.ID] = NodeState{Lit: p.power(n, pPower).Energized()}
}

func updateSensor(p *pass, n *Node) {
	powered := p.power(n, pPower).Energized()
	v := DataSignal{Value: float64((p.now.UnixMilli() / 250) % 2), Valid: true}
	p.setData(n, pData, v, powered)
}
