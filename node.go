// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wirebench

import (
	"strconv"
	"sync/atomic"

	"github.com/mitchellh/copystructure"
)

// ID identifies a node or a cable. IDs are allocated from a process wide
// counter and are never reused.
//
type ID string

var lastID atomic.Uint64

func newID() ID {
	return ID(strconv.FormatUint(lastID.Add(1), 36))
}

// reserveID makes sure that newID never returns id, for ids loaded from a
// document.
//
func reserveID(id ID) {
	n, err := strconv.ParseUint(string(id), 36, 64)
	if err != nil {
		return
	}
	for {
		cur := lastID.Load()
		if n <= cur || lastID.CompareAndSwap(cur, n) {
			return
		}
	}
}

// Point is a position on the editing surface.
//
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// An Endpoint names a port of a node.
//
type Endpoint struct {
	Node ID     `json:"nodeId"`
	Port string `json:"port"`
}

func (e Endpoint) String() string { return string(e.Node) + "." + e.Port }

// A Node is an instance of a node type placed in a document.
//
// Inputs and Outputs are copies of the type's port lists taken when the node
// was created.
//
type Node struct {
	ID       ID
	Type     NodeType
	X, Y     float64
	Rotation float64
	Props    Props
	Inputs   []PortSpec
	Outputs  []PortSpec
}

// NewNode returns a new node of type t at position (x, y) with a fresh ID and
// default properties. It returns nil if t is not a known type.
//
func NewNode(t NodeType, x, y float64) *Node {
	ts, ok := Lookup(t)
	if !ok {
		return nil
	}
	return &Node{
		ID:      newID(),
		Type:    t,
		X:       x,
		Y:       y,
		Props:   ts.NewProps(),
		Inputs:  append([]PortSpec(nil), ts.Inputs...),
		Outputs: append([]PortSpec(nil), ts.Outputs...),
	}
}

// Port returns the port of n with the given name. Outputs are searched
// first: use Input or Output when the direction matters.
//
func (n *Node) Port(name string) (PortSpec, bool) {
	if p, ok := n.Output(name); ok {
		return p, true
	}
	return n.Input(name)
}

// Input returns the input port of n with the given name.
//
func (n *Node) Input(name string) (PortSpec, bool) { return findPort(n.Inputs, name) }

// Output returns the output port of n with the given name.
//
func (n *Node) Output(name string) (PortSpec, bool) { return findPort(n.Outputs, name) }

// Endpoint returns the Endpoint for port on n.
//
func (n *Node) Endpoint(port string) Endpoint { return Endpoint{n.ID, port} }

// Position returns the node's position.
//
func (n *Node) Position() Point { return Point{n.X, n.Y} }

// Clone returns a deep copy of n with a fresh ID.
//
func (n *Node) Clone() *Node {
	c := n.copy()
	c.ID = newID()
	return c
}

func (n *Node) copy() *Node {
	return copystructure.Must(copystructure.Copy(n)).(*Node)
}

// A Cable connects an output port to an input port of the same kind.
//
type Cable struct {
	ID   ID         `json:"id"`
	Kind SignalKind `json:"type"`
	From Endpoint   `json:"from"`
	To   Endpoint   `json:"to"`
}

func (c *Cable) touches(id ID) bool {
	return c.From.Node == id || c.To.Node == id
}
