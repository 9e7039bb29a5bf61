// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wirebench

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/mitchellh/copystructure"
)

// A Document is an arena of nodes and cables. Cables reference nodes by ID;
// nodes know nothing about cables.
//
// The node order is significant: Propagate updates nodes in that order.
//
// Documents are only modified by commands executed through a History (see
// Bench). The nodes and cables returned by the accessors must be treated as
// read-only.
//
type Document struct {
	nodes  []*Node
	cables []*Cable

	// View transform, persisted with the document.
	Pan  Point
	Zoom float64

	selection mapset.Set[ID]
	dirty     bool
}

// NewDocument returns a new empty document.
//
func NewDocument() *Document {
	return &Document{
		Zoom:      1,
		selection: mapset.NewThreadUnsafeSet[ID](),
	}
}

// Nodes returns the nodes in storage order.
//
func (d *Document) Nodes() []*Node {
	return append([]*Node(nil), d.nodes...)
}

// Cables returns the cables in creation order.
//
func (d *Document) Cables() []*Cable {
	return append([]*Cable(nil), d.cables...)
}

// Node returns the node with the given ID or nil.
//
func (d *Document) Node(id ID) *Node {
	if i := d.nodeIndex(id); i >= 0 {
		return d.nodes[i]
	}
	return nil
}

// Cable returns the cable with the given ID or nil.
//
func (d *Document) Cable(id ID) *Cable {
	if i := d.cableIndex(id); i >= 0 {
		return d.cables[i]
	}
	return nil
}

// Incoming returns the cable connected to input port ep or nil.
//
func (d *Document) Incoming(ep Endpoint) *Cable {
	for _, c := range d.cables {
		if c.To == ep {
			return c
		}
	}
	return nil
}

// Outgoing returns the cables connected to output port ep.
//
func (d *Document) Outgoing(ep Endpoint) []*Cable {
	var cs []*Cable
	for _, c := range d.cables {
		if c.From == ep {
			cs = append(cs, c)
		}
	}
	return cs
}

// Len returns the number of nodes and cables in d.
//
func (d *Document) Len() (nodes, cables int) {
	return len(d.nodes), len(d.cables)
}

// Selection returns the IDs of the selected nodes and cables, sorted.
//
func (d *Document) Selection() []ID {
	ids := d.selection.ToSlice()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Selected returns true if the node or cable id is selected.
//
func (d *Document) Selected(id ID) bool { return d.selection.Contains(id) }

// Select replaces the selection. IDs that do not name a node or cable are
// ignored. The selection is editor state: it is not part of the command
// history.
//
func (d *Document) Select(ids ...ID) {
	d.selection.Clear()
	d.addToSelection(ids...)
	d.dirty = true
}

func (d *Document) addToSelection(ids ...ID) {
	for _, id := range ids {
		if d.Node(id) != nil || d.Cable(id) != nil {
			d.selection.Add(id)
		}
	}
}

// Dirty returns true if d changed since the last call to ClearDirty.
//
func (d *Document) Dirty() bool { return d.dirty }

// MarkDirty flags the document as changed.
//
func (d *Document) MarkDirty() { d.dirty = true }

// ClearDirty resets the dirty flag, typically once the document is rendered.
//
func (d *Document) ClearDirty() { d.dirty = false }

func (d *Document) nodeIndex(id ID) int {
	for i, n := range d.nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) cableIndex(id ID) int {
	for i, c := range d.cables {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) insertNode(i int, n *Node) {
	if i < 0 || i > len(d.nodes) {
		i = len(d.nodes)
	}
	d.nodes = append(d.nodes, nil)
	copy(d.nodes[i+1:], d.nodes[i:])
	d.nodes[i] = n
}

func (d *Document) insertCable(i int, c *Cable) {
	if i < 0 || i > len(d.cables) {
		i = len(d.cables)
	}
	d.cables = append(d.cables, nil)
	copy(d.cables[i+1:], d.cables[i:])
	d.cables[i] = c
}

// removeNode removes a node but not the cables touching it.
//
func (d *Document) removeNode(id ID) {
	if i := d.nodeIndex(id); i >= 0 {
		d.nodes = append(d.nodes[:i], d.nodes[i+1:]...)
		d.selection.Remove(id)
	}
}

func (d *Document) removeCable(id ID) {
	if i := d.cableIndex(id); i >= 0 {
		d.cables = append(d.cables[:i], d.cables[i+1:]...)
		d.selection.Remove(id)
	}
}

// content is the persistent part of a document.
//
type content struct {
	Nodes  []*Node
	Cables []*Cable
	Pan    Point
	Zoom   float64
}

func (d *Document) content() *content {
	return &content{d.nodes, d.cables, d.Pan, d.Zoom}
}

// copy returns a deep copy of c.
func (c *content) copy() *content {
	return copystructure.Must(copystructure.Copy(c)).(*content)
}

func (d *Document) setContent(c *content) {
	c = c.copy()
	d.nodes, d.cables, d.Pan, d.Zoom = c.Nodes, c.Cables, c.Pan, c.Zoom
	d.selection.Clear()
}
