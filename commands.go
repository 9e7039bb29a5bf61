// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wirebench

import (
	"fmt"
	"sort"
	"strings"
)

// DocCommand is a command that operates on a Document.
//
type DocCommand = Command[*Document]

// AddNodes appends nodes to a document and selects them. Spawning and
// duplicating nodes both use it.
//
type AddNodes struct {
	Nodes []*Node
	prev  []ID
}

// NewAddNodes returns a command that adds nodes to d.
func NewAddNodes(d *Document, nodes ...*Node) *AddNodes {
	return &AddNodes{Nodes: nodes, prev: d.Selection()}
}

func (c *AddNodes) Do(d *Document) {
	d.selection.Clear()
	for _, n := range c.Nodes {
		d.insertNode(-1, n)
		d.selection.Add(n.ID)
	}
}

func (c *AddNodes) Undo(d *Document) {
	for i := len(c.Nodes) - 1; i >= 0; i-- {
		d.removeNode(c.Nodes[i].ID)
	}
	d.selection.Clear()
	d.addToSelection(c.prev...)
}

func (c *AddNodes) String() string {
	return "add " + nodeList(c.Nodes)
}

// AddCable adds a cable to a document. The cable must have been checked with
// TryConnect.
//
type AddCable struct {
	Cable *Cable
}

func (c *AddCable) Do(d *Document)   { d.insertCable(-1, c.Cable) }
func (c *AddCable) Undo(d *Document) { d.removeCable(c.Cable.ID) }

func (c *AddCable) String() string {
	return fmt.Sprintf("connect %s %v -> %v", c.Cable.ID, c.Cable.From, c.Cable.To)
}

type indexedNode struct {
	i int
	n *Node
}

type indexedCable struct {
	i int
	c *Cable
}

// Remove deletes nodes and cables from a document. Removing a node also
// removes all the cables connected to it. Undo puts everything back at its
// original position.
//
type Remove struct {
	nodes  []indexedNode
	cables []indexedCable
	prev   []ID
}

// NewRemove returns a command that removes the nodes and cables with the given
// ids from d. Unknown ids are ignored.
//
func NewRemove(d *Document, ids ...ID) *Remove {
	r := &Remove{prev: d.Selection()}
	del := make(map[ID]bool, len(ids))
	for _, id := range ids {
		del[id] = true
	}
	for i, n := range d.nodes {
		if del[n.ID] {
			r.nodes = append(r.nodes, indexedNode{i, n})
		}
	}
	for i, c := range d.cables {
		if del[c.ID] || del[c.From.Node] || del[c.To.Node] {
			r.cables = append(r.cables, indexedCable{i, c})
		}
	}
	return r
}

// Empty returns true if the command removes nothing.
//
func (c *Remove) Empty() bool { return len(c.nodes) == 0 && len(c.cables) == 0 }

func (c *Remove) Do(d *Document) {
	for _, ic := range c.cables {
		d.removeCable(ic.c.ID)
	}
	for _, in := range c.nodes {
		d.removeNode(in.n.ID)
	}
	d.selection.Clear()
}

func (c *Remove) Undo(d *Document) {
	// indices are in ascending order
	for _, in := range c.nodes {
		d.insertNode(in.i, in.n)
	}
	for _, ic := range c.cables {
		d.insertCable(ic.i, ic.c)
	}
	d.selection.Clear()
	d.addToSelection(c.prev...)
}

func (c *Remove) String() string {
	ns := make([]*Node, len(c.nodes))
	for i, in := range c.nodes {
		ns[i] = in.n
	}
	return fmt.Sprintf("remove %s and %d cable(s)", nodeList(ns), len(c.cables))
}

// Move is a node displacement.
//
type Move struct {
	ID       ID
	From, To Point
}

// MoveNodes moves a set of nodes.
//
type MoveNodes struct {
	Moves []Move
}

func (c *MoveNodes) Do(d *Document) {
	for _, m := range c.Moves {
		if n := d.Node(m.ID); n != nil {
			n.X, n.Y = m.To.X, m.To.Y
		}
	}
}

func (c *MoveNodes) Undo(d *Document) {
	for _, m := range c.Moves {
		if n := d.Node(m.ID); n != nil {
			n.X, n.Y = m.From.X, m.From.Y
		}
	}
}

func (c *MoveNodes) String() string {
	return fmt.Sprintf("move %d node(s)", len(c.Moves))
}

// SetProps replaces the properties of a node.
//
type SetProps struct {
	ID       ID
	Old, New Props
}

func (c *SetProps) Do(d *Document) {
	if n := d.Node(c.ID); n != nil {
		n.Props = CloneProps(c.New)
	}
}

func (c *SetProps) Undo(d *Document) {
	if n := d.Node(c.ID); n != nil {
		n.Props = CloneProps(c.Old)
	}
}

func (c *SetProps) String() string { return "set properties of " + string(c.ID) }

// ReplaceDocument replaces the whole content of a document: nodes, cables and
// view transform. It is used to reset and load documents, and clears the
// selection.
//
type ReplaceDocument struct {
	old, new *content
	prev     []ID
	what     string
}

// NewReset returns a command that empties d. The view transform is kept.
//
func NewReset(d *Document) *ReplaceDocument {
	return &ReplaceDocument{
		old:  d.content().copy(),
		new:  &content{Pan: d.Pan, Zoom: d.Zoom},
		prev: d.Selection(),
		what: "reset",
	}
}

// NewLoad returns a command that replaces the content of d with that of src.
//
func NewLoad(d, src *Document) *ReplaceDocument {
	return &ReplaceDocument{
		old:  d.content().copy(),
		new:  src.content().copy(),
		prev: d.Selection(),
		what: "load",
	}
}

func (c *ReplaceDocument) Do(d *Document) { d.setContent(c.new) }

func (c *ReplaceDocument) Undo(d *Document) {
	d.setContent(c.old)
	d.addToSelection(c.prev...)
}

func (c *ReplaceDocument) String() string {
	return fmt.Sprintf("%s document (%d nodes, %d cables)", c.what, len(c.new.Nodes), len(c.new.Cables))
}

func nodeList(ns []*Node) string {
	ids := make([]string, len(ns))
	for i, n := range ns {
		ids[i] = string(n.ID)
	}
	sort.Strings(ids)
	return "[" + strings.Join(ids, " ") + "]"
}
