// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wirebench

import (
	"io"
	"math"
	"reflect"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"k8s.io/utils/clock"
)

// Grid is the step positions are snapped to.
//
const Grid = 10

func snap(v float64) float64 { return math.Round(v/Grid) * Grid }

// A Bench owns a document, its command history and its signal table. All
// document changes go through the history and can be undone.
//
// A Bench is not safe for concurrent use.
//
type Bench struct {
	doc     *Document
	hist    *History[*Document]
	signals *Signals
	ticks   uint64

	clock clock.PassiveClock
	log   hclog.Logger
}

// An Option configures a Bench.
//
type Option func(b *Bench)

// WithLogger sets the logger of a Bench. The default is to log nothing.
//
func WithLogger(l hclog.Logger) Option {
	return func(b *Bench) { b.log = l }
}

// WithClock sets the clock a Bench uses to time ticks. The default is the
// wall clock.
//
func WithClock(c clock.PassiveClock) Option {
	return func(b *Bench) { b.clock = c }
}

// New returns a new Bench with an empty document.
//
func New(opts ...Option) *Bench {
	b := &Bench{
		doc:   NewDocument(),
		clock: clock.RealClock{},
	}
	for _, o := range opts {
		o(b)
	}
	if b.log == nil {
		b.log = hclog.NewNullLogger()
	}
	b.hist = NewHistory[*Document](b.log.Named("history"))
	b.log = b.log.Named("bench")
	return b
}

// Document returns the document. It must not be modified directly.
//
func (b *Bench) Document() *Document { return b.doc }

// Signals returns the signal table computed by the last tick.
//
func (b *Bench) Signals() *Signals { return b.signals }

// History returns the command history.
//
func (b *Bench) History() *History[*Document] { return b.hist }

// Ticks returns the number of ticks run so far.
//
func (b *Bench) Ticks() uint64 { return b.ticks }

// Tick runs one propagation pass and returns the new signal table.
//
func (b *Bench) Tick() *Signals {
	b.signals = Propagate(b.doc, b.signals, b.clock.Now())
	b.ticks++
	return b.signals
}

// Run runs n ticks.
//
func (b *Bench) Run(n int) *Signals {
	for i := 0; i < n; i++ {
		b.Tick()
	}
	return b.signals
}

// Settle ticks until the signal table stops changing, for at most max ticks.
// It returns the number of ticks run and whether the table is stable.
//
// Sensors change with time: a bench with a powered sensor may never settle.
//
func (b *Bench) Settle(max int) (int, bool) {
	for i := 1; i <= max; i++ {
		prev := b.signals
		if b.Tick().Equal(prev) {
			return i, true
		}
	}
	return max, false
}

// Execute runs a custom command through the history.
//
func (b *Bench) Execute(c DocCommand) {
	b.hist.Execute(b.doc, c)
}

// Undo reverts the last command.
//
func (b *Bench) Undo() bool { return b.hist.Undo(b.doc) }

// Redo reapplies the last undone command.
//
func (b *Bench) Redo() bool { return b.hist.Redo(b.doc) }

// CanUndo returns true if there is a command to undo.
//
func (b *Bench) CanUndo() bool { return b.hist.CanUndo() }

// CanRedo returns true if there is a command to redo.
//
func (b *Bench) CanRedo() bool { return b.hist.CanRedo() }

// Select replaces the selection.
//
func (b *Bench) Select(ids ...ID) { b.doc.Select(ids...) }

// Spawn adds a new node of type t at the given position, snapped to the grid,
// and selects it.
//
func (b *Bench) Spawn(t NodeType, x, y float64) (*Node, error) {
	n := NewNode(t, snap(x), snap(y))
	if n == nil {
		return nil, errors.Wrapf(ErrUnknownType, "%q", t)
	}
	b.Execute(NewAddNodes(b.doc, n))
	return n, nil
}

// TryConnect checks if a cable can be created between from and to without
// changing the document.
//
func (b *Bench) TryConnect(from, to Endpoint) (*Cable, error) {
	return TryConnect(b.doc, from, to)
}

// Connect creates a cable from output port from to input port to.
//
func (b *Bench) Connect(from, to Endpoint) (*Cable, error) {
	c, err := TryConnect(b.doc, from, to)
	if err != nil {
		b.log.Info("connection rejected", "from", from, "to", to, "error", err)
		return nil, err
	}
	b.Execute(&AddCable{c})
	return c, nil
}

// Delete removes nodes and cables together with the cables connected to the
// removed nodes. It returns false if none of the ids exists.
//
func (b *Bench) Delete(ids ...ID) bool {
	r := NewRemove(b.doc, ids...)
	if r.Empty() {
		return false
	}
	b.Execute(r)
	return true
}

// DeleteSelection removes the selected nodes and cables.
//
func (b *Bench) DeleteSelection() bool {
	return b.Delete(b.doc.Selection()...)
}

// Move moves node id to (x, y), snapped to the grid.
//
func (b *Bench) Move(id ID, x, y float64) error {
	n := b.doc.Node(id)
	if n == nil {
		return errors.Wrapf(ErrUnknownNode, "%s", id)
	}
	b.Execute(&MoveNodes{[]Move{{id, n.Position(), Point{snap(x), snap(y)}}}})
	return nil
}

// MoveBy moves a group of nodes by (dx, dy). Each resulting position is
// snapped to the grid.
//
func (b *Bench) MoveBy(ids []ID, dx, dy float64) error {
	var ms []Move
	for _, id := range ids {
		n := b.doc.Node(id)
		if n == nil {
			return errors.Wrapf(ErrUnknownNode, "%s", id)
		}
		ms = append(ms, Move{id, n.Position(), Point{snap(n.X + dx), snap(n.Y + dy)}})
	}
	if len(ms) > 0 {
		b.Execute(&MoveNodes{ms})
	}
	return nil
}

// Duplicate adds copies of the given nodes, moved by (dx, dy), and selects
// them. Cables are not copied.
//
func (b *Bench) Duplicate(ids []ID, dx, dy float64) ([]*Node, error) {
	var ns []*Node
	for _, id := range ids {
		n := b.doc.Node(id)
		if n == nil {
			return nil, errors.Wrapf(ErrUnknownNode, "%s", id)
		}
		c := n.Clone()
		c.X, c.Y = snap(n.X+dx), snap(n.Y+dy)
		ns = append(ns, c)
	}
	if len(ns) > 0 {
		b.Execute(NewAddNodes(b.doc, ns...))
	}
	return ns, nil
}

// SetProp sets a single property of node id. See SetProp for the accepted
// values.
//
func (b *Bench) SetProp(id ID, name string, value interface{}) error {
	n := b.doc.Node(id)
	if n == nil {
		return errors.Wrapf(ErrUnknownNode, "%s", id)
	}
	p := CloneProps(n.Props)
	if err := SetProp(p, name, value); err != nil {
		return errors.Wrapf(err, "node %s", id)
	}
	b.Execute(&SetProps{ID: id, Old: CloneProps(n.Props), New: p})
	return nil
}

// SetProps replaces all the properties of node id. p must have the same
// concrete type as the node's current properties.
//
func (b *Bench) SetProps(id ID, p Props) error {
	n := b.doc.Node(id)
	if n == nil {
		return errors.Wrapf(ErrUnknownNode, "%s", id)
	}
	if reflect.TypeOf(p) != reflect.TypeOf(n.Props) {
		return errors.Errorf("node %s: cannot use %T as %T", id, p, n.Props)
	}
	p = CloneProps(p)
	if nz, ok := p.(normalizer); ok {
		nz.normalize()
	}
	b.Execute(&SetProps{ID: id, Old: CloneProps(n.Props), New: p})
	return nil
}

// Reset removes all nodes and cables.
//
func (b *Bench) Reset() {
	b.Execute(NewReset(b.doc))
	b.log.Info("document reset")
}

// Load replaces the document with the one read from r. On error, the document
// is left untouched.
//
func (b *Bench) Load(r io.Reader) error {
	src, err := Decode(r)
	if err != nil {
		b.log.Warn("load failed", "error", err)
		return err
	}
	b.Execute(NewLoad(b.doc, src))
	nn, nc := b.doc.Len()
	b.log.Info("document loaded", "nodes", nn, "cables", nc)
	return nil
}

// Save writes the document to w.
//
func (b *Bench) Save(w io.Writer) error {
	return b.doc.Encode(w)
}
