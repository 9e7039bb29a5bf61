// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wbtest

import (
	"fmt"
	"testing"

	"github.com/db47h/wirebench"
)

// Spawn adds a node of type typ to b, failing t on error.
//
func Spawn(t testing.TB, b *wirebench.Bench, typ wirebench.NodeType, x, y float64) *wirebench.Node {
	t.Helper()
	n, err := b.Spawn(typ, x, y)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

// Connect connects output port from.fromPort to input port to.toPort,
// failing t on error.
//
func Connect(t testing.TB, b *wirebench.Bench, from *wirebench.Node, fromPort string, to *wirebench.Node, toPort string) *wirebench.Cable {
	t.Helper()
	c, err := b.Connect(from.Endpoint(fromPort), to.Endpoint(toPort))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// Op is a random bench operation, for use with testing/quick. The fields
// select the operation and its operands modulo whatever is available.
//
type Op struct {
	Code uint8
	A, B uint16
	C, D uint8
}

func (o Op) String() string {
	return fmt.Sprintf("op%d(%d, %d, %d, %d)", o.Code%opCount, o.A, o.B, o.C, o.D)
}

const opCount = 9

// Apply applies o to b. Rejected operations are not errors: Apply returns true
// if the operation changed the history.
//
func (o Op) Apply(b *wirebench.Bench) bool {
	d := b.Document()
	nodes := d.Nodes()
	pick := func(i uint16) *wirebench.Node {
		if len(nodes) == 0 {
			return nil
		}
		return nodes[int(i)%len(nodes)]
	}
	switch o.Code % opCount {
	case 0, 1:
		ts := wirebench.Types()
		_, err := b.Spawn(ts[int(o.A)%len(ts)].Type, float64(o.C)*10, float64(o.D)*10)
		return err == nil
	case 2, 3:
		src, dst := pick(o.A), pick(o.B)
		if src == nil || len(src.Outputs) == 0 || len(dst.Inputs) == 0 {
			return false
		}
		from := src.Endpoint(src.Outputs[int(o.C)%len(src.Outputs)].Name)
		to := dst.Endpoint(dst.Inputs[int(o.D)%len(dst.Inputs)].Name)
		_, err := b.Connect(from, to)
		return err == nil
	case 4:
		cs := d.Cables()
		if len(cs) > 0 && o.C&1 == 0 {
			return b.Delete(cs[int(o.B)%len(cs)].ID)
		}
		if n := pick(o.A); n != nil {
			return b.Delete(n.ID)
		}
	case 5:
		return b.Undo()
	case 6:
		return b.Redo()
	case 7:
		if n := pick(o.A); n != nil {
			_, err := b.Duplicate([]wirebench.ID{n.ID}, 20, 20)
			return err == nil
		}
	case 8:
		if n := pick(o.A); n != nil {
			if _, err := wirebench.GetProp(n.Props, "on"); err == nil {
				return b.SetProp(n.ID, "on", o.C&1 == 0) == nil
			}
			return b.Move(n.ID, float64(o.C), float64(o.D)) == nil
		}
	}
	return false
}
