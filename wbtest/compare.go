// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package wbtest provides utility functions for testing benches.
//
package wbtest

import (
	"testing"

	"github.com/db47h/wirebench"
	"github.com/google/go-cmp/cmp"
)

// Snapshot is the persistent content of a document in a form suitable for
// comparisons.
//
type Snapshot struct {
	Nodes  []*wirebench.Node
	Cables []*wirebench.Cable
	Pan    wirebench.Point
	Zoom   float64
}

// Snap returns a snapshot of d. The nodes and cables are deep copies.
//
func Snap(d *wirebench.Document) Snapshot {
	s := Snapshot{Pan: d.Pan, Zoom: d.Zoom}
	for _, n := range d.Nodes() {
		c := *n
		c.Props = wirebench.CloneProps(n.Props)
		c.Inputs = append([]wirebench.PortSpec(nil), n.Inputs...)
		c.Outputs = append([]wirebench.PortSpec(nil), n.Outputs...)
		s.Nodes = append(s.Nodes, &c)
	}
	for _, c := range d.Cables() {
		cc := *c
		s.Cables = append(s.Cables, &cc)
	}
	return s
}

// CompareDocument fails t if the content of d differs from want.
//
func CompareDocument(t testing.TB, want Snapshot, d *wirebench.Document) {
	t.Helper()
	if diff := cmp.Diff(want, Snap(d)); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

// Equal returns true if the content of d is equal to s.
//
func (s Snapshot) Equal(d *wirebench.Document) bool {
	return cmp.Equal(s, Snap(d))
}
