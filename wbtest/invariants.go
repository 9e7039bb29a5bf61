// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wbtest

import (
	"testing"

	"github.com/db47h/wirebench"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// CheckInvariants checks the graph invariants of d:
//
//	- node ids and cable ids are unique
//	- cables connect existing ports, output to input, of the cable's kind
//	- inputs have at most one incoming cable
//	- the cable graph of each signal kind is acyclic
//
// It returns all the violations found.
//
func CheckInvariants(d *wirebench.Document) error {
	var errs *multierror.Error
	nodes := make(map[wirebench.ID]*wirebench.Node)
	for _, n := range d.Nodes() {
		if nodes[n.ID] != nil {
			errs = multierror.Append(errs, errors.Errorf("duplicate node id %s", n.ID))
		}
		nodes[n.ID] = n
	}

	cables := make(map[wirebench.ID]bool)
	into := make(map[wirebench.Endpoint]wirebench.ID)
	for _, c := range d.Cables() {
		if cables[c.ID] {
			errs = multierror.Append(errs, errors.Errorf("duplicate cable id %s", c.ID))
		}
		cables[c.ID] = true
		if prev, ok := into[c.To]; ok {
			errs = multierror.Append(errs, errors.Errorf("input %v fed by cables %s and %s", c.To, prev, c.ID))
		}
		into[c.To] = c.ID

		src, dst := nodes[c.From.Node], nodes[c.To.Node]
		if src == nil || dst == nil {
			errs = multierror.Append(errs, errors.Errorf("cable %s: dangling", c.ID))
			continue
		}
		if p, ok := src.Output(c.From.Port); !ok || p.Kind != c.Kind {
			errs = multierror.Append(errs, errors.Errorf("cable %s: bad source %v", c.ID, c.From))
		}
		if p, ok := dst.Input(c.To.Port); !ok || p.Kind != c.Kind {
			errs = multierror.Append(errs, errors.Errorf("cable %s: bad destination %v", c.ID, c.To))
		}
	}

	for _, k := range wirebench.Kinds() {
		if id, ok := findCycle(d, k); ok {
			errs = multierror.Append(errs, errors.Errorf("%s cycle through node %s", k, id))
		}
	}
	return errs.ErrorOrNil()
}

// findCycle looks for a cycle in the graph of cables of kind k with a
// colored depth first search.
//
func findCycle(d *wirebench.Document, k wirebench.SignalKind) (wirebench.ID, bool) {
	const (
		white = iota
		grey
		black
	)
	adj := make(map[wirebench.ID][]wirebench.ID)
	for _, c := range d.Cables() {
		if c.Kind == k {
			adj[c.From.Node] = append(adj[c.From.Node], c.To.Node)
		}
	}
	color := make(map[wirebench.ID]int)
	var visit func(id wirebench.ID) bool
	visit = func(id wirebench.ID) bool {
		color[id] = grey
		for _, next := range adj[id] {
			switch color[next] {
			case grey:
				return true
			case white:
				if visit(next) {
					return true
				}
			}
		}
		color[id] = black
		return false
	}
	for _, n := range d.Nodes() {
		if color[n.ID] == white && visit(n.ID) {
			return n.ID, true
		}
	}
	return "", false
}

// AssertInvariants fails t if d violates any graph invariant.
//
func AssertInvariants(t testing.TB, d *wirebench.Document) {
	t.Helper()
	if err := CheckInvariants(d); err != nil {
		t.Fatal(err)
	}
}
