// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package scenario

import (
	"github.com/db47h/wirebench"
	"github.com/db47h/wirebench/internal/portref"
	"github.com/hashicorp/hcl/v2"
	"github.com/pkg/errors"
)

// Build creates the nodes and cables of s on b and returns the ID of each node
// by name. Each node, property and cable is a separate command in the bench
// history.
//
// Nodes without a name property are named after their declaration. If any
// step fails, the commands executed so far are undone.
//
func (s *Scenario) Build(b *wirebench.Bench) (map[string]wirebench.ID, error) {
	ids := make(map[string]wirebench.ID, len(s.Nodes))
	done := 0
	fail := func(err error) (map[string]wirebench.ID, error) {
		for ; done > 0; done-- {
			b.Undo()
		}
		return nil, err
	}

	for i := range s.Nodes {
		n := &s.Nodes[i]
		node, err := b.Spawn(n.Type, n.X, n.Y)
		if err != nil {
			return fail(diagError(n.Range, "Cannot create node", err))
		}
		done++
		ids[n.Name] = node.ID
		if _, ok := n.Props["name"]; !ok {
			if err = b.SetProp(node.ID, "name", n.Name); err != nil {
				return fail(err)
			}
			done++
		}
		for _, k := range n.PropNames() {
			if err = b.SetProp(node.ID, k, n.Props[k]); err != nil {
				return fail(diagError(n.Range, "Invalid property", errors.Wrapf(err, "node %s", n.Name)))
			}
			done++
		}
	}

	for _, l := range s.Links {
		from, err := resolve(ids, l.From, l.Range)
		if err != nil {
			return fail(err)
		}
		to, err := resolve(ids, l.To, l.Range)
		if err != nil {
			return fail(err)
		}
		if _, err = b.Connect(from, to); err != nil {
			return fail(diagError(l.Range, "Cannot connect "+l.From.String()+" to "+l.To.String(), err))
		}
		done++
	}
	return ids, nil
}

func resolve(ids map[string]wirebench.ID, r portref.Ref, rng hcl.Range) (wirebench.Endpoint, error) {
	id, ok := ids[r.Node]
	if !ok {
		return wirebench.Endpoint{}, diagError(rng, "Unknown node", errors.Wrapf(wirebench.ErrUnknownNode, "%s", r.Node))
	}
	return wirebench.Endpoint{Node: id, Port: r.Port}, nil
}

// BuildError is a build failure at some location in a scenario file.
//
type BuildError struct {
	Range   hcl.Range
	Summary string
	Err     error
}

func (e *BuildError) Error() string {
	return e.Range.String() + ": " + e.Summary + ": " + e.Err.Error()
}

// Unwrap returns e.Err.
func (e *BuildError) Unwrap() error { return e.Err }

// Diagnostics returns e as HCL diagnostics.
//
func (e *BuildError) Diagnostics() hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  e.Summary,
		Detail:   e.Err.Error(),
		Subject:  e.Range.Ptr(),
	}}
}

func diagError(r hcl.Range, summary string, err error) error {
	return &BuildError{r, summary, err}
}
