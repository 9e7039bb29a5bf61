// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wirebench

// TryConnect checks that a cable can be created from output port from to
// input port to in d and returns it with a fresh ID. The cable is not added
// to d.
//
// The error, if any, is a *ConnectError with one of ErrUnknownEndpoint,
// ErrWrongDirection, ErrIncompatiblePort, ErrInputOccupied or
// ErrCycleDetected as reason.
//
func TryConnect(d *Document, from, to Endpoint) (*Cable, error) {
	c := &Cable{From: from, To: to}
	if err := checkCable(d, c); err != nil {
		return nil, err
	}
	c.ID = newID()
	return c, nil
}

// checkCable checks c against the cables already in d and sets c.Kind. If
// c.Kind is already set, it must match the kind of both ports.
//
func checkCable(d *Document, c *Cable) error {
	fail := func(reason error, want SignalKind) error {
		return &ConnectError{Reason: reason, From: c.From, To: c.To, Want: want}
	}

	src, dst := d.Node(c.From.Node), d.Node(c.To.Node)
	if src == nil || dst == nil {
		return fail(ErrUnknownEndpoint, "")
	}
	op, ok := src.Output(c.From.Port)
	if !ok {
		if _, ok := src.Input(c.From.Port); ok {
			return fail(ErrWrongDirection, "")
		}
		return fail(ErrUnknownEndpoint, "")
	}
	ip, ok := dst.Input(c.To.Port)
	if !ok {
		if _, ok := dst.Output(c.To.Port); ok {
			return fail(ErrWrongDirection, "")
		}
		return fail(ErrUnknownEndpoint, "")
	}
	if op.Kind != ip.Kind {
		return fail(ErrIncompatiblePort, op.Kind)
	}
	if c.Kind != "" && c.Kind != op.Kind {
		return fail(ErrIncompatiblePort, c.Kind)
	}
	if d.Incoming(c.To) != nil {
		return fail(ErrInputOccupied, "")
	}
	if pathExists(d, c.To.Node, c.From.Node, op.Kind) {
		return fail(ErrCycleDetected, "")
	}
	c.Kind = op.Kind
	return nil
}

// pathExists returns true if there is a path of cables of kind k from node
// src to node dst, following cables from output to input.
//
func pathExists(d *Document, src, dst ID, k SignalKind) bool {
	seen := make(map[ID]bool)
	stack := []ID{src}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == dst {
			return true
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		for _, c := range d.cables {
			if c.Kind == k && c.From.Node == id && !seen[c.To.Node] {
				stack = append(stack, c.To.Node)
			}
		}
	}
	return false
}
