// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wirebench

import (
	"encoding/json"
	"io"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type portsJSON struct {
	Inputs  []PortSpec `json:"inputs"`
	Outputs []PortSpec `json:"outputs"`
}

type nodeJSON struct {
	ID       ID              `json:"id"`
	Type     NodeType        `json:"type"`
	X        float64         `json:"x"`
	Y        float64         `json:"y"`
	Rotation float64         `json:"r"`
	Props    json.RawMessage `json:"props,omitempty"`
	Ports    *portsJSON      `json:"ports,omitempty"`
}

// MarshalJSON implements json.Marshaler.
//
func (n *Node) MarshalJSON() ([]byte, error) {
	props, err := json.Marshal(n.Props)
	if err != nil {
		return nil, errors.Wrapf(err, "node %s", n.ID)
	}
	return json.Marshal(&nodeJSON{
		ID:       n.ID,
		Type:     n.Type,
		X:        n.X,
		Y:        n.Y,
		Rotation: n.Rotation,
		Props:    props,
		Ports:    &portsJSON{Inputs: n.Inputs, Outputs: n.Outputs},
	})
}

// UnmarshalJSON implements json.Unmarshaler. Properties missing from the input
// get their default value and unknown properties are ignored. Missing port
// lists are taken from the node type.
//
func (n *Node) UnmarshalJSON(b []byte) error {
	var nj nodeJSON
	if err := json.Unmarshal(b, &nj); err != nil {
		return err
	}
	ts, ok := Lookup(nj.Type)
	if !ok {
		return errors.Wrapf(ErrUnknownType, "node %s: %q", nj.ID, nj.Type)
	}
	props := ts.NewProps()
	if len(nj.Props) > 0 && string(nj.Props) != "null" {
		if err := json.Unmarshal(nj.Props, props); err != nil {
			return errors.Wrapf(err, "node %s: props", nj.ID)
		}
	}
	if nz, ok := props.(normalizer); ok {
		nz.normalize()
	}
	*n = Node{
		ID:       nj.ID,
		Type:     nj.Type,
		X:        nj.X,
		Y:        nj.Y,
		Rotation: nj.Rotation,
		Props:    props,
		Inputs:   append([]PortSpec(nil), ts.Inputs...),
		Outputs:  append([]PortSpec(nil), ts.Outputs...),
	}
	if nj.Ports != nil {
		n.Inputs, n.Outputs = nj.Ports.Inputs, nj.Ports.Outputs
	}
	return nil
}

type documentJSON struct {
	Nodes  []json.RawMessage `json:"nodes"`
	Cables []json.RawMessage `json:"cables"`
	Pan    Point             `json:"pan"`
	Zoom   float64           `json:"zoom"`
}

// Encode writes d to w as indented JSON.
//
func (d *Document) Encode(w io.Writer) error {
	type out struct {
		Nodes  []*Node  `json:"nodes"`
		Cables []*Cable `json:"cables"`
		Pan    Point    `json:"pan"`
		Zoom   float64  `json:"zoom"`
	}
	o := out{Nodes: d.nodes, Cables: d.cables, Pan: d.Pan, Zoom: d.Zoom}
	if o.Nodes == nil {
		o.Nodes = []*Node{}
	}
	if o.Cables == nil {
		o.Cables = []*Cable{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(&o), "encode document")
}

// Decode reads a document from r and validates it. Any error is a
// *DocumentError listing every problem found.
//
// A successfully decoded document reserves all its IDs: IDs allocated later
// by NewNode or TryConnect will not collide with them.
//
func Decode(r io.Reader) (*Document, error) {
	var dj *documentJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&dj); err != nil {
		return nil, &DocumentError{Err: err}
	}
	if dj == nil {
		return nil, &DocumentError{Err: errors.New("document is null")}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &DocumentError{Err: errors.New("trailing data after document")}
	}

	var errs *multierror.Error
	d := NewDocument()
	d.Pan = dj.Pan
	if dj.Zoom > 0 {
		d.Zoom = dj.Zoom
	}

	ids := make(map[ID]bool)
	for i, raw := range dj.Nodes {
		n := new(Node)
		if err := json.Unmarshal(raw, n); err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "nodes[%d]", i))
			continue
		}
		if err := checkNode(n, ids); err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "nodes[%d]", i))
			continue
		}
		ids[n.ID] = true
		d.insertNode(-1, n)
	}

	cids := make(map[ID]bool)
	for i, raw := range dj.Cables {
		c := new(Cable)
		if err := json.Unmarshal(raw, c); err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "cables[%d]", i))
			continue
		}
		switch {
		case c.ID == "":
			errs = multierror.Append(errs, errors.Errorf("cables[%d]: missing id", i))
			continue
		case cids[c.ID]:
			errs = multierror.Append(errs, errors.Errorf("cables[%d]: duplicate id %s", i, c.ID))
			continue
		}
		if err := checkCable(d, c); err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "cables[%d] %s", i, c.ID))
			continue
		}
		cids[c.ID] = true
		d.insertCable(-1, c)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, &DocumentError{Err: err}
	}
	for id := range ids {
		reserveID(id)
	}
	for id := range cids {
		reserveID(id)
	}
	return d, nil
}

func checkNode(n *Node, ids map[ID]bool) error {
	if n.ID == "" {
		return errors.New("missing id")
	}
	if ids[n.ID] {
		return errors.Errorf("duplicate id %s", n.ID)
	}
	var errs *multierror.Error
	check := func(ports []PortSpec, dir Direction) {
		seen := make(map[string]bool)
		for i := range ports {
			p := &ports[i]
			if p.Dir == "" {
				p.Dir = dir
			}
			switch {
			case !p.Kind.Valid():
				errs = multierror.Append(errs, errors.Errorf("port %s: invalid signal kind %q", p.Name, p.Kind))
			case p.Dir != dir:
				errs = multierror.Append(errs, errors.Errorf("port %s: direction %q in %s list", p.Name, p.Dir, dir))
			case seen[p.Name]:
				errs = multierror.Append(errs, errors.Errorf("duplicate port %s", p.Name))
			}
			seen[p.Name] = true
		}
	}
	check(n.Inputs, In)
	check(n.Outputs, Out)
	if err := errs.ErrorOrNil(); err != nil {
		return errors.Wrapf(err, "node %s", n.ID)
	}
	return nil
}
