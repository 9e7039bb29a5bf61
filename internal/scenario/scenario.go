// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package scenario loads bench descriptions written in HCL and builds them on
// a wirebench.Bench.
//
// A scenario declares nodes, then the cables between them:
//
//	node "psu" {
//	  type  = "PowerSupply"
//	  x     = 0
//	  y     = 0
//	  props = { voltage = 12 }
//	}
//
//	node "led" {
//	  type = "LED"
//	  x    = 200
//	}
//
//	cable {
//	  from = "psu.power"
//	  to   = "led.power"
//	}
//
//	connect = ["a.out -> b.in", "b.out -> c.in, c.out -> d.in"]
//
// Cables declared with connect are created after cable blocks.
//
package scenario

import (
	"encoding/json"
	"sort"

	"github.com/db47h/wirebench"
	"github.com/db47h/wirebench/internal/portref"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

type fileRoot struct {
	Nodes   []*nodeBlock   `hcl:"node,block"`
	Cables  []*cableBlock  `hcl:"cable,block"`
	Connect hcl.Expression `hcl:"connect,optional"`
}

type nodeBlock struct {
	Name  string         `hcl:"name,label"`
	Type  hcl.Expression `hcl:"type"`
	X     float64        `hcl:"x,optional"`
	Y     float64        `hcl:"y,optional"`
	Props hcl.Expression `hcl:"props,optional"`
}

type cableBlock struct {
	From hcl.Expression `hcl:"from"`
	To   hcl.Expression `hcl:"to"`
}

// Node is a node declaration.
//
type Node struct {
	Name  string
	Type  wirebench.NodeType
	X, Y  float64
	Props map[string]interface{}
	Range hcl.Range
}

// Link is a cable declaration.
//
type Link struct {
	From, To portref.Ref
	Range    hcl.Range
}

// Scenario is a parsed scenario file.
//
type Scenario struct {
	Nodes []Node
	Links []Link
}

// Load parses the scenario file at path.
//
func Load(path string) (*Scenario, error) {
	f, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, diags
	}
	return decode(f)
}

// Parse parses a scenario from src. filename is used in error messages.
//
func Parse(src []byte, filename string) (*Scenario, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	return decode(f)
}

func decode(f *hcl.File) (*Scenario, error) {
	var root fileRoot
	diags := gohcl.DecodeBody(f.Body, nil, &root)
	if diags.HasErrors() {
		return nil, diags
	}

	s := new(Scenario)
	seen := make(map[string]hcl.Range)
	for _, nb := range root.Nodes {
		n, ds := decodeNode(nb)
		diags = append(diags, ds...)
		if ds.HasErrors() {
			continue
		}
		if r, ok := seen[n.Name]; ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate node",
				Detail:   "Node " + n.Name + " was already declared at " + r.String() + ".",
				Subject:  n.Range.Ptr(),
			})
			continue
		}
		seen[n.Name] = n.Range
		s.Nodes = append(s.Nodes, n)
	}

	for _, cb := range root.Cables {
		var from, to string
		ds := gohcl.DecodeExpression(cb.From, nil, &from)
		ds = append(ds, gohcl.DecodeExpression(cb.To, nil, &to)...)
		if ds.HasErrors() {
			diags = append(diags, ds...)
			continue
		}
		fr, fds := parseRef(from, cb.From.Range())
		tr, tds := parseRef(to, cb.To.Range())
		diags = append(diags, fds...)
		diags = append(diags, tds...)
		if !fds.HasErrors() && !tds.HasErrors() {
			s.Links = append(s.Links, Link{fr, tr, hcl.RangeBetween(cb.From.Range(), cb.To.Range())})
		}
	}

	var conns []string
	if v, _ := root.Connect.Value(nil); !v.IsNull() {
		diags = append(diags, gohcl.DecodeExpression(root.Connect, nil, &conns)...)
	}
	for _, c := range conns {
		ls, err := portref.ParseLinks(c)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid connection list",
				Detail:   err.Error(),
				Subject:  root.Connect.Range().Ptr(),
			})
			continue
		}
		for _, l := range ls {
			s.Links = append(s.Links, Link{l.From, l.To, root.Connect.Range()})
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return s, nil
}

func decodeNode(nb *nodeBlock) (Node, hcl.Diagnostics) {
	n := Node{Name: nb.Name, X: nb.X, Y: nb.Y, Range: nb.Type.Range()}
	var typ string
	diags := gohcl.DecodeExpression(nb.Type, nil, &typ)
	if diags.HasErrors() {
		return n, diags
	}
	n.Type = wirebench.NodeType(typ)
	if _, ok := wirebench.Lookup(n.Type); !ok {
		return n, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unknown node type",
			Detail:   "Node " + nb.Name + " has unknown type " + typ + ".",
			Subject:  nb.Type.Range().Ptr(),
		})
	}

	v, ds := nb.Props.Value(nil)
	diags = append(diags, ds...)
	if ds.HasErrors() || v.IsNull() {
		return n, diags
	}
	propsErr := &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Invalid props",
		Detail:   "props must be an object of strings, numbers and bools.",
		Subject:  nb.Props.Range().Ptr(),
	}
	if !v.Type().IsObjectType() && !v.Type().IsMapType() {
		return n, append(diags, propsErr)
	}
	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		propsErr.Detail = err.Error()
		return n, append(diags, propsErr)
	}
	if err = json.Unmarshal(b, &n.Props); err != nil {
		propsErr.Detail = err.Error()
		return n, append(diags, propsErr)
	}
	return n, diags
}

func parseRef(s string, r hcl.Range) (portref.Ref, hcl.Diagnostics) {
	ref, err := portref.Parse(s)
	if err != nil {
		return ref, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid port reference",
			Detail:   err.Error(),
			Subject:  r.Ptr(),
		}}
	}
	return ref, nil
}

// PropNames returns the names of the properties set by n, sorted.
//
func (n *Node) PropNames() []string {
	names := make([]string, 0, len(n.Props))
	for k := range n.Props {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
