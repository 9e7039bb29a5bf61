package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/wirebench"
	"github.com/db47h/wirebench/wbtest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const lampSrc = `
node "psu" {
  type  = "PowerSupply"
  props = { voltage = 5 }
}

node "sw" {
  type = "Switch"
  x    = 200
}

node "split" {
  type = "Splitter"
  x    = 400
}

node "led1" {
  type  = "LED"
  x     = 600
  props = { name = "status" }
}

node "led2" {
  type = "LED"
  x    = 600
  y    = 100
}

cable {
  from = "psu.power"
  to   = "sw.powerIn"
}

connect = [
  "sw.powerOut -> split.in",
  "split.a -> led1.power, split.b -> led2.power",
]
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(lampSrc), "lamp.hcl")
	require.NoError(t, err)
	require.Len(t, s.Nodes, 5)
	require.Len(t, s.Links, 4)
	require.Equal(t, wirebench.PowerSupply, s.Nodes[0].Type)
	require.Equal(t, map[string]interface{}{"voltage": 5.0}, s.Nodes[0].Props)
	require.Equal(t, 200.0, s.Nodes[1].X)
	require.Equal(t, "split.a -> led1.power", s.Links[2].From.String()+" -> "+s.Links[2].To.String())
	require.Equal(t, "lamp.hcl", s.Links[0].Range.Filename)
}

func TestBuild(t *testing.T) {
	s, err := Parse([]byte(lampSrc), "lamp.hcl")
	require.NoError(t, err)
	b := wirebench.New()
	ids, err := s.Build(b)
	require.NoError(t, err)
	require.Len(t, ids, 5)
	wbtest.AssertInvariants(t, b.Document())

	d := b.Document()
	require.Equal(t, "status", d.Node(ids["led1"]).Props.DisplayName())
	require.Equal(t, "led2", d.Node(ids["led2"]).Props.DisplayName())

	_, ok := b.Settle(10)
	require.True(t, ok)
	sig := b.Signals()
	require.True(t, sig.State(ids["led1"]).Lit)
	require.True(t, sig.State(ids["led2"]).Lit)
	require.Equal(t, wirebench.PowerSignal{On: true, Voltage: 5}, sig.Power(wirebench.Endpoint{Node: ids["split"], Port: "b"}))

	// the whole build can be undone
	for b.Undo() {
	}
	nn, nc := d.Len()
	require.Zero(t, nn)
	require.Zero(t, nc)
}

func TestParse_errors(t *testing.T) {
	td := []struct {
		name, src, msg string
	}{
		{"syntax", `node "a" {`, "Unclosed"},
		{"missing type", `node "a" {}`, "type"},
		{"unknown type", `node "a" { type = "Toaster" }`, "Unknown node type"},
		{"duplicate", "node \"a\" { type = \"LED\" }\nnode \"a\" { type = \"LED\" }", "Duplicate node"},
		{"bad props", `node "a" {
  type  = "LED"
  props = "loud"
}`, "Invalid props"},
		{"bad ref", `cable {
  from = "a"
  to   = "b.power"
}`, "Invalid port reference"},
		{"bad connect", `connect = ["a.b c.d"]`, "Invalid connection list"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := Parse([]byte(d.src), "bad.hcl")
			require.Error(t, err)
			require.Contains(t, err.Error(), d.msg)
		})
	}
}

func TestBuild_errors(t *testing.T) {
	td := []struct {
		name, src string
		reason    error
	}{
		{"unknown prop", `node "a" {
  type  = "LED"
  props = { color = "red" }
}`, wirebench.ErrUnknownProp},
		{"unknown node", `node "a" { type = "LED" }
connect = ["b.power -> a.power"]`, wirebench.ErrUnknownNode},
		{"cycle", `node "a" { type = "Switch" }
node "b" { type = "Switch" }
connect = ["a.powerOut -> b.powerIn", "b.powerOut -> a.powerIn"]`, wirebench.ErrCycleDetected},
		{"kind", `node "mb" { type = "Motherboard" }
node "led" { type = "LED" }
connect = ["mb.video -> led.power"]`, wirebench.ErrIncompatiblePort},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			s, err := Parse([]byte(d.src), "bad.hcl")
			require.NoError(t, err)
			b := wirebench.New()
			_, err = s.Build(b)
			require.Error(t, err)
			require.True(t, errors.Is(err, d.reason), "got %v", err)
			var be *BuildError
			require.True(t, errors.As(err, &be))
			require.Equal(t, "bad.hcl", be.Range.Filename)
			require.NotEmpty(t, be.Diagnostics())

			// rolled back
			nn, nc := b.Document().Len()
			require.Zero(t, nn)
			require.Zero(t, nc)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lamp.hcl")
	require.NoError(t, os.WriteFile(path, []byte(lampSrc), 0o644))
	s, err := Load(path)
	require.NoError(t, err)
	require.Len(t, s.Nodes, 5)
}
