package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/wirebench"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/require"
)

const lamp = `
node "psu" {
  type = "PowerSupply"
}

node "sw" {
  type = "Switch"
  x    = 200
}

node "led" {
  type = "LED"
  x    = 400
}

connect = ["psu.power -> sw.powerIn, sw.powerOut -> led.power"]
`

func testMeta() (*meta, *cli.MockUi) {
	ui := cli.NewMockUi()
	return &meta{ui: ui, logOutput: io.Discard}, ui
}

func buildLamp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "lamp.hcl")
	out := filepath.Join(dir, "lamp.json")
	require.NoError(t, os.WriteFile(src, []byte(lamp), 0o644))
	m, ui := testMeta()
	code := (&buildCommand{meta: m}).Run([]string{"-o", out, src})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	return out
}

func TestNew(t *testing.T) {
	m, ui := testMeta()
	require.Equal(t, 0, (&newCommand{meta: m}).Run(nil))
	d, err := wirebench.Decode(strings.NewReader(ui.OutputWriter.String()))
	require.NoError(t, err)
	nn, nc := d.Len()
	require.Zero(t, nn)
	require.Zero(t, nc)
}

func TestBuildCheckRun(t *testing.T) {
	out := buildLamp(t)

	m, ui := testMeta()
	require.Equal(t, 0, (&checkCommand{meta: m}).Run([]string{out}))
	require.Contains(t, ui.OutputWriter.String(), "ok, 3 nodes, 2 cables")

	m, ui = testMeta()
	require.Equal(t, 0, (&runCommand{meta: m}).Run([]string{"-ticks", "3", out}))
	o := ui.OutputWriter.String()
	require.Contains(t, o, "(3 ticks)")
	require.Contains(t, o, "led [LED")
	require.Contains(t, o, "lit: true")
	require.Contains(t, o, "powerOut: on 12V")
}

func TestSetConnect(t *testing.T) {
	out := buildLamp(t)

	m, ui := testMeta()
	require.Equal(t, 0, (&setCommand{meta: m}).Run([]string{out, "sw", "on", "false"}), ui.ErrorWriter.String())
	require.Contains(t, ui.OutputWriter.String(), ".on = false")

	m, ui = testMeta()
	require.Equal(t, 0, (&runCommand{meta: m}).Run([]string{out}))
	require.Contains(t, ui.OutputWriter.String(), "lit: false")

	m, ui = testMeta()
	require.Equal(t, 1, (&setCommand{meta: m}).Run([]string{out, "sw", "bogus", "1"}))
	require.Contains(t, ui.ErrorWriter.String(), "no such property")

	m, ui = testMeta()
	require.Equal(t, 1, (&connectCommand{meta: m}).Run([]string{out, "sw.powerOut", "led.power"}))
	require.Contains(t, ui.ErrorWriter.String(), "input already connected")

	m, ui = testMeta()
	require.Equal(t, 1, (&connectCommand{meta: m}).Run([]string{out, "led.power", "psu.power"}))
	require.Contains(t, ui.ErrorWriter.String(), "connect output to input")

	m, _ = testMeta()
	b, err := m.loadBench(out)
	require.NoError(t, err)
	psu, err := findNode(b.Document(), "psu")
	require.NoError(t, err)
	_, err = b.Spawn(wirebench.LED, 0, 0)
	require.NoError(t, err)
	require.NoError(t, b.SetProp(b.Document().Selection()[0], "name", "led2"))
	require.NoError(t, m.saveBench(b, out))

	m, ui = testMeta()
	require.Equal(t, 0, (&connectCommand{meta: m}).Run([]string{out, string(psu.ID) + ".power", "led2.power"}), ui.ErrorWriter.String())
	m, ui = testMeta()
	require.Equal(t, 0, (&checkCommand{meta: m}).Run([]string{out}))
	require.Contains(t, ui.OutputWriter.String(), "ok, 4 nodes, 3 cables")
}

func TestCheck_errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"nodes":[{"id":"a","type":"Toaster"},{"type":"LED"}]}`), 0o644))
	m, ui := testMeta()
	require.Equal(t, 1, (&checkCommand{meta: m}).Run([]string{path}))
	require.Contains(t, ui.ErrorWriter.String(), "2 problem(s) found")
	require.Contains(t, ui.ErrorWriter.String(), "unknown node type")
}

func TestGlobalFlags(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "wirebench.hcl")
	require.NoError(t, os.WriteFile(cfg, []byte("ticks = 1\nlog_level = \"debug\"\n"), 0o644))
	out := buildLamp(t)

	var logs bytes.Buffer
	ui := cli.NewMockUi()
	m := &meta{ui: ui, logOutput: &logs}
	require.Equal(t, 0, (&runCommand{meta: m}).Run([]string{"-config", cfg, "-log-format", "json", out}))
	require.Contains(t, ui.OutputWriter.String(), "(1 ticks)")
	require.Contains(t, logs.String(), `"@level":"debug"`)

	m, ui = testMeta()
	require.Equal(t, 1, (&runCommand{meta: m}).Run([]string{"-log-level", "loud", out}))
	require.Contains(t, ui.ErrorWriter.String(), "invalid log_level")
}

func TestRealMain(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, realMain([]string{"new"}, nil, &stdout, &stderr))
	require.Contains(t, stdout.String(), `"zoom": 1`)

	stdout.Reset()
	realMain([]string{"-help"}, nil, &stdout, &stderr)
	require.Contains(t, stdout.String()+stderr.String(), "connect")
}
