// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"flag"
	"io"
	"os"
	"strings"

	"github.com/db47h/wirebench"
	"github.com/db47h/wirebench/internal/config"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/pkg/errors"
)

// meta holds the state and flags shared by all commands.
//
type meta struct {
	ui        cli.Ui
	logOutput io.Writer

	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
	log hclog.Logger
}

const globalHelp = `
Global options:

  -config=FILE       HCL configuration file.
  -log-level=LEVEL   Log level: trace, debug, info, warn or error.
  -log-format=FMT    Log format: text or json.
`

// flagSet returns a new flag set with the global flags.
//
func (m *meta) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&m.configPath, "config", "", "")
	fs.StringVar(&m.logLevel, "log-level", "", "")
	fs.StringVar(&m.logFormat, "log-format", "", "")
	return fs
}

// setup loads the configuration, applies the flag overrides and creates the
// logger. It must be called after parsing the flags.
//
func (m *meta) setup() error {
	cfg := config.Default()
	if m.configPath != "" {
		c, err := config.Load(m.configPath)
		if err != nil {
			return errors.Wrap(err, "load configuration")
		}
		cfg = c
	}
	if m.logLevel != "" {
		cfg.LogLevel = m.logLevel
	}
	if m.logFormat != "" {
		cfg.LogFormat = m.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.cfg = cfg
	m.log = cfg.Logger("wirebench", &hclog.LoggerOptions{Output: m.logOutput})
	return nil
}

// parse parses args with fs and runs setup. On error, it prints the error and
// the command help and returns false.
//
func (m *meta) parse(fs *flag.FlagSet, args []string, help string) bool {
	if err := fs.Parse(args); err != nil {
		m.ui.Error(err.Error())
		m.ui.Error(help)
		return false
	}
	if err := m.setup(); err != nil {
		m.ui.Error(err.Error())
		return false
	}
	return true
}

func (m *meta) newBench() *wirebench.Bench {
	return wirebench.New(wirebench.WithLogger(m.log))
}

// loadBench returns a new bench with the document at path loaded.
//
func (m *meta) loadBench(path string) (*wirebench.Bench, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b := m.newBench()
	if err = b.Load(f); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return b, nil
}

// saveBench writes the document of b to path, or to the standard output if
// path is empty or "-".
//
func (m *meta) saveBench(b *wirebench.Bench, path string) error {
	if path == "" || path == "-" {
		var sb strings.Builder
		if err := b.Save(&sb); err != nil {
			return err
		}
		m.ui.Output(strings.TrimRight(sb.String(), "\n"))
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = b.Save(f); err != nil {
		f.Close()
		return errors.Wrap(err, path)
	}
	return f.Close()
}

// findNode returns the node with the given ID or, failing that, the only node
// with the given display name.
//
func findNode(d *wirebench.Document, ref string) (*wirebench.Node, error) {
	if n := d.Node(wirebench.ID(ref)); n != nil {
		return n, nil
	}
	var found *wirebench.Node
	for _, n := range d.Nodes() {
		if n.Props.DisplayName() != ref {
			continue
		}
		if found != nil {
			return nil, errors.Errorf("node name %q is ambiguous, use the node id", ref)
		}
		found = n
	}
	if found == nil {
		return nil, errors.Wrapf(wirebench.ErrUnknownNode, "%s", ref)
	}
	return found, nil
}
