// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/db47h/wirebench"
	"github.com/db47h/wirebench/internal/portref"
	"github.com/db47h/wirebench/internal/scenario"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/xlab/treeprint"
)

type newCommand struct {
	*meta
}

func (c *newCommand) Run(args []string) int {
	var out string
	fs := c.flagSet("new")
	fs.StringVar(&out, "o", "", "")
	if !c.parse(fs, args, c.Help()) {
		return 1
	}
	if err := c.saveBench(c.newBench(), out); err != nil {
		c.ui.Error(err.Error())
		return 1
	}
	return 0
}

func (c *newCommand) Synopsis() string { return "Create an empty document" }

func (c *newCommand) Help() string {
	return strings.TrimSpace(`
Usage: wirebench new [options]

  Writes an empty document.

Options:

  -o=FILE   Output file. Defaults to the standard output.
` + globalHelp)
}

type buildCommand struct {
	*meta
}

func (c *buildCommand) Run(args []string) int {
	var out string
	fs := c.flagSet("build")
	fs.StringVar(&out, "o", "", "")
	if !c.parse(fs, args, c.Help()) {
		return 1
	}
	if fs.NArg() != 1 {
		c.ui.Error(c.Help())
		return 1
	}
	s, err := scenario.Load(fs.Arg(0))
	if err != nil {
		c.ui.Error(err.Error())
		return 1
	}
	b := c.newBench()
	ids, err := s.Build(b)
	if err != nil {
		c.ui.Error(err.Error())
		return 1
	}
	c.log.Info("scenario built", "file", fs.Arg(0), "nodes", len(ids))
	if err = c.saveBench(b, out); err != nil {
		c.ui.Error(err.Error())
		return 1
	}
	return 0
}

func (c *buildCommand) Synopsis() string { return "Build a document from a scenario file" }

func (c *buildCommand) Help() string {
	return strings.TrimSpace(`
Usage: wirebench build [options] SCENARIO

  Builds the HCL scenario file SCENARIO and writes the resulting document.

Options:

  -o=FILE   Output file. Defaults to the standard output.
` + globalHelp)
}

type checkCommand struct {
	*meta
}

func (c *checkCommand) Run(args []string) int {
	fs := c.flagSet("check")
	if !c.parse(fs, args, c.Help()) {
		return 1
	}
	if fs.NArg() != 1 {
		c.ui.Error(c.Help())
		return 1
	}
	b, err := c.loadBench(fs.Arg(0))
	if err != nil {
		var me *multierror.Error
		if errors.As(err, &me) {
			c.ui.Error(fmt.Sprintf("%s: %d problem(s) found", fs.Arg(0), len(me.Errors)))
			for _, e := range me.Errors {
				c.ui.Error("  " + e.Error())
			}
		} else {
			c.ui.Error(err.Error())
		}
		return 1
	}
	nn, nc := b.Document().Len()
	c.ui.Output(fmt.Sprintf("%s: ok, %d nodes, %d cables", fs.Arg(0), nn, nc))
	return 0
}

func (c *checkCommand) Synopsis() string { return "Validate a document" }

func (c *checkCommand) Help() string {
	return strings.TrimSpace(`
Usage: wirebench check [options] FILE

  Checks that FILE is a valid document and lists all the problems found.
` + globalHelp)
}

type runCommand struct {
	*meta
}

func (c *runCommand) Run(args []string) int {
	var (
		ticks    int
		interval time.Duration
	)
	fs := c.flagSet("run")
	fs.IntVar(&ticks, "ticks", -1, "")
	fs.DurationVar(&interval, "interval", -1, "")
	if !c.parse(fs, args, c.Help()) {
		return 1
	}
	if fs.NArg() != 1 {
		c.ui.Error(c.Help())
		return 1
	}
	if ticks < 0 {
		ticks = c.cfg.Ticks
	}
	if interval < 0 {
		interval = c.cfg.Interval()
	}
	b, err := c.loadBench(fs.Arg(0))
	if err != nil {
		c.ui.Error(err.Error())
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err = run(ctx, b, ticks, interval); err != nil {
		c.log.Warn("run interrupted", "ticks", b.Ticks(), "error", err)
	}
	c.ui.Output(stateTree(fs.Arg(0), b))
	return 0
}

// run runs ticks ticks on b, waiting interval between ticks.
//
func run(ctx context.Context, b *wirebench.Bench, ticks int, interval time.Duration) error {
	if interval <= 0 {
		for i := 0; i < ticks; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			b.Tick()
		}
		return nil
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for i := 0; i < ticks; i++ {
		b.Tick()
		if i == ticks-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	return nil
}

// stateTree renders the signals and state of every node of b.
//
func stateTree(title string, b *wirebench.Bench) string {
	s := b.Signals()
	tree := treeprint.NewWithRoot(fmt.Sprintf("%s (%d ticks)", title, b.Ticks()))
	for _, n := range b.Document().Nodes() {
		br := tree.AddBranch(fmt.Sprintf("%s [%s %s]", n.Props.DisplayName(), n.Type, n.ID))
		for _, o := range n.Outputs {
			ep := n.Endpoint(o.Name)
			switch o.Kind {
			case wirebench.Power:
				br.AddNode(o.Name + ": " + s.Power(ep).String())
			case wirebench.Video:
				br.AddNode(o.Name + ": " + s.Video(ep).String())
			case wirebench.Data:
				if d, ok := s.Data(ep); ok {
					br.AddNode(o.Name + ": " + d.String())
				} else {
					br.AddNode(o.Name + ": none")
				}
			}
		}
		st := s.State(n.ID)
		switch n.Type {
		case wirebench.Screen:
			if st.Screen == "" {
				st.Screen = wirebench.ScreenOff
			}
			l := "screen: " + string(st.Screen)
			if st.Display != "" {
				l += " " + st.Display
			}
			if st.Image != "" {
				l += " " + st.Image
			}
			br.AddNode(l)
		case wirebench.LED:
			br.AddNode(fmt.Sprintf("lit: %v", st.Lit))
		}
	}
	return strings.TrimRight(tree.String(), "\n")
}

func (c *runCommand) Synopsis() string { return "Run a document and print the node states" }

func (c *runCommand) Help() string {
	return strings.TrimSpace(`
Usage: wirebench run [options] FILE

  Loads FILE, runs the simulation and prints the state of every node.

Options:

  -ticks=N       Number of ticks to run. Defaults to the configured value.
  -interval=D    Wait D between ticks, like "250ms". Zero runs at full speed.
` + globalHelp)
}

type setCommand struct {
	*meta
}

func (c *setCommand) Run(args []string) int {
	fs := c.flagSet("set")
	if !c.parse(fs, args, c.Help()) {
		return 1
	}
	if fs.NArg() != 4 {
		c.ui.Error(c.Help())
		return 1
	}
	file, node, prop, value := fs.Arg(0), fs.Arg(1), fs.Arg(2), fs.Arg(3)
	b, err := c.loadBench(file)
	if err != nil {
		c.ui.Error(err.Error())
		return 1
	}
	n, err := findNode(b.Document(), node)
	if err != nil {
		c.ui.Error(err.Error())
		return 1
	}
	if err = b.SetProp(n.ID, prop, value); err != nil {
		c.ui.Error(err.Error())
		return 1
	}
	if err = c.saveBench(b, file); err != nil {
		c.ui.Error(err.Error())
		return 1
	}
	v, _ := wirebench.GetProp(b.Document().Node(n.ID).Props, prop)
	c.ui.Output(fmt.Sprintf("%s.%s = %v", n.ID, prop, v))
	return 0
}

func (c *setCommand) Synopsis() string { return "Set a node property" }

func (c *setCommand) Help() string {
	return strings.TrimSpace(`
Usage: wirebench set [options] FILE NODE PROP VALUE

  Sets property PROP of node NODE to VALUE and saves FILE. NODE is a node id
  or a unique node name.
` + globalHelp)
}

type connectCommand struct {
	*meta
}

func (c *connectCommand) Run(args []string) int {
	fs := c.flagSet("connect")
	if !c.parse(fs, args, c.Help()) {
		return 1
	}
	if fs.NArg() != 3 {
		c.ui.Error(c.Help())
		return 1
	}
	file := fs.Arg(0)
	b, err := c.loadBench(file)
	if err != nil {
		c.ui.Error(err.Error())
		return 1
	}
	var eps [2]wirebench.Endpoint
	for i, arg := range fs.Args()[1:] {
		r, err := portref.Parse(arg)
		if err != nil {
			c.ui.Error(err.Error())
			return 1
		}
		n, err := findNode(b.Document(), r.Node)
		if err != nil {
			c.ui.Error(err.Error())
			return 1
		}
		eps[i] = n.Endpoint(r.Port)
	}
	cable, err := b.Connect(eps[0], eps[1])
	if err != nil {
		c.ui.Error(err.Error())
		return 1
	}
	if err = c.saveBench(b, file); err != nil {
		c.ui.Error(err.Error())
		return 1
	}
	c.ui.Output(fmt.Sprintf("cable %s: %v -> %v", cable.ID, cable.From, cable.To))
	return 0
}

func (c *connectCommand) Synopsis() string { return "Connect two ports" }

func (c *connectCommand) Help() string {
	return strings.TrimSpace(`
Usage: wirebench connect [options] FILE FROM TO

  Connects output port FROM to input port TO and saves FILE. Ports are
  written NODE.PORT where NODE is a node id or a unique node name.
` + globalHelp)
}
