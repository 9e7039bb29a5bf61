// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command wirebench builds, inspects and runs wirebench documents.
//
package main

import (
	"io"
	"os"

	"github.com/mitchellh/cli"
)

const version = "0.1.0"

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func realMain(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ui := &cli.BasicUi{Reader: stdin, Writer: stdout, ErrorWriter: stderr}
	m := &meta{ui: ui, logOutput: stderr}

	c := cli.NewCLI("wirebench", version)
	c.Args = args
	c.Commands = commands(m)
	c.HelpWriter = stdout
	c.ErrorWriter = stderr

	code, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	return code
}

func commands(m *meta) map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"new":     func() (cli.Command, error) { return &newCommand{meta: m}, nil },
		"build":   func() (cli.Command, error) { return &buildCommand{meta: m}, nil },
		"check":   func() (cli.Command, error) { return &checkCommand{meta: m}, nil },
		"run":     func() (cli.Command, error) { return &runCommand{meta: m}, nil },
		"set":     func() (cli.Command, error) { return &setCommand{meta: m}, nil },
		"connect": func() (cli.Command, error) { return &connectCommand{meta: m}, nil },
	}
}
