// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the wirebench command line configuration file.
//
// The file is written in HCL:
//
//	log_level     = "debug"
//	log_format    = "json"
//	ticks         = 20
//	tick_interval = "250ms"
//
package config

import (
	"time"

	"github.com/hashicorp/go-hclog"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
)

// Log formats.
//
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the command line configuration.
//
type Config struct {
	LogLevel     string `hcl:"log_level,optional"`
	LogFormat    string `hcl:"log_format,optional"`
	Ticks        int    `hcl:"ticks,optional"`
	TickInterval string `hcl:"tick_interval,optional"`

	interval time.Duration
}

// Default returns the default configuration.
//
func Default() *Config {
	return &Config{
		LogLevel:     "warn",
		LogFormat:    FormatText,
		Ticks:        10,
		TickInterval: "0s",
	}
}

// Load reads the configuration file at path. Settings missing from the file
// keep their default value.
//
func Load(path string) (*Config, error) {
	f, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, diags
	}
	return decode(f)
}

// Parse parses a configuration from src. filename is only used in error
// messages.
//
func Parse(src []byte, filename string) (*Config, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	return decode(f)
}

func decode(f *hcl.File) (*Config, error) {
	c := Default()
	if diags := gohcl.DecodeBody(f.Body, nil, c); diags.HasErrors() {
		return nil, diags
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the configuration values.
//
func (c *Config) Validate() error {
	var errs *multierror.Error
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		errs = multierror.Append(errs, errors.Errorf("invalid log_level %q", c.LogLevel))
	}
	switch c.LogFormat {
	case FormatText, FormatJSON:
	default:
		errs = multierror.Append(errs, errors.Errorf("invalid log_format %q", c.LogFormat))
	}
	if c.Ticks < 0 {
		errs = multierror.Append(errs, errors.Errorf("ticks must be positive, got %d", c.Ticks))
	}
	d, err := time.ParseDuration(c.TickInterval)
	switch {
	case err != nil:
		errs = multierror.Append(errs, errors.Wrap(err, "invalid tick_interval"))
	case d < 0:
		errs = multierror.Append(errs, errors.Errorf("tick_interval must be positive, got %v", d))
	default:
		c.interval = d
	}
	return errs.ErrorOrNil()
}

// Interval returns the parsed tick interval. It is only valid after a
// successful call to Validate.
//
func (c *Config) Interval() time.Duration { return c.interval }

// SetInterval sets the tick interval.
//
func (c *Config) SetInterval(d time.Duration) {
	c.interval = d
	c.TickInterval = d.String()
}

// Logger returns a new logger configured according to c.
//
func (c *Config) Logger(name string, opts *hclog.LoggerOptions) hclog.Logger {
	if opts == nil {
		opts = &hclog.LoggerOptions{}
	}
	o := *opts
	o.Name = name
	o.Level = hclog.LevelFromString(c.LogLevel)
	o.JSONFormat = c.LogFormat == FormatJSON
	return hclog.New(&o)
}
