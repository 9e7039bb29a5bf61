// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package portref parses port references like "psu.power" and link lists
// like "psu.power -> sw.powerIn, sw.powerOut -> led.power".
//
package portref

import (
	"github.com/pkg/errors"
)

// Ref is a reference to a port of a node: node.port.
//
type Ref struct {
	Node string
	Port string
	Pos  int
}

func (r Ref) String() string { return r.Node + "." + r.Port }

// Link is a from -> to pair of port references.
//
type Link struct {
	From Ref
	To   Ref
}

func (l Link) String() string { return l.From.String() + " -> " + l.To.String() }

// Parser is a simplistic parser for link lists.
//
type Parser struct {
	Input string
	l     *lexer
	i     Item
	state int
}

const (
	stateInit = iota
	stateStarted
	stateDone
)

// Next returns the next link in the input. It returns false once the input is
// exhausted or after an error.
//
func (p *Parser) Next() (Link, bool, error) {
	if p.state == stateDone {
		return Link{}, false, nil
	}
	if p.l == nil {
		p.l = newLexer(p.Input)
	}

	p.i = p.l.Lex()
	if p.state == stateInit && p.i.Type == EOF {
		p.state = stateDone
		return Link{}, false, nil
	}
	p.state = stateStarted

	from, err := p.getRef()
	if err != nil {
		p.state = stateDone
		return Link{}, false, err
	}
	if p.i.Type != Arrow {
		p.state = stateDone
		return Link{}, false, parseError(p.Input, p.i.Pos, "expected '->', got "+p.i.String())
	}
	p.i = p.l.Lex()
	to, err := p.getRef()
	if err != nil {
		p.state = stateDone
		return Link{}, false, err
	}
	switch p.i.Type {
	case EOF:
		p.state = stateDone
		fallthrough
	case Comma:
		return Link{from, to}, true, nil
	}
	p.state = stateDone
	return Link{}, false, parseError(p.Input, p.i.Pos, "unexpected "+p.i.String())
}

// getRef parses node.port starting at the current item. On return, the
// current item is the one following the reference.
//
func (p *Parser) getRef() (Ref, error) {
	if p.i.Type != Ident {
		return Ref{}, parseError(p.Input, p.i.Pos, "expected node name")
	}
	r := Ref{Node: p.i.Value, Pos: p.i.Pos}
	p.i = p.l.Lex()
	if p.i.Type != Dot {
		return Ref{}, parseError(p.Input, p.i.Pos, "expected '.' after node name")
	}
	p.i = p.l.Lex()
	if p.i.Type != Ident {
		return Ref{}, parseError(p.Input, p.i.Pos, "expected port name")
	}
	r.Port = p.i.Value
	p.i = p.l.Lex()
	return r, nil
}

// Parse parses a single port reference.
//
func Parse(s string) (Ref, error) {
	p := Parser{Input: s, l: newLexer(s)}
	p.i = p.l.Lex()
	r, err := p.getRef()
	if err != nil {
		return Ref{}, err
	}
	if p.i.Type != EOF {
		return Ref{}, parseError(s, p.i.Pos, "unexpected "+p.i.String())
	}
	return r, nil
}

// ParseLinks parses a comma separated list of links.
//
func ParseLinks(s string) ([]Link, error) {
	var ls []Link
	p := Parser{Input: s}
	for {
		l, ok, err := p.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return ls, nil
		}
		ls = append(ls, l)
	}
}

func parseError(in string, pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}
