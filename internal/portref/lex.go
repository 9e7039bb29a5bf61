// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package portref

import (
	"unicode"
	"unicode/utf8"
)

// Token types.
//
const (
	EOF Type = iota
	Raw
	Ident
	Dot
	Arrow
	Comma
)

// Type is the type of a lexical item.
//
type Type int

var typeNames = [...]string{
	EOF:   "end of input",
	Raw:   "character",
	Ident: "identifier",
	Dot:   "'.'",
	Arrow: "'->'",
	Comma: "','",
}

func (t Type) String() string { return typeNames[t] }

// Item is a lexical item.
//
type Item struct {
	Type  Type
	Value string
	Pos   int
}

func (i Item) String() string {
	switch i.Type {
	case Ident, Raw:
		return i.Type.String() + " " + i.Value
	}
	return i.Type.String()
}

const eof = -1

// stateFn is a lexer state. It returns the next state or nil to restart from
// lexInit.
//
type stateFn func(l *lexer) stateFn

type lexer struct {
	input string
	start int // start of current item
	pos   int // position after current rune
	width int
	items []Item
	state stateFn
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

// Lex returns the next item.
//
func (l *lexer) Lex() Item {
	for len(l.items) == 0 {
		s := l.state
		if s == nil {
			s = lexInit
		}
		l.state = s(l)
	}
	i := l.items[0]
	l.items = l.items[1:]
	return i
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += w
	l.width = w
	return r
}

func (l *lexer) backup() { l.pos -= l.width }

func (l *lexer) emit(t Type) {
	l.items = append(l.items, Item{t, l.input[l.start:l.pos], l.start})
	l.start = l.pos
}

func (l *lexer) ignore() { l.start = l.pos }

func lexInit(l *lexer) stateFn {
	r := l.next()
	switch {
	case r == eof:
		return lexEOF
	case unicode.IsSpace(r):
		for unicode.IsSpace(r) {
			r = l.next()
		}
		l.backup()
		l.ignore()
	case isIdent(r):
		return lexIdent
	case r == '.':
		l.emit(Dot)
	case r == ',':
		l.emit(Comma)
	case r == '-':
		if l.next() == '>' {
			l.emit(Arrow)
			break
		}
		l.backup()
		fallthrough
	default:
		l.emit(Raw)
		return lexEOF
	}
	return nil
}

// node ids are base 36 numbers, so identifiers may start with a digit.
func isIdent(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func lexIdent(l *lexer) stateFn {
	r := l.next()
	for isIdent(r) || r == '-' && l.peekIdent() {
		r = l.next()
	}
	l.backup()
	l.emit(Ident)
	return nil
}

// peekIdent returns true if the rune after the current one can be part of an
// identifier. It distinguishes "a-b" from "a->b".
//
func (l *lexer) peekIdent() bool {
	if l.pos >= len(l.input) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return isIdent(r)
}

// lexEOF places the lexer in End-Of-File state.
// Once in this state, the lexer will only emit EOF.
//
func lexEOF(l *lexer) stateFn {
	l.start = l.pos
	l.items = append(l.items, Item{EOF, "", l.pos})
	return lexEOF
}
