// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wirebench

import (
	"github.com/hashicorp/go-hclog"
)

// MaxHistory is the maximum number of commands that can be undone.
//
const MaxHistory = 100

// A Target is what commands operate on.
//
type Target interface {
	MarkDirty()
}

// A Command is a reversible change to a target. Do and Undo must be exact
// inverses: Undo after Do restores the target to its state before Do, and Do
// after Undo reapplies the same change.
//
// Commands carry all the data they need, including what is required to
// revert them, computed when the command is created.
//
type Command[T Target] interface {
	Do(target T)
	Undo(target T)
	String() string
}

// History is a bounded undo/redo log. It only keeps the last MaxHistory
// commands: older commands are silently dropped and can no longer be undone.
//
type History[T Target] struct {
	undo []Command[T]
	redo []Command[T]
	log  hclog.Logger
}

// NewHistory returns a new empty history. If logger is nil, nothing is
// logged.
//
func NewHistory[T Target](logger hclog.Logger) *History[T] {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &History[T]{log: logger}
}

// Execute applies c to target and records it. The redo list is cleared.
//
func (h *History[T]) Execute(target T, c Command[T]) {
	c.Do(target)
	h.undo = append(h.undo, c)
	if len(h.undo) > MaxHistory {
		h.log.Debug("history full, dropping oldest command", "command", h.undo[0].String())
		h.undo[0] = nil
		h.undo = h.undo[1:]
	}
	for i := range h.redo {
		h.redo[i] = nil
	}
	h.redo = h.redo[:0]
	target.MarkDirty()
	h.log.Debug("execute", "command", c.String(), "undo", len(h.undo))
}

// Undo reverts the last executed command. It returns false if there is
// nothing to undo.
//
func (h *History[T]) Undo(target T) bool {
	if len(h.undo) == 0 {
		return false
	}
	c := h.undo[len(h.undo)-1]
	h.undo[len(h.undo)-1] = nil
	h.undo = h.undo[:len(h.undo)-1]
	c.Undo(target)
	h.redo = append(h.redo, c)
	target.MarkDirty()
	h.log.Debug("undo", "command", c.String(), "undo", len(h.undo), "redo", len(h.redo))
	return true
}

// Redo reapplies the last undone command. It returns false if there is
// nothing to redo.
//
func (h *History[T]) Redo(target T) bool {
	if len(h.redo) == 0 {
		return false
	}
	c := h.redo[len(h.redo)-1]
	h.redo[len(h.redo)-1] = nil
	h.redo = h.redo[:len(h.redo)-1]
	c.Do(target)
	h.undo = append(h.undo, c)
	target.MarkDirty()
	h.log.Debug("redo", "command", c.String(), "undo", len(h.undo), "redo", len(h.redo))
	return true
}

// CanUndo returns true if there is a command to undo.
func (h *History[T]) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo returns true if there is a command to redo.
func (h *History[T]) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the number of commands that can be undone and redone.
//
func (h *History[T]) Len() (undo, redo int) { return len(h.undo), len(h.redo) }

// Clear drops all recorded commands.
//
func (h *History[T]) Clear() {
	h.undo, h.redo = nil, nil
}
