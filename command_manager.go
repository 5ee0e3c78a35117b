package scenedit

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultHistoryDepth bounds the undo stack when no explicit depth is
// configured.
const DefaultHistoryDepth = 100

// CommandManager drives every scene edit through bounded undo/redo stacks.
// Executing a new command invalidates any redo history; exceeding the
// configured depth evicts the oldest undo entry.
//
// On each undo/redo transition the command that moves to the opposite
// stack is a fresh duplicate taken after the transition ran, not the
// original object: payloads may hold ids (a re-created entity, say) that
// only become valid once Revert or Reapply has run, so the copy must
// capture the post-transition state.
type CommandManager struct {
	reg      *Registry
	log      *zap.Logger
	maxDepth int
	undo     []Command
	redo     []Command
}

// NewCommandManager constructs a manager bound to the registry. maxDepth
// <= 0 selects DefaultHistoryDepth; a nil logger is replaced with a no-op
// logger.
func NewCommandManager(reg *Registry, maxDepth int, log *zap.Logger) *CommandManager {
	if maxDepth <= 0 {
		maxDepth = DefaultHistoryDepth
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CommandManager{reg: reg, log: log, maxDepth: maxDepth}
}

// Execute applies the command and pushes it onto the undo stack. A nil
// command or one whose Apply fails is rejected with a logged error and no
// stack or registry change. Any redo history is cleared: a new forward
// action invalidates it.
func (m *CommandManager) Execute(cmd Command) error {
	if cmd == nil {
		m.log.Error("rejecting nil command")
		return ErrNilCommand
	}
	if err := cmd.Apply(m.reg); err != nil {
		m.log.Error("rejecting command", zap.Error(err))
		return fmt.Errorf("execute: %w", err)
	}
	m.clearRedo()
	m.undo = append(m.undo, cmd)
	if len(m.undo) > m.maxDepth {
		oldest := m.undo[0]
		oldest.Release()
		copy(m.undo, m.undo[1:])
		m.undo[len(m.undo)-1] = nil
		m.undo = m.undo[:len(m.undo)-1]
		m.log.Debug("evicted oldest undo entry", zap.Int("max_depth", m.maxDepth))
	}
	return nil
}

// Undo reverts the most recent command and moves a post-revert copy onto
// the redo stack. Returns false when there is nothing to undo.
func (m *CommandManager) Undo() bool {
	n := len(m.undo)
	if n == 0 {
		return false
	}
	cmd := m.undo[n-1]
	m.undo[n-1] = nil
	m.undo = m.undo[:n-1]
	if err := cmd.Revert(m.reg); err != nil {
		m.log.Error("undo failed", zap.Error(err))
	}
	m.redo = append(m.redo, cmd.Duplicate())
	cmd.Release()
	return true
}

// Redo re-applies the most recently undone command and moves a
// post-reapply copy back onto the undo stack. Returns false when there is
// nothing to redo.
func (m *CommandManager) Redo() bool {
	n := len(m.redo)
	if n == 0 {
		return false
	}
	cmd := m.redo[n-1]
	m.redo[n-1] = nil
	m.redo = m.redo[:n-1]
	if err := cmd.Reapply(m.reg); err != nil {
		m.log.Error("redo failed", zap.Error(err))
	}
	m.undo = append(m.undo, cmd.Duplicate())
	cmd.Release()
	return true
}

// CanUndo reports whether an undo entry is available; drives UI affordances.
func (m *CommandManager) CanUndo() bool { return len(m.undo) > 0 }

// CanRedo reports whether a redo entry is available.
func (m *CommandManager) CanRedo() bool { return len(m.redo) > 0 }

// UndoDepth reports how many commands the undo stack holds.
func (m *CommandManager) UndoDepth() int { return len(m.undo) }

// RedoDepth reports how many commands the redo stack holds.
func (m *CommandManager) RedoDepth() int { return len(m.redo) }

// MaxDepth reports the configured undo-stack bound.
func (m *CommandManager) MaxDepth() int { return m.maxDepth }

// Clear releases every command on both stacks and empties them. Called on
// scene load/unload, since stacked commands reference ids meaningful only
// within one scene's lifetime.
func (m *CommandManager) Clear() {
	for _, cmd := range m.undo {
		cmd.Release()
	}
	m.undo = nil
	m.clearRedo()
}

func (m *CommandManager) clearRedo() {
	for _, cmd := range m.redo {
		cmd.Release()
	}
	m.redo = nil
}
