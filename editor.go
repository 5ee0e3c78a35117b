package scenedit

import (
	"fmt"

	"go.uber.org/zap"
)

// Editor is the top-level owner of one editing session: the registry, the
// command history, and the logger, wired together by explicit construction
// rather than ambient globals. The UI and render layers hold a reference
// to the Editor and reach everything through it.
type Editor struct {
	cfg      *Config
	log      *zap.Logger
	registry *Registry
	history  *CommandManager
}

// EditorOption configures the editor during construction.
type EditorOption func(*Editor)

// WithLogger overrides the logger built from the config.
func WithLogger(log *zap.Logger) EditorOption {
	return func(ed *Editor) {
		if log != nil {
			ed.log = log
		}
	}
}

// NewEditor constructs an editor from config. A nil config selects the
// defaults.
func NewEditor(cfg *Config, opts ...EditorOption) (*Editor, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	ed := &Editor{cfg: cfg}
	for _, opt := range opts {
		opt(ed)
	}
	if ed.log == nil {
		log, err := NewLogger(cfg.Logging)
		if err != nil {
			return nil, fmt.Errorf("scenedit: build logger: %w", err)
		}
		ed.log = log
	}
	ed.registry = NewRegistry(ed.log.Named("registry"))
	ed.history = NewCommandManager(ed.registry, cfg.History.MaxDepth, ed.log.Named("history"))
	return ed, nil
}

// Registry exposes the backing entity registry.
func (ed *Editor) Registry() *Registry { return ed.registry }

// History exposes the command manager.
func (ed *Editor) History() *CommandManager { return ed.history }

// Logger exposes the session logger for collaborating subsystems.
func (ed *Editor) Logger() *zap.Logger { return ed.log }

// Config exposes the effective configuration.
func (ed *Editor) Config() *Config { return ed.cfg }

// Do executes a command through the history so it can be undone.
func (ed *Editor) Do(cmd Command) error { return ed.history.Execute(cmd) }

// Undo reverts the most recent edit.
func (ed *Editor) Undo() bool { return ed.history.Undo() }

// Redo re-applies the most recently undone edit.
func (ed *Editor) Redo() bool { return ed.history.Redo() }

// NewScene drops all entities and the full command history, returning the
// session to an empty scene.
func (ed *Editor) NewScene() {
	ed.history.Clear()
	ed.registry.Clear()
}

// Close tears the session down. Sync errors on stderr sinks are expected
// and ignored.
func (ed *Editor) Close() error {
	_ = ed.log.Sync()
	return nil
}
