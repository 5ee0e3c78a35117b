package scenedit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, depth int) (*CommandManager, *Registry) {
	t.Helper()
	r := NewRegistry(nil)
	return NewCommandManager(r, depth, nil), r
}

func TestExecuteRejectsNil(t *testing.T) {
	m, _ := newManager(t, 0)
	require.ErrorIs(t, m.Execute(nil), ErrNilCommand)
	require.False(t, m.CanUndo())
}

func TestExecuteRejectsFailingCommand(t *testing.T) {
	m, r := newManager(t, 0)
	require.NoError(t, m.Execute(NewAddNodeCommand("a", NoEntity)))
	require.NoError(t, m.Execute(NewAddNodeCommand("b", NoEntity)))
	m.Undo()
	require.True(t, m.CanRedo())
	before := r.Len()

	err := m.Execute(NewAddNodeCommand("orphan", Entity(999)))
	require.ErrorIs(t, err, ErrParentNotFound)

	// A rejected command leaves the registry and both stacks untouched.
	require.Equal(t, before, r.Len())
	require.Equal(t, 1, m.UndoDepth())
	require.True(t, m.CanRedo())
}

func TestUndoRedoRestoreState(t *testing.T) {
	m, r := newManager(t, 0)

	require.NoError(t, m.Execute(NewAddNodeCommand("node", NoEntity)))
	require.Equal(t, 1, r.Len())
	require.True(t, m.CanUndo())
	require.False(t, m.CanRedo())

	require.True(t, m.Undo())
	require.Equal(t, 0, r.Len())
	require.False(t, m.CanUndo())
	require.True(t, m.CanRedo())

	require.True(t, m.Redo())
	require.Equal(t, 1, r.Len())
	require.Equal(t, "node", r.Name(r.Roots()[0]))
	require.True(t, m.CanUndo())
	require.False(t, m.CanRedo())
}

func TestUndoRedoOnEmptyStacks(t *testing.T) {
	m, _ := newManager(t, 0)
	require.False(t, m.Undo())
	require.False(t, m.Redo())
}

func TestExecuteClearsRedo(t *testing.T) {
	m, _ := newManager(t, 0)

	require.NoError(t, m.Execute(NewAddNodeCommand("a", NoEntity)))
	require.NoError(t, m.Execute(NewAddNodeCommand("b", NoEntity)))
	m.Undo()
	require.True(t, m.CanRedo())

	require.NoError(t, m.Execute(NewAddNodeCommand("c", NoEntity)))
	require.False(t, m.CanRedo())
	require.False(t, m.Redo())
}

func TestHistoryDepthBound(t *testing.T) {
	const depth = 10
	m, r := newManager(t, depth)

	for i := 0; i < depth+5; i++ {
		require.NoError(t, m.Execute(NewAddNodeCommand(fmt.Sprintf("n%d", i), NoEntity)))
	}
	require.Equal(t, depth, m.UndoDepth())
	require.Equal(t, depth+5, r.Len())

	// Only the newest depth commands can be unwound.
	undone := 0
	for m.Undo() {
		undone++
	}
	require.Equal(t, depth, undone)
	require.Equal(t, 5, r.Len())
}

func TestDefaultDepth(t *testing.T) {
	m, _ := newManager(t, 0)
	require.Equal(t, DefaultHistoryDepth, m.MaxDepth())
	m, _ = newManager(t, -3)
	require.Equal(t, DefaultHistoryDepth, m.MaxDepth())
}

func TestAddUndoRedoScenario(t *testing.T) {
	m, r := newManager(t, 0)
	parent := r.CreateEntity("root")

	require.NoError(t, m.Execute(NewAddNodeCommand("Cube", parent)))
	require.Len(t, r.Children(parent), 1)

	require.True(t, m.Undo())
	require.Empty(t, r.Children(parent))

	require.True(t, m.Redo())
	kids := r.Children(parent)
	require.Len(t, kids, 1)
	require.Equal(t, "Cube", r.Name(kids[0]))

	// And undo works again on the re-created entity's fresh id.
	require.True(t, m.Undo())
	require.Empty(t, r.Children(parent))
	require.Equal(t, 1, r.Len())
}

func TestDeleteUndoScenario(t *testing.T) {
	m, r := newManager(t, 0)
	p := r.CreateEntity("group")
	c1 := r.CreateEntity("left")
	c2 := r.CreateEntity("right")
	r.SetParent(c1, p)
	r.SetParent(c2, p)
	AddComponent(r, c1, NewRenderer(ModelCube))

	require.NoError(t, m.Execute(NewDeleteNodeCommand(p)))
	require.Equal(t, 0, r.Len())

	require.True(t, m.Undo())
	roots := r.Roots()
	require.Len(t, roots, 1)
	require.Equal(t, "group", r.Name(roots[0]))
	kids := r.Children(roots[0])
	require.Len(t, kids, 2)
	require.Equal(t, "left", r.Name(kids[0]))
	require.Equal(t, "right", r.Name(kids[1]))
	require.True(t, HasComponent[Renderer](r, kids[0]))

	// Redo deletes the rebuilt subtree even though its ids changed.
	require.True(t, m.Redo())
	require.Equal(t, 0, r.Len())
	require.True(t, m.Undo())
	require.Equal(t, 3, r.Len())
}

func TestClearEmptiesBothStacks(t *testing.T) {
	m, _ := newManager(t, 0)
	require.NoError(t, m.Execute(NewAddNodeCommand("a", NoEntity)))
	require.NoError(t, m.Execute(NewAddNodeCommand("b", NoEntity)))
	m.Undo()

	m.Clear()
	require.False(t, m.CanUndo())
	require.False(t, m.CanRedo())
	require.Equal(t, 0, m.UndoDepth())
	require.Equal(t, 0, m.RedoDepth())
}
