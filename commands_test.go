package scenedit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddNodeCommand(t *testing.T) {
	r := NewRegistry(nil)
	p := r.CreateEntity("parent")

	cmd := NewAddNodeCommand("Cube", p)
	require.NoError(t, cmd.Apply(r))

	children := r.Children(p)
	require.Len(t, children, 1)
	e := children[0]
	require.Equal(t, "Cube", r.Name(e))
	require.True(t, HasComponent[Transform](r, e), "new nodes carry a default transform")

	require.NoError(t, cmd.Revert(r))
	require.False(t, r.Exists(e))
	require.Empty(t, r.Children(p))

	require.NoError(t, cmd.Reapply(r))
	children = r.Children(p)
	require.Len(t, children, 1)
	require.NotEqual(t, e, children[0], "reapply allocates a fresh id")
	require.Equal(t, "Cube", r.Name(children[0]))
}

func TestAddNodeCommandMissingParent(t *testing.T) {
	r := NewRegistry(nil)
	cmd := NewAddNodeCommand("Cube", Entity(42))
	require.ErrorIs(t, cmd.Apply(r), ErrParentNotFound)
	require.Equal(t, 0, r.Len())
}

func TestDeleteNodeCommandRestoresSubtree(t *testing.T) {
	r := NewRegistry(nil)
	p := r.CreateEntity("P")
	c := r.CreateEntity("C")
	r.SetParent(c, p)
	AddComponent(r, p, NewTransform())
	light := NewLight(LightPoint)
	light.Intensity = 2.5
	AddComponent(r, c, light)
	r.AddTag(c, "fx")
	r.SetActive(c, false)

	cmd := NewDeleteNodeCommand(p)
	require.NoError(t, cmd.Apply(r))
	require.False(t, r.Exists(p))
	require.False(t, r.Exists(c))
	require.Equal(t, 0, r.Len())

	require.NoError(t, cmd.Revert(r))
	roots := r.Roots()
	require.Len(t, roots, 1)
	np := roots[0]
	require.Equal(t, "P", r.Name(np))
	require.True(t, HasComponent[Transform](r, np))

	kids := r.Children(np)
	require.Len(t, kids, 1)
	nc := kids[0]
	require.Equal(t, "C", r.Name(nc))
	require.False(t, r.Active(nc))
	require.Equal(t, []string{"fx"}, r.Tags(nc))
	nl := GetComponent[Light](r, nc)
	require.NotNil(t, nl)
	require.InDelta(t, 2.5, nl.Intensity, 1e-6)

	// Reapply must delete the rebuilt subtree, not the stale ids.
	require.NoError(t, cmd.Reapply(r))
	require.Equal(t, 0, r.Len())
}

func TestDeleteNodeCommandRejectsRoot(t *testing.T) {
	r := NewRegistry(nil)
	cmd := NewDeleteNodeCommand(NoEntity)
	require.ErrorIs(t, cmd.Apply(r), ErrDeleteRoot)
}

func TestDeleteNodeCommandMissingEntity(t *testing.T) {
	r := NewRegistry(nil)
	cmd := NewDeleteNodeCommand(Entity(7))
	require.ErrorIs(t, cmd.Apply(r), ErrEntityNotFound)
}

func TestRenameCommand(t *testing.T) {
	r := NewRegistry(nil)
	e := r.CreateEntity("old")

	cmd := NewRenameCommand(e, "new")
	require.NoError(t, cmd.Apply(r))
	require.Equal(t, "new", r.Name(e))

	require.NoError(t, cmd.Revert(r))
	require.Equal(t, "old", r.Name(e))

	require.NoError(t, cmd.Reapply(r))
	require.Equal(t, "new", r.Name(e))
}

func TestDuplicateNodeCommand(t *testing.T) {
	r := NewRegistry(nil)
	p := r.CreateEntity("parent")
	src := r.CreateEntity("lamp")
	r.SetParent(src, p)
	r.AddTag(src, "fx")
	AddComponent(r, src, NewTransform())
	sc := NewScript("flicker")
	sc.Params["speed"] = 2
	AddComponent(r, src, sc)

	cmd := NewDuplicateNodeCommand(src)
	require.NoError(t, cmd.Apply(r))

	kids := r.Children(p)
	require.Len(t, kids, 2)
	dup := kids[1]
	require.NotEqual(t, src, dup)
	require.Equal(t, "lamp", r.Name(dup))
	require.Equal(t, []string{"fx"}, r.Tags(dup))
	require.True(t, HasComponent[Transform](r, dup))

	// The copy's script params must be independent of the source's.
	dupScript := GetComponent[Script](r, dup)
	require.NotNil(t, dupScript)
	require.InDelta(t, 2, dupScript.Params["speed"], 1e-6)
	dupScript.Params["speed"] = 9
	require.InDelta(t, 2, GetComponent[Script](r, src).Params["speed"], 1e-6)

	require.NoError(t, cmd.Revert(r))
	require.False(t, r.Exists(dup))
	require.True(t, r.Exists(src))
}

func TestSetTransformCommand(t *testing.T) {
	r := NewRegistry(nil)
	e := r.CreateEntity("e")
	AddComponent(r, e, NewTransform())

	next := NewTransform()
	next.SetPosition(1, 2, 3)
	next.SetRotation(0, 90, 0)

	cmd := NewSetTransformCommand(e, next)
	require.NoError(t, cmd.Apply(r))
	got := GetComponent[Transform](r, e)
	require.InDelta(t, 1, got.Position.X, 1e-6)
	require.InDelta(t, 90, got.Rotation.Y, 1e-6)
	require.True(t, got.Dirty)

	require.NoError(t, cmd.Revert(r))
	got = GetComponent[Transform](r, e)
	require.InDelta(t, 0, got.Position.X, 1e-6)
	require.InDelta(t, 0, got.Rotation.Y, 1e-6)

	require.NoError(t, cmd.Reapply(r))
	require.InDelta(t, 3, GetComponent[Transform](r, e).Position.Z, 1e-6)
}

func TestSetTransformCommandMissingComponent(t *testing.T) {
	r := NewRegistry(nil)
	e := r.CreateEntity("e")
	cmd := NewSetTransformCommand(e, NewTransform())
	require.ErrorIs(t, cmd.Apply(r), ErrMissingTransform)
}

func TestCommandDuplicateIsIndependent(t *testing.T) {
	r := NewRegistry(nil)
	p := r.CreateEntity("P")
	c := r.CreateEntity("C")
	r.SetParent(c, p)
	r.AddTag(c, "fx")

	cmd := NewDeleteNodeCommand(p)
	require.NoError(t, cmd.Apply(r))

	cp := cmd.Duplicate().(*deleteNodeCommand)
	orig := cmd.(*deleteNodeCommand)
	require.NotSame(t, orig.Snapshot, cp.Snapshot)
	require.Equal(t, orig.Snapshot.Name, cp.Snapshot.Name)

	// Mutating the copy's payload must not leak into the original.
	cp.Snapshot.Children[0].Tags[0] = "changed"
	require.Equal(t, "fx", orig.Snapshot.Children[0].Tags[0])
}
