package scenedit

// Command is a reversible scene edit. Every structural or property change
// made through the editor is expressed as a Command so the manager can
// replay it in either direction.
//
// A command's payload holds private snapshot data only; it never keeps live
// references into the registry between calls. Apply, Revert and Reapply
// re-resolve entities by id each time, so a command stays valid on a stack
// even after the entities it names have been destroyed and recreated.
type Command interface {
	// Apply performs the forward effect, recording whatever state is
	// needed to reverse it. An error means nothing was mutated.
	Apply(reg *Registry) error

	// Revert undoes the effect captured by Apply.
	Revert(reg *Registry) error

	// Reapply re-performs the forward effect after a Revert. For most
	// commands this matches Apply; delete re-captures the subtree it is
	// about to destroy, since Revert rebuilt it under fresh ids.
	Reapply(reg *Registry) error

	// Release drops payload-owned snapshot data once the command leaves
	// the stacks for good.
	Release()

	// Duplicate returns an independent deep copy. The manager pushes the
	// copy onto the opposite stack during undo/redo while the original is
	// released, so the copy must capture the post-transition payload.
	Duplicate() Command
}

// componentStore is the type-erased face the registry keeps for each
// component type; the typed generic accessors reach the concrete
// storage.Set underneath.
type componentStore interface {
	removeEntity(e Entity) bool
	entities() []Entity
	has(e Entity) bool
	clone(src, dst Entity) error
	clear()
	length() int
}
