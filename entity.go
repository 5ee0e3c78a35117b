package scenedit

import "fmt"

// Entity identifies a scene node. Ids are allocated monotonically starting
// at 1 and are never reused for the lifetime of a registry, so a stale id
// held across a delete can never alias a newer entity.
type Entity uint64

// NoEntity is the reserved zero id: "no entity", and the parent of every
// top-level node (the permanent scene root is not itself an entity).
const NoEntity Entity = 0

// IsZero reports whether the identifier is the reserved zero id.
func (e Entity) IsZero() bool {
	return e == NoEntity
}

// String renders the entity identifier for debugging purposes.
func (e Entity) String() string {
	return fmt.Sprintf("Entity(%d)", uint64(e))
}

// metadata is the registry-level per-entity record outside any component
// store.
type metadata struct {
	name   string
	active bool
	tags   []string
}

// hierarchy is the per-entity scene-graph record. children keeps insertion
// order, which the UI relies on for stable tree display.
type hierarchy struct {
	parent   Entity
	children []Entity
}
