package scenedit

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"

	"github.com/calegray/scenedit/storage"
)

// Registry owns all entity state: id allocation, one sparse set per
// component type, per-entity metadata, and the parent/child hierarchy.
// It is single-threaded by design — one editor action runs to completion
// before the next is processed — so there is no internal locking.
//
// Every operation is total over entity ids: an id that does not currently
// exist yields nil/false/no-op responses, never a panic, since the UI
// routinely holds selections across deletes.
type Registry struct {
	log    *zap.Logger
	next   Entity
	meta   map[Entity]*metadata
	tree   map[Entity]*hierarchy
	stores map[reflect.Type]componentStore
}

// NewRegistry constructs an empty registry. A nil logger is replaced with
// a no-op logger so library use stays silent.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		log:    log,
		next:   1,
		meta:   make(map[Entity]*metadata),
		tree:   make(map[Entity]*hierarchy),
		stores: make(map[reflect.Type]componentStore),
	}
}

// CreateEntity allocates the next id with default metadata: the given name
// (or "Entity_<id>" when blank), active, no tags, no parent, no children.
// No components are attached; call sites choose what to add.
func (r *Registry) CreateEntity(name string) Entity {
	e := r.next
	r.next++
	if name == "" {
		name = fmt.Sprintf("Entity_%d", uint64(e))
	}
	r.meta[e] = &metadata{name: name, active: true}
	r.tree[e] = &hierarchy{}
	return e
}

// Exists reports whether the id names a live entity.
func (r *Registry) Exists(e Entity) bool {
	_, ok := r.meta[e]
	return ok
}

// DestroyEntity removes the entity, all of its components, and its entire
// subtree, children first. No-op when the entity does not exist, so a
// second destroy of the same id is harmless.
func (r *Registry) DestroyEntity(e Entity) {
	rec, ok := r.tree[e]
	if !ok {
		return
	}
	for _, child := range slices.Clone(rec.children) {
		r.DestroyEntity(child)
	}
	if p, ok := r.tree[rec.parent]; ok {
		p.children = slices.DeleteFunc(p.children, func(c Entity) bool { return c == e })
	}
	for _, store := range r.stores {
		store.removeEntity(e)
	}
	delete(r.meta, e)
	delete(r.tree, e)
}

// Len reports the number of live entities.
func (r *Registry) Len() int {
	return len(r.meta)
}

// Entities returns every live entity in ascending id order.
func (r *Registry) Entities() []Entity {
	out := make([]Entity, 0, len(r.meta))
	for e := range r.meta {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// Clear destroys all entities and components. Id allocation keeps counting
// up, so ids from before the clear stay unique.
func (r *Registry) Clear() {
	for _, store := range r.stores {
		store.clear()
	}
	r.meta = make(map[Entity]*metadata)
	r.tree = make(map[Entity]*hierarchy)
}

// ── Metadata ──────────────────────────────────────────────────────

// Name returns the display name, or "" for a missing entity.
func (r *Registry) Name(e Entity) string {
	if m, ok := r.meta[e]; ok {
		return m.name
	}
	return ""
}

// SetName updates the display name; no-op on a missing entity.
func (r *Registry) SetName(e Entity, name string) {
	if m, ok := r.meta[e]; ok {
		m.name = name
	}
}

// Active reports the enabled flag; false for a missing entity.
func (r *Registry) Active(e Entity) bool {
	if m, ok := r.meta[e]; ok {
		return m.active
	}
	return false
}

// SetActive updates the enabled flag; no-op on a missing entity.
func (r *Registry) SetActive(e Entity, active bool) {
	if m, ok := r.meta[e]; ok {
		m.active = active
	}
}

// Tags returns a copy of the entity's tags in insertion order.
func (r *Registry) Tags(e Entity) []string {
	if m, ok := r.meta[e]; ok {
		return slices.Clone(m.tags)
	}
	return nil
}

// HasTag reports whether the entity carries the tag.
func (r *Registry) HasTag(e Entity, tag string) bool {
	m, ok := r.meta[e]
	return ok && slices.Contains(m.tags, tag)
}

// AddTag appends the tag if not already present.
func (r *Registry) AddTag(e Entity, tag string) {
	if m, ok := r.meta[e]; ok && !slices.Contains(m.tags, tag) {
		m.tags = append(m.tags, tag)
	}
}

// RemoveTag drops the tag if present.
func (r *Registry) RemoveTag(e Entity, tag string) {
	if m, ok := r.meta[e]; ok {
		m.tags = slices.DeleteFunc(m.tags, func(t string) bool { return t == tag })
	}
}

// ── Hierarchy ─────────────────────────────────────────────────────

// SetParent moves the entity under newParent (NoEntity detaches it to the
// top level). Rejected with a false return when the entity is the zero id,
// names itself, does not exist, when newParent is a missing entity, or
// when the move would make the entity its own ancestor.
func (r *Registry) SetParent(e, newParent Entity) bool {
	if e.IsZero() || e == newParent {
		return false
	}
	rec, ok := r.tree[e]
	if !ok {
		return false
	}
	if !newParent.IsZero() {
		if _, ok := r.tree[newParent]; !ok {
			return false
		}
		if r.isDescendant(newParent, e) {
			r.log.Warn("rejecting cyclic reparent",
				zap.Uint64("entity", uint64(e)),
				zap.Uint64("new_parent", uint64(newParent)))
			return false
		}
	}
	if p, ok := r.tree[rec.parent]; ok {
		p.children = slices.DeleteFunc(p.children, func(c Entity) bool { return c == e })
	}
	rec.parent = newParent
	if !newParent.IsZero() {
		np := r.tree[newParent]
		np.children = append(np.children, e)
	}
	return true
}

// isDescendant reports whether e sits somewhere below ancestor.
func (r *Registry) isDescendant(e, ancestor Entity) bool {
	for cur := e; !cur.IsZero(); {
		rec, ok := r.tree[cur]
		if !ok {
			return false
		}
		if rec.parent == ancestor {
			return true
		}
		cur = rec.parent
	}
	return false
}

// Parent returns the entity's parent, or NoEntity for top-level or missing
// entities.
func (r *Registry) Parent(e Entity) Entity {
	if rec, ok := r.tree[e]; ok {
		return rec.parent
	}
	return NoEntity
}

// Children returns a copy of the entity's children in insertion order.
func (r *Registry) Children(e Entity) []Entity {
	if rec, ok := r.tree[e]; ok {
		return slices.Clone(rec.children)
	}
	return nil
}

// Root walks the parent chain to the topmost entity above e.
func (r *Registry) Root(e Entity) Entity {
	rec, ok := r.tree[e]
	if !ok {
		return NoEntity
	}
	for !rec.parent.IsZero() {
		e = rec.parent
		rec = r.tree[e]
	}
	return e
}

// Path returns the chain of entities from the root down to e inclusive.
func (r *Registry) Path(e Entity) []Entity {
	if !r.Exists(e) {
		return nil
	}
	var path []Entity
	for cur := e; !cur.IsZero(); cur = r.tree[cur].parent {
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}

// Roots returns all top-level entities (parent NoEntity) in ascending id
// order.
func (r *Registry) Roots() []Entity {
	var out []Entity
	for e, rec := range r.tree {
		if rec.parent.IsZero() {
			out = append(out, e)
		}
	}
	slices.Sort(out)
	return out
}

// copyComponents deep-copies every component attached to src onto dst.
func (r *Registry) copyComponents(src, dst Entity) error {
	for _, store := range r.stores {
		if err := store.clone(src, dst); err != nil {
			return err
		}
	}
	return nil
}

// ── Typed component access ────────────────────────────────────────

// typedStore adapts one storage.Set to the registry's type-erased store
// contract.
type typedStore[T any] struct {
	set *storage.Set[Entity, T]
}

func (s *typedStore[T]) removeEntity(e Entity) bool { return s.set.Remove(e) }
func (s *typedStore[T]) entities() []Entity         { return s.set.Keys() }
func (s *typedStore[T]) has(e Entity) bool          { return s.set.Has(e) }
func (s *typedStore[T]) clear()                     { s.set.Clear() }
func (s *typedStore[T]) length() int                { return s.set.Len() }

func (s *typedStore[T]) clone(src, dst Entity) error {
	v := s.set.Get(src)
	if v == nil {
		return nil
	}
	var out T
	if err := copier.CopyWithOption(&out, v, copier.Option{DeepCopy: true}); err != nil {
		return fmt.Errorf("scenedit: clone component: %w", err)
	}
	s.set.Add(dst, out)
	return nil
}

var _ componentStore = (*typedStore[struct{}])(nil)

// storeFor returns the sparse set for component type T, creating it lazily
// on first use.
func storeFor[T any](r *Registry) *typedStore[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if s, ok := r.stores[key]; ok {
		return s.(*typedStore[T])
	}
	ts := &typedStore[T]{set: storage.NewSet[Entity, T]()}
	r.stores[key] = ts
	return ts
}

// AddComponent attaches value to the entity, overwriting any existing T.
// Returns nil when the entity does not exist. The pointer addresses store
// memory and stays valid only until the next structural change to the
// T store.
func AddComponent[T any](r *Registry, e Entity, value T) *T {
	if !r.Exists(e) {
		return nil
	}
	return storeFor[T](r).set.Add(e, value)
}

// GetComponent returns the entity's T, or nil when the entity or the
// component is absent.
func GetComponent[T any](r *Registry, e Entity) *T {
	return storeFor[T](r).set.Get(e)
}

// HasComponent reports whether the entity has a T attached.
func HasComponent[T any](r *Registry, e Entity) bool {
	return storeFor[T](r).set.Has(e)
}

// RemoveComponent detaches the entity's T; no-op when absent.
func RemoveComponent[T any](r *Registry, e Entity) {
	storeFor[T](r).set.Remove(e)
}

// EntitiesWith returns a snapshot of every entity carrying a T, safe to
// iterate while the caller mutates the store.
func EntitiesWith[T any](r *Registry) []Entity {
	return storeFor[T](r).set.Keys()
}

// EntitiesWithAll returns every entity carrying both T1 and T2, iterating
// the smaller store and filtering by the other.
func EntitiesWithAll[T1, T2 any](r *Registry) []Entity {
	a := storeFor[T1](r)
	b := storeFor[T2](r)
	if b.length() < a.length() {
		var out []Entity
		for _, e := range b.entities() {
			if a.has(e) {
				out = append(out, e)
			}
		}
		return out
	}
	var out []Entity
	for _, e := range a.entities() {
		if b.has(e) {
			out = append(out, e)
		}
	}
	return out
}
