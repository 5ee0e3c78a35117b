package scenedit

import "github.com/jinzhu/copier"

// entitySnapshot is the private payload a delete command keeps so the edit
// stays exactly reversible: metadata, every attached component, and the
// nested snapshots of the subtree destroyed along with the entity.
type entitySnapshot struct {
	Name      string
	Active    bool
	Tags      []string
	Transform *Transform
	Renderer  *Renderer
	Camera    *Camera
	Light     *Light
	Script    *Script
	Children  []*entitySnapshot
}

// snapshotEntity captures a deep copy of the entity's metadata and
// components, recursing over children when withChildren is set. Returns
// nil when the entity does not exist.
func snapshotEntity(r *Registry, e Entity, withChildren bool) *entitySnapshot {
	if !r.Exists(e) {
		return nil
	}
	snap := &entitySnapshot{
		Name:      r.Name(e),
		Active:    r.Active(e),
		Tags:      r.Tags(e),
		Transform: copyComponent[Transform](r, e),
		Renderer:  copyComponent[Renderer](r, e),
		Camera:    copyComponent[Camera](r, e),
		Light:     copyComponent[Light](r, e),
		Script:    copyComponent[Script](r, e),
	}
	if withChildren {
		for _, child := range r.Children(e) {
			if cs := snapshotEntity(r, child, true); cs != nil {
				snap.Children = append(snap.Children, cs)
			}
		}
	}
	return snap
}

// copyComponent returns an owned deep copy of the entity's T, or nil when
// absent.
func copyComponent[T any](r *Registry, e Entity) *T {
	v := GetComponent[T](r, e)
	if v == nil {
		return nil
	}
	out := new(T)
	if err := copier.CopyWithOption(out, v, copier.Option{DeepCopy: true}); err != nil {
		*out = *v
	}
	return out
}

// restore rebuilds the snapshotted entity (and subtree) under parent,
// returning the freshly allocated id. Ids necessarily differ from the
// originals; callers re-capture them.
func (s *entitySnapshot) restore(r *Registry, parent Entity) Entity {
	e := r.CreateEntity(s.Name)
	r.SetActive(e, s.Active)
	for _, tag := range s.Tags {
		r.AddTag(e, tag)
	}
	if s.Transform != nil {
		AddComponent(r, e, *s.Transform)
	}
	if s.Renderer != nil {
		AddComponent(r, e, *s.Renderer)
	}
	if s.Camera != nil {
		AddComponent(r, e, *s.Camera)
	}
	if s.Light != nil {
		AddComponent(r, e, *s.Light)
	}
	if s.Script != nil {
		sc := Script{Name: s.Script.Name, Params: make(map[string]float32, len(s.Script.Params))}
		for k, v := range s.Script.Params {
			sc.Params[k] = v
		}
		AddComponent(r, e, sc)
	}
	if !parent.IsZero() {
		r.SetParent(e, parent)
	}
	for _, child := range s.Children {
		child.restore(r, e)
	}
	return e
}

// clone returns an independent deep copy of the snapshot tree.
func (s *entitySnapshot) clone() *entitySnapshot {
	if s == nil {
		return nil
	}
	out := &entitySnapshot{}
	if err := copier.CopyWithOption(out, s, copier.Option{DeepCopy: true}); err != nil {
		// Fall back to a manual deep copy; copier only fails on
		// invalid inputs, which cannot happen for our own types.
		*out = *s
		out.Tags = append([]string(nil), s.Tags...)
		out.Children = make([]*entitySnapshot, 0, len(s.Children))
		for _, c := range s.Children {
			out.Children = append(out.Children, c.clone())
		}
	}
	return out
}
