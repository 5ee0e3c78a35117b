// Package scene round-trips registry state through YAML scene files.
//
// Save walks the hierarchy depth-first from the roots so parents precede
// their children and output is deterministic. Load rebuilds the scene into
// a cleared registry under fresh entity ids and returns the old→new id
// mapping; callers must clear their command history afterwards, since
// stacked commands reference ids from the previous scene. LoadEditor
// bundles the two for editor sessions.
package scene

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/calegray/scenedit"
)

// File is the on-disk scene document.
type File struct {
	Name     string   `yaml:"name,omitempty"`
	Entities []Record `yaml:"entities"`
}

// Record serializes one entity: metadata, hierarchy link, and whichever
// components are attached.
type Record struct {
	ID        uint64           `yaml:"id"`
	Name      string           `yaml:"name"`
	Active    *bool            `yaml:"active,omitempty"`
	Tags      []string         `yaml:"tags,omitempty"`
	Parent    uint64           `yaml:"parent,omitempty"`
	Transform *TransformRecord `yaml:"transform,omitempty"`
	Renderer  *RendererRecord  `yaml:"renderer,omitempty"`
	Camera    *CameraRecord    `yaml:"camera,omitempty"`
	Light     *LightRecord     `yaml:"light,omitempty"`
	Script    *ScriptRecord    `yaml:"script,omitempty"`
}

// Vec3Record keeps the wire format independent of the math library.
type Vec3Record struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

type TransformRecord struct {
	Position Vec3Record `yaml:"position"`
	Rotation Vec3Record `yaml:"rotation"`
	Scale    Vec3Record `yaml:"scale"`
}

type RendererRecord struct {
	Visible  bool   `yaml:"visible"`
	Model    string `yaml:"model"`
	Mesh     string `yaml:"mesh,omitempty"`
	Material string `yaml:"material,omitempty"`
}

type CameraRecord struct {
	FOV  float32 `yaml:"fov"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
	Main bool    `yaml:"main,omitempty"`
}

type LightRecord struct {
	Kind      string     `yaml:"kind"`
	Color     Vec3Record `yaml:"color"`
	Intensity float32    `yaml:"intensity"`
	Range     float32    `yaml:"range,omitempty"`
	SpotAngle float32    `yaml:"spot_angle,omitempty"`
}

type ScriptRecord struct {
	Name   string             `yaml:"name"`
	Params map[string]float32 `yaml:"params,omitempty"`
}

// Snapshot captures the registry into a scene document.
func Snapshot(reg *scenedit.Registry, name string) *File {
	f := &File{Name: name}
	for _, root := range reg.Roots() {
		snapshotTree(reg, root, f)
	}
	return f
}

func snapshotTree(reg *scenedit.Registry, e scenedit.Entity, f *File) {
	f.Entities = append(f.Entities, recordEntity(reg, e))
	for _, child := range reg.Children(e) {
		snapshotTree(reg, child, f)
	}
}

func recordEntity(reg *scenedit.Registry, e scenedit.Entity) Record {
	active := reg.Active(e)
	rec := Record{
		ID:     uint64(e),
		Name:   reg.Name(e),
		Active: &active,
		Tags:   reg.Tags(e),
		Parent: uint64(reg.Parent(e)),
	}
	if t := scenedit.GetComponent[scenedit.Transform](reg, e); t != nil {
		rec.Transform = &TransformRecord{
			Position: vec3Record(t.Position.X, t.Position.Y, t.Position.Z),
			Rotation: vec3Record(t.Rotation.X, t.Rotation.Y, t.Rotation.Z),
			Scale:    vec3Record(t.Scale.X, t.Scale.Y, t.Scale.Z),
		}
	}
	if rd := scenedit.GetComponent[scenedit.Renderer](reg, e); rd != nil {
		rec.Renderer = &RendererRecord{
			Visible:  rd.Visible,
			Model:    rd.Model.String(),
			Mesh:     rd.Mesh,
			Material: rd.Material,
		}
	}
	if c := scenedit.GetComponent[scenedit.Camera](reg, e); c != nil {
		rec.Camera = &CameraRecord{FOV: c.FOV, Near: c.Near, Far: c.Far, Main: c.Main}
	}
	if l := scenedit.GetComponent[scenedit.Light](reg, e); l != nil {
		rec.Light = &LightRecord{
			Kind:      l.Kind.String(),
			Color:     vec3Record(l.Color.X, l.Color.Y, l.Color.Z),
			Intensity: l.Intensity,
			Range:     l.Range,
			SpotAngle: l.SpotAngle,
		}
	}
	if s := scenedit.GetComponent[scenedit.Script](reg, e); s != nil {
		rec.Script = &ScriptRecord{Name: s.Name, Params: s.Params}
	}
	return rec
}

func vec3Record(x, y, z float32) Vec3Record {
	return Vec3Record{X: x, Y: y, Z: z}
}

// Save writes the registry as YAML.
func Save(w io.Writer, reg *scenedit.Registry, name string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Snapshot(reg, name)); err != nil {
		return fmt.Errorf("scene: encode: %w", err)
	}
	return enc.Close()
}

// Load clears the registry and rebuilds the scene from YAML, returning the
// mapping from file ids to the freshly allocated ids.
func Load(r io.Reader, reg *scenedit.Registry) (map[scenedit.Entity]scenedit.Entity, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("scene: decode: %w", err)
	}
	return Apply(&f, reg)
}

// Apply rebuilds the document into a cleared registry.
func Apply(f *File, reg *scenedit.Registry) (map[scenedit.Entity]scenedit.Entity, error) {
	reg.Clear()
	ids := make(map[scenedit.Entity]scenedit.Entity, len(f.Entities))
	for i := range f.Entities {
		rec := &f.Entities[i]
		if _, dup := ids[scenedit.Entity(rec.ID)]; dup {
			return nil, fmt.Errorf("scene: duplicate entity id %d", rec.ID)
		}
		e, err := applyRecord(rec, reg)
		if err != nil {
			return nil, err
		}
		ids[scenedit.Entity(rec.ID)] = e
	}
	// Second pass: parents may appear after children in hand-edited files.
	for i := range f.Entities {
		rec := &f.Entities[i]
		if rec.Parent == 0 {
			continue
		}
		parent, ok := ids[scenedit.Entity(rec.Parent)]
		if !ok {
			return nil, fmt.Errorf("scene: entity %d references unknown parent %d", rec.ID, rec.Parent)
		}
		reg.SetParent(ids[scenedit.Entity(rec.ID)], parent)
	}
	return ids, nil
}

func applyRecord(rec *Record, reg *scenedit.Registry) (scenedit.Entity, error) {
	e := reg.CreateEntity(rec.Name)
	if rec.Active != nil {
		reg.SetActive(e, *rec.Active)
	}
	for _, tag := range rec.Tags {
		reg.AddTag(e, tag)
	}
	if tr := rec.Transform; tr != nil {
		t := scenedit.NewTransform()
		t.SetPosition(tr.Position.X, tr.Position.Y, tr.Position.Z)
		t.SetRotation(tr.Rotation.X, tr.Rotation.Y, tr.Rotation.Z)
		t.SetScale(tr.Scale.X, tr.Scale.Y, tr.Scale.Z)
		scenedit.AddComponent(reg, e, t)
	}
	if rd := rec.Renderer; rd != nil {
		kind, err := scenedit.ParseModelKind(rd.Model)
		if err != nil {
			return 0, fmt.Errorf("scene: entity %d: %w", rec.ID, err)
		}
		scenedit.AddComponent(reg, e, scenedit.Renderer{
			Visible:  rd.Visible,
			Model:    kind,
			Mesh:     rd.Mesh,
			Material: rd.Material,
		})
	}
	if c := rec.Camera; c != nil {
		scenedit.AddComponent(reg, e, scenedit.Camera{FOV: c.FOV, Near: c.Near, Far: c.Far, Main: c.Main})
	}
	if l := rec.Light; l != nil {
		kind, err := scenedit.ParseLightKind(l.Kind)
		if err != nil {
			return 0, fmt.Errorf("scene: entity %d: %w", rec.ID, err)
		}
		light := scenedit.NewLight(kind)
		light.Color.Set(l.Color.X, l.Color.Y, l.Color.Z)
		light.Intensity = l.Intensity
		light.Range = l.Range
		light.SpotAngle = l.SpotAngle
		scenedit.AddComponent(reg, e, light)
	}
	if s := rec.Script; s != nil {
		sc := scenedit.NewScript(s.Name)
		for k, v := range s.Params {
			sc.Params[k] = v
		}
		scenedit.AddComponent(reg, e, sc)
	}
	return e, nil
}

// SaveFile writes the registry to a YAML file at path.
func SaveFile(path string, reg *scenedit.Registry, name string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("scene: create %s: %w", path, err)
	}
	defer f.Close()
	if err := Save(f, reg, name); err != nil {
		return err
	}
	return f.Close()
}

// LoadFile rebuilds the registry from a YAML file at path.
func LoadFile(path string, reg *scenedit.Registry) (map[scenedit.Entity]scenedit.Entity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f, reg)
}

// LoadEditor rebuilds the editor's registry from the file at path and
// clears the command history, whose entries reference ids from the
// previous scene. The history is cleared even on a failed load: Apply may
// already have rebuilt part of the registry by the time it errors.
func LoadEditor(path string, ed *scenedit.Editor) (map[scenedit.Entity]scenedit.Entity, error) {
	ids, err := LoadFile(path, ed.Registry())
	ed.History().Clear()
	return ids, err
}
