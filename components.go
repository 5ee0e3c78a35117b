package scenedit

import (
	"fmt"

	"github.com/goki/mat32"
)

// Transform places an entity in the scene relative to its parent.
// Rotation is Euler angles in degrees. Local and World are cached
// matrices refreshed by UpdateTransforms; Dirty marks Local stale.
type Transform struct {
	Position mat32.Vec3
	Rotation mat32.Vec3
	Scale    mat32.Vec3
	Local    mat32.Mat4
	World    mat32.Mat4
	Dirty    bool
}

// NewTransform returns an identity transform at the origin.
func NewTransform() Transform {
	t := Transform{
		Scale: mat32.NewVec3(1, 1, 1),
		Dirty: true,
	}
	t.Local.SetIdentity()
	t.World.SetIdentity()
	return t
}

// SetPosition moves the transform and marks it dirty.
func (t *Transform) SetPosition(x, y, z float32) {
	t.Position.Set(x, y, z)
	t.Dirty = true
}

// SetRotation sets the Euler rotation in degrees and marks the transform
// dirty.
func (t *Transform) SetRotation(x, y, z float32) {
	t.Rotation.Set(x, y, z)
	t.Dirty = true
}

// SetScale sets the scale and marks the transform dirty.
func (t *Transform) SetScale(x, y, z float32) {
	t.Scale.Set(x, y, z)
	t.Dirty = true
}

// Quat returns the rotation as a quaternion.
func (t *Transform) Quat() mat32.Quat {
	return mat32.NewQuatEuler(t.Rotation.MulScalar(mat32.DegToRadFactor))
}

// UpdateMatrix rebuilds the local matrix from position, rotation and scale
// and clears the dirty flag.
func (t *Transform) UpdateMatrix() {
	t.Local.SetTransform(t.Position, t.Quat(), t.Scale)
	t.Dirty = false
}

// UpdateWorldMatrix composes the world matrix from the parent's world
// matrix and the local matrix. A nil parent means top level.
func (t *Transform) UpdateWorldMatrix(parent *mat32.Mat4) {
	if parent == nil {
		t.World = t.Local
		return
	}
	t.World.MulMatrices(parent, &t.Local)
}

// UpdateTransforms refreshes cached matrices for the whole scene,
// recomputing dirty local matrices and propagating world matrices down the
// hierarchy. Called once per frame before rendering.
func UpdateTransforms(r *Registry) {
	for _, root := range r.Roots() {
		updateTransformTree(r, root, nil)
	}
}

func updateTransformTree(r *Registry, e Entity, parentWorld *mat32.Mat4) {
	world := parentWorld
	if t := GetComponent[Transform](r, e); t != nil {
		if t.Dirty {
			t.UpdateMatrix()
		}
		t.UpdateWorldMatrix(parentWorld)
		world = &t.World
	}
	for _, child := range r.Children(e) {
		updateTransformTree(r, child, world)
	}
}

// ModelKind selects the primitive or mesh a Renderer draws.
type ModelKind int32

const (
	ModelCube ModelKind = iota
	ModelSphere
	ModelPlane
	ModelMesh
)

var modelKindNames = map[ModelKind]string{
	ModelCube:   "cube",
	ModelSphere: "sphere",
	ModelPlane:  "plane",
	ModelMesh:   "mesh",
}

func (k ModelKind) String() string {
	if n, ok := modelKindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("ModelKind(%d)", int32(k))
}

// ParseModelKind maps a model kind name back to its value.
func ParseModelKind(s string) (ModelKind, error) {
	for k, n := range modelKindNames {
		if n == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("scenedit: unknown model kind %q", s)
}

// Renderer makes an entity drawable.
type Renderer struct {
	Visible  bool
	Model    ModelKind
	Mesh     string // resource path, used when Model is ModelMesh
	Material string // resource path, empty for the default material
}

// NewRenderer returns a visible renderer for the given model kind.
func NewRenderer(kind ModelKind) Renderer {
	return Renderer{Visible: true, Model: kind}
}

// Camera projects the scene. At most one camera should have Main set;
// the render layer picks the first it finds.
type Camera struct {
	FOV  float32 // vertical field of view in degrees
	Near float32
	Far  float32
	Main bool
}

// NewCamera returns a camera with conventional defaults.
func NewCamera() Camera {
	return Camera{FOV: 60, Near: 0.1, Far: 1000}
}

// LightKind selects the light model.
type LightKind int32

const (
	LightDirectional LightKind = iota
	LightPoint
	LightSpot
)

var lightKindNames = map[LightKind]string{
	LightDirectional: "directional",
	LightPoint:       "point",
	LightSpot:        "spot",
}

func (k LightKind) String() string {
	if n, ok := lightKindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("LightKind(%d)", int32(k))
}

// ParseLightKind maps a light kind name back to its value.
func ParseLightKind(s string) (LightKind, error) {
	for k, n := range lightKindNames {
		if n == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("scenedit: unknown light kind %q", s)
}

// Light illuminates the scene. Range applies to point and spot lights;
// SpotAngle (degrees) applies to spot lights only.
type Light struct {
	Kind      LightKind
	Color     mat32.Vec3 // linear RGB, 0-1
	Intensity float32
	Range     float32
	SpotAngle float32
}

// NewLight returns a white light of the given kind.
func NewLight(kind LightKind) Light {
	return Light{
		Kind:      kind,
		Color:     mat32.NewVec3(1, 1, 1),
		Intensity: 1,
		Range:     10,
		SpotAngle: 45,
	}
}

// Script attaches named behavior to an entity. The editor only stores the
// identifier and its parameters; execution belongs to the runtime.
type Script struct {
	Name   string
	Params map[string]float32
}

// NewScript returns a script reference with an empty parameter set.
func NewScript(name string) Script {
	return Script{Name: name, Params: make(map[string]float32)}
}
