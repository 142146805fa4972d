package scene

import (
	"errors"
	"fmt"

	"github.com/Faultbox/blockyimport/internal/mesh"
	"github.com/Faultbox/blockyimport/pkg/math"
)

// ErrInvalidHandle is returned for handles a host never issued, or for
// operations that do not apply to the object kind.
var ErrInvalidHandle = errors.New("invalid handle")

// Kind distinguishes recorded objects.
type Kind int

const (
	KindTransform Kind = iota
	KindMesh
)

func (k Kind) String() string {
	if k == KindMesh {
		return "mesh"
	}
	return "transform"
}

// Object is one host object as seen by a Recorder.
type Object struct {
	Handle   Handle
	Kind     Kind
	Name     string
	Parent   Handle
	InScene  bool
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
	Vertices []math.Vec3
	Faces    []mesh.Face
	UVs      []math.Vec2
}

// Recorder is an in-memory Host. It backs tests and the info command, and
// is the base of the file exporters.
type Recorder struct {
	Objects []*Object
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Get returns the object for h.
func (r *Recorder) Get(h Handle) (*Object, error) {
	if h < 0 || int(h) >= len(r.Objects) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	return r.Objects[h], nil
}

func (r *Recorder) add(o *Object) Handle {
	o.Handle = Handle(len(r.Objects))
	o.Parent = NoHandle
	o.Rotation = math.QuatIdentity()
	o.Scale = math.One
	r.Objects = append(r.Objects, o)
	return o.Handle
}

func (r *Recorder) CreateTransformNode(name string) (Handle, error) {
	return r.add(&Object{Kind: KindTransform, Name: name}), nil
}

func (r *Recorder) CreateMesh(name string, vertices []math.Vec3, faces []mesh.Face) (Handle, error) {
	for i, f := range faces {
		for _, idx := range f.Indices {
			if idx < 0 || idx >= len(vertices) {
				return NoHandle, fmt.Errorf("mesh %s: face %d references vertex %d of %d", name, i, idx, len(vertices))
			}
		}
	}
	return r.add(&Object{
		Kind:     KindMesh,
		Name:     name,
		Vertices: append([]math.Vec3(nil), vertices...),
		Faces:    append([]mesh.Face(nil), faces...),
		UVs:      make([]math.Vec2, len(faces)*4),
	}), nil
}

func (r *Recorder) SetUV(h Handle, loop int, uv math.Vec2) error {
	o, err := r.Get(h)
	if err != nil {
		return err
	}
	if o.Kind != KindMesh {
		return fmt.Errorf("%w: %s is not a mesh", ErrInvalidHandle, o.Name)
	}
	if loop < 0 || loop >= len(o.UVs) {
		return fmt.Errorf("mesh %s: loop %d out of range [0,%d)", o.Name, loop, len(o.UVs))
	}
	o.UVs[loop] = uv
	return nil
}

func (r *Recorder) SetParent(child, parent Handle) error {
	c, err := r.Get(child)
	if err != nil {
		return err
	}
	if _, err := r.Get(parent); err != nil {
		return err
	}
	for p := parent; p != NoHandle; p = r.Objects[p].Parent {
		if p == child {
			return fmt.Errorf("%w: parenting %s would create a cycle", ErrInvalidHandle, c.Name)
		}
	}
	c.Parent = parent
	return nil
}

func (r *Recorder) InsertIntoScene(h Handle) error {
	o, err := r.Get(h)
	if err != nil {
		return err
	}
	o.InScene = true
	return nil
}

func (r *Recorder) SetLocalTransform(h Handle, position math.Vec3, rotation math.Quat, scale math.Vec3) error {
	o, err := r.Get(h)
	if err != nil {
		return err
	}
	o.Position = position
	o.Rotation = rotation
	o.Scale = scale
	return nil
}

// Children returns the objects parented to h, in creation order. Pass
// NoHandle for the top-level objects.
func (r *Recorder) Children(h Handle) []*Object {
	var out []*Object
	for _, o := range r.Objects {
		if o.Parent == h {
			out = append(out, o)
		}
	}
	return out
}

// Count returns the number of objects of kind k.
func (r *Recorder) Count(k Kind) int {
	n := 0
	for _, o := range r.Objects {
		if o.Kind == k {
			n++
		}
	}
	return n
}

// WorldMatrix composes o's local transform with its parents'.
func (r *Recorder) WorldMatrix(o *Object) math.Mat4 {
	m := math.FromTRS(o.Position, o.Rotation, o.Scale)
	for p := o.Parent; p != NoHandle; {
		po := r.Objects[p]
		m = math.FromTRS(po.Position, po.Rotation, po.Scale).Mul(m)
		p = po.Parent
	}
	return m
}
