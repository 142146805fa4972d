package mesh

import (
	gomath "math"

	"github.com/Faultbox/blockyimport/pkg/blockymodel"
	"github.com/Faultbox/blockyimport/pkg/math"
)

// Normal returns the unit normal of face i from its first three vertices.
// A face with no area, such as the sides of a zero-thickness box, gets the
// axis of its face name instead.
func (m *Mesh) Normal(i int) math.Vec3 {
	f := m.Faces[i]
	v0 := m.Vertices[f.Indices[0]]
	e1 := m.Vertices[f.Indices[1]].Sub(v0)
	e2 := m.Vertices[f.Indices[2]].Sub(v0)
	n := e1.Cross(e2)
	if n.Length() < 1e-12 {
		return FaceNormal(f.Name)
	}
	return n.Normalize()
}

// EdgeSize measures face i from its edges: width runs from loop 0 to loop 3,
// height from loop 0 to loop 1.
func (m *Mesh) EdgeSize(i int) (w, h float32) {
	idx := m.Faces[i].Indices
	v0 := m.Vertices[idx[0]]
	return m.Vertices[idx[3]].Distance(v0), m.Vertices[idx[1]].Distance(v0)
}

// Bounds returns the bounding box of all vertices.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	return b
}

// Transform returns a copy of the mesh with every vertex moved by mat.
func (m *Mesh) Transform(mat math.Mat4) *Mesh {
	out := &Mesh{
		Name:     m.Name,
		Vertices: make([]math.Vec3, len(m.Vertices)),
		Faces:    append([]Face(nil), m.Faces...),
		UVs:      append([]math.Vec2(nil), m.UVs...),
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = mat.TransformVec3(v)
	}
	return out
}

var faceNormals = [...]math.Vec3{
	blockymodel.North: {X: 0, Y: 0, Z: -1},
	blockymodel.East:  {X: 1, Y: 0, Z: 0},
	blockymodel.South: {X: 0, Y: 0, Z: 1},
	blockymodel.West:  {X: -1, Y: 0, Z: 0},
	blockymodel.Down:  {X: 0, Y: -1, Z: 0},
	blockymodel.Up:    {X: 0, Y: 1, Z: 0},
}

// FaceNormal returns the outward axis of a box face in model space.
func FaceNormal(f blockymodel.Face) math.Vec3 {
	return faceNormals[f]
}

// FaceByNormal names the box face whose axis dominates n. Ties resolve to
// the Z axis.
func FaceByNormal(n math.Vec3) blockymodel.Face {
	ax := gomath.Abs(float64(n.X))
	ay := gomath.Abs(float64(n.Y))
	az := gomath.Abs(float64(n.Z))

	switch {
	case ax > ay && ax > az:
		if n.X > 0 {
			return blockymodel.East
		}
		return blockymodel.West
	case ay > ax && ay > az:
		if n.Y > 0 {
			return blockymodel.Up
		}
		return blockymodel.Down
	default:
		if n.Z > 0 {
			return blockymodel.South
		}
		return blockymodel.North
	}
}
