// Package mesh builds the box and quad primitives of a blockymodel.
package mesh

import (
	"github.com/Faultbox/blockyimport/pkg/blockymodel"
	"github.com/Faultbox/blockyimport/pkg/math"
)

// Face is one quad of a mesh.
type Face struct {
	Indices [4]int           // Vertex indices in loop order
	Name    blockymodel.Face // Box side, or the side a quad faces
}

// Mesh is quad-only geometry with one UV per face loop.
type Mesh struct {
	Name     string
	Vertices []math.Vec3
	Faces    []Face
	UVs      []math.Vec2 // len(Faces)*4, loop order
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns the extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// LoopCount returns the number of face loops, which equals len(UVs).
func (m *Mesh) LoopCount() int {
	return len(m.Faces) * 4
}

// FaceUVs returns the four UVs of face i.
func (m *Mesh) FaceUVs(i int) []math.Vec2 {
	return m.UVs[i*4 : i*4+4]
}

// SetFaceUV assigns the loop UVs of face i.
func (m *Mesh) SetFaceUV(i int, uvs [4]math.Vec2) {
	copy(m.UVs[i*4:i*4+4], uvs[:])
}
