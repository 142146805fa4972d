package mesh

import (
	"github.com/Faultbox/blockyimport/internal/uvmap"
	"github.com/Faultbox/blockyimport/pkg/blockymodel"
	"github.com/Faultbox/blockyimport/pkg/math"
)

// boxCorners are the unit cube corners scaled by half the box size.
var boxCorners = [8]math.Vec3{
	{X: -1, Y: -1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: 1, Y: 1, Z: -1},
	{X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: 1},
	{X: 1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: 1},
}

// boxFaces wind counter-clockwise seen from outside. Each face starts at the
// corner that takes the atlas bottom-left so that loop 0->3 spans the face
// width and loop 0->1 its height, as sized by uvmap.FaceSize.
var boxFaces = [6][4]int{
	blockymodel.North: {0, 3, 2, 1},
	blockymodel.East:  {1, 2, 6, 5},
	blockymodel.South: {5, 6, 7, 4},
	blockymodel.West:  {4, 7, 3, 0},
	blockymodel.Down:  {1, 5, 4, 0},
	blockymodel.Up:    {6, 2, 3, 7},
}

// Box builds an 8-vertex, 6-face box centered on the origin with UVs mapped
// from the shape's texture layout.
func Box(name string, shape *blockymodel.Shape, tex uvmap.TextureSize) *Mesh {
	half := shape.Size().Scale(0.5)

	m := &Mesh{
		Name:     name,
		Vertices: make([]math.Vec3, len(boxCorners)),
		Faces:    make([]Face, 0, len(blockymodel.Faces)),
		UVs:      make([]math.Vec2, len(blockymodel.Faces)*4),
	}
	for i, c := range boxCorners {
		m.Vertices[i] = c.Mul(half)
	}

	for i, f := range blockymodel.Faces {
		m.Faces = append(m.Faces, Face{Indices: boxFaces[f], Name: f})
		m.SetFaceUV(i, uvmap.ComputeFaceUV(f, shape, tex))
	}
	return m
}
