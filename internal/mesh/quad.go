package mesh

import (
	"github.com/Faultbox/blockyimport/internal/uvmap"
	"github.com/Faultbox/blockyimport/pkg/math"
)

// Quad builds a width×height quad on the XY plane at Z=0, facing +Z.
// UVs start zeroed; callers assign them with SetFaceUV.
func Quad(name string, width, height float32) *Mesh {
	hw, hh := width/2, height/2
	return &Mesh{
		Name: name,
		Vertices: []math.Vec3{
			{X: -hw, Y: -hh, Z: 0},
			{X: hw, Y: -hh, Z: 0},
			{X: hw, Y: hh, Z: 0},
			{X: -hw, Y: hh, Z: 0},
		},
		Faces: []Face{{Indices: [4]int{0, 1, 2, 3}, Name: uvmap.QuadFace}},
		UVs:   make([]math.Vec2, 4),
	}
}
