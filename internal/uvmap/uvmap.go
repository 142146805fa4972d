// Package uvmap computes per-face texture coordinates from a blockymodel
// texture atlas layout.
//
// Atlas offsets are pixels with a top-left origin. UVs are normalized with a
// bottom-left origin, so V is flipped during conversion. Coordinates are not
// clamped: offsets past the texture edge produce UVs outside [0,1].
package uvmap

import (
	gomath "math"

	"github.com/Faultbox/blockyimport/pkg/blockymodel"
	"github.com/Faultbox/blockyimport/pkg/math"
)

// TextureSize is the atlas size in pixels.
type TextureSize struct {
	Width  float32
	Height float32
}

// DefaultTextureSize is used when no texture dimensions are configured.
var DefaultTextureSize = TextureSize{Width: 32, Height: 32}

// Valid reports whether both dimensions are positive.
func (t TextureSize) Valid() bool {
	return t.Width > 0 && t.Height > 0
}

// Corner identifies a corner of a UV rectangle. Values run clockwise from
// the bottom-left so rotations are index shifts.
type Corner uint8

const (
	BottomLeft Corner = iota
	TopLeft
	TopRight
	BottomRight
)

// BoxLoops is the corner sampled by each loop of a box face.
var BoxLoops = [4]Corner{BottomLeft, TopLeft, TopRight, BottomRight}

// QuadLoops is the corner sampled by each loop of a quad. It matches the
// orientation of the south box face so a quad and a box side sharing a layout
// entry look the same.
var QuadLoops = [4]Corner{BottomRight, BottomLeft, TopLeft, TopRight}

// Rect is a rectangle in UV space.
type Rect struct {
	Left, Right float32
	Top, Bottom float32
}

// Corner returns the UV of corner c.
func (r Rect) Corner(c Corner) math.Vec2 {
	switch c {
	case BottomLeft:
		return math.Vec2{X: r.Left, Y: r.Bottom}
	case TopLeft:
		return math.Vec2{X: r.Left, Y: r.Top}
	case TopRight:
		return math.Vec2{X: r.Right, Y: r.Top}
	default:
		return math.Vec2{X: r.Right, Y: r.Bottom}
	}
}

// AtlasRect converts a pixel rectangle at offset with size w×h into UV space.
func AtlasRect(offset blockymodel.Vector2, w, h float32, tex TextureSize) Rect {
	return Rect{
		Left:   offset.X / tex.Width,
		Top:    1 - offset.Y/tex.Height,
		Right:  (offset.X + w) / tex.Width,
		Bottom: 1 - (offset.Y+h)/tex.Height,
	}
}

// DefaultRect is used for faces without a layout entry: it spans (0,0) to the
// face's pixel size.
func DefaultRect(w, h float32, tex TextureSize) Rect {
	return Rect{
		Left:   0,
		Bottom: 0,
		Right:  w / tex.Width,
		Top:    h / tex.Height,
	}
}

// FaceSize returns the pixel width and height of a box face, taken from the
// two box axes orthogonal to the face normal.
func FaceSize(face blockymodel.Face, size math.Vec3) (w, h float32) {
	switch face {
	case blockymodel.North, blockymodel.South:
		return size.X, size.Y
	case blockymodel.East, blockymodel.West:
		return size.Z, size.Y
	default:
		return size.X, size.Z
	}
}

// QuarterTurns normalizes an angle in degrees to clockwise quarter turns in
// [0,4). Angles between multiples of 90 round down.
func QuarterTurns(angle float32) int {
	steps := int(gomath.Floor(float64(angle) / 90))
	return ((steps % 4) + 4) % 4
}

// Place maps a face of w×h pixels onto its loops. With a layout entry the
// rectangle comes from the atlas, mirrored then rotated as the entry asks;
// without one DefaultRect is used.
func Place(layout blockymodel.FaceLayout, ok bool, w, h float32, tex TextureSize, loops [4]Corner) [4]math.Vec2 {
	if !ok {
		return corners(DefaultRect(w, h, tex), loops, 0)
	}

	turns := QuarterTurns(layout.Angle)
	if turns%2 == 1 {
		w, h = h, w
	}

	r := AtlasRect(layout.Offset, w, h, tex)
	if layout.Mirror.X {
		r.Left, r.Right = r.Right, r.Left
	}
	if layout.Mirror.Y {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return corners(r, loops, turns)
}

func corners(r Rect, loops [4]Corner, turns int) [4]math.Vec2 {
	var uvs [4]math.Vec2
	for i, c := range loops {
		uvs[i] = r.Corner(Corner((int(c) - turns + 4) % 4))
	}
	return uvs
}

// ComputeFaceUV returns the four loop UVs of one box face.
func ComputeFaceUV(face blockymodel.Face, shape *blockymodel.Shape, tex TextureSize) [4]math.Vec2 {
	w, h := FaceSize(face, shape.Size())
	layout, ok := shape.Layout(face)
	return Place(layout, ok, w, h, tex, BoxLoops)
}

// QuadFace is the box face a quad's +Z side corresponds to.
const QuadFace = blockymodel.South

// ComputeQuadUV returns the loop UVs of a quad. The south entry is used,
// falling back to north for layouts that only describe the front side.
// Pixel size comes from the unstretched settings size.
func ComputeQuadUV(shape *blockymodel.Shape, tex TextureSize) [4]math.Vec2 {
	size := shape.Size()
	layout, ok := shape.Layout(QuadFace)
	if !ok {
		layout, ok = shape.Layout(QuadFace.Opposite())
	}
	return Place(layout, ok, size.X, size.Y, tex, QuadLoops)
}
