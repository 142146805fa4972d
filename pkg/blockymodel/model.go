// Package blockymodel provides a loader for the JSON blockymodel format: a
// tree of named nodes carrying local transforms and optional box or quad
// shapes textured from a packed atlas.
package blockymodel

import (
	"sort"
	"strings"

	"github.com/Faultbox/blockyimport/pkg/math"
)

// DefaultNodeName is used for nodes that carry no name.
const DefaultNodeName = "Node"

// Vector3 is a JSON {x,y,z} triple.
type Vector3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Vec3 converts to the math type.
func (v Vector3) Vec3() math.Vec3 {
	return math.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// Vector2 is a JSON {x,y} pair.
type Vector2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Quaternion is a JSON {w,x,y,z} rotation.
type Quaternion struct {
	W float32 `json:"w"`
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Quat converts to the math type.
func (q Quaternion) Quat() math.Quat {
	return math.QuatWXYZ(q.W, q.X, q.Y, q.Z)
}

// ShapeType identifies the primitive attached to a node.
type ShapeType string

const (
	ShapeBox  ShapeType = "box"  // Six-faced cuboid
	ShapeQuad ShapeType = "quad" // Single planar face
	ShapeNone ShapeType = "none" // Explicitly no geometry
)

// Known reports whether t is one of the shape types the format defines.
func (t ShapeType) Known() bool {
	switch t {
	case ShapeBox, ShapeQuad, ShapeNone:
		return true
	}
	return false
}

// Settings holds shape parameters. Quads only use X and Y of Size.
type Settings struct {
	Size *Vector3 `json:"size"`
}

// Mirror flips an atlas rectangle along its axes.
type Mirror struct {
	X bool `json:"x"`
	Y bool `json:"y"`
}

// FaceLayout positions one face on the texture atlas.
type FaceLayout struct {
	Offset Vector2 `json:"offset"` // Top-left pixel of the face rectangle
	Mirror Mirror  `json:"mirror"`
	Angle  float32 `json:"angle"` // Clockwise rotation in degrees, multiples of 90
}

// Shape is the primitive geometry descriptor attached to a node.
type Shape struct {
	Type          ShapeType             `json:"type"`
	Settings      Settings              `json:"settings"`
	Offset        *Vector3              `json:"offset"`
	Stretch       *Vector3              `json:"stretch"`
	TextureLayout map[string]FaceLayout `json:"textureLayout"`
	Visible       *bool                 `json:"visible"`
	DoubleSided   bool                  `json:"doubleSided"`
}

// Size returns settings.size, or zero when absent.
func (s *Shape) Size() math.Vec3 {
	if s.Settings.Size == nil {
		return math.Vec3{}
	}
	return s.Settings.Size.Vec3()
}

// OffsetOrZero returns the shape offset, defaulting to the origin.
func (s *Shape) OffsetOrZero() math.Vec3 {
	if s == nil || s.Offset == nil {
		return math.Vec3{}
	}
	return s.Offset.Vec3()
}

// StretchOrOne returns the per-axis stretch, defaulting to {1,1,1}.
func (s *Shape) StretchOrOne() math.Vec3 {
	if s == nil || s.Stretch == nil {
		return math.One
	}
	return s.Stretch.Vec3()
}

// IsVisible reports whether geometry should be generated for the shape.
func (s *Shape) IsVisible() bool {
	return s.Visible == nil || *s.Visible
}

// Layout returns the atlas placement for face. Canonical keys take precedence
// over their aliases.
func (s *Shape) Layout(face Face) (FaceLayout, bool) {
	if s == nil || len(s.TextureLayout) == 0 {
		return FaceLayout{}, false
	}
	if l, ok := s.TextureLayout[face.String()]; ok {
		return l, true
	}
	if l, ok := s.TextureLayout[face.Alias()]; ok {
		return l, true
	}
	// Keys are case-insensitive in files written by some exporters. Sorted
	// so that a canonical spelling beats an alias and ties resolve the same
	// way every run.
	keys := make([]string, 0, len(s.TextureLayout))
	for key := range s.TextureLayout {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var (
		alias    FaceLayout
		hasAlias bool
	)
	for _, key := range keys {
		name := strings.ToLower(strings.TrimSpace(key))
		switch name {
		case face.String():
			return s.TextureLayout[key], true
		case face.Alias():
			if !hasAlias {
				alias, hasAlias = s.TextureLayout[key], true
			}
		}
	}
	return alias, hasAlias
}

// Node is one entry of the model hierarchy.
type Node struct {
	ID          string      `json:"id,omitempty"`
	Name        string      `json:"name"`
	Position    *Vector3    `json:"position"`
	Orientation *Quaternion `json:"orientation"`
	Shape       *Shape      `json:"shape"`
	Children    []Node      `json:"children"`
}

// DisplayName returns the node name, or DefaultNodeName when it is empty.
func (n *Node) DisplayName() string {
	if n.Name == "" {
		return DefaultNodeName
	}
	return n.Name
}

// Model is a parsed blockymodel document.
type Model struct {
	Nodes []Node `json:"nodes"`
	LOD   string `json:"lod,omitempty"`
}

// Walk visits every node in pre-order. depth is 0 for top-level nodes.
// Returning an error from fn stops the walk.
func (m *Model) Walk(fn func(n *Node, depth int) error) error {
	for i := range m.Nodes {
		if err := walk(&m.Nodes[i], 0, fn); err != nil {
			return err
		}
	}
	return nil
}

func walk(n *Node, depth int, fn func(*Node, int) error) error {
	if err := fn(n, depth); err != nil {
		return err
	}
	for i := range n.Children {
		if err := walk(&n.Children[i], depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// CountNodes returns the total number of nodes in the tree.
func (m *Model) CountNodes() int {
	count := 0
	_ = m.Walk(func(*Node, int) error {
		count++
		return nil
	})
	return count
}

// MaxDepth returns the depth of the deepest node, or -1 for an empty model.
func (m *Model) MaxDepth() int {
	deepest := -1
	_ = m.Walk(func(_ *Node, depth int) error {
		deepest = max(deepest, depth)
		return nil
	})
	return deepest
}
