package blockymodel

import (
	"testing"

	"github.com/Faultbox/blockyimport/pkg/math"
)

func TestParseFace(t *testing.T) {
	tests := []struct {
		name string
		want Face
		ok   bool
	}{
		{"north", North, true},
		{"front", North, true},
		{"SOUTH", South, true},
		{"back", South, true},
		{"east", East, true},
		{"right", East, true},
		{"west", West, true},
		{"left", West, true},
		{"up", Up, true},
		{"top", Up, true},
		{"down", Down, true},
		{" bottom ", Down, true},
		{"side", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFace(tt.name)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("ParseFace(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFace_Opposite(t *testing.T) {
	for _, f := range Faces {
		if f.Opposite().Opposite() != f {
			t.Errorf("%v: opposite of opposite should be itself", f)
		}
		if f.Opposite() == f {
			t.Errorf("%v: opposite should differ", f)
		}
	}
}

func TestFace_String(t *testing.T) {
	if North.String() != "north" || Up.Alias() != "top" {
		t.Errorf("unexpected names %q / %q", North.String(), Up.Alias())
	}
	if got := Face(42).String(); got != "Face(42)" {
		t.Errorf("unexpected out-of-range name %q", got)
	}
}

func TestShape_Layout(t *testing.T) {
	shape := &Shape{
		Type: ShapeBox,
		TextureLayout: map[string]FaceLayout{
			"north": {Offset: Vector2{X: 1, Y: 1}},
			"front": {Offset: Vector2{X: 9, Y: 9}},
			"Left":  {Offset: Vector2{X: 2, Y: 3}},
		},
	}

	l, ok := shape.Layout(North)
	if !ok || l.Offset.X != 1 {
		t.Errorf("canonical key should win over alias, got %+v (%v)", l, ok)
	}

	l, ok = shape.Layout(West)
	if !ok || l.Offset.X != 2 || l.Offset.Y != 3 {
		t.Errorf("expected case-insensitive alias lookup for west, got %+v (%v)", l, ok)
	}

	if _, ok := shape.Layout(Up); ok {
		t.Error("expected no layout for up")
	}

	var nilShape *Shape
	if _, ok := nilShape.Layout(North); ok {
		t.Error("nil shape should have no layout")
	}
}

func TestShape_LayoutMixedCase(t *testing.T) {
	shape := &Shape{
		TextureLayout: map[string]FaceLayout{
			"FRONT": {Offset: Vector2{X: 2}},
			"North": {Offset: Vector2{X: 1}},
			"Back":  {Offset: Vector2{X: 4}},
			"BACK":  {Offset: Vector2{X: 3}},
		},
	}

	// Map iteration order varies, so repeat the lookup.
	for i := 0; i < 100; i++ {
		if l, ok := shape.Layout(North); !ok || l.Offset.X != 1 {
			t.Fatalf("run %d: expected canonical North to win, got %+v (%v)", i, l, ok)
		}
		if l, ok := shape.Layout(South); !ok || l.Offset.X != 3 {
			t.Fatalf("run %d: expected first sorted alias BACK, got %+v (%v)", i, l, ok)
		}
	}
}

func TestShape_Defaults(t *testing.T) {
	var nilShape *Shape
	if got := nilShape.StretchOrOne(); got != math.One {
		t.Errorf("nil shape stretch = %v, want one", got)
	}
	if got := nilShape.OffsetOrZero(); got != (math.Vec3{}) {
		t.Errorf("nil shape offset = %v, want zero", got)
	}

	hidden := false
	shape := &Shape{
		Offset:  &Vector3{X: 0, Y: 1, Z: 0},
		Stretch: &Vector3{X: 2, Y: 3, Z: 4},
		Visible: &hidden,
	}
	if got := shape.OffsetOrZero(); got != (math.Vec3{X: 0, Y: 1, Z: 0}) {
		t.Errorf("offset = %v", got)
	}
	if got := shape.StretchOrOne(); got != (math.Vec3{X: 2, Y: 3, Z: 4}) {
		t.Errorf("stretch = %v", got)
	}
	if shape.IsVisible() {
		t.Error("expected shape to be hidden")
	}
	if !(&Shape{}).IsVisible() {
		t.Error("shapes are visible by default")
	}
}

func TestNode_DisplayName(t *testing.T) {
	if got := (&Node{}).DisplayName(); got != DefaultNodeName {
		t.Errorf("expected %q, got %q", DefaultNodeName, got)
	}
	if got := (&Node{Name: "Arm"}).DisplayName(); got != "Arm" {
		t.Errorf("expected Arm, got %q", got)
	}
	if got := (&Node{Name: " "}).DisplayName(); got != " " {
		t.Errorf("whitespace names are kept, got %q", got)
	}
}

func TestShapeType_Known(t *testing.T) {
	for _, st := range []ShapeType{ShapeBox, ShapeQuad, ShapeNone} {
		if !st.Known() {
			t.Errorf("%q should be known", st)
		}
	}
	if ShapeType("sphere").Known() {
		t.Error("sphere should be unknown")
	}
}

func TestQuaternion_Order(t *testing.T) {
	q := Quaternion{W: 0.5, X: 0.1, Y: 0.2, Z: 0.3}.Quat()
	if q.W != 0.5 || q.X != 0.1 || q.Y != 0.2 || q.Z != 0.3 {
		t.Errorf("component order lost: %+v", q)
	}
}
