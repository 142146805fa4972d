package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	for i := 0; i < 4; i++ {
		if m[i*4+i] != 1 {
			t.Errorf("Identity diagonal [%d] should be 1, got %f", i, m[i*4+i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(1, 2, 3)
	got := m.TransformVec3(Vec3{0, 0, 0})
	want := Vec3{1, 2, 3}
	if got != want {
		t.Errorf("Translate origin = %v, want %v", got, want)
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)
	got := m.TransformVec3(Vec3{1, 1, 1})
	want := Vec3{2, 3, 4}
	if got != want {
		t.Errorf("Scale = %v, want %v", got, want)
	}
}

func TestMatMul(t *testing.T) {
	// Translate after scale: T * S applied to a point scales then translates
	m := Translate(1, 0, 0).Mul(Scale(2, 2, 2))
	got := m.TransformVec3(Vec3{1, 1, 1})
	want := Vec3{3, 2, 2}
	if got != want {
		t.Errorf("T*S = %v, want %v", got, want)
	}
}

func TestFromTRS(t *testing.T) {
	r := QuatFromAxisAngle(Vec3{0, 0, 1}, float32(math.Pi/2))
	m := FromTRS(Vec3{10, 0, 0}, r, Vec3{2, 1, 1})

	// (1,0,0) -> scaled (2,0,0) -> rotated (0,2,0) -> translated (10,2,0)
	got := m.TransformVec3(Vec3{1, 0, 0})
	want := Vec3{10, 2, 0}
	if got.Distance(want) > 0.0001 {
		t.Errorf("FromTRS point = %v, want %v", got, want)
	}
}

func TestTransformDirection(t *testing.T) {
	m := Translate(5, 5, 5)
	got := m.TransformDirection(Vec3{0, 1, 0})
	want := Vec3{0, 1, 0}
	if got != want {
		t.Errorf("TransformDirection should ignore translation, got %v", got)
	}
}
