package uvmap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/blockyimport/pkg/blockymodel"
	"github.com/Faultbox/blockyimport/pkg/math"
)

func requireUVs(t *testing.T, want, got [4]math.Vec2) {
	t.Helper()
	for i := range want {
		require.InDeltaf(t, want[i].X, got[i].X, 1e-6, "loop %d u", i)
		require.InDeltaf(t, want[i].Y, got[i].Y, 1e-6, "loop %d v", i)
	}
}

func boxShape(size blockymodel.Vector3, layout map[string]blockymodel.FaceLayout) *blockymodel.Shape {
	return &blockymodel.Shape{
		Type:          blockymodel.ShapeBox,
		Settings:      blockymodel.Settings{Size: &size},
		TextureLayout: layout,
	}
}

func TestComputeFaceUV_FullTexture(t *testing.T) {
	shape := boxShape(blockymodel.Vector3{X: 32, Y: 32, Z: 32}, map[string]blockymodel.FaceLayout{
		"north": {Offset: blockymodel.Vector2{X: 0, Y: 0}},
	})

	got := ComputeFaceUV(blockymodel.North, shape, DefaultTextureSize)
	requireUVs(t, [4]math.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}, got)
}

func TestComputeFaceUV_AtlasOffset(t *testing.T) {
	shape := boxShape(blockymodel.Vector3{X: 8, Y: 12, Z: 4}, map[string]blockymodel.FaceLayout{
		"north": {Offset: blockymodel.Vector2{X: 4, Y: 4}},
	})

	got := ComputeFaceUV(blockymodel.North, shape, DefaultTextureSize)
	requireUVs(t, [4]math.Vec2{
		{X: 0.125, Y: 0.5},
		{X: 0.125, Y: 0.875},
		{X: 0.375, Y: 0.875},
		{X: 0.375, Y: 0.5},
	}, got)
}

func TestComputeFaceUV_DefaultWithoutLayout(t *testing.T) {
	shape := boxShape(blockymodel.Vector3{X: 8, Y: 12, Z: 4}, nil)

	// East uses (z, y) = 4x12 pixels.
	got := ComputeFaceUV(blockymodel.East, shape, DefaultTextureSize)
	requireUVs(t, [4]math.Vec2{
		{X: 0, Y: 0},
		{X: 0, Y: 0.375},
		{X: 0.125, Y: 0.375},
		{X: 0.125, Y: 0},
	}, got)
}

func TestComputeFaceUV_AliasKey(t *testing.T) {
	shape := boxShape(blockymodel.Vector3{X: 32, Y: 32, Z: 32}, map[string]blockymodel.FaceLayout{
		"top": {Offset: blockymodel.Vector2{X: 0, Y: 0}},
	})

	got := ComputeFaceUV(blockymodel.Up, shape, DefaultTextureSize)
	requireUVs(t, [4]math.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}, got)
}

func TestComputeFaceUV_TextureSizeParameter(t *testing.T) {
	shape := boxShape(blockymodel.Vector3{X: 32, Y: 32, Z: 32}, map[string]blockymodel.FaceLayout{
		"south": {Offset: blockymodel.Vector2{X: 32, Y: 0}},
	})

	got := ComputeFaceUV(blockymodel.South, shape, TextureSize{Width: 64, Height: 32})
	requireUVs(t, [4]math.Vec2{{X: 0.5, Y: 0}, {X: 0.5, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}, got)
}

func TestComputeFaceUV_NotClamped(t *testing.T) {
	shape := boxShape(blockymodel.Vector3{X: 32, Y: 32, Z: 32}, map[string]blockymodel.FaceLayout{
		"west": {Offset: blockymodel.Vector2{X: 32, Y: 32}},
	})

	got := ComputeFaceUV(blockymodel.West, shape, DefaultTextureSize)
	requireUVs(t, [4]math.Vec2{{X: 1, Y: -1}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: -1}}, got)
}

func TestPlace_Mirror(t *testing.T) {
	full := blockymodel.FaceLayout{}

	tests := []struct {
		name   string
		mirror blockymodel.Mirror
		want   [4]math.Vec2
	}{
		{"none", blockymodel.Mirror{}, [4]math.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}},
		{"x", blockymodel.Mirror{X: true}, [4]math.Vec2{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}}},
		{"y", blockymodel.Mirror{Y: true}, [4]math.Vec2{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}},
		{"xy", blockymodel.Mirror{X: true, Y: true}, [4]math.Vec2{{X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := full
			layout.Mirror = tt.mirror
			got := Place(layout, true, 32, 32, DefaultTextureSize, BoxLoops)
			requireUVs(t, tt.want, got)
		})
	}
}

func TestPlace_Rotation(t *testing.T) {
	layout := blockymodel.FaceLayout{Angle: 90}
	got := Place(layout, true, 32, 32, DefaultTextureSize, BoxLoops)

	// Each loop samples the corner one step counter-clockwise of its own.
	requireUVs(t, [4]math.Vec2{{X: 1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, got)

	// A full turn is the identity.
	layout.Angle = 360
	got = Place(layout, true, 32, 32, DefaultTextureSize, BoxLoops)
	requireUVs(t, [4]math.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}, got)
}

func TestPlace_QuarterTurnSwapsSize(t *testing.T) {
	layout := blockymodel.FaceLayout{Angle: 270}
	got := Place(layout, true, 8, 4, DefaultTextureSize, BoxLoops)

	// The atlas region is 4 wide and 8 tall.
	var us, vs []float32
	for _, uv := range got {
		us = append(us, uv.X)
		vs = append(vs, uv.Y)
	}
	require.ElementsMatch(t, []float32{0, 0, 0.125, 0.125}, us)
	require.ElementsMatch(t, []float32{0.75, 1, 1, 0.75}, vs)
}

func TestPlace_DefaultIgnoresTransforms(t *testing.T) {
	layout := blockymodel.FaceLayout{Angle: 90, Mirror: blockymodel.Mirror{X: true}}
	got := Place(layout, false, 16, 16, DefaultTextureSize, BoxLoops)
	requireUVs(t, [4]math.Vec2{{X: 0, Y: 0}, {X: 0, Y: 0.5}, {X: 0.5, Y: 0.5}, {X: 0.5, Y: 0}}, got)
}

func TestQuarterTurns(t *testing.T) {
	tests := []struct {
		angle float32
		want  int
	}{
		{0, 0},
		{90, 1},
		{180, 2},
		{270, 3},
		{360, 0},
		{450, 1},
		{-90, 3},
		{45, 0},
	}

	for _, tt := range tests {
		require.Equalf(t, tt.want, QuarterTurns(tt.angle), "angle %v", tt.angle)
	}
}

func TestFaceSize(t *testing.T) {
	size := math.Vec3{X: 2, Y: 3, Z: 5}

	tests := []struct {
		face blockymodel.Face
		w, h float32
	}{
		{blockymodel.North, 2, 3},
		{blockymodel.South, 2, 3},
		{blockymodel.East, 5, 3},
		{blockymodel.West, 5, 3},
		{blockymodel.Up, 2, 5},
		{blockymodel.Down, 2, 5},
	}

	for _, tt := range tests {
		w, h := FaceSize(tt.face, size)
		require.Equalf(t, tt.w, w, "%v width", tt.face)
		require.Equalf(t, tt.h, h, "%v height", tt.face)
	}
}

func TestComputeQuadUV(t *testing.T) {
	size := blockymodel.Vector3{X: 8, Y: 10}

	t.Run("south alias", func(t *testing.T) {
		shape := &blockymodel.Shape{
			Type:     blockymodel.ShapeQuad,
			Settings: blockymodel.Settings{Size: &size},
			TextureLayout: map[string]blockymodel.FaceLayout{
				"back": {Offset: blockymodel.Vector2{X: 20, Y: 20}},
			},
		}
		got := ComputeQuadUV(shape, DefaultTextureSize)
		requireUVs(t, [4]math.Vec2{
			{X: 0.875, Y: 0.0625},
			{X: 0.625, Y: 0.0625},
			{X: 0.625, Y: 0.375},
			{X: 0.875, Y: 0.375},
		}, got)
	})

	t.Run("north fallback", func(t *testing.T) {
		shape := &blockymodel.Shape{
			Type:     blockymodel.ShapeQuad,
			Settings: blockymodel.Settings{Size: &size},
			TextureLayout: map[string]blockymodel.FaceLayout{
				"front": {Offset: blockymodel.Vector2{X: 0, Y: 0}},
			},
		}
		got := ComputeQuadUV(shape, DefaultTextureSize)
		requireUVs(t, [4]math.Vec2{
			{X: 0.25, Y: 0.6875},
			{X: 0, Y: 0.6875},
			{X: 0, Y: 1},
			{X: 0.25, Y: 1},
		}, got)
	})

	t.Run("default", func(t *testing.T) {
		shape := &blockymodel.Shape{
			Type:     blockymodel.ShapeQuad,
			Settings: blockymodel.Settings{Size: &size},
		}
		got := ComputeQuadUV(shape, DefaultTextureSize)
		requireUVs(t, [4]math.Vec2{
			{X: 0.25, Y: 0},
			{X: 0, Y: 0},
			{X: 0, Y: 0.3125},
			{X: 0.25, Y: 0.3125},
		}, got)
	})
}

func TestTextureSize_Valid(t *testing.T) {
	require.True(t, DefaultTextureSize.Valid())
	require.False(t, TextureSize{Width: 0, Height: 32}.Valid())
	require.False(t, TextureSize{Width: 32, Height: -1}.Valid())
}
