package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/blockyimport/internal/hierarchy"
	"github.com/Faultbox/blockyimport/internal/mesh"
	"github.com/Faultbox/blockyimport/pkg/blockymodel"
	"github.com/Faultbox/blockyimport/pkg/math"
)

func buildTree(t *testing.T) *hierarchy.Tree {
	t.Helper()

	size := &blockymodel.Vector3{X: 2, Y: 2, Z: 2}
	model := &blockymodel.Model{Nodes: []blockymodel.Node{
		{
			Name:     "Body",
			Position: &blockymodel.Vector3{Y: 4},
			Shape:    &blockymodel.Shape{Type: blockymodel.ShapeBox, Settings: blockymodel.Settings{Size: size}},
			Children: []blockymodel.Node{
				{Name: "Arm", Position: &blockymodel.Vector3{X: 3}, Shape: &blockymodel.Shape{Type: blockymodel.ShapeBox, Settings: blockymodel.Settings{Size: size}}},
				{Name: "Socket"},
			},
		},
	}}

	tree, err := hierarchy.Build(model, hierarchy.DefaultOptions())
	require.NoError(t, err)
	return tree
}

func TestApply(t *testing.T) {
	tree := buildTree(t)
	rec := NewRecorder()

	m, err := Apply(rec, tree, NoHandle)
	require.NoError(t, err)

	require.Equal(t, 3, rec.Count(KindTransform))
	require.Equal(t, 2, rec.Count(KindMesh))
	require.Len(t, m.Nodes, 3)
	require.Len(t, m.Meshes, 2)

	for _, o := range rec.Objects {
		require.Truef(t, o.InScene, "%s not inserted", o.Name)
	}

	roots := rec.Children(NoHandle)
	require.Len(t, roots, 1)
	body := roots[0]
	require.Equal(t, "Body", body.Name)
	require.Equal(t, math.Vec3{Y: 4}, body.Position)

	children := rec.Children(body.Handle)
	require.Len(t, children, 3)
	require.Equal(t, KindMesh, children[0].Kind)
	require.Equal(t, "Arm", children[1].Name)
	require.Equal(t, "Socket", children[2].Name)

	armMesh := rec.Children(children[1].Handle)
	require.Len(t, armMesh, 1)
	require.Len(t, armMesh[0].UVs, 24)
	require.Equal(t, tree.Meshes[1].UVs, armMesh[0].UVs)

	world := rec.WorldMatrix(armMesh[0]).TransformVec3(math.Vec3{})
	require.InDelta(t, 3, world.X, 1e-6)
	require.InDelta(t, 4, world.Y, 1e-6)
}

func TestApply_UnderContainer(t *testing.T) {
	tree := buildTree(t)
	rec := NewRecorder()

	root, err := rec.CreateTransformNode("sample")
	require.NoError(t, err)

	_, err = Apply(rec, tree, root)
	require.NoError(t, err)

	top := rec.Children(NoHandle)
	require.Len(t, top, 1)
	require.Equal(t, "sample", top[0].Name)
	require.Equal(t, "Body", rec.Children(root)[0].Name)
}

type failingHost struct {
	*Recorder
	failOn string
}

func (h *failingHost) CreateTransformNode(name string) (Handle, error) {
	if name == h.failOn {
		return NoHandle, errors.New("host refused")
	}
	return h.Recorder.CreateTransformNode(name)
}

func TestApply_AbortsOnHostError(t *testing.T) {
	tree := buildTree(t)
	host := &failingHost{Recorder: NewRecorder(), failOn: "Arm"}

	_, err := Apply(host, tree, NoHandle)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Body/Arm")

	// Body and its mesh were created before the failure and stay behind.
	require.Len(t, host.Objects, 2)
}

func TestRecorder_Validation(t *testing.T) {
	rec := NewRecorder()

	_, err := rec.CreateMesh("bad", []math.Vec3{{}}, []mesh.Face{{Indices: [4]int{0, 1, 2, 3}}})
	require.Error(t, err)

	a, _ := rec.CreateTransformNode("a")
	b, _ := rec.CreateTransformNode("b")
	require.NoError(t, rec.SetParent(b, a))
	require.ErrorIs(t, rec.SetParent(a, b), ErrInvalidHandle)
	require.ErrorIs(t, rec.SetParent(a, a), ErrInvalidHandle)
	require.ErrorIs(t, rec.SetParent(a, 42), ErrInvalidHandle)
	require.ErrorIs(t, rec.SetUV(a, 0, math.Vec2{}), ErrInvalidHandle)
	require.ErrorIs(t, rec.InsertIntoScene(NoHandle), ErrInvalidHandle)
}
