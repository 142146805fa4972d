package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/blockyimport/internal/hierarchy"
	"github.com/Faultbox/blockyimport/internal/logger"
	"github.com/Faultbox/blockyimport/internal/mesh"
)

// Mapping links built objects to the host handles created for them.
type Mapping struct {
	Nodes  map[*hierarchy.TransformNode]Handle
	Meshes map[*mesh.Mesh]Handle
}

// Apply creates host objects for every node and mesh in tree. Top-level
// nodes are parented to parent unless it is NoHandle. Nodes are visited in
// pre-order so a parent handle always exists before its children.
//
// The first host error aborts; objects already created are left in place.
func Apply(host Host, tree *hierarchy.Tree, parent Handle) (*Mapping, error) {
	m := &Mapping{
		Nodes:  make(map[*hierarchy.TransformNode]Handle, len(tree.Nodes)),
		Meshes: make(map[*mesh.Mesh]Handle, len(tree.Meshes)),
	}

	for _, n := range tree.Nodes {
		owner := parent
		if n.Parent != nil {
			h, ok := m.Nodes[n.Parent]
			if !ok {
				return m, fmt.Errorf("node %s: parent %s not applied", n.Path, n.Parent.Path)
			}
			owner = h
		}

		h, err := applyNode(host, n, owner)
		if err != nil {
			return m, fmt.Errorf("node %s: %w", n.Path, err)
		}
		m.Nodes[n] = h

		if n.Mesh == nil {
			continue
		}
		mh, err := applyMesh(host, n.Mesh, h)
		if err != nil {
			return m, fmt.Errorf("node %s: mesh: %w", n.Path, err)
		}
		m.Meshes[n.Mesh] = mh
	}

	logger.Debug("scene applied",
		zap.Int("nodes", len(m.Nodes)),
		zap.Int("meshes", len(m.Meshes)))
	return m, nil
}

func applyNode(host Host, n *hierarchy.TransformNode, parent Handle) (Handle, error) {
	h, err := host.CreateTransformNode(n.Name)
	if err != nil {
		return NoHandle, fmt.Errorf("create: %w", err)
	}
	if err := host.InsertIntoScene(h); err != nil {
		return h, fmt.Errorf("insert: %w", err)
	}
	if err := host.SetLocalTransform(h, n.Position, n.Rotation, n.Scale); err != nil {
		return h, fmt.Errorf("set transform: %w", err)
	}
	if parent != NoHandle {
		if err := host.SetParent(h, parent); err != nil {
			return h, fmt.Errorf("set parent: %w", err)
		}
	}
	return h, nil
}

func applyMesh(host Host, msh *mesh.Mesh, owner Handle) (Handle, error) {
	h, err := host.CreateMesh(msh.Name, msh.Vertices, msh.Faces)
	if err != nil {
		return NoHandle, fmt.Errorf("create: %w", err)
	}
	for loop, uv := range msh.UVs {
		if err := host.SetUV(h, loop, uv); err != nil {
			return h, fmt.Errorf("uv %d: %w", loop, err)
		}
	}
	if err := host.InsertIntoScene(h); err != nil {
		return h, fmt.Errorf("insert: %w", err)
	}
	if err := host.SetParent(h, owner); err != nil {
		return h, fmt.Errorf("set parent: %w", err)
	}
	return h, nil
}
