// Package scene replays a built hierarchy onto a host application.
//
// The hierarchy package computes everything up front; Apply is the single
// pass that creates host objects, so a failed build never touches the host.
package scene

import (
	"github.com/Faultbox/blockyimport/internal/mesh"
	"github.com/Faultbox/blockyimport/pkg/math"
)

// Handle identifies an object owned by a Host.
type Handle int

// NoHandle means "no object", e.g. a top-level node without a container.
const NoHandle Handle = -1

// Host is the object system the importer writes into.
type Host interface {
	CreateTransformNode(name string) (Handle, error)
	CreateMesh(name string, vertices []math.Vec3, faces []mesh.Face) (Handle, error)
	SetUV(mesh Handle, loop int, uv math.Vec2) error
	SetParent(child, parent Handle) error
	InsertIntoScene(h Handle) error
	SetLocalTransform(h Handle, position math.Vec3, rotation math.Quat, scale math.Vec3) error
}
