// Package gltf writes imported models as glTF 2.0 (.gltf or .glb).
package gltf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/blockyimport/internal/logger"
	"github.com/Faultbox/blockyimport/internal/mesh"
	"github.com/Faultbox/blockyimport/internal/scene"
)

// Generator is written to the asset header.
const Generator = "blockyimport"

// Exporter is a scene.Host that collects objects and encodes them as glTF.
// Every host object becomes one glTF node with the same index; meshes are
// nodes carrying a glTF mesh.
type Exporter struct {
	*scene.Recorder
}

// New creates an empty exporter.
func New() *Exporter {
	return &Exporter{Recorder: scene.NewRecorder()}
}

// Document converts the recorded objects into a glTF document. Objects that
// were never inserted into the scene are kept as nodes but not listed as
// scene roots.
func (e *Exporter) Document() (*gltf.Document, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = Generator

	for _, o := range e.Objects {
		node := &gltf.Node{
			Name:        o.Name,
			Translation: [3]float64{float64(o.Position.X), float64(o.Position.Y), float64(o.Position.Z)},
			Scale:       [3]float64{float64(o.Scale.X), float64(o.Scale.Y), float64(o.Scale.Z)},
		}
		r := o.Rotation.Normalize()
		node.Rotation = [4]float64{float64(r.X), float64(r.Y), float64(r.Z), float64(r.W)}

		if o.Kind == scene.KindMesh && len(o.Faces) > 0 {
			idx, err := writeMesh(doc, o)
			if err != nil {
				return nil, fmt.Errorf("mesh %s: %w", o.Name, err)
			}
			node.Mesh = gltf.Index(idx)
		}
		doc.Nodes = append(doc.Nodes, node)
	}

	for _, o := range e.Objects {
		if o.Parent == scene.NoHandle {
			if o.InScene {
				doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(o.Handle))
			}
			continue
		}
		parent := doc.Nodes[o.Parent]
		parent.Children = append(parent.Children, uint32(o.Handle))
	}
	return doc, nil
}

// writeMesh unwelds each quad into four vertices so every corner keeps its
// own normal and UV, then splits it into two triangles.
func writeMesh(doc *gltf.Document, o *scene.Object) (uint32, error) {
	m := &mesh.Mesh{Name: o.Name, Vertices: o.Vertices, Faces: o.Faces, UVs: o.UVs}

	n := len(m.Faces) * 4
	positions := make([][3]float32, 0, n)
	normals := make([][3]float32, 0, n)
	uvs := make([][2]float32, 0, n)
	indices := make([]uint32, 0, len(m.Faces)*6)

	for i, f := range m.Faces {
		normal := m.Normal(i).Array()
		faceUVs := m.FaceUVs(i)
		base := uint32(len(positions))
		for loop, vi := range f.Indices {
			if vi < 0 || vi >= len(m.Vertices) {
				return 0, fmt.Errorf("face %d: vertex %d out of range", i, vi)
			}
			positions = append(positions, m.Vertices[vi].Array())
			normals = append(normals, normal)
			// glTF puts the UV origin at the top-left.
			uv := faceUVs[loop]
			uvs = append(uvs, [2]float32{uv.X, 1 - uv.Y})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	prim := &gltf.Primitive{
		Mode: gltf.PrimitiveTriangles,
		Attributes: gltf.Attribute{
			gltf.POSITION:   modeler.WritePosition(doc, positions),
			gltf.NORMAL:     modeler.WriteNormal(doc, normals),
			gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, uvs),
		},
	}
	if n <= 1<<16 {
		small := make([]uint16, len(indices))
		for i, v := range indices {
			small[i] = uint16(v)
		}
		prim.Indices = gltf.Index(modeler.WriteIndices(doc, small))
	} else {
		prim.Indices = gltf.Index(modeler.WriteIndices(doc, indices))
	}

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: o.Name, Primitives: []*gltf.Primitive{prim}})
	return uint32(len(doc.Meshes) - 1), nil
}

// Encode writes the document to w, as GLB when binary is set and as JSON
// with an embedded base64 buffer otherwise.
func (e *Exporter) Encode(w io.Writer, binary bool) error {
	doc, err := e.Document()
	if err != nil {
		return err
	}
	if !binary {
		for _, b := range doc.Buffers {
			b.EmbeddedResource()
		}
	}

	enc := gltf.NewEncoder(w)
	enc.AsBinary = binary
	return enc.Encode(doc)
}

// IsBinaryPath reports whether path names a .glb file.
func IsBinaryPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".glb")
}

// Save writes the document to path; the extension picks the container.
func (e *Exporter) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	binary := IsBinaryPath(path)
	if err := e.Encode(f, binary); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	logger.Info("wrote glTF",
		zap.String("path", path),
		zap.Bool("binary", binary),
		zap.Int("nodes", len(e.Objects)),
		zap.Int("meshes", e.Count(scene.KindMesh)))
	return nil
}
