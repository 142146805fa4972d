// Package obj writes imported models as Wavefront OBJ text.
//
// OBJ has no hierarchy, so each mesh is baked into world space and written
// as its own object group named after the mesh path.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/blockyimport/internal/logger"
	"github.com/Faultbox/blockyimport/internal/scene"
)

// Exporter is a scene.Host that writes OBJ on Encode or Save.
type Exporter struct {
	*scene.Recorder
}

// New creates an empty exporter.
func New() *Exporter {
	return &Exporter{Recorder: scene.NewRecorder()}
}

// Encode writes every mesh object in creation order. Vertex and UV indices
// are 1-based and global to the file, as OBJ requires.
func (e *Exporter) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# blockyimport\n")

	vBase, vtBase := 1, 1
	for _, o := range e.Objects {
		if o.Kind != scene.KindMesh || len(o.Faces) == 0 {
			continue
		}

		world := e.WorldMatrix(o)
		fmt.Fprintf(bw, "o %s\n", e.path(o))
		for _, v := range o.Vertices {
			p := world.TransformVec3(v)
			fmt.Fprintf(bw, "v %s %s %s\n", num(p.X), num(p.Y), num(p.Z))
		}
		for _, uv := range o.UVs {
			fmt.Fprintf(bw, "vt %s %s\n", num(uv.X), num(uv.Y))
		}
		for i, f := range o.Faces {
			bw.WriteString("f")
			for loop, vi := range f.Indices {
				fmt.Fprintf(bw, " %d/%d", vBase+vi, vtBase+i*4+loop)
			}
			bw.WriteString("\n")
		}

		vBase += len(o.Vertices)
		vtBase += len(o.UVs)
	}
	return bw.Flush()
}

// path joins the names of o and its transform ancestors. OBJ names cannot
// contain spaces.
func (e *Exporter) path(o *scene.Object) string {
	names := []string{o.Name}
	for p := o.Parent; p != scene.NoHandle; p = e.Objects[p].Parent {
		names = append(names, e.Objects[p].Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.ReplaceAll(strings.Join(names, "/"), " ", "_")
}

func num(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

// Save writes the OBJ file to path.
func (e *Exporter) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := e.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	logger.Info("wrote OBJ",
		zap.String("path", path),
		zap.Int("meshes", e.Count(scene.KindMesh)))
	return nil
}
