package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Faultbox/blockyimport/internal/hierarchy"
	"github.com/Faultbox/blockyimport/internal/importer"
	"github.com/Faultbox/blockyimport/internal/mesh"
	"github.com/Faultbox/blockyimport/internal/scene"
	"github.com/Faultbox/blockyimport/pkg/math"
)

var infoCmd = &cobra.Command{
	Use:   "info [model]",
	Short: "Display the node hierarchy of a blockymodel file",
	Long:  "Import a model without writing anything and print its nodes, transforms, meshes and overall bounds.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	ic := importer.FromConfig(cfg.Import, args[0])
	ic.Root = false

	res, err := importer.Import(cmd.Context(), ic, scene.NewRecorder())
	if err != nil {
		return err
	}
	printInfo(cmd.OutOrStdout(), args[0], res)
	return nil
}

func printInfo(w io.Writer, path string, res *importer.Result) {
	fmt.Fprintf(w, "File:     %s\n", path)
	fmt.Fprintf(w, "Nodes:    %d (max depth %d)\n", len(res.Tree.Nodes), res.Model.MaxDepth())
	fmt.Fprintf(w, "Meshes:   %d\n", len(res.Tree.Meshes))
	fmt.Fprintf(w, "Texture:  %gx%g\n", res.Texture.Width, res.Texture.Height)
	if res.Model.LOD != "" {
		fmt.Fprintf(w, "LOD:      %s\n", res.Model.LOD)
	}

	if b, ok := worldBounds(res.Tree); ok {
		size := b.Size()
		fmt.Fprintf(w, "Bounds:   %s .. %s\n", formatVec(b.Min), formatVec(b.Max))
		fmt.Fprintf(w, "Size:     %s\n", formatVec(size))
	}

	fmt.Fprintln(w)
	for _, n := range res.Tree.Nodes {
		line := strings.Repeat("  ", n.Depth) + n.Name
		if n.Mesh != nil {
			line += fmt.Sprintf(" [%s, %d faces]", n.Source.Shape.Type, len(n.Mesh.Faces))
		} else if n.Source.Shape != nil {
			line += fmt.Sprintf(" [%s]", n.Source.Shape.Type)
		}
		fmt.Fprintf(w, "%-40s pos %s", line, formatVec(n.Position))
		if !n.Rotation.IsIdentity() {
			fmt.Fprintf(w, " rot (%.3f, %.3f, %.3f, %.3f)", n.Rotation.W, n.Rotation.X, n.Rotation.Y, n.Rotation.Z)
		}
		if n.Scale != math.One {
			fmt.Fprintf(w, " scale %s", formatVec(n.Scale))
		}
		fmt.Fprintln(w)
	}
}

// worldBounds merges the world-space bounds of every mesh.
func worldBounds(tree *hierarchy.Tree) (mesh.Bounds, bool) {
	var out mesh.Bounds
	found := false
	for _, n := range tree.Nodes {
		if n.Mesh == nil || len(n.Mesh.Vertices) == 0 {
			continue
		}
		b := n.Mesh.Transform(n.WorldMatrix()).Bounds()
		if !found {
			out, found = b, true
			continue
		}
		out.Min = out.Min.Min(b.Min)
		out.Max = out.Max.Max(b.Max)
	}
	return out, found
}

func formatVec(v math.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
