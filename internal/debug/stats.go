package debug

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Faultbox/flora/internal/geom"
	"github.com/Faultbox/flora/internal/scene"
)

// MeshStat describes one mesh in a flower.
type MeshStat struct {
	Name      string
	Vertices  int
	Triangles int
	Colored   bool
	Bounds    geom.Bounds
}

// CollectStats returns one entry per mesh node under root, in tree order.
func CollectStats(root *scene.Node) []MeshStat {
	var out []MeshStat
	for _, n := range root.Meshes() {
		out = append(out, MeshStat{
			Name:      n.Name,
			Vertices:  n.Mesh.VertexCount(),
			Triangles: n.Mesh.TriangleCount(),
			Colored:   len(n.Mesh.Colors) > 0,
			Bounds:    n.Mesh.Bounds(),
		})
	}
	return out
}

// WriteStats prints stats as an aligned table with a total row.
func WriteStats(w io.Writer, stats []MeshStat) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MESH\tVERTICES\tTRIANGLES\tCOLOR")
	var verts, tris int
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%t\n", s.Name, s.Vertices, s.Triangles, s.Colored)
		verts += s.Vertices
		tris += s.Triangles
	}
	fmt.Fprintf(tw, "total\t%d\t%d\t\n", verts, tris)
	return tw.Flush()
}
