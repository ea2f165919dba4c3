// Package debug provides inspection tools for built flowers: Wavefront OBJ
// export and per-mesh statistics.
package debug

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/flora/internal/geom"
	"github.com/Faultbox/flora/internal/scene"
	"github.com/Faultbox/flora/pkg/math"
)

// OBJExporter writes flowers to timestamped .obj files.
type OBJExporter struct {
	outputDir string
	prefix    string
	// Bounds adds a wireframe box per mesh as OBJ line elements.
	Bounds bool

	now func() time.Time
}

// NewOBJExporter creates an exporter writing into outputDir.
func NewOBJExporter(outputDir, prefix string) *OBJExporter {
	return &OBJExporter{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// SetOutputDir sets the output directory for exports.
func (e *OBJExporter) SetOutputDir(dir string) {
	e.outputDir = dir
}

// GenerateFilename generates an export filename without writing.
func (e *OBJExporter) GenerateFilename() string {
	timestamp := e.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.obj", e.prefix, timestamp)
	if e.outputDir != "" {
		filename = filepath.Join(e.outputDir, filename)
	}
	return filename
}

// Export writes every mesh under root in world space and returns the path.
func (e *OBJExporter) Export(root *scene.Node) (string, error) {
	// Create output directory if needed
	if e.outputDir != "" {
		if err := os.MkdirAll(e.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := e.GenerateFilename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := WriteOBJ(file, root.Meshes(), e.Bounds); err != nil {
		return "", fmt.Errorf("writing OBJ: %w", err)
	}
	return filename, nil
}

// WriteOBJ writes one object per node, transformed by the node's world
// matrix. OBJ indices are global and 1-based.
func WriteOBJ(w io.Writer, nodes []*scene.Node, bounds bool) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# flora")

	base := 1
	for _, n := range nodes {
		m := n.Mesh
		if m == nil || m.IsEmpty() {
			continue
		}
		world := n.World()
		fmt.Fprintf(bw, "o %s\n", n.Name)

		vc := m.VertexCount()
		for i := 0; i < vc; i++ {
			p := world.TransformPoint(m.Position(i))
			fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", p.X, p.Y, p.Z)
		}
		for i := 0; i < vc; i++ {
			d := world.TransformDirection(m.Normal(i)).Normalize()
			fmt.Fprintf(bw, "vn %.6f %.6f %.6f\n", d.X, d.Y, d.Z)
		}
		for i := 0; i < vc; i++ {
			fmt.Fprintf(bw, "vt %.6f %.6f\n", m.UVs[2*i], m.UVs[2*i+1])
		}
		for t := 0; t+2 < len(m.Indices); t += 3 {
			a := base + int(m.Indices[t])
			b := base + int(m.Indices[t+1])
			c := base + int(m.Indices[t+2])
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
		base += vc

		if bounds {
			base += writeBox(bw, n.Name, worldBounds(world, m.Bounds()), base)
		}
	}
	return bw.Flush()
}

// writeBox emits a bounding box as 24 vertices and 12 line elements and
// returns the vertex count.
func writeBox(w io.Writer, name string, b [6]float32, base int) int {
	verts := BBoxWireframeVertices(b)
	fmt.Fprintf(w, "o %s_bounds\n", name)
	for i := 0; i < len(verts); i += 3 {
		fmt.Fprintf(w, "v %.6f %.6f %.6f\n", verts[i], verts[i+1], verts[i+2])
	}
	for i := 0; i < BBoxWireframeVertexCount; i += 2 {
		fmt.Fprintf(w, "l %d %d\n", base+i, base+i+1)
	}
	return BBoxWireframeVertexCount
}

// worldBounds transforms the eight corners of a local box and returns the
// enclosing axis-aligned box as [minX, minY, minZ, maxX, maxY, maxZ].
func worldBounds(world math.Mat4, b geom.Bounds) [6]float32 {
	c := b.Corners()
	p := world.TransformPoint(c[0])
	box := [6]float32{p.X, p.Y, p.Z, p.X, p.Y, p.Z}
	for _, q := range c[1:] {
		p := world.TransformPoint(q)
		box[0], box[3] = min(box[0], p.X), max(box[3], p.X)
		box[1], box[4] = min(box[1], p.Y), max(box[4], p.Y)
		box[2], box[5] = min(box[2], p.Z), max(box[5], p.Z)
	}
	return box
}
