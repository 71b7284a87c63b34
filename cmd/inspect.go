package cmd

import (
	"fmt"
	"io"

	"github.com/Carmen-Shannon/polyview/engine/loader"
	"github.com/Carmen-Shannon/polyview/engine/model"
	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"
)

// MeshReport describes one loaded document. Field tags are JSON because ghodss/yaml
// marshals through encoding/json.
type MeshReport struct {
	Path           string       `json:"path"`
	Name           string       `json:"name"`
	GeometryID     string       `json:"geometryId"`
	Material       string       `json:"material,omitempty"`
	Vertices       int          `json:"vertices"`
	Triangles      int          `json:"triangles"`
	Normals        bool         `json:"normals"`
	Bounds         BoundsReport `json:"bounds"`
	BoundingRadius float32      `json:"boundingRadius"`
	SurfaceArea    float64      `json:"surfaceArea"`
}

// BoundsReport is an axis-aligned bounding box.
type BoundsReport struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// InspectCmd represents the inspect command
var InspectCmd = &cobra.Command{
	Use:   "inspect <file.dae>...",
	Short: "Print a YAML report about the mesh in each document",
	Long: `
Loads each document and prints its geometry, vertex and triangle counts, whether
normals are present, the bounding box, bounding radius and surface area.

polyview inspect cube.dae`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, map[string]string{
			"loader.polygon_policy": "polygon-policy",
		})
		if err != nil {
			return err
		}
		l := loader.NewLoader(loader.BackendTypeCollada,
			loader.WithLogger(newLogger()),
			loader.WithPolygonPolicy(cfg.PolygonPolicy()),
		)
		for i, path := range args {
			m, err := l.Load(path)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", path, err)
			}
			if err := writeReport(cmd.OutOrStdout(), NewMeshReport(path, m), i > 0); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(InspectCmd)
	InspectCmd.Flags().StringP("polygon-policy", "p", "reject", "polygons with more than 3 corners: reject or fan")
}

// NewMeshReport summarises a loaded model.
//
// Parameters:
//   - path: the document path
//   - m: the model loaded from path
//
// Returns:
//   - MeshReport: the report
func NewMeshReport(path string, m model.Model) MeshReport {
	report := MeshReport{
		Path:           path,
		Name:           m.Name(),
		GeometryID:     m.GeometryID(),
		Material:       m.Material(),
		BoundingRadius: m.BoundingRadius(),
	}
	mesh := m.Mesh()
	if mesh == nil {
		return report
	}
	box := mesh.Bounds()
	report.Vertices = mesh.VertexCount()
	report.Triangles = mesh.TriangleCount()
	report.Normals = mesh.HasNormals()
	report.Bounds = BoundsReport{
		Min: [3]float64{box.Min.X, box.Min.Y, box.Min.Z},
		Max: [3]float64{box.Max.X, box.Max.Y, box.Max.Z},
	}
	report.SurfaceArea = mesh.SurfaceArea()
	return report
}

func writeReport(w io.Writer, report MeshReport, separate bool) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return err
	}
	if separate {
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}
	}
	_, err = w.Write(data)
	return err
}
