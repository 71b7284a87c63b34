package cmd

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/Carmen-Shannon/polyview/common"
	"github.com/Carmen-Shannon/polyview/engine"
	"github.com/Carmen-Shannon/polyview/engine/game_object"
	"github.com/Carmen-Shannon/polyview/engine/loader"
	"github.com/Carmen-Shannon/polyview/engine/profiler"
	"github.com/Carmen-Shannon/polyview/engine/renderer"
	"github.com/Carmen-Shannon/polyview/engine/window"
	"github.com/Carmen-Shannon/polyview/internal/config"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/spf13/cobra"
)

// Rotation rates in radians per second about X, Y and Z at speed 1.
var baseRotation = [3]float32{2 * math.Pi / 4, 2 * math.Pi / 6, 2 * math.Pi / 8}

// ViewCmd represents the view command
var ViewCmd = &cobra.Command{
	Use:   "view <file.dae>",
	Short: "Show a document's mesh in a lit, rotating window",
	Long: `
Opens a window and draws the document's first polylist mesh in red with a white
highlight under a directional light, tumbling about all three axes.

Keys: Space pauses, R resets the orientation, F frames the mesh, Up/Down change
the rotation speed, Escape quits.

polyview view cube.dae`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, map[string]string{
			"animation.fps":         "fps",
			"render.msaa":           "msaa",
			"loader.polygon_policy": "polygon-policy",
		})
		if err != nil {
			return err
		}
		if dir, _ := cmd.Flags().GetString("profile"); dir != "" {
			stop := profiler.StartCPUProfile(dir)
			defer stop()
		}
		return runView(args[0], cfg)
	},
}

func init() {
	rootCmd.AddCommand(ViewCmd)
	ViewCmd.Flags().IntP("fps", "f", 60, "target frame rate")
	ViewCmd.Flags().Int("msaa", 4, "multisample count, 1 or 4")
	ViewCmd.Flags().StringP("polygon-policy", "p", "reject", "polygons with more than 3 corners: reject or fan")
	ViewCmd.Flags().String("profile", "", "write a CPU profile to this directory")
}

func runView(path string, cfg *config.Config) error {
	logger := newLogger()

	l := loader.NewLoader(loader.BackendTypeCollada,
		loader.WithLogger(logger),
		loader.WithPolygonPolicy(cfg.PolygonPolicy()),
	)
	m, err := l.Load(path)
	if err != nil {
		return err
	}

	title := cfg.Window.Title
	if title == "" || title == "polyview" {
		title = "polyview - " + filepath.Base(path)
	}
	win, err := window.NewWindow(
		window.WithTitle(title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithResizable(cfg.Window.Resizable),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	r, err := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win.SurfaceDescriptor(),
		win.Width(),
		win.Height(),
		rendererOptions(cfg)...,
	)
	if err != nil {
		return fmt.Errorf("view: creating renderer: %w", err)
	}
	defer r.Release()

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithFrameRate(float64(cfg.Animation.FPS)),
		engine.WithPaused(cfg.Animation.Paused),
		engine.WithProfiling(verbose),
		engine.WithLogger(logger),
	)

	obj := game_object.NewGameObject(game_object.WithModel(m))
	setSpeed(obj, cfg.Animation.Speed)
	if err := eng.AddObject(obj); err != nil {
		return fmt.Errorf("view: registering mesh: %w", err)
	}

	controls := &viewControls{
		engine:   eng,
		object:   obj,
		renderer: r,
		speed:    cfg.Animation.Speed,
		radius:   m.BoundingRadius(),
	}
	win.SetKeyDownCallback(controls.keyDown)

	logger.Printf("[Viewer] %s: %d vertices, %d triangles", path, m.Mesh().VertexCount(), m.Mesh().TriangleCount())
	eng.Run()
	return nil
}

func rendererOptions(cfg *config.Config) []renderer.RendererBuilderOption {
	present := renderer.PresentModeVSync
	if !cfg.Render.VSync {
		present = renderer.PresentModeUncapped
	}
	c := cfg.ClearColor()
	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(present),
		renderer.WithMSAA(renderer.ParseMSAA(cfg.Render.MSAA)),
		renderer.WithForceSoftwareRenderer(cfg.Render.ForceSoftware),
		renderer.WithClearColor(wgpu.Color{R: c[0], G: c[1], B: c[2], A: c[3]}),
		renderer.WithCamera(renderer.DefaultCamera()),
		renderer.WithLight(renderer.DefaultLight()),
		renderer.WithMaterial(renderer.DefaultMaterial()),
	}
}

func setSpeed(obj game_object.GameObject, speed float64) {
	s := float32(speed)
	obj.SetRotationSpeed(baseRotation[0]*s, baseRotation[1]*s, baseRotation[2]*s)
}

// viewControls handles the viewer's keyboard shortcuts.
type viewControls struct {
	engine   engine.Engine
	object   game_object.GameObject
	renderer renderer.Renderer
	speed    float64
	radius   float32
	framed   bool
}

func (c *viewControls) keyDown(key uint32) {
	switch key {
	case common.KeySpace:
		c.engine.SetPaused(!c.engine.Paused())
	case common.KeyR:
		c.object.ResetOrientation()
	case common.KeyF:
		c.framed = !c.framed
		if c.framed {
			c.renderer.SetCamera(FrameCamera(renderer.DefaultCamera(), c.radius))
		} else {
			c.renderer.SetCamera(renderer.DefaultCamera())
		}
	case common.KeyUp:
		c.speed *= 1.25
		setSpeed(c.object, c.speed)
	case common.KeyDown:
		c.speed /= 1.25
		setSpeed(c.object, c.speed)
	}
}

// FrameCamera moves the camera along its view direction so a sphere of the given radius
// about the target fills the vertical field of view with a small margin. Near and far are
// widened to keep the sphere inside the clip range.
//
// Parameters:
//   - camera: the camera to adjust
//   - radius: the bounding sphere radius, values <= 0 leave the camera unchanged
//
// Returns:
//   - renderer.Camera: the framed camera
func FrameCamera(camera renderer.Camera, radius float32) renderer.Camera {
	if radius <= 0 || camera.FovY <= 0 {
		return camera
	}
	dir := [3]float64{
		float64(camera.Eye[0] - camera.Target[0]),
		float64(camera.Eye[1] - camera.Target[1]),
		float64(camera.Eye[2] - camera.Target[2]),
	}
	length := math.Sqrt(dir[0]*dir[0] + dir[1]*dir[1] + dir[2]*dir[2])
	if length == 0 {
		dir, length = [3]float64{0, 0, 1}, 1
	}

	const margin = 1.1
	distance := margin * float64(radius) / math.Sin(float64(camera.FovY)/2)
	for i := range 3 {
		camera.Eye[i] = camera.Target[i] + float32(dir[i]/length*distance)
	}
	camera.Near = float32(max(distance-float64(radius)*margin, 0.01))
	camera.Far = float32(distance + float64(radius)*margin*2)
	return camera
}
