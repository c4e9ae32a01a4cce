package renderer

import (
	_ "embed"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/phage/camera"
	"github.com/pthm-cable/phage/systems"
)

//go:embed shaders/dish.fs
var dishShaderFS string

// DishRenderer renders the petri dish: an animated agar fill and the glass rim.
type DishRenderer struct {
	shader        rl.Shader
	timeLoc       int32
	resolutionLoc int32
	centerLoc     int32
	radiusLoc     int32

	width, height float32
	initialized   bool
}

// NewDishRenderer creates a new dish renderer.
func NewDishRenderer(width, height int32) *DishRenderer {
	return &DishRenderer{
		width:  float32(width),
		height: float32(height),
	}
}

// Init initializes the renderer (must be called after raylib window is created).
func (r *DishRenderer) Init() {
	if r.initialized {
		return
	}

	r.shader = rl.LoadShaderFromMemory("", dishShaderFS)
	r.timeLoc = rl.GetShaderLocation(r.shader, "time")
	r.resolutionLoc = rl.GetShaderLocation(r.shader, "resolution")
	r.centerLoc = rl.GetShaderLocation(r.shader, "center")
	r.radiusLoc = rl.GetShaderLocation(r.shader, "radius")

	resolution := []float32{r.width, r.height}
	rl.SetShaderValue(r.shader, r.resolutionLoc, resolution, rl.ShaderUniformVec2)

	r.initialized = true
}

// DrawBackground renders the agar fill in screen space.
// Call outside rl.BeginMode2D.
func (r *DishRenderer) DrawBackground(d systems.Dish, cam *camera.Camera, time float32) {
	if !r.initialized {
		r.Init()
	}

	cx, cy := cam.WorldToScreen(d.Center.X, d.Center.Y)
	rl.SetShaderValue(r.shader, r.timeLoc, []float32{time}, rl.ShaderUniformFloat)
	rl.SetShaderValue(r.shader, r.centerLoc, []float32{float32(cx), float32(cy)}, rl.ShaderUniformVec2)
	rl.SetShaderValue(r.shader, r.radiusLoc, []float32{float32(d.Radius * cam.Zoom)}, rl.ShaderUniformFloat)

	rl.BeginShaderMode(r.shader)
	rl.DrawRectangle(0, 0, int32(r.width), int32(r.height), rl.White)
	rl.EndShaderMode()
}

// DrawRim renders the glass rim in world space.
// Call inside rl.BeginMode2D.
func (r *DishRenderer) DrawRim(d systems.Dish) {
	center := rl.Vector2{X: float32(d.Center.X), Y: float32(d.Center.Y)}
	rim := float32(d.Radius)

	// Glass rim with a soft highlight
	rl.DrawRing(center, rim, rim+6, 0, 360, 96, rl.Color{R: 170, G: 190, B: 200, A: 90})
	rl.DrawRing(center, rim+1, rim+3, 200, 300, 32, rl.Color{R: 230, G: 240, B: 255, A: 110})
	rl.DrawCircleLines(int32(d.Center.X), int32(d.Center.Y), float32(d.BoundaryRadius), rl.Color{R: 255, G: 255, B: 255, A: 18})
}

// Unload frees resources.
func (r *DishRenderer) Unload() {
	if r.initialized {
		rl.UnloadShader(r.shader)
		r.initialized = false
	}
}
