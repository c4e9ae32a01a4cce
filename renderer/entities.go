package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/phage/components"
	"github.com/pthm-cable/phage/game"
)

var (
	bacteriumColor = rl.Color{R: 214, G: 160, B: 72, A: 255}
	infectedColor  = rl.Color{R: 150, G: 220, B: 120, A: 255}
	swarmerColor   = rl.Color{R: 120, G: 180, B: 255, A: 230}
	strikerColor   = rl.Color{R: 255, G: 120, B: 70, A: 240}
	phageColor     = rl.Color{R: 200, G: 255, B: 210, A: 255}
)

// EntityRenderer draws bacteria, helpers and the phage.
type EntityRenderer struct{}

// NewEntityRenderer creates a new entity renderer.
func NewEntityRenderer() *EntityRenderer {
	return &EntityRenderer{}
}

// DrawBacteria renders bacteria as rod-shaped capsules along their heading.
func (r *EntityRenderer) DrawBacteria(bacteria []game.BacteriumView) {
	for i := range bacteria {
		b := &bacteria[i]

		color := bacteriumColor
		if b.Infected {
			color = infectedColor
		}

		half := float32(b.Radius * 0.6)
		thick := float32(b.Radius)
		dx := float32(math.Cos(b.Heading)) * half
		dy := float32(math.Sin(b.Heading)) * half
		x, y := float32(b.Pos.X), float32(b.Pos.Y)

		a := rl.Vector2{X: x - dx, Y: y - dy}
		c := rl.Vector2{X: x + dx, Y: y + dy}
		rl.DrawLineEx(a, c, thick, color)
		rl.DrawCircleV(a, thick/2, color)
		rl.DrawCircleV(c, thick/2, color)

		// Darker nucleoid
		core := rl.Color{R: color.R / 2, G: color.G / 2, B: color.B / 2, A: 180}
		rl.DrawCircleV(rl.Vector2{X: x, Y: y}, thick/4, core)
	}
}

// DrawHelpers renders helpers as oriented triangles, colored by role.
func (r *EntityRenderer) DrawHelpers(helpers []game.HelperView) {
	for i := range helpers {
		h := &helpers[i]
		color := swarmerColor
		if h.Role == components.RoleStriker {
			color = strikerColor
		}
		drawOrientedTriangle(h.Pos.X, h.Pos.Y, h.Heading, h.Radius, color)
	}
}

// DrawPlayer renders the phage: an icosahedral head with a tail trailing
// opposite its heading.
func (r *EntityRenderer) DrawPlayer(p game.PlayerView) {
	x, y := float32(p.Pos.X), float32(p.Pos.Y)
	radius := float32(p.Radius)

	tailLen := radius * 1.4
	tx := x - float32(math.Cos(p.Heading))*tailLen
	ty := y - float32(math.Sin(p.Heading))*tailLen
	rl.DrawLineEx(rl.Vector2{X: x, Y: y}, rl.Vector2{X: tx, Y: ty}, 3, phageColor)

	// Tail fibers
	for _, spread := range []float64{-0.7, 0.7} {
		fa := p.Heading + math.Pi + spread
		fx := tx + float32(math.Cos(fa))*radius*0.6
		fy := ty + float32(math.Sin(fa))*radius*0.6
		rl.DrawLineEx(rl.Vector2{X: tx, Y: ty}, rl.Vector2{X: fx, Y: fy}, 1.5, phageColor)
	}

	rl.DrawPoly(rl.Vector2{X: x, Y: y}, 6, radius*0.75, float32(p.Heading*180/math.Pi), phageColor)
	rl.DrawPolyLinesEx(rl.Vector2{X: x, Y: y}, 6, radius*0.75, float32(p.Heading*180/math.Pi), 1.5, rl.Color{R: 40, G: 90, B: 60, A: 255})
}

// DrawInjection renders the injection link and progress ring around the target.
func (r *EntityRenderer) DrawInjection(p game.PlayerView, inj game.InjectionView) {
	if !inj.Active {
		return
	}

	target := rl.Vector2{X: float32(inj.Target.X), Y: float32(inj.Target.Y)}
	rl.DrawLineEx(rl.Vector2{X: float32(p.Pos.X), Y: float32(p.Pos.Y)}, target, 1, rl.Color{R: 200, G: 255, B: 210, A: 120})

	const ringInner, ringOuter = 18, 22
	rl.DrawRing(target, ringInner, ringOuter, 0, 360, 48, rl.Color{R: 0, G: 0, B: 0, A: 90})
	end := float32(-90 + 360*inj.Progress)
	rl.DrawRing(target, ringInner, ringOuter, -90, end, 48, infectedColor)
}

// DrawAttachRange renders the phage's attach radius (debug overlay).
func (r *EntityRenderer) DrawAttachRange(p game.PlayerView, attachRange float64) {
	rl.DrawCircleLines(int32(p.Pos.X), int32(p.Pos.Y), float32(attachRange), rl.Color{R: 200, G: 255, B: 210, A: 60})
}

// drawOrientedTriangle draws a triangle pointing along heading.
func drawOrientedTriangle(x, y, heading, radius float64, color rl.Color) {
	front := rl.Vector2{
		X: float32(x + math.Cos(heading)*radius*1.5),
		Y: float32(y + math.Sin(heading)*radius*1.5),
	}
	backLeft := rl.Vector2{
		X: float32(x + math.Cos(heading+math.Pi*0.8)*radius),
		Y: float32(y + math.Sin(heading+math.Pi*0.8)*radius),
	}
	backRight := rl.Vector2{
		X: float32(x + math.Cos(heading-math.Pi*0.8)*radius),
		Y: float32(y + math.Sin(heading-math.Pi*0.8)*radius),
	}

	// DrawTriangle requires counter-clockwise winding
	rl.DrawTriangle(front, backRight, backLeft, color)
}
