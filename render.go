package main

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/freelook/common"
	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"golang.org/x/image/colornames"
)

const (
	gridExtent      = 20
	gridStep        = 2
	cylinderSides   = 16
	minimapSize     = 200
	minimapMargin   = 10
	minimapScale    = 2.5
	debugDotSize    = 4
	debugLineWidth  = 1
	actorLineWidth  = 2
	headingArrowLen = 1.0
)

// view projects world points for one camera. The world is left-handed
// (+X right when looking down +Z), so screen X is mirrored relative to the
// right-handed GL matrices.
type view struct {
	viewProj mgl64.Mat4
	near     float64
	w, h     float64
}

func newView(cam *component.Camera, tr *component.Transform, w, h float64) view {
	forward := tr.Rotation.Rotate(common.Forward)
	up := tr.Rotation.Rotate(common.Up)
	lookAt := mgl64.LookAtV(tr.Position, tr.Position.Add(forward), up)
	proj := mgl64.Perspective(mgl64.DegToRad(cam.FOV), w/h, cam.Near, cam.Far)
	return view{viewProj: proj.Mul4(lookAt), near: cam.Near, w: w, h: h}
}

func (v view) clip(p mgl64.Vec3) mgl64.Vec4 {
	return v.viewProj.Mul4x1(p.Vec4(1))
}

func (v view) toScreen(c mgl64.Vec4) (float32, float32) {
	x := c.X() / c.W()
	y := c.Y() / c.W()
	return float32((1 - x) / 2 * v.w), float32((1 - y) / 2 * v.h)
}

// line draws a world-space segment, clipping it against the near plane.
func (v view) line(screen *ebiten.Image, a, b mgl64.Vec3, width float32, clr color.Color) {
	ca, cb := v.clip(a), v.clip(b)
	if ca.W() < v.near && cb.W() < v.near {
		return
	}
	if ca.W() < v.near {
		ca = ca.Add(cb.Sub(ca).Mul((v.near - ca.W()) / (cb.W() - ca.W())))
	} else if cb.W() < v.near {
		cb = cb.Add(ca.Sub(cb).Mul((v.near - cb.W()) / (ca.W() - cb.W())))
	}
	x0, y0 := v.toScreen(ca)
	x1, y1 := v.toScreen(cb)
	vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
}

func (v view) box(screen *ebiten.Image, min, max mgl64.Vec3, clr color.Color) {
	corner := func(i int) mgl64.Vec3 {
		p := min
		if i&1 != 0 {
			p[0] = max[0]
		}
		if i&2 != 0 {
			p[1] = max[1]
		}
		if i&4 != 0 {
			p[2] = max[2]
		}
		return p
	}
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				v.line(screen, corner(i), corner(i|bit), debugLineWidth, clr)
			}
		}
	}
}

func (v view) cylinder(screen *ebiten.Image, base mgl64.Vec3, radius, height float64, clr color.Color) {
	top := base.Add(common.Up.Mul(height))
	ring := func(i int) mgl64.Vec3 {
		a := 2 * math.Pi * float64(i) / cylinderSides
		return mgl64.Vec3{math.Sin(a) * radius, 0, math.Cos(a) * radius}
	}
	for i := 0; i < cylinderSides; i++ {
		a, b := ring(i), ring(i+1)
		v.line(screen, base.Add(a), base.Add(b), actorLineWidth, clr)
		v.line(screen, top.Add(a), top.Add(b), actorLineWidth, clr)
		if i%4 == 0 {
			v.line(screen, base.Add(a), top.Add(a), actorLineWidth, clr)
		}
	}
}

func layerColor(layer string) color.Color {
	switch layer {
	case "ground":
		return colornames.Darkseagreen
	case "wall":
		return colornames.Lightslategray
	case "trigger":
		return colornames.Gold
	default:
		return colornames.White
	}
}

// DrawScene draws the level, the players and their headings as wireframe from
// the first camera.
func DrawScene(screen *ebiten.Image, w *ecs.World) {
	camEntity, cam, ok := ecs.FirstWith(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	bounds := screen.Bounds()
	v := newView(cam, camTransform, float64(bounds.Dx()), float64(bounds.Dy()))

	for i := -gridExtent; i <= gridExtent; i += gridStep {
		f := float64(i)
		v.line(screen, mgl64.Vec3{f, 0, -gridExtent}, mgl64.Vec3{f, 0, gridExtent}, debugLineWidth, colornames.Darkslategray)
		v.line(screen, mgl64.Vec3{-gridExtent, 0, f}, mgl64.Vec3{gridExtent, 0, f}, debugLineWidth, colornames.Darkslategray)
	}

	ecs.ForEach(w, component.BlockComponent.Kind(), func(_ ecs.Entity, b *component.Block) {
		v.box(screen, b.Min, b.Max, layerColor(b.Layer))
	})

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Player, tr *component.Transform) {
		v.cylinder(screen, tr.Position, p.Radius, p.Height, colornames.Orange)
		chest := tr.Position.Add(common.Up.Mul(p.Height / 2))
		heading := tr.Rotation.Rotate(common.Forward).Mul(headingArrowLen)
		v.line(screen, chest, chest.Add(heading), actorLineWidth, colornames.Orangered)
	})
}

// DrawMinimap draws the collision space from above in the top-right corner,
// plus the player and camera positions.
func DrawMinimap(screen *ebiten.Image, w *ecs.World) {
	pw := w.PhysicsWorld()
	if pw == nil || pw.Space() == nil {
		return
	}

	bounds := screen.Bounds()
	left := float64(bounds.Dx() - minimapSize - minimapMargin)
	top := float64(minimapMargin)
	vector.FillRect(screen, float32(left), float32(top), minimapSize, minimapSize, color.RGBA{A: 160}, false)
	vector.StrokeRect(screen, float32(left), float32(top), minimapSize, minimapSize, debugLineWidth, colornames.Gray, false)

	drawer := &minimapDrawer{
		screen:  screen,
		physics: pw,
		cx:      left + minimapSize/2,
		cy:      top + minimapSize/2,
		scale:   minimapScale,
	}

	// center on the first player so large levels stay readable
	if e, ok := ecs.First(w, component.PlayerComponent.Kind()); ok {
		if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			drawer.originX, drawer.originZ = tr.Position.X(), tr.Position.Z()
		}
	}

	cp.DrawSpace(pw.Space(), drawer)

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Player, tr *component.Transform) {
		drawer.marker(tr.Position, p.Radius, colornames.Orange)
	})
	ecs.ForEach2(w, component.CameraComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Camera, tr *component.Transform) {
		drawer.marker(tr.Position, 0.3, colornames.Deepskyblue)
	})
}

// minimapDrawer renders a Chipmunk space whose XY plane is the world's XZ
// ground plane.
type minimapDrawer struct {
	screen  *ebiten.Image
	physics *ecs.PhysicsWorld

	cx, cy           float64
	originX, originZ float64
	scale            float64
}

func (d *minimapDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawCircle(pos, radius, toNRGBA(outline))
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, toNRGBA(outline))
}

func (d *minimapDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, toNRGBA(fill))
}

func (d *minimapDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, toNRGBA(outline))
	if radius > 0 {
		d.drawCircle(a, radius, toNRGBA(outline))
		d.drawCircle(b, radius, toNRGBA(outline))
	}
}

func (d *minimapDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], toNRGBA(fill))
}

func (d *minimapDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := d.toScreen(pos)
	half := float32(size / 2)
	vector.FillRect(d.screen, x-half, y-half, float32(size), float32(size), toNRGBA(fill), false)
}

func (d *minimapDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *minimapDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

// ShapeColor tints each block by its collision layer.
func (d *minimapDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if b, ok := d.physics.BlockForShape(shape); ok {
		r, g, bl, _ := layerColor(b.Layer).RGBA()
		return cp.FColor{R: float32(r) / 0xffff, G: float32(g) / 0xffff, B: float32(bl) / 0xffff, A: 0.9}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *minimapDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *minimapDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *minimapDrawer) Data() interface{} {
	return nil
}

func (d *minimapDrawer) marker(p mgl64.Vec3, radius float64, clr color.Color) {
	d.drawCircle(cp.Vector{X: p.X(), Y: p.Z()}, radius, clr)
}

func (d *minimapDrawer) drawLine(a, b cp.Vector, clr color.Color) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, debugLineWidth, clr, false)
}

func (d *minimapDrawer) drawPolygon(verts []cp.Vector, clr color.Color) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], clr)
	}
}

func (d *minimapDrawer) drawCircle(center cp.Vector, radius float64, clr color.Color) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, cylinderSides)
	for i := 0; i < cylinderSides; i++ {
		t := 2 * math.Pi * float64(i) / cylinderSides
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, clr)
}

// toScreen maps ground-plane (x, z) to minimap pixels with +Z pointing up.
func (d *minimapDrawer) toScreen(v cp.Vector) (float32, float32) {
	x := d.cx + (v.X-d.originX)*d.scale
	y := d.cy - (v.Y-d.originZ)*d.scale
	return float32(x), float32(y)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(common.Clamp01(float64(c.R)) * 255),
		G: uint8(common.Clamp01(float64(c.G)) * 255),
		B: uint8(common.Clamp01(float64(c.B)) * 255),
		A: uint8(common.Clamp01(float64(c.A)) * 255),
	}
}
