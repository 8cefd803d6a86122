package ecs

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

const (
	// DefaultLayer is used for blocks that name no layer.
	DefaultLayer = "default"

	maxLayers = 32
	skin      = 1e-6
)

var ErrTooManyLayers = errors.New("ecs: collision layer table full")

// Block is an axis-aligned static collider. Its footprint lives in a
// Chipmunk space on the XZ ground plane; the vertical extent is kept here.
type Block struct {
	Name  string
	Min   mgl64.Vec3
	Max   mgl64.Vec3
	Layer string

	bit   uint
	shape *cp.Shape
}

// Bit is the collision layer bit of the block.
func (b *Block) Bit() uint { return b.bit }

// PhysicsWorld owns the Chipmunk space holding level geometry. It answers
// the two queries the character controller needs: move-and-collide for a
// kinematic capsule and sphere overlap for the ground probe.
type PhysicsWorld struct {
	space   *cp.Space
	gravity float64

	blocks       []*Block
	shapeToBlock map[*cp.Shape]*Block
	layers       map[string]uint
}

// NewPhysicsWorld creates an empty world with the given vertical gravity.
func NewPhysicsWorld(gravity float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20

	return &PhysicsWorld{
		space:        space,
		gravity:      gravity,
		shapeToBlock: make(map[*cp.Shape]*Block),
		layers:       map[string]uint{DefaultLayer: 1},
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

func (pw *PhysicsWorld) Gravity() float64 {
	if pw == nil {
		return 0
	}
	return pw.gravity
}

func (pw *PhysicsWorld) SetGravity(g float64) {
	pw.gravity = g
}

// Layer returns the bit for a named layer, allocating the next free bit on
// first use.
func (pw *PhysicsWorld) Layer(name string) (uint, error) {
	if name == "" {
		name = DefaultLayer
	}
	if bit, ok := pw.layers[name]; ok {
		return bit, nil
	}
	if len(pw.layers) >= maxLayers {
		return 0, fmt.Errorf("%w: cannot add %q", ErrTooManyLayers, name)
	}
	var used uint
	for _, b := range pw.layers {
		used |= b
	}
	bit := uint(1) << bits.TrailingZeros(^used)
	pw.layers[name] = bit
	return bit, nil
}

// AddBlock inserts a static block. Inverted corners are swapped.
func (pw *PhysicsWorld) AddBlock(name string, min, max mgl64.Vec3, layer string) (*Block, error) {
	bit, err := pw.Layer(layer)
	if err != nil {
		return nil, err
	}
	if layer == "" {
		layer = DefaultLayer
	}
	for i := 0; i < 3; i++ {
		if min[i] > max[i] {
			min[i], max[i] = max[i], min[i]
		}
	}

	bb := cp.BB{L: min.X(), B: min.Z(), R: max.X(), T: max.Z()}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, bit, cp.ALL_CATEGORIES))
	pw.space.AddShape(shape)

	b := &Block{Name: name, Min: min, Max: max, Layer: layer, bit: bit, shape: shape}
	pw.blocks = append(pw.blocks, b)
	pw.shapeToBlock[shape] = b
	return b, nil
}

// Clear removes every block but keeps the layer table.
func (pw *PhysicsWorld) Clear() {
	for _, b := range pw.blocks {
		pw.space.RemoveShape(b.shape)
	}
	pw.blocks = nil
	pw.shapeToBlock = make(map[*cp.Shape]*Block)
}

// BlockForShape maps a Chipmunk shape back to its block.
func (pw *PhysicsWorld) BlockForShape(shape *cp.Shape) (*Block, bool) {
	b, ok := pw.shapeToBlock[shape]
	return b, ok
}

func (pw *PhysicsWorld) Blocks() []*Block {
	return append([]*Block(nil), pw.blocks...)
}

// overlapping calls fn for every block whose footprint lies within radius of
// the planar point (x, z), passing the signed planar distance.
func (pw *PhysicsWorld) overlapping(x, z, radius float64, exclude uint, fn func(b *Block, dist float64)) {
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES&^exclude)
	pt := cp.Vector{X: x, Y: z}
	pw.space.BBQuery(cp.NewBBForCircle(pt, radius), filter, func(shape *cp.Shape, _ interface{}) {
		b, ok := pw.shapeToBlock[shape]
		if !ok {
			return
		}
		if info := shape.PointQuery(pt); info.Distance <= radius {
			fn(b, info.Distance)
		}
	}, nil)
}

// CheckSphere reports whether a sphere overlaps any block outside excludeMask.
func (pw *PhysicsWorld) CheckSphere(center mgl64.Vec3, radius float64, excludeMask uint) bool {
	hit := false
	pw.overlapping(center.X(), center.Z(), radius, excludeMask, func(b *Block, dist float64) {
		if hit {
			return
		}
		h := math.Max(dist, 0)
		v := 0.0
		switch {
		case center.Y() < b.Min.Y():
			v = b.Min.Y() - center.Y()
		case center.Y() > b.Max.Y():
			v = center.Y() - b.Max.Y()
		}
		if h*h+v*v <= radius*radius {
			hit = true
		}
	})
	return hit
}

// Character is a kinematic upright capsule approximated by a vertical
// cylinder. Position is the centre of its feet.
type Character struct {
	world      *PhysicsWorld
	pos        mgl64.Vec3
	radius     float64
	height     float64
	stepOffset float64
	ignore     uint
	grounded   bool
}

// NewCharacter places a character in the world. Blocks on ignored layers
// never obstruct or support it.
func (pw *PhysicsWorld) NewCharacter(pos mgl64.Vec3, radius, height, stepOffset float64, ignoreMask uint) (*Character, error) {
	if radius <= 0 || height <= 0 {
		return nil, fmt.Errorf("ecs: character needs positive radius and height, got %v/%v", radius, height)
	}
	if stepOffset < 0 || stepOffset > height {
		return nil, fmt.Errorf("ecs: step offset %v outside [0, %v]", stepOffset, height)
	}
	return &Character{
		world:      pw,
		pos:        pos,
		radius:     radius,
		height:     height,
		stepOffset: stepOffset,
		ignore:     ignoreMask,
	}, nil
}

func (c *Character) Position() mgl64.Vec3 { return c.pos }
func (c *Character) Grounded() bool       { return c.grounded }
func (c *Character) Radius() float64      { return c.radius }
func (c *Character) Height() float64      { return c.height }

// Teleport moves the character without collision.
func (c *Character) Teleport(pos mgl64.Vec3) {
	c.pos = pos
	c.grounded = false
}

// Move applies a displacement: the planar part slides along obstructions and
// climbs ledges up to the step offset, the vertical part lands on or bumps
// into blocks. It reports whether the character ends standing on a block.
func (c *Character) Move(d mgl64.Vec3) bool {
	planar := mgl64.Vec3{d.X(), 0, d.Z()}
	if length := planar.Len(); length > 0 {
		steps := int(math.Ceil(length / c.radius))
		step := planar.Mul(1 / float64(steps))
		for i := 0; i < steps; i++ {
			next, moved := c.slide(c.pos, step)
			c.pos = next
			if !moved {
				break
			}
		}
	}
	c.pos, c.grounded = c.settle(c.pos, d.Y())
	return c.grounded
}

func (c *Character) slide(pos, step mgl64.Vec3) (mgl64.Vec3, bool) {
	candidates := []mgl64.Vec3{
		pos.Add(step),
		pos.Add(mgl64.Vec3{step.X(), 0, 0}),
		pos.Add(mgl64.Vec3{0, 0, step.Z()}),
	}
	for _, p := range candidates {
		if p == pos {
			continue
		}
		if !c.blocked(p) {
			return p, true
		}
	}
	return pos, false
}

// blocked reports whether the cylinder at p intersects a block that is too
// tall to step onto.
func (c *Character) blocked(p mgl64.Vec3) bool {
	hit := false
	c.world.overlapping(p.X(), p.Z(), c.radius, c.ignore, func(b *Block, dist float64) {
		if dist >= c.radius-skin {
			return
		}
		if b.Max.Y() > p.Y()+c.stepOffset+skin && b.Min.Y() < p.Y()+c.height-skin {
			hit = true
		}
	})
	return hit
}

func (c *Character) settle(p mgl64.Vec3, dy float64) (mgl64.Vec3, bool) {
	support := math.Inf(-1)
	ceiling := math.Inf(1)
	c.world.overlapping(p.X(), p.Z(), c.radius, c.ignore, func(b *Block, dist float64) {
		if dist >= c.radius-skin {
			return
		}
		if top := b.Max.Y(); top <= p.Y()+c.stepOffset+skin && top > support {
			support = top
		}
		if bottom := b.Min.Y(); bottom >= p.Y()+c.height-skin && bottom < ceiling {
			ceiling = bottom
		}
	})

	y := p.Y() + dy
	if dy > 0 && y+c.height > ceiling {
		y = ceiling - c.height
	}
	if y <= support {
		return mgl64.Vec3{p.X(), support, p.Z()}, true
	}
	return mgl64.Vec3{p.X(), y, p.Z()}, false
}
