package engine

import (
	"sync"

	"github.com/cbodonnell/seafarer/pkg/ocean"
	"github.com/hajimehoshi/ebiten/v2"
)

// Canvas is the surface a game engine draws to. At most one engine is
// attached at a time.
type Canvas struct {
	mu     sync.Mutex
	width  int
	height int
	image  *ebiten.Image
	engine *Engine
}

func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
	}
}

func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

func (c *Canvas) attach(e *Engine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine = e
}

// detach removes e if it is still the attached engine.
func (c *Canvas) detach(e *Engine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.engine == e {
		c.engine = nil
	}
}

func (c *Canvas) attached() *Engine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine
}

// Attached reports whether an engine is drawing to the canvas.
func (c *Canvas) Attached() bool {
	return c.attached() != nil
}

// Update advances the attached engine by one tick.
func (c *Canvas) Update(in ocean.Input) {
	if e := c.attached(); e != nil {
		e.Update(in)
	}
}

// Draw renders the attached engine onto screen with its top left corner at (x, y).
func (c *Canvas) Draw(screen *ebiten.Image, x, y float64) {
	e := c.attached()
	if e == nil {
		return
	}
	if c.image == nil {
		c.image = ebiten.NewImage(c.width, c.height)
	}
	c.image.Clear()
	e.draw(c.image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	screen.DrawImage(c.image, op)
}
