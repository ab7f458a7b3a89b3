package engine

import (
	"fmt"

	"github.com/cbodonnell/seafarer/client/session"
)

// Factory creates engines that draw to a *Canvas.
type Factory struct {
	sound *Sound
}

var _ session.EngineFactory = &Factory{}

func NewFactory(sound *Sound) *Factory {
	return &Factory{sound: sound}
}

func (f *Factory) Create(cfg session.GameConfig, target session.RenderTarget, callbacks session.ScoreCallbacks) (session.Engine, error) {
	canvas, ok := target.(*Canvas)
	if !ok {
		return nil, fmt.Errorf("unsupported render target %T", target)
	}
	if canvas.Attached() {
		return nil, fmt.Errorf("canvas already has an engine attached")
	}
	return New(cfg, canvas, callbacks, f.sound), nil
}
