// Package engine runs the ocean world inside the ebiten game loop.
package engine

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/cbodonnell/seafarer/client/fonts"
	"github.com/cbodonnell/seafarer/client/session"
	"github.com/cbodonnell/seafarer/pkg/log"
	"github.com/cbodonnell/seafarer/pkg/ocean"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	waterColor = color.NRGBA{R: 12, G: 52, B: 92, A: 255}
	wallColor  = color.NRGBA{R: 70, G: 62, B: 54, A: 255}
	diverColor = color.NRGBA{R: 240, G: 180, B: 40, A: 255}
	pearlColor = color.NRGBA{R: 236, G: 236, B: 244, A: 255}
)

// Engine is a game instance drawing to a Canvas.
type Engine struct {
	mu           sync.Mutex
	world        *ocean.World
	canvas       *Canvas
	callbacks    session.ScoreCallbacks
	sound        *Sound
	logger       *log.Logger
	started      bool
	stopped      bool
	paused       bool
	soundEnabled bool
}

var _ session.Engine = &Engine{}

func New(cfg session.GameConfig, canvas *Canvas, callbacks session.ScoreCallbacks, sound *Sound) *Engine {
	return &Engine{
		world:        ocean.NewWorld(cfg.Seed, cfg.StartLevel),
		canvas:       canvas,
		callbacks:    callbacks,
		sound:        sound,
		logger:       log.With(log.Fields{"component": "engine"}),
		soundEnabled: true,
	}
}

func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return fmt.Errorf("engine was stopped")
	}
	if e.started {
		return nil
	}
	e.started = true
	e.canvas.attach(e)
	return nil
}

func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopped = true
	e.canvas.detach(e)
}

func (e *Engine) SetPaused(paused bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paused = paused
}

func (e *Engine) SetSoundEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.soundEnabled = enabled
}

func (e *Engine) SerializableState() (session.Payload, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, err := ocean.EncodeState(e.world.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to encode world state: %v", err)
	}
	return b, nil
}

// LoadSerializableState replaces the world with the one in payload and
// reports its scores.
func (e *Engine) LoadSerializableState(payload session.Payload) error {
	state, err := ocean.DecodeState(payload)
	if err != nil {
		return fmt.Errorf("failed to decode world state: %v", err)
	}

	e.mu.Lock()
	if err := e.world.Restore(state); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("failed to restore world state: %v", err)
	}
	level := e.world.Level()
	levelScore := e.world.LevelScore(level)
	total := e.world.TotalScore()
	e.mu.Unlock()

	e.reportLevel(level, levelScore)
	e.reportTotal(total)
	return nil
}

// Update advances the world one tick unless the engine is paused or not running.
func (e *Engine) Update(in ocean.Input) {
	e.mu.Lock()
	if !e.started || e.stopped || e.paused {
		e.mu.Unlock()
		return
	}
	events := e.world.Step(in)
	soundEnabled := e.soundEnabled
	e.mu.Unlock()

	// callbacks run without the engine lock
	for _, event := range events {
		switch event.Kind {
		case ocean.EventPearlCollected:
			e.reportLevel(event.Level, event.LevelScore)
			e.reportTotal(event.TotalScore)
			if soundEnabled {
				e.sound.Play(EffectPearl)
			}
		case ocean.EventLevelCleared:
			e.logger.Debug("level %d cleared with %d points", event.Level, event.LevelScore)
			if soundEnabled {
				e.sound.Play(EffectLevel)
			}
		}
	}
}

func (e *Engine) reportLevel(level, score int) {
	if e.callbacks.OnLevelScoreChanged != nil {
		e.callbacks.OnLevelScoreChanged(level, score)
	}
}

func (e *Engine) reportTotal(score int) {
	if e.callbacks.OnTotalScoreChanged != nil {
		e.callbacks.OnTotalScoreChanged(score)
	}
}

func (e *Engine) draw(dst *ebiten.Image) {
	e.mu.Lock()
	diver := e.world.Diver()
	pearls := e.world.Pearls()
	level := e.world.Level()
	total := e.world.TotalScore()
	paused := e.paused
	e.mu.Unlock()

	dst.Fill(waterColor)

	w, h := float32(ocean.WorldWidth), float32(ocean.WorldHeight)
	t := float32(ocean.WallThickness)
	vector.DrawFilledRect(dst, 0, 0, w, t, wallColor, false)
	vector.DrawFilledRect(dst, 0, h-t, w, t, wallColor, false)
	vector.DrawFilledRect(dst, 0, 0, t, h, wallColor, false)
	vector.DrawFilledRect(dst, w-t, 0, t, h, wallColor, false)

	r := float32(ocean.PearlSize) / 2
	for _, p := range pearls {
		vector.DrawFilledCircle(dst, float32(p.X)+r, float32(p.Y)+r, r, pearlColor, true)
	}

	vector.DrawFilledRect(dst, float32(diver.X), float32(diver.Y), float32(ocean.DiverWidth), float32(ocean.DiverHeight), diverColor, false)

	hud := fmt.Sprintf("Level %d   Score %d", level, total)
	text.Draw(dst, hud, fonts.TTFSmallFont, int(t)+8, int(t)+20, color.White)
	if paused {
		text.Draw(dst, "PAUSED", fonts.TTFLargeFont, int(w)/2-70, int(h)/2, color.White)
	}
}
