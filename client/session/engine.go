package session

// Payload is engine state serialized for a save. Only the engine that
// produced it interprets it.
type Payload []byte

// GameConfig is the initial configuration of an engine.
type GameConfig struct {
	Width      int
	Height     int
	StartLevel int
	Seed       int64
	// Authenticated tells the engine whether saving is available to the player.
	Authenticated bool
}

// RenderTarget is the surface an engine draws to.
type RenderTarget interface {
	Size() (width int, height int)
}

// ScoreCallbacks are notified by the engine whenever scores change.
// Either may be nil.
type ScoreCallbacks struct {
	OnTotalScoreChanged func(score int)
	OnLevelScoreChanged func(level int, score int)
}

// Engine is a running game instance.
type Engine interface {
	Start() error
	// Stop releases the resources of the engine. It is not restarted afterwards.
	Stop()
	SetPaused(paused bool)
	SetSoundEnabled(enabled bool)
	SerializableState() (Payload, error)
	LoadSerializableState(payload Payload) error
}

type EngineFactory interface {
	Create(cfg GameConfig, target RenderTarget, callbacks ScoreCallbacks) (Engine, error)
}

// EngineFactoryFunc adapts a function to EngineFactory.
type EngineFactoryFunc func(cfg GameConfig, target RenderTarget, callbacks ScoreCallbacks) (Engine, error)

func (f EngineFactoryFunc) Create(cfg GameConfig, target RenderTarget, callbacks ScoreCallbacks) (Engine, error) {
	return f(cfg, target, callbacks)
}
