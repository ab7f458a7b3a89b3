// Package session keeps a running game engine, the authenticated identity
// and the remote saves of the player in one store, and is the only caller
// of the engine.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/seafarer/client/api"
	"github.com/cbodonnell/seafarer/client/async"
	"github.com/cbodonnell/seafarer/pkg/log"
	"github.com/cbodonnell/seafarer/pkg/repositories/models"
	"github.com/cbodonnell/seafarer/pkg/tokens"
)

// Controller mediates every change to a session.
//
// Engine operations are serialized by the controller lock. Remote calls never
// hold it, so pausing, muting and restarting stay available while a call is
// in flight.
type Controller struct {
	mu      sync.Mutex
	store   *Store
	factory EngineFactory
	gateway api.Gateway
	tokens  tokens.Store
	logger  *log.Logger

	// parameters of the last started session, reused by RestartSession
	cfg       GameConfig
	target    RenderTarget
	callbacks ScoreCallbacks
}

type NewControllerOptions struct {
	Store   *Store
	Factory EngineFactory
	Gateway api.Gateway
	Tokens  tokens.Store
	Logger  *log.Logger
}

func NewController(opts NewControllerOptions) *Controller {
	store := opts.Store
	if store == nil {
		store = NewStore()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		store:   store,
		factory: opts.Factory,
		gateway: opts.Gateway,
		tokens:  opts.Tokens,
		logger:  logger.With(log.Fields{"component": "session"}),
	}
}

func (c *Controller) Snapshot() View {
	return c.store.Snapshot()
}

// StartSession creates and starts an engine drawing to target. It does
// nothing if a session is already running or paused. A nil target is a
// programming error and panics.
func (c *Controller) StartSession(cfg GameConfig, target RenderTarget, callbacks ScoreCallbacks) error {
	if target == nil {
		panic("session: render target is unavailable")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store.liveEngine() != nil {
		c.logger.Debug("session already active, ignoring start")
		return nil
	}
	return c.start(cfg, target, callbacks)
}

// start creates, starts and attaches an engine. Callers hold mu and have
// released any previous engine.
func (c *Controller) start(cfg GameConfig, target RenderTarget, callbacks ScoreCallbacks) error {
	generation := c.store.nextGeneration()
	engine, err := c.factory.Create(cfg, target, c.guardCallbacks(generation, callbacks))
	if err != nil {
		return fmt.Errorf("failed to create engine: %v", err)
	}
	engine.SetSoundEnabled(c.store.sound())
	if err := engine.Start(); err != nil {
		engine.Stop()
		return fmt.Errorf("failed to start engine: %v", err)
	}

	c.store.attach(engine, generation)
	c.cfg, c.target, c.callbacks = cfg, target, callbacks
	c.logger.Info("session started at level %d", cfg.StartLevel)
	return nil
}

// guardCallbacks wraps callbacks so that reports from an engine that is no
// longer live are dropped.
func (c *Controller) guardCallbacks(generation uint64, callbacks ScoreCallbacks) ScoreCallbacks {
	return ScoreCallbacks{
		OnTotalScoreChanged: func(score int) {
			if !c.store.setTotalScore(generation, score) {
				return
			}
			if callbacks.OnTotalScoreChanged != nil {
				callbacks.OnTotalScoreChanged(score)
			}
		},
		OnLevelScoreChanged: func(level int, score int) {
			if !c.store.setLevelScore(generation, level, score) {
				return
			}
			if callbacks.OnLevelScoreChanged != nil {
				callbacks.OnLevelScoreChanged(level, score)
			}
		},
	}
}

// RestartSession stops the live engine and starts a new one with the
// parameters of the last start.
func (c *Controller) RestartSession() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	engine := c.store.liveEngine()
	if engine == nil {
		return ErrNoSession
	}
	engine.Stop()
	c.store.detach()
	return c.start(c.cfg, c.target, c.callbacks)
}

// StopSession stops the live engine.
func (c *Controller) StopSession() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	engine := c.store.liveEngine()
	if engine == nil {
		return ErrNoSession
	}
	engine.Stop()
	c.store.detach()
	c.logger.Info("session stopped")
	return nil
}

// TogglePause flips between Running and Paused and returns the new status.
func (c *Controller) TogglePause() (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	engine := c.store.liveEngine()
	if engine == nil {
		c.logger.Warn("toggle pause without an active session")
		return c.store.currentStatus(), ErrNoSession
	}
	paused := c.store.currentStatus() != Paused
	engine.SetPaused(paused)
	c.store.setPaused(paused)
	return c.store.currentStatus(), nil
}

// Pause pauses the live engine if it is running.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	engine := c.store.liveEngine()
	if engine == nil {
		return ErrNoSession
	}
	c.pause(engine)
	return nil
}

func (c *Controller) pause(engine Engine) {
	if c.store.currentStatus() == Paused {
		return
	}
	engine.SetPaused(true)
	c.store.setPaused(true)
}

// ToggleSound flips the sound flag and returns it. The flag outlives sessions.
func (c *Controller) ToggleSound() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	enabled := !c.store.sound()
	c.store.setSound(enabled)
	if engine := c.store.liveEngine(); engine != nil {
		engine.SetSoundEnabled(enabled)
	}
	return enabled
}

// ApplySave pauses the session and loads the save with the given ID into the engine.
func (c *Controller) ApplySave(id string) error {
	save, ok := c.store.findSave(id)
	if !ok {
		return fmt.Errorf("save %s is not loaded", id)
	}
	return c.ApplyRecord(save)
}

// ApplyRecord pauses the session and loads save into the engine.
func (c *Controller) ApplyRecord(save *models.Save) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	engine := c.store.liveEngine()
	if engine == nil {
		return ErrNoSession
	}
	c.pause(engine)
	if err := engine.LoadSerializableState(Payload(save.Payload)); err != nil {
		c.logger.Error("failed to load save %s: %v", save.ID, err)
		c.store.setLoadError("This save could not be loaded")
		return fmt.Errorf("failed to load save %s: %w", save.ID, err)
	}
	c.store.setLoadError("")
	c.logger.Info("loaded save %s", save.ID)
	return nil
}

// RequestSave stores the state of the live engine as a new save.
// Gateway failures are reported through the save slot, not returned.
func (c *Controller) RequestSave(ctx context.Context) error {
	token, epoch, ok := c.store.authToken()
	if !ok {
		return ErrUnauthorized
	}

	c.mu.Lock()
	engine := c.store.liveEngine()
	if engine == nil {
		c.mu.Unlock()
		return ErrNoSession
	}
	payload, err := engine.SerializableState()
	c.mu.Unlock()

	ticket := c.store.createSave.Begin()
	if err != nil {
		c.logger.Error("failed to read engine state: %v", err)
		c.store.createSave.Fail(ticket, "The game could not be saved")
		return nil
	}

	id, err := c.gateway.CreateSave(ctx, token, payload)
	if err != nil {
		c.logger.Warn("create save failed: %v", err)
		c.store.createSave.Fail(ticket, async.Describe(err))
		return nil
	}

	save := &models.Save{ID: id, Payload: payload, CreatedAt: time.Now().UTC()}
	// the save exists remotely even if a newer request superseded this one,
	// but it is not shown to whoever signed in after its owner left
	if !c.store.appendSave(epoch, save) {
		c.logger.Debug("discarded save %s of a signed out identity", id)
		return nil
	}
	c.store.createSave.Succeed(ticket, save, nil)
	return nil
}

// RequestLoadList fetches the saves of the player. A current result replaces
// the collection; an empty one is reported as SavesEmpty.
func (c *Controller) RequestLoadList(ctx context.Context) error {
	token, _, ok := c.store.authToken()
	if !ok {
		return ErrUnauthorized
	}

	_, applied := async.Run(ctx, &c.store.listSaves, func(ctx context.Context) ([]*models.Save, error) {
		return c.gateway.ListSaves(ctx, token)
	}, c.store.replaceSaves)
	if !applied {
		c.logger.Debug("discarded a superseded save listing")
	}
	return nil
}

// RequestDelete deletes a save and removes it from the collection once the
// service confirms it.
func (c *Controller) RequestDelete(ctx context.Context, id string) error {
	token, epoch, ok := c.store.authToken()
	if !ok {
		return ErrUnauthorized
	}

	ticket := c.store.deleteSave.Begin()
	if err := c.gateway.DeleteSave(ctx, token, id); err != nil {
		c.logger.Warn("delete save %s failed: %v", id, err)
		c.store.deleteSave.Fail(ticket, async.Describe(err))
		return nil
	}
	if !c.store.removeSave(epoch, id) {
		c.logger.Debug("discarded delete of save %s by a signed out identity", id)
		return nil
	}
	c.store.deleteSave.Succeed(ticket, id, nil)
	return nil
}
