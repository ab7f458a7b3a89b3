package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/seafarer/client/engine"
	"github.com/cbodonnell/seafarer/client/input"
	"github.com/cbodonnell/seafarer/client/scenes"
	"github.com/cbodonnell/seafarer/client/session"
	"github.com/cbodonnell/seafarer/pkg/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	DefaultScreenWidth  = 640 + scenes.PanelWidth
	DefaultScreenHeight = 480
)

// Game implements ebiten.Game interface, which has Update, Draw and Layout methods.
type Game struct {
	// debug is a boolean value indicating whether debug mode is enabled.
	debug      bool
	controller *session.Controller
	canvas     *engine.Canvas
	config     session.GameConfig
	timeout    time.Duration
	logger     *log.Logger

	// ctx is cancelled by Close and bounds every remote call
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	guest   bool
	// failure is shown until the player dismisses it
	failure string
	mode    GameMode
	scene   scenes.Scene
}

type GameMode int

const (
	GameModeLoading GameMode = iota
	GameModeAuth
	GameModePlay
	GameModeError
)

func (m GameMode) String() string {
	switch m {
	case GameModeLoading:
		return "Loading"
	case GameModeAuth:
		return "Auth"
	case GameModePlay:
		return "Play"
	case GameModeError:
		return "Error"
	}
	return "Unknown"
}

type NewGameOptions struct {
	Debug          bool
	Controller     *session.Controller
	Canvas         *engine.Canvas
	Config         session.GameConfig
	// RequestTimeout bounds each remote call. Zero means no bound.
	RequestTimeout time.Duration
}

func NewGame(opts NewGameOptions) *Game {
	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		debug:      opts.Debug,
		controller: opts.Controller,
		canvas:     opts.Canvas,
		config:     opts.Config,
		timeout:    opts.RequestTimeout,
		logger:     log.With(log.Fields{"component": "game"}),
		ctx:        ctx,
		cancel:     cancel,
		mode:       -1,
	}

	g.remote("restore identity", g.controller.RestoreIdentity)

	return g
}

// Close stops the session and waits for remote calls to return.
func (g *Game) Close() {
	g.cancel()
	g.wg.Wait()
	if err := g.controller.StopSession(); err != nil && !errors.Is(err, session.ErrNoSession) {
		g.logger.Error("Failed to stop session: %v", err)
	}
}

// remote runs fn on its own goroutine so the game loop never waits on the network.
func (g *Game) remote(name string, fn func(ctx context.Context) error) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		ctx := g.ctx
		if g.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}
		if err := fn(ctx); err != nil {
			g.logger.Warn("Failed to %s: %v", name, err)
		}
	}()
}

func (g *Game) SetScene(mode GameMode, scene scenes.Scene) error {
	if g.scene != nil {
		if err := g.scene.Destroy(); err != nil {
			return fmt.Errorf("failed to destroy previous scene: %v", err)
		}
	}

	g.scene = scene
	g.mode = mode
	if err := g.scene.Init(); err != nil {
		return fmt.Errorf("failed to initialize scene: %v", err)
	}
	g.logger.Debug("Switched to %s scene", mode)

	return nil
}

// desiredMode derives the scene to show from the session.
func (g *Game) desiredMode(view session.View) GameMode {
	switch {
	case g.failure != "":
		return GameModeError
	case !view.Identity.Initialized:
		return GameModeLoading
	case view.Identity.IsAuthenticated || g.guest:
		return GameModePlay
	default:
		return GameModeAuth
	}
}

func (g *Game) newScene(mode GameMode) scenes.Scene {
	switch mode {
	case GameModeLoading:
		return scenes.NewMessageScene("Loading")
	case GameModeAuth:
		return scenes.NewAuthScene(scenes.AuthSceneOptions{
			View:              g.controller.Snapshot,
			OnEmailChanged:    g.controller.SetLoginEmail,
			OnPasswordChanged: g.controller.SetLoginPassword,
			OnLogin:           g.login,
			OnGuest: func() {
				g.guest = true
			},
		})
	case GameModePlay:
		return scenes.NewPlayScene(scenes.PlaySceneOptions{
			View:          g.controller.Snapshot,
			Canvas:        g.canvas,
			OnStart:       g.startSession,
			OnTogglePause: g.togglePause,
			OnToggleSound: func() {
				g.controller.ToggleSound()
			},
			OnRestart:    g.restartSession,
			OnSave:       g.save,
			OnOpenSaves:  g.openSaves,
			OnApplySave:  g.applySave,
			OnDeleteSave: g.deleteSave,
			OnLogin: func() {
				g.guest = false
				g.stopSession()
			},
			OnLogout: g.logout,
		})
	default:
		return scenes.NewMessageScene(g.failure)
	}
}

func (g *Game) login() {
	if g.controller.IsLoginLoading() {
		return
	}
	g.remote("login", func(ctx context.Context) error {
		err := g.controller.LoginWithCredentials(ctx)
		if errors.Is(err, session.ErrBusy) {
			return nil
		}
		return err
	})
}

func (g *Game) startSession() {
	cfg := g.config
	cfg.Authenticated = g.controller.Snapshot().Identity.IsAuthenticated
	cfg.Seed = time.Now().UnixNano()
	callbacks := session.ScoreCallbacks{
		OnLevelScoreChanged: func(level int, score int) {
			g.logger.Debug("Level %d score is now %d", level, score)
		},
	}
	if err := g.controller.StartSession(cfg, g.canvas, callbacks); err != nil {
		g.logger.Error("Failed to start session: %v", err)
		g.failure = "Could not start the game"
	}
}

func (g *Game) restartSession() {
	if err := g.controller.RestartSession(); err != nil {
		g.logger.Error("Failed to restart session: %v", err)
		if !errors.Is(err, session.ErrNoSession) {
			g.failure = "Could not start the game"
		}
	}
}

func (g *Game) stopSession() {
	if err := g.controller.StopSession(); err != nil && !errors.Is(err, session.ErrNoSession) {
		g.logger.Error("Failed to stop session: %v", err)
	}
}

func (g *Game) togglePause() {
	if _, err := g.controller.TogglePause(); err != nil {
		g.logger.Warn("Failed to toggle pause: %v", err)
	}
}

func (g *Game) save() {
	g.remote("save", g.controller.RequestSave)
}

// openSaves pauses the game while the save browser is open and refreshes the list.
func (g *Game) openSaves() {
	if err := g.controller.Pause(); err != nil && !errors.Is(err, session.ErrNoSession) {
		g.logger.Warn("Failed to pause: %v", err)
	}
	g.remote("list saves", g.controller.RequestLoadList)
}

func (g *Game) applySave(id string) {
	if err := g.controller.ApplySave(id); err != nil {
		g.logger.Error("Failed to apply save: %v", err)
	}
}

func (g *Game) deleteSave(id string) {
	g.remote("delete save", func(ctx context.Context) error {
		return g.controller.RequestDelete(ctx, id)
	})
}

func (g *Game) logout() {
	g.controller.Logout()
	g.guest = false
}

func (g *Game) Update() error {
	view := g.controller.Snapshot()

	if g.mode == GameModeError && input.IsPositiveJustPressed() {
		g.failure = ""
	}

	if mode := g.desiredMode(view); mode != g.mode {
		if err := g.SetScene(mode, g.newScene(mode)); err != nil {
			return fmt.Errorf("failed to set %s scene: %v", mode, err)
		}
	}

	// Update the current scene
	if err := g.scene.Update(); err != nil {
		return fmt.Errorf("failed to update scene: %v", err)
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.scene != nil {
		g.scene.Draw(screen)
	}
	if g.debug {
		g.drawDebugOverlay(screen)
	}
}

func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	view := g.controller.Snapshot()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n   FPS: %0.1f", ebiten.ActualFPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n   TPS: %0.1f", ebiten.ActualTPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n   Session: %s", view.Status))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n\n   Score: %d", view.Score.Total))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return DefaultScreenWidth, DefaultScreenHeight
}
