package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cbodonnell/seafarer/client/api"
	"github.com/cbodonnell/seafarer/client/async"
	"github.com/cbodonnell/seafarer/client/session"
	apimocks "github.com/cbodonnell/seafarer/mocks/github.com/cbodonnell/seafarer/client/api"
	mocks "github.com/cbodonnell/seafarer/mocks/github.com/cbodonnell/seafarer/client/session"
	"github.com/cbodonnell/seafarer/pkg/ocean"
	"github.com/cbodonnell/seafarer/pkg/repositories/models"
	"github.com/cbodonnell/seafarer/pkg/tokens"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testToken = "token-1"

type canvas struct{}

func (canvas) Size() (int, int) { return int(ocean.WorldWidth), int(ocean.WorldHeight) }

var testConfig = session.GameConfig{Width: int(ocean.WorldWidth), Height: int(ocean.WorldHeight), StartLevel: 1, Seed: 7}

// fakeEngine records its lifecycle.
type fakeEngine struct {
	mu      sync.Mutex
	started bool
	stopped bool
	paused  bool
	sound   bool
}

func (e *fakeEngine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.started = true
	return nil
}

func (e *fakeEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopped = true
}

func (e *fakeEngine) SetPaused(paused bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paused = paused
}

func (e *fakeEngine) SetSoundEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sound = enabled
}

func (e *fakeEngine) SerializableState() (session.Payload, error) {
	return session.Payload("state"), nil
}

func (e *fakeEngine) LoadSerializableState(session.Payload) error {
	return nil
}

func (e *fakeEngine) live() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.started && !e.stopped
}

// fakeFactory hands out fakeEngines and remembers them.
type fakeFactory struct {
	mu        sync.Mutex
	engines   []*fakeEngine
	callbacks []session.ScoreCallbacks
}

func (f *fakeFactory) Create(cfg session.GameConfig, target session.RenderTarget, callbacks session.ScoreCallbacks) (session.Engine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := &fakeEngine{}
	f.engines = append(f.engines, e)
	f.callbacks = append(f.callbacks, callbacks)
	return e, nil
}

func (f *fakeFactory) liveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.engines {
		if e.live() {
			n++
		}
	}
	return n
}

// oceanEngine runs an ocean world without rendering.
type oceanEngine struct {
	world  *ocean.World
	paused bool
}

func (e *oceanEngine) Start() error                 { return nil }
func (e *oceanEngine) Stop()                        {}
func (e *oceanEngine) SetPaused(paused bool)        { e.paused = paused }
func (e *oceanEngine) SetSoundEnabled(enabled bool) {}

func (e *oceanEngine) SerializableState() (session.Payload, error) {
	return ocean.EncodeState(e.world.Snapshot())
}

func (e *oceanEngine) LoadSerializableState(payload session.Payload) error {
	state, err := ocean.DecodeState(payload)
	if err != nil {
		return err
	}
	return e.world.Restore(state)
}

func newController(t *testing.T, factory session.EngineFactory) (*session.Controller, *apimocks.Gateway, tokens.Store) {
	gateway := apimocks.NewGateway(t)
	store := tokens.NewMemoryStore()
	c := session.NewController(session.NewControllerOptions{
		Factory: factory,
		Gateway: gateway,
		Tokens:  store,
	})
	return c, gateway, store
}

func authenticate(t *testing.T, c *session.Controller, gateway *apimocks.Gateway) {
	gateway.EXPECT().Authenticate(mock.Anything, testToken).Return(&models.Profile{Email: "diver@example.com", TotalScore: 40}, nil).Once()
	require.NoError(t, c.AuthenticateWithToken(context.Background(), testToken))
	require.True(t, c.Snapshot().Identity.IsAuthenticated)
}

func TestController_StartSession(t *testing.T) {
	factory := &fakeFactory{}
	c, _, _ := newController(t, factory)

	require.NoError(t, c.StartSession(testConfig, canvas{}, session.ScoreCallbacks{}))
	require.NoError(t, c.StartSession(testConfig, canvas{}, session.ScoreCallbacks{}))

	view := c.Snapshot()
	assert.Equal(t, session.Running, view.Status)
	assert.True(t, view.HasGame)
	assert.Len(t, factory.engines, 1)
	assert.True(t, factory.engines[0].sound)

	assert.Panics(t, func() { _ = c.StartSession(testConfig, nil, session.ScoreCallbacks{}) })
}

func TestController_StartSession_engineFailure(t *testing.T) {
	engine := mocks.NewEngine(t)
	engine.EXPECT().SetSoundEnabled(true).Once()
	engine.EXPECT().Start().Return(errors.New("no audio device")).Once()
	engine.EXPECT().Stop().Once()

	factory := mocks.NewEngineFactory(t)
	factory.EXPECT().Create(testConfig, mock.Anything, mock.Anything).Return(engine, nil).Once()

	c, _, _ := newController(t, factory)
	assert.Error(t, c.StartSession(testConfig, canvas{}, session.ScoreCallbacks{}))

	view := c.Snapshot()
	assert.Equal(t, session.NotStarted, view.Status)
	assert.False(t, view.HasGame)
}

func TestController_singleHandle(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("at most one engine is live and the store agrees", prop.ForAll(
		func(ops []int) bool {
			factory := &fakeFactory{}
			c := session.NewController(session.NewControllerOptions{
				Factory: factory,
				Tokens:  tokens.NewMemoryStore(),
			})
			for _, op := range ops {
				switch op {
				case 0:
					_ = c.StartSession(testConfig, canvas{}, session.ScoreCallbacks{})
				case 1:
					_ = c.RestartSession()
				case 2:
					_ = c.StopSession()
				case 3:
					_, _ = c.TogglePause()
				case 4:
					c.ToggleSound()
				}
				view := c.Snapshot()
				live := factory.liveCount()
				if live > 1 {
					return false
				}
				hasLive := view.Status == session.Running || view.Status == session.Paused
				if view.HasGame != (live == 1) || hasLive != view.HasGame {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 4)),
	))

	properties.TestingRun(t)
}

func TestController_authGating(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("remote save operations need an identity", prop.ForAll(
		func(op int, id string) bool {
			// the gateway mock fails the test on any call
			c, _, _ := newController(t, &fakeFactory{})
			_ = c.StartSession(testConfig, canvas{}, session.ScoreCallbacks{})

			var err error
			switch op {
			case 0:
				err = c.RequestSave(context.Background())
			case 1:
				err = c.RequestLoadList(context.Background())
			case 2:
				err = c.RequestDelete(context.Background(), id)
			}
			view := c.Snapshot()
			return errors.Is(err, session.ErrUnauthorized) &&
				view.Save.Phase == async.Idle &&
				view.Saves.Phase == async.Idle &&
				view.Delete.Phase == async.Idle
		},
		gen.IntRange(0, 2),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}

func TestController_TogglePause(t *testing.T) {
	engine := mocks.NewEngine(t)
	engine.EXPECT().SetSoundEnabled(true).Once()
	engine.EXPECT().Start().Return(nil).Once()
	engine.EXPECT().SetPaused(true).Once()
	engine.EXPECT().SetPaused(false).Once()

	factory := mocks.NewEngineFactory(t)
	factory.EXPECT().Create(testConfig, mock.Anything, mock.Anything).Return(engine, nil).Once()

	c, _, _ := newController(t, factory)
	require.NoError(t, c.StartSession(testConfig, canvas{}, session.ScoreCallbacks{}))

	status, err := c.TogglePause()
	require.NoError(t, err)
	assert.Equal(t, session.Paused, status)
	assert.True(t, c.Snapshot().Paused)

	status, err = c.TogglePause()
	require.NoError(t, err)
	assert.Equal(t, session.Running, status)
	assert.False(t, c.Snapshot().Paused)
}

func TestController_TogglePause_noSession(t *testing.T) {
	c, _, _ := newController(t, &fakeFactory{})

	status, err := c.TogglePause()
	assert.ErrorIs(t, err, session.ErrNoSession)
	assert.Equal(t, session.NotStarted, status)
	assert.ErrorIs(t, c.RestartSession(), session.ErrNoSession)
	assert.ErrorIs(t, c.StopSession(), session.ErrNoSession)
}

func TestController_ToggleSound(t *testing.T) {
	factory := &fakeFactory{}
	c, _, _ := newController(t, factory)

	// without a session only the flag changes
	assert.False(t, c.ToggleSound())
	assert.False(t, c.Snapshot().SoundEnabled)

	require.NoError(t, c.StartSession(testConfig, canvas{}, session.ScoreCallbacks{}))
	assert.False(t, factory.engines[0].sound)

	assert.True(t, c.ToggleSound())
	assert.True(t, factory.engines[0].sound)

	require.NoError(t, c.RestartSession())
	assert.True(t, factory.engines[1].sound)
}

func TestController_RestartSession(t *testing.T) {
	factory := &fakeFactory{}
	c, _, _ := newController(t, factory)
	require.NoError(t, c.StartSession(testConfig, canvas{}, session.ScoreCallbacks{}))
	_, err := c.TogglePause()
	require.NoError(t, err)

	require.NoError(t, c.RestartSession())

	require.Len(t, factory.engines, 2)
	assert.True(t, factory.engines[0].stopped)
	assert.True(t, factory.engines[1].live())
	assert.Equal(t, session.Running, c.Snapshot().Status)
}

func TestController_lateCallbacksAreIgnored(t *testing.T) {
	factory := &fakeFactory{}
	c, _, _ := newController(t, factory)

	var reported []int
	callbacks := session.ScoreCallbacks{
		OnTotalScoreChanged: func(score int) { reported = append(reported, score) },
	}
	require.NoError(t, c.StartSession(testConfig, canvas{}, callbacks))
	factory.callbacks[0].OnTotalScoreChanged(10)
	factory.callbacks[0].OnLevelScoreChanged(1, 10)

	require.NoError(t, c.RestartSession())
	factory.callbacks[0].OnTotalScoreChanged(99)
	factory.callbacks[0].OnLevelScoreChanged(1, 99)
	assert.Zero(t, c.Snapshot().Score.Total)

	factory.callbacks[1].OnTotalScoreChanged(20)
	require.NoError(t, c.StopSession())
	factory.callbacks[1].OnTotalScoreChanged(30)

	view := c.Snapshot()
	assert.Equal(t, 20, view.Score.Total)
	assert.Empty(t, view.Score.Levels)
	assert.Equal(t, []int{10, 20}, reported)
}

func TestController_saveRoundTrip(t *testing.T) {
	var engine *oceanEngine
	factory := session.EngineFactoryFunc(func(cfg session.GameConfig, target session.RenderTarget, callbacks session.ScoreCallbacks) (session.Engine, error) {
		engine = &oceanEngine{world: ocean.NewWorld(cfg.Seed, cfg.StartLevel)}
		return engine, nil
	})
	c, gateway, _ := newController(t, factory)
	authenticate(t, c, gateway)
	require.NoError(t, c.StartSession(testConfig, canvas{}, session.ScoreCallbacks{}))

	for i := 0; i < 30; i++ {
		engine.world.Step(ocean.Input{Right: true})
	}
	saved, err := ocean.EncodeState(engine.world.Snapshot())
	require.NoError(t, err)

	var stored []byte
	gateway.EXPECT().CreateSave(mock.Anything, testToken, mock.Anything).
		RunAndReturn(func(ctx context.Context, token string, payload []byte) (string, error) {
			stored = payload
			return "save-1", nil
		}).Once()
	require.NoError(t, c.RequestSave(context.Background()))
	assert.Equal(t, saved, stored)

	view := c.Snapshot()
	require.Equal(t, async.Succeeded, view.Save.Phase)
	assert.Equal(t, "save-1", view.Save.Result.ID)
	require.Len(t, view.Saves.Records, 1)

	produced := engine
	for i := 0; i < 30; i++ {
		produced.world.Step(ocean.Input{Left: true, Down: true})
	}

	require.NoError(t, c.RestartSession())
	require.NotSame(t, produced, engine)
	fresh, err := ocean.EncodeState(engine.world.Snapshot())
	require.NoError(t, err)
	require.NotEqual(t, saved, fresh)

	require.NoError(t, c.ApplySave("save-1"))
	restored, err := ocean.EncodeState(engine.world.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, saved, restored)

	view = c.Snapshot()
	assert.True(t, view.Paused)
	assert.True(t, engine.paused)
	assert.Empty(t, view.LoadError)
}

func TestController_ApplyRecord_rejectedPayload(t *testing.T) {
	engine := mocks.NewEngine(t)
	engine.EXPECT().SetSoundEnabled(true).Once()
	engine.EXPECT().Start().Return(nil).Once()
	engine.EXPECT().SetPaused(true).Once()
	engine.EXPECT().LoadSerializableState(session.Payload("corrupt")).Return(errors.New("bad state")).Once()

	factory := mocks.NewEngineFactory(t)
	factory.EXPECT().Create(testConfig, mock.Anything, mock.Anything).Return(engine, nil).Once()

	c, _, _ := newController(t, factory)
	require.NoError(t, c.StartSession(testConfig, canvas{}, session.ScoreCallbacks{}))

	err := c.ApplyRecord(&models.Save{ID: "s", Payload: []byte("corrupt")})
	assert.Error(t, err)

	view := c.Snapshot()
	assert.NotEmpty(t, view.LoadError)
	assert.Equal(t, session.Paused, view.Status)

	assert.Error(t, c.ApplySave("unknown"))
}

func TestController_RequestSave_failure(t *testing.T) {
	c, gateway, _ := newController(t, &fakeFactory{})
	authenticate(t, c, gateway)

	assert.ErrorIs(t, c.RequestSave(context.Background()), session.ErrNoSession)

	require.NoError(t, c.StartSession(testConfig, canvas{}, session.ScoreCallbacks{}))
	gateway.EXPECT().CreateSave(mock.Anything, testToken, []byte("state")).
		Return("", &api.Error{Message: "Could not reach the save service"}).Once()
	require.NoError(t, c.RequestSave(context.Background()))

	view := c.Snapshot()
	assert.Equal(t, async.Failed, view.Save.Phase)
	assert.Equal(t, "Could not reach the save service", view.Save.Err)
	assert.Empty(t, view.Saves.Records)
}

func TestController_RequestLoadList(t *testing.T) {
	c, gateway, _ := newController(t, &fakeFactory{})
	authenticate(t, c, gateway)

	gateway.EXPECT().ListSaves(mock.Anything, testToken).Return([]*models.Save{}, nil).Once()
	require.NoError(t, c.RequestLoadList(context.Background()))
	assert.Equal(t, session.SavesEmpty, c.Snapshot().Saves.Condition())

	gateway.EXPECT().ListSaves(mock.Anything, testToken).Return(nil, &api.Error{Message: "Session expired, please log in again"}).Once()
	require.NoError(t, c.RequestLoadList(context.Background()))
	view := c.Snapshot()
	assert.Equal(t, session.SavesFailed, view.Saves.Condition())
	assert.Equal(t, "Session expired, please log in again", view.Saves.Err)

	gateway.EXPECT().ListSaves(mock.Anything, testToken).Return([]*models.Save{{ID: "a"}, {ID: "b"}}, nil).Once()
	require.NoError(t, c.RequestLoadList(context.Background()))
	view = c.Snapshot()
	assert.Equal(t, session.SavesAvailable, view.Saves.Condition())
	assert.Len(t, view.Saves.Records, 2)
}

func TestController_RequestLoadList_lastInvocationWins(t *testing.T) {
	c, gateway, _ := newController(t, &fakeFactory{})
	authenticate(t, c, gateway)

	entered := make(chan struct{})
	release := make(chan struct{})
	gateway.EXPECT().ListSaves(mock.Anything, testToken).
		RunAndReturn(func(ctx context.Context, token string) ([]*models.Save, error) {
			close(entered)
			<-release
			return []*models.Save{{ID: "old"}}, nil
		}).Once()
	gateway.EXPECT().ListSaves(mock.Anything, testToken).Return([]*models.Save{{ID: "new"}}, nil).Once()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.RequestLoadList(context.Background())
	}()
	<-entered

	require.NoError(t, c.RequestLoadList(context.Background()))
	close(release)
	<-done

	view := c.Snapshot()
	assert.Equal(t, async.Succeeded, view.Saves.Phase)
	require.Len(t, view.Saves.Records, 1)
	assert.Equal(t, "new", view.Saves.Records[0].ID)
}

func TestController_RequestDelete(t *testing.T) {
	c, gateway, _ := newController(t, &fakeFactory{})
	authenticate(t, c, gateway)

	gateway.EXPECT().ListSaves(mock.Anything, testToken).Return([]*models.Save{{ID: "a"}, {ID: "b"}}, nil).Once()
	require.NoError(t, c.RequestLoadList(context.Background()))

	gateway.EXPECT().DeleteSave(mock.Anything, testToken, "a").Return(nil).Once()
	require.NoError(t, c.RequestDelete(context.Background(), "a"))

	gateway.EXPECT().DeleteSave(mock.Anything, testToken, "b").Return(&api.Error{Message: "Save not found"}).Once()
	require.NoError(t, c.RequestDelete(context.Background(), "b"))

	view := c.Snapshot()
	assert.Equal(t, async.Failed, view.Delete.Phase)
	assert.Equal(t, "Save not found", view.Delete.Err)
	require.Len(t, view.Saves.Records, 1)
	assert.Equal(t, "b", view.Saves.Records[0].ID)
}

func TestController_networkDoesNotBlockPause(t *testing.T) {
	c, gateway, _ := newController(t, &fakeFactory{})
	authenticate(t, c, gateway)
	require.NoError(t, c.StartSession(testConfig, canvas{}, session.ScoreCallbacks{}))

	entered := make(chan struct{})
	release := make(chan struct{})
	gateway.EXPECT().CreateSave(mock.Anything, testToken, mock.Anything).
		RunAndReturn(func(ctx context.Context, token string, payload []byte) (string, error) {
			close(entered)
			<-release
			return "save-1", nil
		}).Once()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.RequestSave(context.Background())
	}()
	<-entered

	assert.Equal(t, async.Loading, c.Snapshot().Save.Phase)
	status, err := c.TogglePause()
	require.NoError(t, err)
	assert.Equal(t, session.Paused, status)
	assert.False(t, c.ToggleSound())

	close(release)
	<-done
	assert.Equal(t, async.Succeeded, c.Snapshot().Save.Phase)
}

func TestController_RestoreIdentity(t *testing.T) {
	t.Run("no stored token", func(t *testing.T) {
		c, _, _ := newController(t, &fakeFactory{})
		require.NoError(t, c.RestoreIdentity(context.Background()))

		view := c.Snapshot()
		assert.True(t, view.Identity.Initialized)
		assert.False(t, view.Identity.IsAuthenticated)
	})

	t.Run("valid token", func(t *testing.T) {
		c, gateway, store := newController(t, &fakeFactory{})
		require.NoError(t, store.Set(tokens.AuthTokenKey, testToken))
		gateway.EXPECT().Authenticate(mock.Anything, testToken).Return(&models.Profile{Email: "diver@example.com", TotalScore: 40}, nil).Once()

		require.NoError(t, c.RestoreIdentity(context.Background()))

		view := c.Snapshot()
		assert.True(t, view.Identity.Initialized)
		assert.True(t, view.Identity.IsAuthenticated)
		assert.Equal(t, "diver@example.com", view.Identity.Email)
		assert.Equal(t, 40, view.Identity.TotalScore)
	})

	t.Run("stale token", func(t *testing.T) {
		c, gateway, store := newController(t, &fakeFactory{})
		require.NoError(t, store.Set(tokens.AuthTokenKey, "expired"))
		gateway.EXPECT().Authenticate(mock.Anything, "expired").Return(nil, &api.Error{Message: "Session expired, please log in again"}).Once()

		require.NoError(t, c.RestoreIdentity(context.Background()))

		view := c.Snapshot()
		assert.True(t, view.Identity.Initialized)
		assert.False(t, view.Identity.IsAuthenticated)
		_, ok := store.Get(tokens.AuthTokenKey)
		assert.False(t, ok)
	})
}

func TestController_LoginWithCredentials(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c, gateway, store := newController(t, &fakeFactory{})
		c.SetLoginEmail("diver@example.com")
		c.SetLoginPassword("hunter22")
		gateway.EXPECT().Login(mock.Anything, "diver@example.com", "hunter22").Return(testToken, nil).Once()
		gateway.EXPECT().Authenticate(mock.Anything, testToken).Return(&models.Profile{Email: "diver@example.com"}, nil).Once()

		require.NoError(t, c.LoginWithCredentials(context.Background()))

		view := c.Snapshot()
		assert.True(t, view.Identity.IsAuthenticated)
		assert.True(t, view.Identity.Initialized)
		assert.Empty(t, view.Login.Email)
		assert.Empty(t, view.Login.Password)
		assert.Empty(t, view.Login.Error)
		token, ok := store.Get(tokens.AuthTokenKey)
		require.True(t, ok)
		assert.Equal(t, testToken, token)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		c, gateway, store := newController(t, &fakeFactory{})
		c.SetLoginEmail("diver@example.com")
		c.SetLoginPassword("wrong")
		gateway.EXPECT().Login(mock.Anything, "diver@example.com", "wrong").Return("", &api.Error{Message: "Invalid credentials"}).Once()

		require.NoError(t, c.LoginWithCredentials(context.Background()))

		view := c.Snapshot()
		assert.False(t, view.Identity.IsAuthenticated)
		assert.Equal(t, "Invalid credentials", view.Login.Error)
		assert.Equal(t, "diver@example.com", view.Login.Email)
		assert.Equal(t, "wrong", view.Login.Password)
		assert.False(t, view.Login.Loading)
		_, ok := store.Get(tokens.AuthTokenKey)
		assert.False(t, ok)
	})

	t.Run("busy", func(t *testing.T) {
		c, gateway, _ := newController(t, &fakeFactory{})
		entered := make(chan struct{})
		release := make(chan struct{})
		gateway.EXPECT().Login(mock.Anything, "", "").
			RunAndReturn(func(ctx context.Context, email string, password string) (string, error) {
				close(entered)
				<-release
				return "", &api.Error{Message: "Missing email"}
			}).Once()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = c.LoginWithCredentials(context.Background())
		}()
		<-entered

		assert.True(t, c.IsLoginLoading())
		assert.ErrorIs(t, c.LoginWithCredentials(context.Background()), session.ErrBusy)

		close(release)
		<-done
		assert.False(t, c.IsLoginLoading())
	})
}

func TestController_Logout(t *testing.T) {
	factory := &fakeFactory{}
	c, gateway, store := newController(t, factory)
	require.NoError(t, store.Set(tokens.AuthTokenKey, testToken))
	authenticate(t, c, gateway)
	require.NoError(t, c.StartSession(testConfig, canvas{}, session.ScoreCallbacks{}))

	gateway.EXPECT().ListSaves(mock.Anything, testToken).Return([]*models.Save{{ID: "a"}}, nil).Once()
	require.NoError(t, c.RequestLoadList(context.Background()))

	c.Logout()

	view := c.Snapshot()
	assert.False(t, view.Identity.IsAuthenticated)
	assert.False(t, view.HasGame)
	assert.Equal(t, session.Stopped, view.Status)
	assert.Empty(t, view.Saves.Records)
	assert.Equal(t, session.SavesIdle, view.Saves.Condition())
	assert.True(t, factory.engines[0].stopped)
	_, ok := store.Get(tokens.AuthTokenKey)
	assert.False(t, ok)

	assert.ErrorIs(t, c.RequestLoadList(context.Background()), session.ErrUnauthorized)
}

func TestController_Logout_discardsLateLogin(t *testing.T) {
	c, gateway, store := newController(t, &fakeFactory{})
	c.SetLoginEmail("diver@example.com")
	c.SetLoginPassword("hunter22")

	entered := make(chan struct{})
	release := make(chan struct{})
	gateway.EXPECT().Login(mock.Anything, "diver@example.com", "hunter22").
		RunAndReturn(func(ctx context.Context, email string, password string) (string, error) {
			close(entered)
			<-release
			return "late-token", nil
		}).Once()

	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, c.LoginWithCredentials(context.Background()))
	}()
	<-entered

	c.Logout()
	close(release)
	<-done

	_, ok := store.Get(tokens.AuthTokenKey)
	assert.False(t, ok)
	view := c.Snapshot()
	assert.False(t, view.Identity.IsAuthenticated)
	assert.False(t, view.Login.Loading)

	require.NoError(t, c.RestoreIdentity(context.Background()))
	assert.False(t, c.Snapshot().Identity.IsAuthenticated)
}

func TestController_Logout_discardsLateSaveChanges(t *testing.T) {
	tests := []struct {
		name    string
		expect  func(gateway *apimocks.Gateway, entered chan struct{}, release chan struct{})
		request func(c *session.Controller) error
	}{
		{
			name: "save",
			expect: func(gateway *apimocks.Gateway, entered chan struct{}, release chan struct{}) {
				gateway.EXPECT().CreateSave(mock.Anything, testToken, []byte("state")).
					RunAndReturn(func(ctx context.Context, token string, payload []byte) (string, error) {
						close(entered)
						<-release
						return "save-1", nil
					}).Once()
			},
			request: func(c *session.Controller) error {
				return c.RequestSave(context.Background())
			},
		},
		{
			name: "delete",
			expect: func(gateway *apimocks.Gateway, entered chan struct{}, release chan struct{}) {
				gateway.EXPECT().DeleteSave(mock.Anything, testToken, "a").
					RunAndReturn(func(ctx context.Context, token string, id string) error {
						close(entered)
						<-release
						return nil
					}).Once()
			},
			request: func(c *session.Controller) error {
				return c.RequestDelete(context.Background(), "a")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, gateway, _ := newController(t, &fakeFactory{})
			authenticate(t, c, gateway)
			require.NoError(t, c.StartSession(testConfig, canvas{}, session.ScoreCallbacks{}))

			entered := make(chan struct{})
			release := make(chan struct{})
			tt.expect(gateway, entered, release)

			done := make(chan struct{})
			go func() {
				defer close(done)
				assert.NoError(t, tt.request(c))
			}()
			<-entered

			c.Logout()
			close(release)
			<-done

			view := c.Snapshot()
			assert.False(t, view.Identity.IsAuthenticated)
			assert.Empty(t, view.Saves.Records)
			assert.Equal(t, session.SavesIdle, view.Saves.Condition())
			assert.Equal(t, async.Idle, view.Save.Phase)
			assert.Equal(t, async.Idle, view.Delete.Phase)
		})
	}
}
