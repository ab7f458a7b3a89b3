package session

import (
	"testing"

	"github.com/cbodonnell/seafarer/client/async"
	"github.com/cbodonnell/seafarer/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopEngine struct{}

func (nopEngine) Start() error                        { return nil }
func (nopEngine) Stop()                               {}
func (nopEngine) SetPaused(bool)                      {}
func (nopEngine) SetSoundEnabled(bool)                {}
func (nopEngine) SerializableState() (Payload, error) { return nil, nil }
func (nopEngine) LoadSerializableState(Payload) error { return nil }

func TestStore_defaults(t *testing.T) {
	view := NewStore().Snapshot()

	assert.Equal(t, NotStarted, view.Status)
	assert.False(t, view.HasGame)
	assert.True(t, view.SoundEnabled)
	assert.False(t, view.Identity.Initialized)
	assert.Equal(t, SavesIdle, view.Saves.Condition())
}

func TestStore_attachDetach(t *testing.T) {
	s := NewStore()
	gen := s.nextGeneration()
	s.attach(nopEngine{}, gen)

	assert.Equal(t, Running, s.currentStatus())
	assert.True(t, s.setTotalScore(gen, 30))
	assert.True(t, s.setLevelScore(gen, 1, 30))

	assert.Panics(t, func() { s.attach(nopEngine{}, s.nextGeneration()) })

	s.detach()
	view := s.Snapshot()
	assert.Equal(t, Stopped, view.Status)
	assert.False(t, view.HasGame)
	assert.Equal(t, 30, view.Score.Total)

	// reports of the detached engine are dropped
	assert.False(t, s.setTotalScore(gen, 40))
	assert.False(t, s.setLevelScore(gen, 2, 10))
	assert.Equal(t, 30, s.Snapshot().Score.Total)

	assert.Panics(t, func() { s.setPaused(true) })
}

func TestStore_attachResetsScore(t *testing.T) {
	s := NewStore()
	gen := s.nextGeneration()
	s.attach(nopEngine{}, gen)
	s.setTotalScore(gen, 50)
	s.setLoadError("broken")
	s.detach()

	s.attach(nopEngine{}, s.nextGeneration())
	view := s.Snapshot()
	assert.Zero(t, view.Score.Total)
	assert.Empty(t, view.Score.Levels)
	assert.Empty(t, view.LoadError)
}

func TestStore_checkInvariant(t *testing.T) {
	s := NewStore()
	s.status = Running
	assert.Panics(t, s.checkInvariant)

	s.status = Stopped
	s.engine = nopEngine{}
	assert.Panics(t, s.checkInvariant)
}

func TestStore_saves(t *testing.T) {
	s := NewStore()
	epoch := s.currentEpoch()
	s.replaceSaves([]*models.Save{{ID: "a"}, {ID: "b"}})
	assert.True(t, s.appendSave(epoch, &models.Save{ID: "b"}))
	assert.True(t, s.appendSave(epoch, &models.Save{ID: "c"}))
	assert.True(t, s.removeSave(epoch, "a"))
	assert.True(t, s.removeSave(epoch, "missing"))

	view := s.Snapshot()
	require.Len(t, view.Saves.Records, 2)
	assert.Equal(t, "b", view.Saves.Records[0].ID)
	assert.Equal(t, "c", view.Saves.Records[1].ID)

	found, ok := s.findSave("c")
	require.True(t, ok)
	assert.Equal(t, "c", found.ID)

	ticket := s.listSaves.Begin()
	s.signOut()
	assert.False(t, s.listSaves.Current(ticket))
	assert.Empty(t, s.Snapshot().Saves.Records)
}

func TestStore_signOutDiscardsEarlierIdentity(t *testing.T) {
	s := NewStore()
	before := s.currentEpoch()
	require.True(t, s.setIdentity(before, "token-a", &models.Profile{Email: "a@example.com"}))
	require.True(t, s.appendSave(before, &models.Save{ID: "a"}))

	after := s.signOut()
	assert.NotEqual(t, before, after)
	_, _, ok := s.authToken()
	assert.False(t, ok)

	assert.False(t, s.setIdentity(before, "token-a", &models.Profile{}))
	assert.False(t, s.appendSave(before, &models.Save{ID: "b"}))
	assert.False(t, s.removeSave(before, "a"))

	require.True(t, s.setIdentity(after, "token-b", &models.Profile{Email: "b@example.com"}))
	s.clearIdentity(before)
	token, epoch, ok := s.authToken()
	require.True(t, ok)
	assert.Equal(t, "token-b", token)
	assert.Equal(t, after, epoch)

	view := s.Snapshot()
	assert.Empty(t, view.Saves.Records)
	assert.Equal(t, "b@example.com", view.Identity.Email)
}

func TestStore_snapshotIsACopy(t *testing.T) {
	s := NewStore()
	gen := s.nextGeneration()
	s.attach(nopEngine{}, gen)
	s.setLevelScore(gen, 1, 10)
	s.replaceSaves([]*models.Save{{ID: "a"}})

	view := s.Snapshot()
	view.Score.Levels[1] = 99
	view.Saves.Records[0] = &models.Save{ID: "z"}

	again := s.Snapshot()
	assert.Equal(t, 10, again.Score.Levels[1])
	assert.Equal(t, "a", again.Saves.Records[0].ID)
}

func TestSavesView_Condition(t *testing.T) {
	records := []*models.Save{{ID: "a"}}
	tests := []struct {
		name string
		view SavesView
		want SavesCondition
	}{
		{name: "never listed", view: SavesView{}, want: SavesIdle},
		{name: "loading", view: SavesView{Phase: async.Loading, Records: records}, want: SavesLoading},
		{name: "failed", view: SavesView{Phase: async.Failed, Err: "down"}, want: SavesFailed},
		{name: "empty listing", view: SavesView{Phase: async.Succeeded}, want: SavesEmpty},
		{name: "listing with saves", view: SavesView{Phase: async.Succeeded, Records: records}, want: SavesAvailable},
		{name: "saved before listing", view: SavesView{Records: records}, want: SavesAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.Condition())
		})
	}
}
