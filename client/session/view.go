package session

import (
	"github.com/cbodonnell/seafarer/client/async"
	"github.com/cbodonnell/seafarer/pkg/repositories/models"
)

type SavesCondition int

const (
	SavesIdle SavesCondition = iota
	SavesLoading
	SavesFailed
	// SavesEmpty is a successful listing without saves. It is not a failure.
	SavesEmpty
	SavesAvailable
)

func (c SavesCondition) String() string {
	switch c {
	case SavesIdle:
		return "Idle"
	case SavesLoading:
		return "Loading"
	case SavesFailed:
		return "Failed"
	case SavesEmpty:
		return "Empty"
	case SavesAvailable:
		return "Available"
	}
	return "Unknown"
}

type SavesView struct {
	Phase   async.Phase
	Err     string
	Records []*models.Save
}

// Condition is what the save browser should display.
func (v SavesView) Condition() SavesCondition {
	switch v.Phase {
	case async.Loading:
		return SavesLoading
	case async.Failed:
		return SavesFailed
	case async.Succeeded:
		if len(v.Records) == 0 {
			return SavesEmpty
		}
		return SavesAvailable
	}
	if len(v.Records) > 0 {
		return SavesAvailable
	}
	return SavesIdle
}

type IdentityView struct {
	// Initialized is set once the stored token, if any, has been checked.
	Initialized     bool
	Loading         bool
	IsAuthenticated bool
	Email           string
	TotalScore      int
}

type LoginView struct {
	Email    string
	Password string
	Error    string
	Loading  bool
}

// View is a read-only snapshot of the session for presentation.
type View struct {
	Status       Status
	HasGame      bool
	Paused       bool
	SoundEnabled bool
	Identity     IdentityView
	Score        Score
	Login        LoginView
	Saves        SavesView
	Save         async.State[*models.Save]
	Delete       async.State[string]
	// LoadError is set when the engine rejected the last applied save.
	LoadError string
}

// Snapshot returns the current view of the store.
func (s *Store) Snapshot() View {
	// slot states are read before taking the store lock
	auth := s.auth.State()
	login := s.login.State()
	list := s.listSaves.State()
	save := s.createSave.State()
	del := s.deleteSave.State()

	s.mu.RLock()
	defer s.mu.RUnlock()

	levels := make(map[int]int, len(s.score.Levels))
	for level, score := range s.score.Levels {
		levels[level] = score
	}

	return View{
		Status:       s.status,
		HasGame:      s.engine != nil,
		Paused:       s.status == Paused,
		SoundEnabled: s.soundEnabled,
		Identity: IdentityView{
			Initialized:     s.initialized,
			Loading:         auth.Phase == async.Loading,
			IsAuthenticated: s.identity.IsAuthenticated,
			Email:           s.identity.Email,
			TotalScore:      s.identity.TotalScore,
		},
		Score: Score{Total: s.score.Total, Levels: levels},
		Login: LoginView{
			Email:    s.email,
			Password: s.password,
			Error:    login.Err,
			Loading:  login.Phase == async.Loading,
		},
		Saves: SavesView{
			Phase:   list.Phase,
			Err:     list.Err,
			Records: append([]*models.Save(nil), s.saves...),
		},
		Save:      save,
		Delete:    del,
		LoadError: s.loadError,
	}
}
