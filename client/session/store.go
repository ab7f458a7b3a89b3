package session

import (
	"fmt"
	"sync"

	"github.com/cbodonnell/seafarer/client/async"
	"github.com/cbodonnell/seafarer/pkg/repositories/models"
)

type Status int

const (
	NotStarted Status = iota
	Running
	Paused
	Stopped
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case Stopped:
		return "Stopped"
	}
	return "Unknown"
}

// Identity is the authenticated user, if any.
type Identity struct {
	Token           string
	IsAuthenticated bool
	Email           string
	TotalScore      int
}

// Score is the score of the running game as reported by the engine.
type Score struct {
	Total  int
	Levels map[int]int
}

// Store holds the session state. Fields change only through its transition
// methods. Slots are locked independently; a slot's apply hook may take the
// store lock, so the store lock is never held while a slot lock is taken.
type Store struct {
	mu           sync.RWMutex
	status       Status
	engine       Engine
	generation   uint64
	epoch        uint64 // advanced on every sign out
	soundEnabled bool
	identity     Identity
	initialized  bool
	score        Score
	email        string
	password     string
	saves        []*models.Save
	loadError    string

	auth       async.Operation[*models.Profile]
	login      async.Operation[string]
	listSaves  async.Operation[[]*models.Save]
	createSave async.Operation[*models.Save]
	deleteSave async.Operation[string]
}

func NewStore() *Store {
	return &Store{
		soundEnabled: true,
		score:        Score{Levels: map[int]int{}},
	}
}

// checkInvariant panics if the engine handle and status disagree. Callers hold mu.
func (s *Store) checkInvariant() {
	live := s.status == Running || s.status == Paused
	if live != (s.engine != nil) {
		panic(fmt.Sprintf("session: status %s with engine handle present=%t", s.status, s.engine != nil))
	}
}

// nextGeneration invalidates callbacks of previous engines and returns the
// generation for the engine about to be created.
func (s *Store) nextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// attach makes engine the live handle of a running session.
func (s *Store) attach(engine Engine, generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine != nil {
		panic("session: attaching an engine while another is live")
	}
	s.engine = engine
	s.generation = generation
	s.status = Running
	s.score = Score{Levels: map[int]int{}}
	s.loadError = ""
	s.checkInvariant()
}

// detach clears the live handle. The caller stops the engine first.
func (s *Store) detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine = nil
	s.generation++
	s.status = Stopped
	s.checkInvariant()
}

func (s *Store) liveEngine() Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

func (s *Store) currentStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Store) setPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		panic("session: pausing without an engine")
	}
	if paused {
		s.status = Paused
	} else {
		s.status = Running
	}
	s.checkInvariant()
}

func (s *Store) sound() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.soundEnabled
}

func (s *Store) setSound(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.soundEnabled = enabled
}

func (s *Store) setLoadError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadError = message
}

// setTotalScore records a score reported by the engine of generation.
// Reports from a detached engine are ignored.
func (s *Store) setTotalScore(generation uint64, score int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation || s.engine == nil {
		return false
	}
	s.score.Total = score
	return true
}

func (s *Store) setLevelScore(generation uint64, level int, score int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation || s.engine == nil {
		return false
	}
	s.score.Levels[level] = score
	return true
}

// authToken returns the token of the authenticated identity and the epoch
// it belongs to.
func (s *Store) authToken() (string, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.identity.IsAuthenticated {
		return "", s.epoch, false
	}
	return s.identity.Token, s.epoch, true
}

func (s *Store) currentEpoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// setIdentity authenticates token unless a sign out happened since epoch.
func (s *Store) setIdentity(epoch uint64, token string, profile *models.Profile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.identity = Identity{
		Token:           token,
		IsAuthenticated: true,
		Email:           profile.Email,
		TotalScore:      profile.TotalScore,
	}
	return true
}

// clearIdentity forgets the identity unless a sign out happened since epoch.
func (s *Store) clearIdentity(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch == s.epoch {
		s.identity = Identity{}
	}
}

func (s *Store) setInitialized(initialized bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = initialized
}

func (s *Store) setEmail(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email = email
}

func (s *Store) setPassword(password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.password = password
}

func (s *Store) credentials() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email, s.password
}

func (s *Store) clearCredentials() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email = ""
	s.password = ""
}

func (s *Store) replaceSaves(saves []*models.Save) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append([]*models.Save(nil), saves...)
}

// appendSave adds save unless a save with its ID is already present.
// Saves of an identity signed out since epoch are dropped.
func (s *Store) appendSave(epoch uint64, save *models.Save) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	for _, existing := range s.saves {
		if existing.ID == save.ID {
			return true
		}
	}
	s.saves = append(s.saves, save)
	return true
}

func (s *Store) removeSave(epoch uint64, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	saves := make([]*models.Save, 0, len(s.saves))
	for _, save := range s.saves {
		if save.ID != id {
			saves = append(saves, save)
		}
	}
	s.saves = saves
	return true
}

func (s *Store) findSave(id string) (*models.Save, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, save := range s.saves {
		if save.ID == id {
			return save, true
		}
	}
	return nil, false
}

// signOut forgets the identity, the login form and the saves, and discards
// every remote call still in flight. It returns the new epoch.
func (s *Store) signOut() uint64 {
	s.auth.Reset()
	s.login.Reset()
	s.listSaves.Reset()
	s.createSave.Reset()
	s.deleteSave.Reset()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.identity = Identity{}
	s.email = ""
	s.password = ""
	s.saves = nil
	return s.epoch
}
