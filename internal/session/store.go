package session

import (
	"sync"

	"github.com/Vovarama1992/voice_translator/internal/ai"
	"github.com/google/uuid"
)

// Store keeps one translation history per session, in memory only.
// A session gets an entry only once a non-empty history is put for it.
type Store struct {
	mu        sync.Mutex
	histories map[string]ai.History
	locks     map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewStore() *Store {
	return &Store{
		histories: make(map[string]ai.History),
		locks:     make(map[string]*sessionLock),
	}
}

// New only issues an id; nothing is stored until Put.
func (s *Store) New() string {
	return uuid.NewString()
}

// Lock serializes work on one session. Hold it from Get to Put.
func (s *Store) Lock(id string) (unlock func()) {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

// Get returns a copy; the caller may not mutate the stored history.
func (s *Store) Get(id string) ai.History {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.histories[id].Clone()
}

func (s *Store) Put(id string, h ai.History) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(h) == 0 {
		delete(s.histories, id)
		return
	}
	s.histories[id] = h.Clone()
}

func (s *Store) Reset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.histories, id)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.histories)
}
