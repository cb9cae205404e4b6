package service

import (
	"sync"
	"time"
)

// Ticket identifies one request issued on a surface.
type Ticket struct {
	Key        string `json:"surface"`
	Generation uint64 `json:"generation"`
}

type SurfaceSnapshot struct {
	Key string `json:"surface"`
	// Generation is the newest generation issued.
	Generation uint64 `json:"generation"`
	// AppliedGeneration is the generation whose result is shown.
	AppliedGeneration uint64    `json:"appliedGeneration"`
	Busy              bool      `json:"busy"`
	Result            any       `json:"result,omitempty"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type surfaceState struct {
	issued    uint64
	applied   uint64
	result    any
	updatedAt time.Time
}

const (
	DefaultMaxSurfaces     = 1024
	DefaultSurfaceIdleTime = 30 * time.Minute
)

// Surfaces sequences overlapping requests per UI surface. Only the result of
// the newest issued generation is applied; older ones are superseded.
//
// Keys come from clients, so at most MaxKeys surfaces are kept. A new key
// beyond that evicts the least recently touched surface, idle ones first.
type Surfaces struct {
	MaxKeys  int
	IdleTime time.Duration

	mu    sync.Mutex
	items map[string]*surfaceState
	now   func() time.Time
}

func NewSurfaces() *Surfaces {
	return &Surfaces{
		MaxKeys:  DefaultMaxSurfaces,
		IdleTime: DefaultSurfaceIdleTime,
		items:    map[string]*surfaceState{},
		now:      time.Now,
	}
}

func (s *Surfaces) Begin(key string) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(key)
	st.issued++
	st.updatedAt = s.now()
	return Ticket{Key: key, Generation: st.issued}
}

// Resolve applies result if t is still the newest generation on its surface
// and reports whether it did. A surface evicted in the meantime takes nothing.
func (s *Surfaces) Resolve(t Ticket, result any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.items[t.Key]
	if !ok || t.Generation != st.issued || t.Generation <= st.applied {
		return false
	}
	st.applied = t.Generation
	st.result = result
	st.updatedAt = s.now()
	return true
}

func (s *Surfaces) Snapshot(key string) (SurfaceSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.items[key]
	if !ok {
		return SurfaceSnapshot{Key: key}, false
	}
	return SurfaceSnapshot{
		Key:               key,
		Generation:        st.issued,
		AppliedGeneration: st.applied,
		Busy:              st.busy(),
		Result:            st.result,
		UpdatedAt:         st.updatedAt,
	}, true
}

func (s *Surfaces) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep drops surfaces that are not busy and were last touched more than
// IdleTime ago. It returns how many were removed.
func (s *Surfaces) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.IdleTime <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.IdleTime)
	removed := 0
	for key, st := range s.items {
		if st.busy() || st.updatedAt.After(cutoff) {
			continue
		}
		delete(s.items, key)
		removed++
	}
	return removed
}

func (s *Surfaces) state(key string) *surfaceState {
	st, ok := s.items[key]
	if !ok {
		if s.MaxKeys > 0 && len(s.items) >= s.MaxKeys {
			s.evictOne()
		}
		st = &surfaceState{}
		s.items[key] = st
	}
	return st
}

func (s *Surfaces) evictOne() {
	var (
		victim   string
		oldest   time.Time
		idleSeen bool
		found    bool
	)
	for key, st := range s.items {
		idle := !st.busy()
		switch {
		case !found:
		case idle && !idleSeen:
		case idle == idleSeen && st.updatedAt.Before(oldest):
		default:
			continue
		}
		victim, oldest, idleSeen, found = key, st.updatedAt, idle, true
	}
	if found {
		delete(s.items, victim)
	}
}

func (st *surfaceState) busy() bool {
	return st.applied != st.issued
}
