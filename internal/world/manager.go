package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Manager keeps every live world session.
type Manager struct {
	mu       sync.RWMutex
	opts     Options
	journal  Journal
	sessions map[string]*Session
	now      func() time.Time
}

// NewManager creates a session manager. A nil journal disables journaling.
func NewManager(opts Options, journal Journal) *Manager {
	return &Manager{
		opts:     opts,
		journal:  journal,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create starts a new world. A nil seed falls back to the configured default
// seed, or a random one when that is zero.
func (m *Manager) Create(ctx context.Context, seed *int64) (*Session, error) {
	worldSeed := m.opts.DefaultSeed
	if seed != nil {
		worldSeed = *seed
	} else if worldSeed == 0 {
		worldSeed = rand.Int63()
	}

	id := uuid.NewString()
	log.Debug("Creating world", "world_id", id, "seed", worldSeed)

	m.mu.Lock()
	if m.opts.MaxWorlds > 0 && len(m.sessions) >= m.opts.MaxWorlds {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManyWorlds, m.opts.MaxWorlds)
	}
	s := newSession(id, worldSeed, m.opts, m.journal, m.now)
	m.sessions[id] = s
	m.mu.Unlock()

	if m.journal != nil {
		if err := m.journal.WorldCreated(ctx, id, worldSeed, s.chunks.ChunkSize()); err != nil {
			m.mu.Lock()
			delete(m.sessions, id)
			m.mu.Unlock()
			return nil, fmt.Errorf("failed to journal world: %w", err)
		}
	}

	s.spawnViewer(ctx, m.opts.SpawnSearchRadius)

	log.Info("Created world", "world_id", id, "seed", worldSeed)
	return s, nil
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrWorldNotFound
	}
	return s, nil
}

// Delete drops a session and its journal entries.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrWorldNotFound
	}

	if m.journal != nil {
		if err := m.journal.WorldDeleted(ctx, id); err != nil {
			return fmt.Errorf("failed to delete world journal: %w", err)
		}
	}

	log.Info("Deleted world", "world_id", id)
	return nil
}

// List summarizes every session, oldest first.
func (m *Manager) List() []Summary {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	out := make([]Summary, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].WorldID < out[j].WorldID
	})
	return out
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CleanupIdle deletes every session that has not moved for longer than the
// idle timeout as of now. It returns how many sessions were removed.
func (m *Manager) CleanupIdle(ctx context.Context, now time.Time) (int, error) {
	if m.opts.IdleTimeout <= 0 {
		return 0, nil
	}
	cutoff := now.Add(-m.opts.IdleTimeout)

	m.mu.RLock()
	var idle []string
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			idle = append(idle, id)
		}
	}
	m.mu.RUnlock()

	removed := 0
	for _, id := range idle {
		if err := m.Delete(ctx, id); err != nil {
			if errors.Is(err, ErrWorldNotFound) {
				continue
			}
			return removed, fmt.Errorf("failed to cleanup world %s: %w", id, err)
		}
		removed++
	}

	if removed > 0 {
		log.Debug("Cleaned up idle worlds", "removed", removed, "remaining", m.Len())
	}
	return removed, nil
}
