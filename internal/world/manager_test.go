package world

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/dungeon/internal/chunk"
)

type fakeJournal struct {
	mu        sync.Mutex
	worlds    map[string]int64
	events    []ChunkEvent
	createErr error
	recordErr error
}

func newFakeJournal() *fakeJournal {
	return &fakeJournal{worlds: make(map[string]int64)}
}

func (j *fakeJournal) WorldCreated(ctx context.Context, worldID string, seed int64, chunkSize int) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.createErr != nil {
		return j.createErr
	}
	j.worlds[worldID] = seed
	return nil
}

func (j *fakeJournal) WorldDeleted(ctx context.Context, worldID string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.worlds, worldID)
	return nil
}

func (j *fakeJournal) RecordChunkEvents(ctx context.Context, events []ChunkEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.recordErr != nil {
		return j.recordErr
	}
	j.events = append(j.events, events...)
	return nil
}

func (j *fakeJournal) ChunkEvents(ctx context.Context, worldID string, limit int) ([]ChunkEvent, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []ChunkEvent
	for i := len(j.events) - 1; i >= 0 && len(out) < limit; i-- {
		if j.events[i].WorldID == worldID {
			out = append(out, j.events[i])
		}
	}
	return out, nil
}

func (j *fakeJournal) CountChunkEvents(ctx context.Context, worldID string, kind EventKind) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	var n int64
	for _, e := range j.events {
		if e.WorldID == worldID && e.Kind == kind {
			n++
		}
	}
	return n, nil
}

func (j *fakeJournal) count(kind EventKind) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	n := 0
	for _, e := range j.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func seedPtr(v int64) *int64 { return &v }

func TestCreate(t *testing.T) {
	tests := []struct {
		name        string
		opts        func(*Options)
		seed        *int64
		checkResult func(t *testing.T, s *Session)
	}{
		{
			name: "explicit seed",
			seed: seedPtr(42),
			checkResult: func(t *testing.T, s *Session) {
				assert.Equal(t, int64(42), s.Seed())
			},
		},
		{
			name: "default seed",
			opts: func(o *Options) { o.DefaultSeed = 777 },
			checkResult: func(t *testing.T, s *Session) {
				assert.Equal(t, int64(777), s.Seed())
			},
		},
		{
			name: "random seed",
			checkResult: func(t *testing.T, s *Session) {
				assert.NotEmpty(t, s.ID())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			m := NewManager(opts, nil)

			s, err := m.Create(context.Background(), tt.seed)
			require.NoError(t, err)

			summary := s.Snapshot()
			assert.Equal(t, 9, summary.Loaded, "the origin window is loaded on creation")
			v := s.Viewer()
			tile, ok := s.TileAt(v.TileX, v.TileY)
			require.True(t, ok)
			assert.True(t, tile.Walkable(), "viewer must start on a walkable tile")
			tt.checkResult(t, s)
		})
	}
}

func TestCreateEnforcesLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxWorlds = 2
	m := NewManager(opts, nil)

	for i := 0; i < 2; i++ {
		_, err := m.Create(context.Background(), seedPtr(int64(i)))
		require.NoError(t, err)
	}

	_, err := m.Create(context.Background(), seedPtr(3))
	assert.True(t, errors.Is(err, ErrTooManyWorlds))
	assert.Equal(t, 2, m.Len())
}

func TestCreateJournalFailure(t *testing.T) {
	j := newFakeJournal()
	j.createErr = errors.New("disk full")
	m := NewManager(DefaultOptions(), j)

	_, err := m.Create(context.Background(), seedPtr(1))
	require.Error(t, err)
	assert.Zero(t, m.Len())
}

func TestGetAndDelete(t *testing.T) {
	j := newFakeJournal()
	m := NewManager(DefaultOptions(), j)
	s, err := m.Create(context.Background(), seedPtr(9))
	require.NoError(t, err)

	got, err := m.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Contains(t, j.worlds, s.ID())

	require.NoError(t, m.Delete(context.Background(), s.ID()))
	_, err = m.Get(s.ID())
	assert.ErrorIs(t, err, ErrWorldNotFound)
	assert.NotContains(t, j.worlds, s.ID())

	assert.ErrorIs(t, m.Delete(context.Background(), s.ID()), ErrWorldNotFound)
}

func TestMoveJournalsLifecycle(t *testing.T) {
	j := newFakeJournal()
	m := NewManager(DefaultOptions(), j)
	s, err := m.Create(context.Background(), seedPtr(5))
	require.NoError(t, err)
	require.Equal(t, 9, j.count(ChunkCreated))

	res := s.Move(context.Background(), 10*chunk.DefaultChunkSize, 0)

	assert.Equal(t, chunk.Coord{X: 10, Y: 0}, res.Chunk)
	assert.Equal(t, 9, res.Created)
	assert.Equal(t, 18, j.count(ChunkCreated))
	assert.Equal(t, 9, j.count(ChunkEvicted))

	events, err := s.Events(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, events, 5)
	for _, e := range events {
		assert.Equal(t, s.ID(), e.WorldID)
	}
}

func TestMoveSurvivesJournalErrors(t *testing.T) {
	j := newFakeJournal()
	m := NewManager(DefaultOptions(), j)
	s, err := m.Create(context.Background(), seedPtr(5))
	require.NoError(t, err)

	j.recordErr = errors.New("locked")
	res := s.Move(context.Background(), -10*chunk.DefaultChunkSize, 0)
	assert.Equal(t, 9, res.Created)
	assert.Equal(t, 9, s.Snapshot().Loaded)
}

func TestStep(t *testing.T) {
	m := NewManager(DefaultOptions(), nil)
	s, err := m.Create(context.Background(), seedPtr(21))
	require.NoError(t, err)

	// The origin room spans local tiles 2..29, so the viewer has room to
	// move once it is inside.
	s.Move(context.Background(), 16, 16)
	res, moved := s.Step(context.Background(), 1, 0)
	assert.True(t, moved)
	assert.Equal(t, chunk.Coord{}, res.Chunk)
	assert.Equal(t, 17, s.Viewer().TileX)

	s.Move(context.Background(), 2, 2)
	_, moved = s.Step(context.Background(), -2, 0)
	assert.False(t, moved, "walls block steps")
	assert.Equal(t, 2, s.Viewer().TileX)
}

func TestConcurrentStepsDoNotLoseMoves(t *testing.T) {
	m := NewManager(DefaultOptions(), nil)
	s, err := m.Create(context.Background(), seedPtr(21))
	require.NoError(t, err)

	// Row 16 of the origin room is floor from x=2 to x=29.
	s.Move(context.Background(), 5, 16)

	const steps = 20
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		moved int
	)
	for i := 0; i < steps; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := s.Step(context.Background(), 1, 0); ok {
				mu.Lock()
				moved++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, steps, moved)
	assert.Equal(t, 5+steps, s.Viewer().TileX)
	assert.Equal(t, 16, s.Viewer().TileY)
}

func TestEventsWithoutJournal(t *testing.T) {
	m := NewManager(DefaultOptions(), nil)
	s, err := m.Create(context.Background(), seedPtr(1))
	require.NoError(t, err)

	events, err := s.Events(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)

	totals, err := s.EventTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, EventTotals{}, totals)
}

func TestEventTotals(t *testing.T) {
	j := newFakeJournal()
	m := NewManager(DefaultOptions(), j)
	s, err := m.Create(context.Background(), seedPtr(4))
	require.NoError(t, err)
	other, err := m.Create(context.Background(), seedPtr(5))
	require.NoError(t, err)

	s.Move(context.Background(), 10*chunk.DefaultChunkSize, 0)

	totals, err := s.EventTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, EventTotals{Created: 18, Evicted: 9}, totals)

	totals, err = other.EventTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, EventTotals{Created: 9}, totals)
}

func TestSessionConnection(t *testing.T) {
	m := NewManager(DefaultOptions(), nil)
	s, err := m.Create(context.Background(), seedPtr(6))
	require.NoError(t, err)

	conn, ok := s.Connection(chunk.Coord{}, chunk.East)
	require.True(t, ok)
	assert.Equal(t, chunk.Connection{Position: 16, Width: 3}, conn)

	_, ok = s.Connection(chunk.Coord{X: 50, Y: 50}, chunk.East)
	assert.False(t, ok)
}

func TestCleanupIdle(t *testing.T) {
	opts := DefaultOptions()
	opts.IdleTimeout = time.Minute
	m := NewManager(opts, nil)

	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	stale, err := m.Create(context.Background(), seedPtr(1))
	require.NoError(t, err)

	clock = clock.Add(5 * time.Minute)
	fresh, err := m.Create(context.Background(), seedPtr(2))
	require.NoError(t, err)

	removed, err := m.CleanupIdle(context.Background(), clock.Add(30*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = m.Get(stale.ID())
	assert.ErrorIs(t, err, ErrWorldNotFound)
	_, err = m.Get(fresh.ID())
	assert.NoError(t, err)
}

func TestList(t *testing.T) {
	m := NewManager(DefaultOptions(), nil)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { clock = clock.Add(time.Second); return clock }

	a, err := m.Create(context.Background(), seedPtr(1))
	require.NoError(t, err)
	b, err := m.Create(context.Background(), seedPtr(2))
	require.NoError(t, err)

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, a.ID(), list[0].WorldID)
	assert.Equal(t, b.ID(), list[1].WorldID)
	assert.Equal(t, int64(2), list[1].Seed)
}

func TestConcurrentMoves(t *testing.T) {
	m := NewManager(DefaultOptions(), newFakeJournal())
	s, err := m.Create(context.Background(), seedPtr(3))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Move(context.Background(), i*chunk.DefaultChunkSize, -i*chunk.DefaultChunkSize)
			s.TileAt(0, 0)
			s.Spawns()
		}(i)
	}
	wg.Wait()

	// Whatever order the moves ran in, the cache holds the last window plus
	// whatever still sits inside its unload margin.
	loaded := s.Snapshot().Loaded
	assert.GreaterOrEqual(t, loaded, 9)
	assert.LessOrEqual(t, loaded, 49)
}
