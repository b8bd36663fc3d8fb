package server

import (
	"context"
	"sort"
	"sync"
	"time"

	"sketchboard/internal/config"
	"sketchboard/internal/db"
)

// SketchStore is the persistence contract the HTTP layer depends on.
type SketchStore interface {
	List(ctx context.Context) ([]db.Sketch, error)
	Insert(ctx context.Context, sketch *db.Sketch) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// memoryStore keeps sketches in process when no database is configured.
type memoryStore struct {
	mu       sync.Mutex
	strategy config.IDStrategy
	nextID   int64
	sketches []db.Sketch
	ids      map[int64]struct{}
}

func newMemoryStore(strategy config.IDStrategy) *memoryStore {
	return &memoryStore{
		strategy: strategy,
		nextID:   1,
		ids:      make(map[int64]struct{}),
	}
}

func (s *memoryStore) List(ctx context.Context) ([]db.Sketch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]db.Sketch, len(s.sketches))
	copy(list, s.sketches)
	if s.strategy == config.IDTimestamp {
		sort.SliceStable(list, func(i, j int) bool {
			if !list[i].Created.Equal(list[j].Created) {
				return list[i].Created.After(list[j].Created)
			}
			return list[i].ID > list[j].ID
		})
		return list, nil
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (s *memoryStore) Insert(ctx context.Context, sketch *db.Sketch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sketch.ID == 0 {
		for {
			if _, taken := s.ids[s.nextID]; !taken {
				break
			}
			s.nextID++
		}
		sketch.ID = s.nextID
		s.nextID++
	} else if _, taken := s.ids[sketch.ID]; taken {
		return &db.StorageError{Op: "insert sketch", Err: db.ErrDuplicateID}
	}
	if sketch.Created.IsZero() {
		sketch.Created = time.Now().UTC()
	}
	s.ids[sketch.ID] = struct{}{}
	s.sketches = append(s.sketches, *sketch)
	return nil
}
