package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/playbook/pkg/playbook/internalerr"
	"github.com/cognicore/playbook/pkg/playbook/records"
	"github.com/cognicore/playbook/pkg/playbook/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu         sync.RWMutex
	seq        int
	tasks      map[string]records.Task
	milestones map[string]records.Milestone
	templates  map[string]records.Template
	tips       map[string]records.Tip
	tipSeq     map[string]int

	// FailOn makes inserts of the listed IDs fail, to exercise callers'
	// error handling.
	FailOn map[string]error
}

// New creates a new in-memory store.
func New() *Store {
	s := &Store{FailOn: make(map[string]error)}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.tasks = make(map[string]records.Task)
	s.milestones = make(map[string]records.Milestone)
	s.templates = make(map[string]records.Template)
	s.tips = make(map[string]records.Tip)
	s.tipSeq = make(map[string]int)
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// Clear implements store.Store.
func (s *Store) Clear(ctx context.Context, kind records.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case records.KindTask:
		s.tasks = make(map[string]records.Task)
	case records.KindMilestone:
		s.milestones = make(map[string]records.Milestone)
	case records.KindTemplate:
		s.templates = make(map[string]records.Template)
	case records.KindTip:
		s.tips = make(map[string]records.Tip)
		s.tipSeq = make(map[string]int)
	default:
		return fmt.Errorf("%w: unknown record kind %q", internalerr.ErrInvalidInput, kind)
	}
	return nil
}

// Count implements store.Store.
func (s *Store) Count(ctx context.Context, kind records.Kind) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch kind {
	case records.KindTask:
		return len(s.tasks), nil
	case records.KindMilestone:
		return len(s.milestones), nil
	case records.KindTemplate:
		return len(s.templates), nil
	case records.KindTip:
		return len(s.tips), nil
	}
	return 0, fmt.Errorf("%w: unknown record kind %q", internalerr.ErrInvalidInput, kind)
}

func (s *Store) admit(id string, exists bool) error {
	if err, ok := s.FailOn[id]; ok {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", internalerr.ErrDuplicate, id)
	}
	return nil
}

// InsertTask implements store.Store.
func (s *Store) InsertTask(ctx context.Context, t records.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.tasks[t.ID]
	if err := s.admit(t.ID, exists); err != nil {
		return err
	}
	s.tasks[t.ID] = t
	return nil
}

// InsertMilestone implements store.Store.
func (s *Store) InsertMilestone(ctx context.Context, m records.Milestone) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.milestones[m.ID]
	if err := s.admit(m.ID, exists); err != nil {
		return err
	}
	s.milestones[m.ID] = m
	return nil
}

// InsertTemplate implements store.Store.
func (s *Store) InsertTemplate(ctx context.Context, t records.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.templates[t.ID]
	if err := s.admit(t.ID, exists); err != nil {
		return err
	}
	s.templates[t.ID] = t
	return nil
}

// InsertTip implements store.Store.
func (s *Store) InsertTip(ctx context.Context, t records.Tip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.tips[t.ID]
	if err := s.admit(t.ID, exists); err != nil {
		return err
	}
	s.seq++
	s.tips[t.ID] = t
	s.tipSeq[t.ID] = s.seq
	return nil
}

// GetTask implements store.Store.
func (s *Store) GetTask(ctx context.Context, id string) (records.Task, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	return t, ok, nil
}

// ListTasks implements store.Store.
func (s *Store) ListTasks(ctx context.Context, roadmapID string) ([]records.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []records.Task
	for _, t := range s.tasks {
		if roadmapID == "" || t.RoadmapID == roadmapID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out, nil
}

// ListTips implements store.Store.
func (s *Store) ListTips(ctx context.Context, category string) ([]records.Tip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []records.Tip
	for _, t := range s.tips {
		if category == "" || t.Category == category {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return s.tipSeq[out[i].ID] < s.tipSeq[out[j].ID]
	})
	return out, nil
}

var _ store.Store = (*Store)(nil)
