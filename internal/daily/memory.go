package daily

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store for tests and local development. It
// serializes everything behind one mutex, which trivially satisfies the
// atomicity contract.
type MemoryStore struct {
	mu     sync.Mutex
	nextID uint64
	tasks  map[uint64]Task
	logs   map[uint64]CompletionLog
	stats  map[uint64]DailyStat
	emails map[uint64]string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks:  map[uint64]Task{},
		logs:   map[uint64]CompletionLog{},
		stats:  map[uint64]DailyStat{},
		emails: map[uint64]string{},
	}
}

// AddUser registers a user for StatusSummaries.
func (s *MemoryStore) AddUser(userID uint64, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails[userID] = email
}

func (s *MemoryStore) id() uint64 {
	s.nextID++
	return s.nextID
}

func (s *MemoryStore) ActiveTasks(_ context.Context, userID uint64) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Task
	for _, t := range s.tasks {
		if t.UserID == userID && t.IsActive {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (s *MemoryStore) ActiveTask(_ context.Context, userID, taskID uint64) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok || t.UserID != userID || !t.IsActive {
		return Task{}, ErrNotFound
	}
	return t, nil
}

func (s *MemoryStore) CreateTask(_ context.Context, t *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.id()
	s.tasks[t.ID] = *t
	return nil
}

func (s *MemoryStore) SaveTask(_ context.Context, t *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID] = *t
	return nil
}

func (s *MemoryStore) SwapTaskOrders(_ context.Context, userID, taskIDA, taskIDB uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, okA := s.tasks[taskIDA]
	b, okB := s.tasks[taskIDB]
	if !okA || !okB || a.UserID != userID || b.UserID != userID || !a.IsActive || !b.IsActive {
		return ErrNotFound
	}
	a.SortOrder, b.SortOrder = b.SortOrder, a.SortOrder
	s.tasks[a.ID] = a
	s.tasks[b.ID] = b
	return nil
}

func (s *MemoryStore) LogsForDate(_ context.Context, userID uint64, date string) ([]CompletionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []CompletionLog
	for _, lg := range s.logs {
		if lg.UserID == userID && lg.LogDate == date {
			out = append(out, lg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TaskID < out[j].TaskID })
	return out, nil
}

func (s *MemoryStore) LogFor(_ context.Context, userID, taskID uint64, date string) (*CompletionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, lg := range s.logs {
		if lg.UserID == userID && lg.TaskID == taskID && lg.LogDate == date {
			cp := lg
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) SaveLog(_ context.Context, l *CompletionLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == 0 {
		l.ID = s.id()
	}
	s.logs[l.ID] = *l
	return nil
}

func (s *MemoryStore) StatFor(_ context.Context, userID uint64, date string) (*DailyStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.stats {
		if st.UserID == userID && st.StatDate == date {
			cp := st
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) UpsertStat(_ context.Context, st *DailyStat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ID == 0 {
		for _, old := range s.stats {
			if old.UserID == st.UserID && old.StatDate == st.StatDate {
				st.ID = old.ID
				break
			}
		}
	}
	if st.ID == 0 {
		st.ID = s.id()
	}
	s.stats[st.ID] = *st
	return nil
}

func (s *MemoryStore) StatsInRange(_ context.Context, userID uint64, start, end string) ([]DailyStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []DailyStat
	for _, st := range s.stats {
		if st.UserID != userID {
			continue
		}
		if start != "" && st.StatDate < start {
			continue
		}
		if end != "" && st.StatDate > end {
			continue
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StatDate < out[j].StatDate })
	return out, nil
}

func (s *MemoryStore) StatusSummaries(ctx context.Context, date string, userIDs []uint64) ([]StatusSummary, error) {
	s.mu.Lock()
	ids := make([]uint64, 0, len(s.emails))
	for id := range s.emails {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	want := map[uint64]bool{}
	for _, id := range userIDs {
		want[id] = true
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []StatusSummary
	for _, id := range ids {
		if len(want) > 0 && !want[id] {
			continue
		}
		tasks, _ := s.ActiveTasks(ctx, id)
		logs, _ := s.LogsForDate(ctx, id, date)
		completed := 0
		for _, lg := range logs {
			if lg.IsCompleted {
				completed++
			}
		}
		s.mu.Lock()
		email := s.emails[id]
		s.mu.Unlock()
		out = append(out, StatusSummary{
			UserID:         id,
			Email:          email,
			TotalTasks:     len(tasks),
			CompletedTasks: completed,
			CompletionRate: Rate(completed, len(tasks)),
		})
	}
	return out, nil
}
