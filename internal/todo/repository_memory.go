package todo

import (
	"context"
	"slices"
	"sync"
)

// MemoryRepo เก็บ todo ไว้ใน map ของ instance เอง (ไม่มี global state)
// เหมาะกับ dev / test ข้อมูลหายเมื่อ process จบ
type MemoryRepo struct {
	mu    sync.RWMutex
	todos map[int64]Todo
}

func NewMemoryRepository() *MemoryRepo {
	return &MemoryRepo{todos: make(map[int64]Todo)}
}

func (r *MemoryRepo) List(ctx context.Context, order Order) ([]Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todos := make([]Todo, 0, len(r.todos))
	for _, t := range r.todos {
		todos = append(todos, t)
	}

	slices.SortFunc(todos, func(a, b Todo) int {
		if order == OrderDesc {
			a, b = b, a
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})

	return todos, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (*Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.todos[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, t *Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.todos[t.ID] = *t
	return nil
}

func (r *MemoryRepo) SetDone(ctx context.Context, id int64, isDone bool) (*Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.todos[id]
	if !ok {
		return nil, ErrNotFound
	}

	t.IsDone = isDone
	r.todos[id] = t
	return &t, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[id]; !ok {
		return ErrNotFound
	}
	delete(r.todos, id)
	return nil
}

func (r *MemoryRepo) Ping(ctx context.Context) error {
	return nil
}
