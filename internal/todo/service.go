package todo

import (
	"context"
	"errors"
)

var ErrInvalidInput = errors.New("invalid input")

// Service คือ business logic layer
type Service interface {
	ListTodos(ctx context.Context, order Order) ([]Todo, error)
	GetTodo(ctx context.Context, id int64) (*Todo, error)
	CreateTodo(ctx context.Context, in CreateTodoInput) (*Todo, error)
	UpdateTodo(ctx context.Context, id int64, in UpdateTodoInput) (*Todo, error)
	DeleteTodo(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

type service struct {
	repo TodoRepository
}

func NewService(repo TodoRepository) Service {
	return &service{repo: repo}
}

// ===== Get / List =====

func (s *service) ListTodos(ctx context.Context, order Order) ([]Todo, error) {
	return s.repo.List(ctx, order)
}

func (s *service) GetTodo(ctx context.Context, id int64) (*Todo, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// ===== Create =====

// CreateTodo เขียนทับถ้า id มีอยู่แล้ว (ไม่มี conflict error)
func (s *service) CreateTodo(ctx context.Context, in CreateTodoInput) (*Todo, error) {
	// handler validate มาแล้ว แต่ service ถูกเรียกตรงได้ (เช่นตอน seed)
	if in.ID == nil || in.Contents == nil || in.IsDone == nil || *in.ID <= 0 {
		return nil, ErrInvalidInput
	}

	todo := in.toTodo()
	if err := s.repo.Upsert(ctx, &todo); err != nil {
		return nil, err
	}

	return &todo, nil
}

// ===== Update =====

func (s *service) UpdateTodo(ctx context.Context, id int64, in UpdateTodoInput) (*Todo, error) {
	if id <= 0 || in.IsDone == nil {
		return nil, ErrInvalidInput
	}
	return s.repo.SetDone(ctx, id, *in.IsDone)
}

// ===== Delete =====

func (s *service) DeleteTodo(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// ===== Seed =====

// SeedTodos คือชุดข้อมูลตัวอย่างที่ใส่ตอน SEED_TODOS=true
func SeedTodos() []CreateTodoInput {
	seeds := make([]CreateTodoInput, 0, 3)
	for id := int64(1); id <= 3; id++ {
		seeds = append(seeds, CreateTodoInput{
			ID:       ptr(id),
			Contents: ptr("실전"),
			IsDone:   ptr(true),
		})
	}
	return seeds
}

func Seed(ctx context.Context, svc Service) error {
	for _, in := range SeedTodos() {
		if _, err := svc.CreateTodo(ctx, in); err != nil {
			return err
		}
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
