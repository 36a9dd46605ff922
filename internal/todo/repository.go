package todo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ================== Error กลาง ==================

var ErrNotFound = errors.New("todo not found")

// ใช้ร่วมกับ DELETE เพื่อตรวจว่าโดนลบจริงกี่แถว
func checkRowsAffectedOne(cmdTag pgconn.CommandTag) error {
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ================== Interface ==================

// TodoRepository คือ store ตัวเดียวของ process (เลือกจาก STORE_DRIVER ตอน start)
type TodoRepository interface {
	List(ctx context.Context, order Order) ([]Todo, error)
	GetByID(ctx context.Context, id int64) (*Todo, error)
	// Upsert: id ซ้ำ = เขียนทับของเดิม
	Upsert(ctx context.Context, t *Todo) error
	SetDone(ctx context.Context, id int64, isDone bool) (*Todo, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// pgxQuerier คือส่วนของ *pgxpool.Pool ที่ repo ใช้จริง
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type PostgresRepo struct {
	db pgxQuerier
}

// NewPostgresRepository รับ *pgxpool.Pool (หรือ mock ที่ method ตรงกัน)
func NewPostgresRepository(db pgxQuerier) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const (
	listTodosAsc = `
		SELECT id, contents, is_done
		FROM todos
		ORDER BY id ASC
	`
	listTodosDesc = `
		SELECT id, contents, is_done
		FROM todos
		ORDER BY id DESC
	`
)

func (r *PostgresRepo) List(ctx context.Context, order Order) ([]Todo, error) {
	query := listTodosAsc
	if order == OrderDesc {
		query = listTodosDesc
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]Todo, 0)
	for rows.Next() {
		var t Todo
		if err := rows.Scan(&t.ID, &t.Contents, &t.IsDone); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return todos, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (*Todo, error) {
	query := `
		SELECT id, contents, is_done
		FROM todos
		WHERE id = $1
	`

	var t Todo
	err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.Contents, &t.IsDone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get todo %d: %w", id, err)
	}

	return &t, nil
}

func (r *PostgresRepo) Upsert(ctx context.Context, t *Todo) error {
	query := `
		INSERT INTO todos (id, contents, is_done)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET contents = EXCLUDED.contents,
			is_done = EXCLUDED.is_done
		RETURNING id, contents, is_done
	`

	err := r.db.QueryRow(ctx, query, t.ID, t.Contents, t.IsDone).Scan(&t.ID, &t.Contents, &t.IsDone)
	if err != nil {
		return fmt.Errorf("upsert todo %d: %w", t.ID, err)
	}
	return nil
}

func (r *PostgresRepo) SetDone(ctx context.Context, id int64, isDone bool) (*Todo, error) {
	query := `
		UPDATE todos
		SET is_done = $1
		WHERE id = $2
		RETURNING id, contents, is_done
	`

	var t Todo
	err := r.db.QueryRow(ctx, query, isDone, id).Scan(&t.ID, &t.Contents, &t.IsDone)
	if err != nil {
		// UPDATE ... RETURNING ไม่เจอแถว = ErrNoRows
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update todo %d: %w", id, err)
	}

	return &t, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM todos
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}

	return checkRowsAffectedOne(cmdTag)
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
