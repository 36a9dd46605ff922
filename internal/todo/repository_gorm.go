package todo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// todoRow คือ mapping ของตาราง todos สำหรับ gorm (แยกจาก Todo เพื่อไม่ให้ tag ORM หลุดไปถึง json)
type todoRow struct {
	ID       int64  `gorm:"primaryKey;autoIncrement:false"`
	Contents string `gorm:"not null"`
	IsDone   bool   `gorm:"not null"`
}

func (todoRow) TableName() string {
	return "todos"
}

func (row todoRow) toTodo() Todo {
	return Todo{ID: row.ID, Contents: row.Contents, IsDone: row.IsDone}
}

// GormRepo ทำงานบนตารางเดียวกับ PostgresRepo แต่ผ่าน ORM
type GormRepo struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func (r *GormRepo) List(ctx context.Context, order Order) ([]Todo, error) {
	var rows []todoRow
	err := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: order == OrderDesc}).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	todos := make([]Todo, 0, len(rows))
	for _, row := range rows {
		todos = append(todos, row.toTodo())
	}
	return todos, nil
}

func (r *GormRepo) GetByID(ctx context.Context, id int64) (*Todo, error) {
	var row todoRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get todo %d: %w", id, err)
	}

	t := row.toTodo()
	return &t, nil
}

func (r *GormRepo) Upsert(ctx context.Context, t *Todo) error {
	row := todoRow{ID: t.ID, Contents: t.Contents, IsDone: t.IsDone}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"contents", "is_done"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert todo %d: %w", t.ID, err)
	}

	*t = row.toTodo()
	return nil
}

func (r *GormRepo) SetDone(ctx context.Context, id int64, isDone bool) (*Todo, error) {
	var row todoRow
	res := r.db.WithContext(ctx).
		Model(&row).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("is_done", isDone)
	if res.Error != nil {
		return nil, fmt.Errorf("update todo %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	t := row.toTodo()
	return &t, nil
}

func (r *GormRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&todoRow{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete todo %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
