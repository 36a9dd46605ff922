package main

import (
	"context"
	"fmt"

	"github.com/Nasaee/todo-crud-api/internal/db"
	"github.com/Nasaee/todo-crud-api/internal/todo"
)

// openStore เลือก repository ตาม STORE_DRIVER แล้วคืน func สำหรับปิด connection
func openStore(ctx context.Context, cfg config) (todo.TodoRepository, func(), error) {
	switch cfg.store.driver {
	case driverPostgres:
		pool, err := db.OpenPool(ctx, cfg.store.db.dsn)
		if err != nil {
			return nil, nil, err
		}
		if cfg.store.db.migrate {
			if err := db.Migrate(ctx, db.SQLFromPool(pool)); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		return todo.NewPostgresRepository(pool), pool.Close, nil

	case driverGorm:
		gdb, err := db.OpenGorm(cfg.store.db.dsn)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, err
		}
		if cfg.store.db.migrate {
			if err := db.Migrate(ctx, sqlDB); err != nil {
				sqlDB.Close()
				return nil, nil, err
			}
		}
		return todo.NewGormRepository(gdb), func() { sqlDB.Close() }, nil

	case driverRedis:
		rdb, err := db.OpenRedis(ctx, cfg.store.redis.addr, cfg.store.redis.db)
		if err != nil {
			return nil, nil, err
		}
		return todo.NewRedisRepository(rdb), func() { rdb.Close() }, nil

	case driverMemory:
		return todo.NewMemoryRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q (want postgres, gorm, redis or memory)", cfg.store.driver)
	}
}
