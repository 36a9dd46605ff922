package todo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	redisTodoKeyPrefix = "todo:"
	// sorted set ของ id (score = id) ใช้เรียงตอน list
	redisTodoIndexKey = "todos:ids"
)

// RedisRepo เก็บแต่ละ todo เป็น JSON ที่ key todo:<id>
type RedisRepo struct {
	rdb redis.UniversalClient
}

func NewRedisRepository(rdb redis.UniversalClient) *RedisRepo {
	return &RedisRepo{rdb: rdb}
}

func redisTodoKey(id int64) string {
	return redisTodoKeyPrefix + strconv.FormatInt(id, 10)
}

func (r *RedisRepo) List(ctx context.Context, order Order) ([]Todo, error) {
	var (
		ids []string
		err error
	)
	if order == OrderDesc {
		ids, err = r.rdb.ZRevRange(ctx, redisTodoIndexKey, 0, -1).Result()
	} else {
		ids, err = r.rdb.ZRange(ctx, redisTodoIndexKey, 0, -1).Result()
	}
	if err != nil {
		return nil, fmt.Errorf("list todo ids: %w", err)
	}

	todos := make([]Todo, 0, len(ids))
	if len(ids) == 0 {
		return todos, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = redisTodoKeyPrefix + id
	}

	vals, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			// index กับ key ไม่ตรงกัน (เช่นโดนลบระหว่างอ่าน) ข้ามไป
			continue
		}
		var t Todo
		if err := json.Unmarshal([]byte(s), &t); err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		todos = append(todos, t)
	}

	return todos, nil
}

func (r *RedisRepo) GetByID(ctx context.Context, id int64) (*Todo, error) {
	data, err := r.rdb.Get(ctx, redisTodoKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get todo %d: %w", id, err)
	}

	var t Todo
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode todo %d: %w", id, err)
	}
	return &t, nil
}

func (r *RedisRepo) Upsert(ctx context.Context, t *Todo) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}

	// เขียน value + index ใน MULTI/EXEC เดียวกัน
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisTodoKey(t.ID), data, 0)
		pipe.ZAdd(ctx, redisTodoIndexKey, redis.Z{Score: float64(t.ID), Member: strconv.FormatInt(t.ID, 10)})
		return nil
	})
	if err != nil {
		return fmt.Errorf("upsert todo %d: %w", t.ID, err)
	}
	return nil
}

func (r *RedisRepo) SetDone(ctx context.Context, id int64, isDone bool) (*Todo, error) {
	key := redisTodoKey(id)

	var t Todo
	// WATCH key กัน read-modify-write ทับกับ request อื่น
	err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrNotFound
			}
			return err
		}

		if err := json.Unmarshal(data, &t); err != nil {
			return err
		}
		t.IsDone = isDone

		updated, err := json.Marshal(t)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update todo %d: %w", id, err)
	}

	return &t, nil
}

func (r *RedisRepo) Delete(ctx context.Context, id int64) error {
	var del *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, redisTodoKey(id))
		pipe.ZRem(ctx, redisTodoIndexKey, strconv.FormatInt(id, 10))
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}

	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RedisRepo) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
