package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/stocktrack/pkg/kvstore"
	product "github.com/ghuser/stocktrack/services/product/domain"
	"github.com/ghuser/stocktrack/services/product/domain/models"
	"github.com/ghuser/stocktrack/services/product/domain/repositories"
)

const defaultKeyPrefix = "stocktrack"

// RedisStore keeps each product as a hash and orders them with a sorted set
// scored by creation time.
//
// Keys:
//
//	{prefix}:product:{id}   hash of product fields
//	{prefix}:products       sorted set of ids
//	{prefix}:products:seeded  marker written by SeedIfEmpty
type RedisStore struct {
	client *kvstore.RedisClient
	keys   kvstore.Keyspace
}

var _ repositories.ProductStore = (*RedisStore)(nil)

// NewRedisStore returns a store using client. An empty prefix selects "stocktrack".
func NewRedisStore(client *kvstore.RedisClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisStore{client: client, keys: kvstore.Keyspace(prefix)}
}

func (s *RedisStore) productKey(id string) string { return s.keys.Key("product", id) }

func (s *RedisStore) indexKey() string { return s.keys.Key("products") }

func (s *RedisStore) seededKey() string { return s.keys.Key("products", "seeded") }

// SeedIfEmpty writes products the first time it runs against a keyspace.
// It reports whether seeding happened. The products and the marker go out in
// one MULTI under a WATCH on the marker, so a failed seed leaves nothing behind
// and concurrent seeders write the set once.
func (s *RedisStore) SeedIfEmpty(ctx context.Context, products []*models.Product) (bool, error) {
	marker := s.seededKey()
	seeded := false
	err := s.client.Client().Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, marker).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, p := range products {
				pipe.HSet(ctx, s.productKey(p.ID), encodeProduct(p)...)
				pipe.ZAdd(ctx, s.indexKey(), redis.Z{Score: float64(p.CreatedAt.UnixMicro()), Member: p.ID})
			}
			pipe.Set(ctx, marker, time.Now().UTC().Format(time.RFC3339), 0)
			return nil
		})
		if err == nil {
			seeded = true
		}
		return err
	}, marker)
	if errors.Is(err, redis.TxFailedErr) {
		// another seeder set the marker first
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("product store seed: %w", err)
	}
	return seeded, nil
}

func (s *RedisStore) List(ctx context.Context) ([]*models.Product, error) {
	rdb := s.client.Client()
	ids, err := rdb.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("product store list: %w", err)
	}
	if len(ids) == 0 {
		return []*models.Product{}, nil
	}

	pipe := rdb.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, s.productKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("product store list: %w", err)
	}

	out := make([]*models.Product, 0, len(ids))
	for _, cmd := range cmds {
		vals := cmd.Val()
		// index entries can outlive a hash deleted outside this store
		if len(vals) == 0 {
			continue
		}
		p, err := decodeProduct(vals)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.Product, error) {
	vals, err := s.client.Client().HGetAll(ctx, s.productKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("product store get: %w", err)
	}
	if len(vals) == 0 {
		return nil, product.ErrProductNotFound
	}
	return decodeProduct(vals)
}

func (s *RedisStore) Create(ctx context.Context, p *models.Product) error {
	key := s.productKey(p.ID)
	_, err := s.client.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, encodeProduct(p)...)
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{Score: float64(p.CreatedAt.UnixMicro()), Member: p.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("product store create: %w", err)
	}
	return nil
}

// Update replaces all fields of an existing product. The WATCH on the key
// makes the existence check and the write atomic.
func (s *RedisStore) Update(ctx context.Context, p *models.Product) error {
	key := s.productKey(p.ID)
	err := s.client.Client().Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return product.ErrProductNotFound
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.HSet(ctx, key, encodeProduct(p)...)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, product.ErrProductNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("product store update: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := s.client.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.productKey(id))
		pipe.ZRem(ctx, s.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("product store delete: %w", err)
	}
	if del.Val() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

func encodeProduct(p *models.Product) []any {
	fields := []any{
		"id", p.ID,
		"name", p.Name,
		"description", p.Description,
		"stock", p.Stock,
		"created_at", p.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at", p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if loc := p.StorageLocation; loc != nil {
		fields = append(fields,
			"position", loc.Position,
			"height", loc.Height,
			"side", loc.Side,
		)
	}
	return fields
}

func decodeProduct(vals map[string]string) (*models.Product, error) {
	stock, err := strconv.Atoi(vals["stock"])
	if err != nil {
		return nil, fmt.Errorf("product store parse stock: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("product store parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("product store parse updated_at: %w", err)
	}

	p := &models.Product{
		ID:          vals["id"],
		Name:        vals["name"],
		Description: vals["description"],
		Stock:       stock,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if raw, ok := vals["position"]; ok {
		pos, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("product store parse position: %w", err)
		}
		p.StorageLocation = &models.StorageLocation{Position: pos, Height: vals["height"], Side: vals["side"]}
	}
	return p, nil
}
