package store

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/stocktrack/pkg/kvstore"
	product "github.com/ghuser/stocktrack/services/product/domain"
	"github.com/ghuser/stocktrack/services/product/domain/models"
	"github.com/ghuser/stocktrack/services/product/domain/repositories"
)

// runStoreContract exercises behaviour every ProductStore must share.
func runStoreContract(t *testing.T, s repositories.ProductStore) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	chair, err := models.NewProduct("Chair", "oak", 4, &models.StorageLocation{Position: 3, Height: models.HeightTop, Side: models.SideLeft})
	require.NoError(t, err)
	chair.CreatedAt, chair.UpdatedAt = base, base
	lamp, err := models.NewProduct("Lamp", "", 12, nil)
	require.NoError(t, err)
	lamp.CreatedAt, lamp.UpdatedAt = base.Add(time.Second), base.Add(time.Second)

	require.NoError(t, s.Create(ctx, lamp))
	require.NoError(t, s.Create(ctx, chair))

	t.Run("list orders by creation time", func(t *testing.T) {
		got, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, chair.ID, got[0].ID)
		assert.Equal(t, lamp.ID, got[1].ID)
	})

	t.Run("get round-trips fields", func(t *testing.T) {
		got, err := s.Get(ctx, chair.ID)
		require.NoError(t, err)
		assert.Equal(t, chair.Name, got.Name)
		assert.Equal(t, chair.Description, got.Description)
		assert.Equal(t, chair.Stock, got.Stock)
		assert.True(t, chair.CreatedAt.Equal(got.CreatedAt))
		require.NotNil(t, got.StorageLocation)
		assert.Equal(t, *chair.StorageLocation, *got.StorageLocation)

		got, err = s.Get(ctx, lamp.ID)
		require.NoError(t, err)
		assert.Nil(t, got.StorageLocation)
	})

	t.Run("update replaces fields", func(t *testing.T) {
		upd := chair.Clone()
		upd.Stock = 0
		upd.StorageLocation = nil
		require.NoError(t, s.Update(ctx, upd))

		got, err := s.Get(ctx, chair.ID)
		require.NoError(t, err)
		assert.Zero(t, got.Stock)
		assert.Nil(t, got.StorageLocation)
	})

	t.Run("unknown id", func(t *testing.T) {
		missing := uuid.NewString()
		_, err := s.Get(ctx, missing)
		assert.ErrorIs(t, err, product.ErrProductNotFound)

		ghost := lamp.Clone()
		ghost.ID = missing
		assert.ErrorIs(t, s.Update(ctx, ghost), product.ErrProductNotFound)
		assert.ErrorIs(t, s.Delete(ctx, missing), product.ErrProductNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, lamp.ID))
		_, err := s.Get(ctx, lamp.ID)
		assert.True(t, errors.Is(err, product.ErrProductNotFound))

		got, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, chair.ID, got[0].ID)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	seed := models.DemoProducts(time.Now())
	s := NewMemoryStore(seed...)
	seed[0].Name = "mutated"

	got, err := s.Get(context.Background(), seed[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Wireless Headphones", got.Name)

	got.Stock = 999
	again, err := s.Get(context.Background(), seed[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 15, again.Stock)
}

func TestDecodeProduct_Malformed(t *testing.T) {
	valid := map[string]string{
		"id": "x", "name": "n", "stock": "1",
		"created_at": "2024-01-01T00:00:00Z", "updated_at": "2024-01-01T00:00:00Z",
	}
	for field, bad := range map[string]string{"stock": "many", "created_at": "yesterday", "updated_at": "", "position": "first"} {
		vals := make(map[string]string, len(valid)+1)
		for k, v := range valid {
			vals[k] = v
		}
		vals[field] = bad
		_, err := decodeProduct(vals)
		assert.Error(t, err, field)
	}
}

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	client, err := kvstore.NewRedisClient(context.Background(), url)
	require.NoError(t, err)

	prefix := "stocktrack-test-" + uuid.NewString()
	t.Cleanup(func() {
		_, _ = client.DeletePrefix(context.Background(), kvstore.Keyspace(prefix))
		_ = client.Close()
	})
	return NewRedisStore(client, prefix)
}

func TestRedisStore_Integration(t *testing.T) {
	runStoreContract(t, newTestRedisStore(t))
}

func TestRedisStore_SeedIfEmpty_Integration(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	seeded, err := s.SeedIfEmpty(ctx, models.DemoProducts(time.Now()))
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = s.SeedIfEmpty(ctx, models.DemoProducts(time.Now()))
	require.NoError(t, err)
	assert.False(t, seeded)

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "Wireless Headphones", got[0].Name)
}

func TestRedisStore_SeedIfEmpty_FailedSeedRetries_Integration(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	seeded, err := s.SeedIfEmpty(cancelled, models.DemoProducts(time.Now()))
	require.Error(t, err)
	assert.False(t, seeded)

	n, err := s.client.Client().Exists(ctx, s.seededKey()).Result()
	require.NoError(t, err)
	assert.Zero(t, n, "marker must not outlive a failed seed")

	seeded, err = s.SeedIfEmpty(ctx, models.DemoProducts(time.Now()))
	require.NoError(t, err)
	assert.True(t, seeded)

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestRedisStore_SeedIfEmpty_Concurrent_Integration(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	const workers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seeded, err := s.SeedIfEmpty(ctx, models.DemoProducts(time.Now()))
			assert.NoError(t, err)
			if seeded {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}
