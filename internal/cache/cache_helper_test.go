package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestCache(t *testing.T) *CacheHelper {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheHelper(client, "test")
}

type cachedValue struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCacheHelper_GetSetRoundtrip(t *testing.T) {
	helper := setupTestCache(t)
	ctx := context.Background()

	want := cachedValue{Name: "Biology 10", Count: 3}
	if err := helper.Set(ctx, "bank:1", want, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got cachedValue
	if err := helper.Get(ctx, "bank:1", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestCacheHelper_GetMissing(t *testing.T) {
	helper := setupTestCache(t)

	var got cachedValue
	err := helper.Get(context.Background(), "bank:missing", &got)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Fatalf("Expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelper_Delete(t *testing.T) {
	helper := setupTestCache(t)
	ctx := context.Background()

	if err := helper.Set(ctx, "bank:1", cachedValue{Name: "a"}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := helper.Delete(ctx, "bank:1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var got cachedValue
	if err := helper.Get(ctx, "bank:1", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Expected ErrCacheNotFound after delete, got %v", err)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper := setupTestCache(t)
	ctx := context.Background()

	for _, key := range []string{"list:a", "list:b", "id:1"} {
		if err := helper.Set(ctx, key, cachedValue{Name: key}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "list:*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}

	var got cachedValue
	if err := helper.Get(ctx, "list:a", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Expected list:a invalidated, got %v", err)
	}
	if err := helper.Get(ctx, "id:1", &got); err != nil {
		t.Errorf("Expected id:1 untouched, got %v", err)
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	helper := setupTestCache(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return &cachedValue{Name: "fetched", Count: calls}, nil
	}

	var first cachedValue
	if err := helper.CacheOrExecute(ctx, "bank:1", &first, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if first.Name != "fetched" || calls != 1 {
		t.Fatalf("Expected one fetch, got %+v calls=%d", first, calls)
	}

	// The cache write happens on a background goroutine, wait for it
	deadline := time.Now().Add(2 * time.Second)
	for {
		ok, err := helper.Exists(ctx, "bank:1")
		if err != nil {
			t.Fatalf("Exists failed: %v", err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Cache write never landed")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// Second call is served from the cache
	var second cachedValue
	if err := helper.CacheOrExecute(ctx, "bank:1", &second, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected cached result, fetch ran %d times", calls)
	}
	if second != first {
		t.Errorf("Expected cached %+v, got %+v", first, second)
	}
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "test")
	ctx := context.Background()

	var got cachedValue
	if err := helper.Get(ctx, "bank:1", &got); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Expected ErrCacheNotAvailable, got %v", err)
	}
	if err := helper.Set(ctx, "bank:1", cachedValue{}, time.Minute); err != nil {
		t.Errorf("Expected nil Set on missing client, got %v", err)
	}
	if err := helper.Delete(ctx, "bank:1"); err != nil {
		t.Errorf("Expected nil Delete on missing client, got %v", err)
	}
	if err := helper.InvalidatePattern(ctx, "list:*"); err != nil {
		t.Errorf("Expected nil InvalidatePattern on missing client, got %v", err)
	}

	// The fallthrough path still executes the fetch
	if err := helper.CacheOrExecute(ctx, "bank:1", &got, time.Minute, func() (interface{}, error) {
		return &cachedValue{Name: "direct"}, nil
	}); err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if got.Name != "direct" {
		t.Errorf("Expected fetched value, got %+v", got)
	}
}
