package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"CrossSentinel/internal/model"
)

const cacheKeyPrefix = "crosssentinel:closes"

// errCacheMiss is returned by a Store when the key does not exist.
var errCacheMiss = errors.New("cache miss")

// Store is the key/value surface CachedFetcher needs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisStore adapts a go-redis client to Store.
type RedisStore struct {
	Client *goredis.Client
}

// NewRedisStore connects to addr. The connection is established lazily.
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{Client: goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 3 * time.Second,
		ReadTimeout: 3 * time.Second,
	})}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.Client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, errCacheMiss
	}
	return b, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.Client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Close() error { return s.Client.Close() }

// CachedFetcher is a read-through cache in front of another Fetcher.
// Cache failures are logged and fall through to the wrapped fetcher.
type CachedFetcher struct {
	Next  Fetcher
	Store Store
	TTL   time.Duration
}

// NewCachedFetcher wraps next with store.
func NewCachedFetcher(next Fetcher, store Store, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{Next: next, Store: store, TTL: ttl}
}

func (f *CachedFetcher) Name() string { return f.Next.Name() + "+cache" }

func (f *CachedFetcher) FetchDailyCloses(ctx context.Context, ticker string, start, end time.Time) (model.PriceSeries, error) {
	key := f.key(ticker, start, end)

	raw, err := f.Store.Get(ctx, key)
	switch {
	case err == nil:
		var closes []model.DailyClose
		if err := json.Unmarshal(raw, &closes); err == nil {
			return model.NewPriceSeries(ticker, closes), nil
		}
		log.Printf("[WARN] cache entry %s unreadable, refetching", key)
	case !errors.Is(err, errCacheMiss):
		log.Printf("[WARN] cache get %s: %v", key, err)
	}

	series, err := f.Next.FetchDailyCloses(ctx, ticker, start, end)
	if err != nil {
		return series, err
	}
	if raw, err := json.Marshal(series.Closes); err == nil {
		if err := f.Store.Set(ctx, key, raw, f.TTL); err != nil {
			log.Printf("[WARN] cache set %s: %v", key, err)
		}
	}
	return series, nil
}

func (f *CachedFetcher) key(ticker string, start, end time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%s:%s", cacheKeyPrefix, f.Next.Name(), ticker,
		start.UTC().Format("20060102"), end.UTC().Format("20060102"))
}
