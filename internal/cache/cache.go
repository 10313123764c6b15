// Package cache keeps slow-changing Paystack lookups (banks, countries,
// states) between CLI runs.
//
// Entries are JSON, scoped per API base URL and key mode (test or live).
// The default TTL is 24 hours. PAYSTACK_NO_CACHE=1 disables caching and
// PAYSTACK_CACHE_REDIS_URL moves it to a shared Redis instance.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 24 * time.Hour

// Cache stores JSON-encodable values by key. Misses and write failures are
// silent: a cache problem never fails a command.
type Cache interface {
	Get(ctx context.Context, key string, dst any) bool
	Put(ctx context.Context, key string, value any)
	Clear(ctx context.Context) error
}

type entry struct {
	CachedAt time.Time       `json:"cached_at"`
	Value    json.RawMessage `json:"value"`
}

// Scope derives a cache namespace from the API base URL and key mode.
func Scope(baseURL string, live bool) string {
	mode := "test"
	if live {
		mode = "live"
	}
	hash := sha1.Sum([]byte(strings.TrimSuffix(baseURL, "/")))
	return mode + "-" + hex.EncodeToString(hash[:6])
}

// Open returns the cache selected by the environment: a no-op cache when
// disabled, Redis when PAYSTACK_CACHE_REDIS_URL is set, else a file store.
func Open(scope string) (Cache, error) {
	if Disabled() {
		return Noop{}, nil
	}
	if raw := strings.TrimSpace(os.Getenv("PAYSTACK_CACHE_REDIS_URL")); raw != "" {
		opts, err := redis.ParseURL(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid PAYSTACK_CACHE_REDIS_URL: %w", err)
		}
		return NewRedisStore(redis.NewClient(opts), scope, DefaultTTL), nil
	}
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return NewFileStore(dir, scope, DefaultTTL), nil
}

// Disabled reports whether PAYSTACK_NO_CACHE is set.
func Disabled() bool {
	return os.Getenv("PAYSTACK_NO_CACHE") != ""
}

// DefaultDir returns "$XDG_CACHE_HOME/paystack-cli" or the platform equivalent.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "paystack-cli"), nil
}

// Noop is a cache that never hits.
type Noop struct{}

func (Noop) Get(context.Context, string, any) bool { return false }

func (Noop) Put(context.Context, string, any) {}

func (Noop) Clear(context.Context) error { return nil }

// FileStore keeps one JSON file per key under dir/scope.
type FileStore struct {
	dir string
	ttl time.Duration
}

// NewFileStore creates a file-backed cache rooted at dir/scope.
func NewFileStore(dir, scope string, ttl time.Duration) *FileStore {
	return &FileStore{dir: filepath.Join(dir, sanitizeKey(scope)), ttl: ttl}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, sanitizeKey(key)+".json")
}

// Get loads the value for key into dst. It returns false on a miss or an expired entry.
func (s *FileStore) Get(_ context.Context, key string, dst any) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}
	return decodeEntry(data, s.ttl, dst)
}

// Put writes value under key.
func (s *FileStore) Put(_ context.Context, key string, value any) {
	data, err := encodeEntry(value)
	if err != nil {
		return
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return
	}
	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return
	}
	_ = os.Rename(tmp, path)
}

// Clear removes every cached entry in this scope.
func (s *FileStore) Clear(_ context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// ClearAll removes the cache directories of every scope under dir.
func ClearAll(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || !(strings.HasPrefix(name, "test-") || strings.HasPrefix(name, "live-")) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// RedisStore keeps entries in Redis under "paystack:<scope>:<key>" with a TTL.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client, scope string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: "paystack:" + scope + ":", ttl: ttl}
}

// Get loads the value for key into dst.
func (s *RedisStore) Get(ctx context.Context, key string, dst any) bool {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		return false
	}
	return decodeEntry(data, s.ttl, dst)
}

// Put stores value under key with the store's TTL.
func (s *RedisStore) Put(ctx context.Context, key string, value any) {
	data, err := encodeEntry(value)
	if err != nil {
		return
	}
	_ = s.client.Set(ctx, s.prefix+key, data, s.ttl).Err()
}

// Clear deletes every key in this scope.
func (s *RedisStore) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Close releases the Redis connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func encodeEntry(value any) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(entry{CachedAt: time.Now(), Value: raw})
}

func decodeEntry(data []byte, ttl time.Duration, dst any) bool {
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return false
	}
	if ttl > 0 && time.Since(e.CachedAt) > ttl {
		return false
	}
	return json.Unmarshal(e.Value, dst) == nil
}

func sanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "cache"
	}
	return strings.NewReplacer("/", "-", "\\", "-", ":", "-", "..", "-").Replace(key)
}
