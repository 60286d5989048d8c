package cache

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// isoDatePattern recognizes ISO-8601 date-time strings so cached JSON
// round-trips them back into time.Time on untyped reads. It is a
// pattern heuristic: a literal field that merely looks like a date is
// converted too.
var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T`)

// Store is the cache-aside layer over Redis. Reads never fail the
// caller: any store-level error on Get degrades to a miss, so
// correctness depends only on the durable store. Writes and deletes
// propagate errors.
type Store interface {
	// Get loads the value under key into dest and reports whether the
	// key was present. dest should be a pointer to the cached type; a
	// *string or *any dest also accepts payloads written as plain text.
	Get(ctx context.Context, key string, dest interface{}) bool
	// Set serializes value (strings stored as-is, everything else as
	// JSON) under key. A caller-supplied TTL overrides the default.
	Set(ctx context.Context, key string, value interface{}, ttl ...time.Duration) error
	Delete(ctx context.Context, key string) error
}

type redisStore struct {
	client     *redis.Client
	defaultTTL time.Duration
	log        *logrus.Logger
}

func NewStore(client *redis.Client, defaultTTL time.Duration, log *logrus.Logger) Store {
	return &redisStore{
		client:     client,
		defaultTTL: defaultTTL,
		log:        log,
	}
}

func (s *redisStore) Get(ctx context.Context, key string, dest interface{}) bool {
	raw, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warnf("Cache get failed for key %q, treating as miss: %+v", key, err)
		}
		return false
	}

	if err := decode(raw, dest); err != nil {
		s.log.Warnf("Cache decode failed for key %q, treating as miss: %+v", key, err)
		return false
	}

	return true
}

func (s *redisStore) Set(ctx context.Context, key string, value interface{}, ttl ...time.Duration) error {
	expiry := s.defaultTTL
	if len(ttl) > 0 {
		expiry = ttl[0]
	}

	payload, err := serialize(value)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, key, payload, expiry).Err()
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func serialize(value interface{}) (string, error) {
	if str, ok := value.(string); ok {
		return str, nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decode restores a cached payload into dest. Typed destinations decode
// straight from JSON, which already reconstructs RFC3339 strings into
// time.Time fields. Untyped (*interface{}) destinations get the
// pattern-based date revival applied recursively. Payloads that are not
// valid JSON are handed back as the raw text when dest can hold a
// string, keeping compatibility with plain string writes.
func decode(raw string, dest interface{}) error {
	switch d := dest.(type) {
	case *string:
		var str string
		if err := json.Unmarshal([]byte(raw), &str); err != nil {
			*d = raw
			return nil
		}
		*d = str
		return nil
	case *interface{}:
		var value interface{}
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			*d = raw
			return nil
		}
		*d = reviveDates(value)
		return nil
	default:
		return json.Unmarshal([]byte(raw), dest)
	}
}

func reviveDates(value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		if isoDatePattern.MatchString(v) {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				return t
			}
		}
		return v
	case map[string]interface{}:
		for key, item := range v {
			v[key] = reviveDates(item)
		}
		return v
	case []interface{}:
		for i, item := range v {
			v[i] = reviveDates(item)
		}
		return v
	default:
		return v
	}
}
