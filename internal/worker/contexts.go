package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrContextNotFound is returned when no context is stored under a key
var ErrContextNotFound = errors.New("render context not found")

const contextKeyPrefix = "render:context:"

// ContextStore keeps shared render contexts in Redis as JSON so that
// requests can reference a context by key instead of inlining it
type ContextStore struct {
	client redis.Cmdable
	logger *zap.Logger
}

// NewContextStore creates a new Redis context store
func NewContextStore(client redis.Cmdable, logger *zap.Logger) *ContextStore {
	return &ContextStore{
		client: client,
		logger: logger,
	}
}

// Save stores a context. A zero ttl keeps it until deleted.
func (s *ContextStore) Save(ctx context.Context, key string, data map[string]interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal context: %w", err)
	}

	if err := s.client.Set(ctx, contextKeyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}

	return nil
}

// Load returns the context stored under key
func (s *ContextStore) Load(ctx context.Context, key string) (map[string]interface{}, error) {
	data, err := s.client.Get(ctx, contextKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrContextNotFound, key)
		}
		return nil, fmt.Errorf("failed to load context: %w", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal context: %w", err)
	}
	if out == nil {
		out = make(map[string]interface{})
	}

	s.logger.Debug("loaded render context", zap.String("key", key), zap.Int("fields", len(out)))

	return out, nil
}

// Delete removes the context stored under key
func (s *ContextStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, contextKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete context: %w", err)
	}
	return nil
}

// resolveContext merges the inline context of a request over the stored
// context it references
func (s *ContextStore) resolveContext(ctx context.Context, request *RenderRequest) (map[string]interface{}, error) {
	if request.ContextKey == "" {
		return request.Context, nil
	}

	base, err := s.Load(ctx, request.ContextKey)
	if err != nil {
		return nil, err
	}
	for k, v := range request.Context {
		base[k] = v
	}
	return base, nil
}
