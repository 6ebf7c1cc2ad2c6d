package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"contactly-be/internal/entities"
)

// ErrMiss is returned when a key is not cached.
var ErrMiss = errors.New("cache miss")

// ContactCache stores the full contact list of an owner under a version.
// Invalidate bumps the version; lists stored under older versions are never read.
type ContactCache interface {
	Version(ctx context.Context, ownerID string) (int64, error)
	GetContacts(ctx context.Context, ownerID string, version int64) ([]*entities.Contact, error)
	SetContacts(ctx context.Context, ownerID string, version int64, contacts []*entities.Contact) error
	Invalidate(ctx context.Context, ownerID string) error
	Ping(ctx context.Context) error
	Close() error
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a new Redis cache client
func NewRedisCache(ctx context.Context, redisURL string, ttl time.Duration) (ContactCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		// plain host:port
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewContactCache(client, ttl), nil
}

// NewContactCache wraps an existing client.
func NewContactCache(client *redis.Client, ttl time.Duration) ContactCache {
	return &redisCache{client: client, ttl: ttl}
}

func versionKey(ownerID string) string {
	return fmt.Sprintf("contacts:%s:version", ownerID)
}

func contactsKey(ownerID string, version int64) string {
	return fmt.Sprintf("contacts:%s:%d", ownerID, version)
}

// Version returns the current list version of an owner, 0 before the first write
func (r *redisCache) Version(ctx context.Context, ownerID string) (int64, error) {
	version, err := r.client.Get(ctx, versionKey(ownerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

// GetContacts returns the list cached under version, or ErrMiss
func (r *redisCache) GetContacts(ctx context.Context, ownerID string, version int64) ([]*entities.Contact, error) {
	data, err := r.client.Get(ctx, contactsKey(ownerID, version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var contacts []*entities.Contact
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if contacts == nil {
		contacts = []*entities.Contact{}
	}
	return contacts, nil
}

// SetContacts stores the list under version with the configured TTL
func (r *redisCache) SetContacts(ctx context.Context, ownerID string, version int64, contacts []*entities.Contact) error {
	data, err := json.Marshal(contacts)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return r.client.Set(ctx, contactsKey(ownerID, version), data, r.ttl).Err()
}

// Invalidate moves the owner to a new version; lists stored under older
// versions are never read again and expire with their TTL
func (r *redisCache) Invalidate(ctx context.Context, ownerID string) error {
	return r.client.Incr(ctx, versionKey(ownerID)).Err()
}

func (r *redisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
