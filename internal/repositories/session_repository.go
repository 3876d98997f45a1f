package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quickcart/storefront/internal/models"
	"github.com/redis/go-redis/v9"
)

// The two fixed storage keys the storefront always used ("user" and "token"),
// scoped per session token now that one process serves many sessions.
const (
	userKeyPrefix  = "user:"
	tokenKeyPrefix = "token:"
)

// ErrSessionNotFound is returned when no identity is stored for a token.
var ErrSessionNotFound = redis.Nil

type SessionRepository interface {
	Save(ctx context.Context, identity *models.Identity, ttl time.Duration) error
	Find(ctx context.Context, token string) (*models.Identity, error)
	Delete(ctx context.Context, token string) error
}

type redisSessionRepository struct {
	client *redis.Client
}

func NewSessionRepo(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client}
}

func (r *redisSessionRepository) Save(ctx context.Context, identity *models.Identity, ttl time.Duration) error {

	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to marshal identity: %w", err)
	}

	if err := r.client.Set(ctx, userKeyPrefix+identity.Token, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store identity: %w", err)
	}

	if err := r.client.Set(ctx, tokenKeyPrefix+identity.Token, identity.Token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	return nil
}

func (r *redisSessionRepository) Find(ctx context.Context, token string) (*models.Identity, error) {

	data, err := r.client.Get(ctx, userKeyPrefix+token).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}

		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	identity := &models.Identity{}
	if err := json.Unmarshal(data, identity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal identity: %w", err)
	}

	return identity, nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, token string) error {

	if err := r.client.Del(ctx, userKeyPrefix+token, tokenKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
