package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quickcart/storefront/internal/models"
	"github.com/redis/go-redis/v9"
)

const accountKeyPrefix = "account:"

// ErrAccountNotFound is returned when no account exists for an email.
var ErrAccountNotFound = redis.Nil

// AccountRepository stores registered credentials for the JWT authenticator.
type AccountRepository interface {
	Save(ctx context.Context, account *models.Account) error
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
}

type redisAccountRepository struct {
	client *redis.Client
}

func NewAccountRepo(client *redis.Client) AccountRepository {
	return &redisAccountRepository{client: client}
}

func (r *redisAccountRepository) Save(ctx context.Context, account *models.Account) error {

	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}

	// accounts do not expire
	if err := r.client.Set(ctx, accountKeyPrefix+account.Email, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store account: %w", err)
	}

	return nil
}

func (r *redisAccountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {

	data, err := r.client.Get(ctx, accountKeyPrefix+email).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrAccountNotFound
		}

		return nil, fmt.Errorf("failed to read account: %w", err)
	}

	account := &models.Account{}
	if err := json.Unmarshal(data, account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return account, nil
}
