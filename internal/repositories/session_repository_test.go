package repository_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/quickcart/storefront/internal/models"
	repository "github.com/quickcart/storefront/internal/repositories"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionFixture() *models.Identity {
	return &models.Identity{
		ID:    "user-1",
		Name:  "Test Shopper",
		Email: "test@example.com",
		Token: "mock_token_1700000000000_test_example.com",
	}
}

func TestSessionSave(t *testing.T) {
	ctx := t.Context()
	identity := sessionFixture()
	ttl := time.Hour

	data, err := json.Marshal(identity)
	require.NoError(t, err)

	t.Run("Success - Writes Both Keys", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		repo := repository.NewSessionRepo(client)

		mock.ExpectSet("user:"+identity.Token, data, ttl).SetVal("OK")
		mock.ExpectSet("token:"+identity.Token, identity.Token, ttl).SetVal("OK")

		// Act
		err := repo.Save(ctx, identity, ttl)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		repo := repository.NewSessionRepo(client)

		mock.ExpectSet("user:"+identity.Token, data, ttl).SetErr(assert.AnError)

		// Act
		err := repo.Save(ctx, identity, ttl)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestSessionFind(t *testing.T) {
	ctx := t.Context()
	identity := sessionFixture()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		repo := repository.NewSessionRepo(client)

		data, err := json.Marshal(identity)
		require.NoError(t, err)
		mock.ExpectGet("user:" + identity.Token).SetVal(string(data))

		// Act
		found, err := repo.Find(ctx, identity.Token)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, identity.Email, found.Email)
		assert.Equal(t, identity.Token, found.Token)
	})

	t.Run("Failure - Unknown Token", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		repo := repository.NewSessionRepo(client)

		mock.ExpectGet("user:missing").SetErr(redis.Nil)

		// Act
		found, err := repo.Find(ctx, "missing")

		// Assert
		require.Error(t, err)
		assert.Nil(t, found)
		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	})
}

func TestSessionDelete(t *testing.T) {
	ctx := t.Context()
	identity := sessionFixture()

	// Arrange
	client, mock := redismock.NewClientMock()
	repo := repository.NewSessionRepo(client)

	mock.ExpectDel("user:"+identity.Token, "token:"+identity.Token).SetVal(2)

	// Act
	err := repo.Delete(ctx, identity.Token)

	// Assert
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository(t *testing.T) {
	ctx := t.Context()

	account := &models.Account{
		ID:           "acct-1",
		Name:         "Test Shopper",
		Email:        "test@example.com",
		PasswordHash: "$2a$10$hash",
	}

	t.Run("Save And Find Round Trip", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		repo := repository.NewAccountRepo(client)

		data, err := json.Marshal(account)
		require.NoError(t, err)

		mock.ExpectSet("account:"+account.Email, data, 0).SetVal("OK")
		mock.ExpectGet("account:" + account.Email).SetVal(string(data))

		// Act
		require.NoError(t, repo.Save(ctx, account))
		found, err := repo.FindByEmail(ctx, account.Email)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, account.PasswordHash, found.PasswordHash)
	})

	t.Run("Failure - Unknown Email", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		repo := repository.NewAccountRepo(client)

		mock.ExpectGet("account:missing@example.com").SetErr(redis.Nil)

		// Act
		found, err := repo.FindByEmail(ctx, "missing@example.com")

		// Assert
		require.Error(t, err)
		assert.Nil(t, found)
		assert.ErrorIs(t, err, repository.ErrAccountNotFound)
	})
}
