package repositories

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteRepository(t *testing.T) Repository {
	t.Helper()
	ctx := context.Background()
	repository, err := NewSQLiteRepository(ctx, filepath.Join(t.TempDir(), "seafarer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repository.Close(ctx) })
	return repository
}

func TestSQLiteRepository_users(t *testing.T) {
	ctx := context.Background()
	repository := newTestSQLiteRepository(t)

	user, err := repository.CreateUser(ctx, "diver@example.com", "hash")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	_, err = repository.CreateUser(ctx, "diver@example.com", "other")
	assert.True(t, IsEmailExists(err), "unexpected error: %v", err)

	byEmail, err := repository.GetUserByEmail(ctx, "diver@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	_, err = repository.GetUser(ctx, "missing")
	assert.True(t, IsNotFound(err))

	ensured, err := repository.EnsureUser(ctx, "firebase-uid", "hosted@example.com")
	require.NoError(t, err)
	assert.Equal(t, "firebase-uid", ensured.ID)
	assert.Empty(t, ensured.PasswordHash)

	again, err := repository.EnsureUser(ctx, "firebase-uid", "hosted@example.com")
	require.NoError(t, err)
	assert.Equal(t, ensured, again)
}

func TestSQLiteRepository_saves(t *testing.T) {
	ctx := context.Background()
	repository := newTestSQLiteRepository(t)
	user, err := repository.CreateUser(ctx, "diver@example.com", "hash")
	require.NoError(t, err)
	other, err := repository.CreateUser(ctx, "other@example.com", "hash")
	require.NoError(t, err)

	saves, err := repository.ListSaves(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, saves)
	assert.Empty(t, saves)

	large := bytes.Repeat([]byte(`{"pearls":[1,2,3]}`), 512)
	first, err := repository.CreateSave(ctx, user.ID, []byte("first"))
	require.NoError(t, err)
	second, err := repository.CreateSave(ctx, user.ID, large)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	saves, err = repository.ListSaves(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, saves, 2)
	assert.Equal(t, first.ID, saves[0].ID)
	assert.Equal(t, []byte("first"), saves[0].Payload)
	assert.Equal(t, large, saves[1].Payload)

	err = repository.DeleteSave(ctx, other.ID, first.ID)
	assert.True(t, IsNotFound(err))

	require.NoError(t, repository.DeleteSave(ctx, user.ID, first.ID))
	err = repository.DeleteSave(ctx, user.ID, first.ID)
	assert.True(t, IsNotFound(err))

	saves, err = repository.ListSaves(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, saves, 1)
	assert.Equal(t, second.ID, saves[0].ID)
}

func TestPayloadCompression(t *testing.T) {
	payload := bytes.Repeat([]byte("pearl"), 1000)
	stored := compressPayload(payload)
	assert.Less(t, len(stored), len(payload))

	restored, err := decompressPayload(stored)
	require.NoError(t, err)
	assert.Equal(t, payload, restored)

	_, err = decompressPayload([]byte("not zstd"))
	assert.Error(t, err)
}

func TestMigrations(t *testing.T) {
	for _, driver := range []string{"sqlite", "postgres"} {
		scripts, err := migrations(driver)
		require.NoError(t, err)
		assert.NotEmpty(t, scripts, driver)
	}
	_, err := migrations("mysql")
	assert.Error(t, err)
}
