package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (OTPStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewOTPStore(client), mr
}

func TestOTPStore_SetGet(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "9876543210", "hashed", 5*time.Minute))

	got, err := store.Get(ctx, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "hashed", got)
	assert.Equal(t, 5*time.Minute, mr.TTL(otpKey("9876543210")))
}

func TestOTPStore_Miss(t *testing.T) {
	store, _ := setupTestRedis(t)

	_, err := store.Get(context.Background(), "9876543210")
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestOTPStore_Expires(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "9876543210", "hashed", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "9876543210")
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestOTPStore_Delete(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "9876543210", "hashed", time.Minute))
	require.NoError(t, store.Delete(ctx, "9876543210"))

	_, err := store.Get(ctx, "9876543210")
	assert.ErrorIs(t, err, ErrOTPNotFound)

	// deleting a missing key is fine
	assert.NoError(t, store.Delete(ctx, "9876543210"))
}

func TestOTPStore_RedisDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	store := NewOTPStore(client)
	mr.Close()

	_, err = store.Get(context.Background(), "9876543210")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrOTPNotFound)
}
