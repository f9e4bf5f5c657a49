package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/invoicely-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewIdempotencyRepository(db)
	ctx := context.Background()

	got, err := repo.GetByKey(ctx, "k1", "POST /api/v1/invoices")
	require.NoError(t, err)
	assert.Nil(t, got)

	expired := &entity.IdempotencyKey{
		Key:          "k1",
		Endpoint:     "POST /api/v1/invoices",
		ResponseCode: 201,
		ResponseBody: `{"old":true}`,
		ExpiresAt:    time.Now().Add(-time.Minute),
	}
	require.NoError(t, repo.Save(ctx, expired))

	fresh := &entity.IdempotencyKey{
		Key:          "k1",
		Endpoint:     "POST /api/v1/invoices",
		ResponseCode: 201,
		ResponseBody: `{"old":false}`,
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Save(ctx, fresh))

	got, err = repo.GetByKey(ctx, "k1", "POST /api/v1/invoices")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"old":false}`, got.ResponseBody)
	assert.False(t, got.IsExpired())

	other, err := repo.GetByKey(ctx, "k1", "POST /api/v1/receipts")
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, repo.Save(ctx, &entity.IdempotencyKey{
		Key: "k2", Endpoint: "POST /api/v1/receipts", ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, repo.DeleteExpired(ctx))
	assert.Equal(t, int64(1), countRows(t, db, &entity.IdempotencyKey{}))
}
