package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ayo6706/loan-origination/internal/models"
	"github.com/ayo6706/loan-origination/internal/repository"
	"github.com/stretchr/testify/require"
)

// raw encodes v as it would appear inside a request body.
func raw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func merchantInput(t *testing.T, name string, min, max any, prequal any) MerchantConfigInput {
	t.Helper()
	return MerchantConfigInput{
		Name:              raw(t, name),
		MinimumLoanAmount: raw(t, min),
		MaximumLoanAmount: raw(t, max),
		PrequalEnabled:    raw(t, prequal),
	}
}

// setupStore returns an empty store holding Zelda's configuration as merchant 1.
func setupStore(t *testing.T) (*repository.Store, *models.MerchantConfiguration) {
	t.Helper()
	ctx := context.Background()
	store := repository.NewStore()
	require.NoError(t, store.Init(ctx))
	t.Cleanup(func() { _ = store.Close() })

	svc := NewMerchantConfigService(store)
	m, err := svc.Create(ctx, merchantInput(t, "Zelda's Stationary", 100, 3000, false))
	require.NoError(t, err)
	require.Equal(t, int64(1), m.MerchantID)
	return store, m
}
