package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-chat-client/internal/crypto"
)

func TestSealedCredentialRepository_RoundTrip(t *testing.T) {
	inner := newMemRepository()
	sealer, err := crypto.NewSealer("passphrase")
	require.NoError(t, err)
	repo := NewSealedCredentialRepository(inner, sealer)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, KeyAccessToken, "tok1"))

	assert.NotEqual(t, "tok1", inner.values[KeyAccessToken])

	got, err := repo.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "tok1", got)

	require.NoError(t, repo.Delete(ctx, KeyAccessToken))
	_, err = repo.Get(ctx, KeyAccessToken)
	assert.ErrorIs(t, err, ErrCredentialNotFound)
}

func TestSealedCredentialRepository_WrongPassphrase(t *testing.T) {
	inner := newMemRepository()
	right, err := crypto.NewSealer("right")
	require.NoError(t, err)
	wrong, err := crypto.NewSealer("wrong")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, NewSealedCredentialRepository(inner, right).Put(ctx, KeyAccessToken, "tok1"))

	_, err = NewSealedCredentialRepository(inner, wrong).Get(ctx, KeyAccessToken)
	assert.ErrorIs(t, err, crypto.ErrOpenFailed)
}
