package store

import (
	"context"

	"github.com/MKhiriev/go-chat-client/internal/crypto"
)

// sealedCredentialRepository encrypts values on the way into the wrapped
// repository and decrypts them on the way out.
type sealedCredentialRepository struct {
	CredentialRepository
	sealer crypto.Sealer
}

// NewSealedCredentialRepository wraps next so that every persisted value is
// sealed with s.
func NewSealedCredentialRepository(next CredentialRepository, s crypto.Sealer) CredentialRepository {
	return &sealedCredentialRepository{CredentialRepository: next, sealer: s}
}

func (r *sealedCredentialRepository) Put(ctx context.Context, key, value string) error {
	sealed, err := r.sealer.Seal(value)
	if err != nil {
		return err
	}
	return r.CredentialRepository.Put(ctx, key, sealed)
}

func (r *sealedCredentialRepository) Get(ctx context.Context, key string) (string, error) {
	sealed, err := r.CredentialRepository.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return r.sealer.Open(sealed)
}
