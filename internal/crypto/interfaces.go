package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/sealer_mock.go -package=mock

// Sealer protects credential values at rest. It knows nothing about the
// network, the database or the session. Its only job is turning a plaintext
// value into an opaque string and back.
//
// Layout of a sealed value (base64, standard encoding):
//
//	salt (16 bytes) ‖ nonce (24 bytes) ‖ XChaCha20-Poly1305 ciphertext
//
// The key is derived from the passphrase and the per-value salt with
// Argon2id, so two seals of the same value never produce the same output.
type Sealer interface {
	// Seal encrypts plaintext and returns the encoded blob.
	Seal(plaintext string) (string, error)

	// Open reverses Seal. It returns ErrOpenFailed when the blob is
	// malformed, was sealed under another passphrase or was tampered with.
	Open(sealed string) (string, error)
}
