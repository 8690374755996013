package crypto

import (
	"encoding/base64"
	"errors"
	"testing"
)

func newTestSealer(t *testing.T, passphrase string) *sealer {
	t.Helper()
	s, err := NewSealer(passphrase)
	if err != nil {
		t.Fatalf("NewSealer error: %v", err)
	}
	impl := s.(*sealer)
	impl.argonMemory = 8 * 1024
	impl.argonThreads = 1
	return impl
}

func TestNewSealer_EmptyPassphrase(t *testing.T) {
	if _, err := NewSealer(""); !errors.Is(err, ErrEmptyPassphrase) {
		t.Fatalf("expected ErrEmptyPassphrase, got %v", err)
	}
}

func TestNewSealer_DefaultParams(t *testing.T) {
	s, err := NewSealer("pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	impl := s.(*sealer)
	if impl.argonTime != 1 || impl.argonMemory != 64*1024 || impl.argonThreads != 4 {
		t.Fatalf("unexpected argon params: %+v", impl)
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	s := newTestSealer(t, "correct horse battery staple")

	for _, plain := range []string{"", "eyJhbGciOi.token.sig", `{"id":5,"username":"alice"}`} {
		sealed, err := s.Seal(plain)
		if err != nil {
			t.Fatalf("Seal(%q) error: %v", plain, err)
		}
		if plain != "" && sealed == plain {
			t.Fatalf("sealed value equals plaintext")
		}

		got, err := s.Open(sealed)
		if err != nil {
			t.Fatalf("Open error: %v", err)
		}
		if got != plain {
			t.Fatalf("Open = %q, want %q", got, plain)
		}
	}
}

func TestSeal_RandomizedOutput(t *testing.T) {
	s := newTestSealer(t, "pass")

	a, err := s.Seal("token")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	b, err := s.Seal("token")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	if a == b {
		t.Fatal("expected two seals of the same value to differ")
	}
}

func TestOpen_WrongPassphrase(t *testing.T) {
	sealed, err := newTestSealer(t, "right").Seal("token")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	_, err = newTestSealer(t, "wrong").Open(sealed)
	if !errors.Is(err, ErrOpenFailed) {
		t.Fatalf("expected ErrOpenFailed, got %v", err)
	}
}

func TestOpen_Tampered(t *testing.T) {
	s := newTestSealer(t, "pass")
	sealed, err := s.Seal("token")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	blob, _ := base64.StdEncoding.DecodeString(sealed)
	blob[len(blob)-1] ^= 0xFF

	if _, err := s.Open(base64.StdEncoding.EncodeToString(blob)); !errors.Is(err, ErrOpenFailed) {
		t.Fatalf("expected ErrOpenFailed, got %v", err)
	}
}

func TestOpen_Malformed(t *testing.T) {
	s := newTestSealer(t, "pass")

	tests := []string{"%%%not-base64", base64.StdEncoding.EncodeToString([]byte("short"))}
	for _, in := range tests {
		if _, err := s.Open(in); !errors.Is(err, ErrOpenFailed) {
			t.Fatalf("Open(%q): expected ErrOpenFailed, got %v", in, err)
		}
	}
}
