package auth

import (
	"bytes"
	"testing"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	t.Parallel()

	salt, digest, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if len(salt) != saltSize {
		t.Fatalf("expected %d-byte salt, got %d", saltSize, len(salt))
	}
	if !VerifyPassword("s3cret", salt, digest) {
		t.Fatalf("expected password to verify")
	}
	if VerifyPassword("wrong", salt, digest) {
		t.Fatalf("expected password mismatch")
	}
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	t.Parallel()

	salt1, digest1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	salt2, digest2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if bytes.Equal(salt1, salt2) {
		t.Fatalf("expected distinct salts")
	}
	if bytes.Equal(digest1, digest2) {
		t.Fatalf("expected distinct digests for distinct salts")
	}
}

func TestVerifyPassword_CrossDigests(t *testing.T) {
	t.Parallel()

	salt1, digest1, _ := HashPassword("one")
	_, digest2, _ := HashPassword("two")

	if VerifyPassword("two", salt1, digest1) {
		t.Fatalf("verify must fail for a different password")
	}
	if VerifyPassword("one", salt1, digest2) {
		t.Fatalf("verify must fail against a foreign digest")
	}
}
