package utils

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pw123456", 4)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == "pw123456" {
		t.Error("Hash must not equal the plaintext")
	}

	if !CheckPasswordHash("pw123456", hash) {
		t.Error("Expected hash to verify against the original password")
	}

	if CheckPasswordHash("wrong", hash) {
		t.Error("Expected wrong password to fail verification")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("pw123456", 4)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	h2, err := HashPassword("pw123456", 4)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if h1 == h2 {
		t.Error("Expected distinct digests for the same password")
	}
}

func TestIsBcryptHash(t *testing.T) {
	hash, err := HashPassword("pw123456", 4)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !IsBcryptHash(hash) {
		t.Error("Expected a bcrypt digest to be recognized")
	}

	if IsBcryptHash("pw123456") {
		t.Error("Expected a plaintext password not to be recognized")
	}

	// A 60-character plaintext must not be misclassified by its length.
	long := strings.Repeat("a", 60)
	if IsBcryptHash(long) {
		t.Error("Expected a 60-character plaintext not to be recognized")
	}
}
