package passwords_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/accounthub/internal/app/system/passwords"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := passwords.Hash("Password@123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", hash)
	}
	if hash == "Password@123" {
		t.Error("hash must not equal the plaintext")
	}

	if !passwords.Verify("Password@123", hash) {
		t.Error("expected correct password to verify")
	}
	if passwords.Verify("wrong-password", hash) {
		t.Error("expected wrong password to fail verification")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	h1, err := passwords.Hash("Password@123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	h2, err := passwords.Hash("Password@123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if h1 == h2 {
		t.Error("expected distinct hashes for the same password (random salt)")
	}
}

func TestVerify_GarbageHash(t *testing.T) {
	if passwords.Verify("Password@123", "not-a-bcrypt-hash") {
		t.Error("expected verification against garbage hash to fail")
	}
}
