package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	phc, err := HashPassword("correct horse battery staple", DefaultArgonParams())
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(phc, "$argon2id$v=19$") {
		t.Fatalf("unexpected PHC prefix: %s", phc)
	}
	if !VerifyPassword("correct horse battery staple", phc) {
		t.Error("correct password should verify")
	}
	if VerifyPassword("wrong password", phc) {
		t.Error("wrong password should not verify")
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	if _, err := HashPassword("   ", DefaultArgonParams()); err == nil {
		t.Error("expected error for blank password")
	}
}

func TestHashPasswordSaltedPerCall(t *testing.T) {
	a, err := HashPassword("samepassword", DefaultArgonParams())
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashPassword("samepassword", DefaultArgonParams())
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two hashes of the same password should differ (random salt)")
	}
}

func TestVerifyPasswordMalformedPHC(t *testing.T) {
	for _, phc := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$not-base64!$aGFzaA",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
	} {
		if VerifyPassword("anything", phc) {
			t.Errorf("malformed PHC %q should not verify", phc)
		}
	}
}
