package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "secret1" || hash == "" {
		t.Fatalf("unexpected hash: %q", hash)
	}

	ok, err := VerifyPassword(hash, "secret1")
	if err != nil {
		t.Fatalf("verify password: %v", err)
	}
	if !ok {
		t.Fatalf("expected password to verify")
	}

	ok, err = VerifyPassword(hash, "wrong")
	if err != nil {
		t.Fatalf("verify wrong password: %v", err)
	}
	if ok {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestVerifyPasswordRejectsGarbageHash(t *testing.T) {
	if _, err := VerifyPassword("not-a-bcrypt-hash", "secret1"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}
