package security

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	password := "testPassword123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if hash == password {
		t.Error("hash should not equal plaintext password")
	}

	if !CheckPassword(password, hash) {
		t.Error("CheckPassword() should accept the correct password")
	}
	if CheckPassword("wrongPassword", hash) {
		t.Error("CheckPassword() should reject an incorrect password")
	}
}

func TestGenerateSessionID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := GenerateSessionID()
		if id == "" {
			t.Fatal("GenerateSessionID() returned empty string")
		}
		if seen[id] {
			t.Errorf("duplicate session id generated: %s", id)
		}
		seen[id] = true
	}
}
