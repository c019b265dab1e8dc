package auth

import "testing"

func TestPasswordHashAndMatch(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	match, err := PasswordMatches(hash, "s3cret")
	if err != nil {
		t.Fatalf("PasswordMatches error: %v", err)
	}
	if !match {
		t.Error("correct password must match")
	}
	match, err = PasswordMatches(hash, "wrong")
	if err != nil {
		t.Fatalf("PasswordMatches error: %v", err)
	}
	if match {
		t.Error("wrong password must not match")
	}
}

func TestNewConfirmationCode(t *testing.T) {
	a, err := NewConfirmationCode()
	if err != nil {
		t.Fatalf("NewConfirmationCode error: %v", err)
	}
	if len(a) != 12 {
		t.Errorf("code length = %d, want 12", len(a))
	}
	b, err := NewConfirmationCode()
	if err != nil {
		t.Fatalf("NewConfirmationCode error: %v", err)
	}
	if a == b {
		t.Error("two codes should not collide")
	}
}
