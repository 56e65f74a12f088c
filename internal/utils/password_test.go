package utils

import "testing"

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse battery", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("password stored in plaintext")
	}
	if !VerifyPassword(hash, "correct horse battery") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "wrong password") {
		t.Fatal("wrong password accepted")
	}
}

func TestHashPasswordClampsCost(t *testing.T) {
	// Out-of-range costs fall back to the bcrypt default instead of failing.
	if _, err := HashPassword("pw", 99); err != nil {
		t.Fatalf("cost 99: %v", err)
	}
	if _, err := HashPassword("pw", -1); err != nil {
		t.Fatalf("cost -1: %v", err)
	}
}
