package safe_random

import (
	"encoding/hex"
	"math/big"
	"regexp"
	"testing"
)

func TestGenerateRandomBytes(t *testing.T) {
	n := 32
	b, err := GenerateRandomBytes(n)
	if err != nil {
		t.Fatalf("GenerateRandomBytes failed: %v", err)
	}
	if len(b) != n {
		t.Errorf("GenerateRandomBytes returned %d bytes, want %d", len(b), n)
	}

	// All-zero output is astronomically unlikely from a working CSPRNG.
	allZero := true
	for _, v := range b {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Error("GenerateRandomBytes returned all zeros")
	}
}

func TestGenerateRandomHexString(t *testing.T) {
	n := 16
	s, err := GenerateRandomHexString(n)
	if err != nil {
		t.Fatalf("GenerateRandomHexString failed: %v", err)
	}

	decoded, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("could not decode hex string: %v", err)
	}

	if len(decoded) != n {
		t.Errorf("GenerateRandomHexString underlying length = %d, want %d", len(decoded), n)
	}
}

func TestGenerateRandomInt(t *testing.T) {
	max := big.NewInt(100)
	for i := 0; i < 100; i++ {
		n, err := GenerateRandomInt(max)
		if err != nil {
			t.Fatalf("GenerateRandomInt failed: %v", err)
		}
		if n.Cmp(big.NewInt(0)) < 0 || n.Cmp(max) >= 0 {
			t.Errorf("GenerateRandomInt returned %v, out of range [0, %v)", n, max)
		}
	}
}

func TestGenerateRandomDigits(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 200; i++ {
		s, err := GenerateRandomDigits(6)
		if err != nil {
			t.Fatalf("GenerateRandomDigits failed: %v", err)
		}
		if !pattern.MatchString(s) {
			t.Fatalf("GenerateRandomDigits returned %q, want 6 ASCII digits", s)
		}
	}

	if _, err := GenerateRandomDigits(0); err == nil {
		t.Error("GenerateRandomDigits(0) should fail")
	}
}
