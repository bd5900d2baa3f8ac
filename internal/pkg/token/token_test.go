package token

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	secret, digest, err := Generate()
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}
	if secret == "" {
		t.Fatal("Generate() returned empty secret")
	}
	if digest != Hash(secret) {
		t.Errorf("Generate() digest = %q, want Hash(secret) = %q", digest, Hash(secret))
	}
	// base64url alphabet only, safe to embed in a link
	if strings.ContainsAny(secret, "+/=") {
		t.Errorf("secret %q contains non-URL-safe characters", secret)
	}
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		secret, _, err := Generate()
		if err != nil {
			t.Fatalf("Generate() returned error: %v", err)
		}
		if _, dup := seen[secret]; dup {
			t.Fatalf("Generate() produced duplicate secret %q", secret)
		}
		seen[secret] = struct{}{}
	}
}

func TestHashDeterministic(t *testing.T) {
	if Hash("abc") != Hash("abc") {
		t.Error("Hash is not deterministic")
	}
	if Hash("abc") == Hash("abd") {
		t.Error("Hash collides on different inputs")
	}
	if len(Hash("abc")) != 64 {
		t.Errorf("Hash length = %d, want 64 hex characters", len(Hash("abc")))
	}
}
