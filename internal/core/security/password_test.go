package security

import (
	"strings"
	"testing"
)

func testHasher() *Hasher {
	// Minimal cost so the suite stays fast; verification reads parameters
	// from the digest, not from the hasher.
	return NewHasher(HashParams{Time: 1, Memory: 8 * 1024, Parallelism: 1})
}

func TestHasher_RoundTrip(t *testing.T) {
	h := testHasher()

	digest, err := h.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !strings.HasPrefix(digest, "$argon2id$") {
		t.Fatalf("unexpected digest format: %s", digest)
	}

	ok, err := h.Verify("s3cret-pass", digest)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected password to verify")
	}
}

func TestHasher_WrongPassword(t *testing.T) {
	h := testHasher()

	digest, err := h.Hash("correct")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	ok, err := h.Verify("incorrect", digest)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if ok {
		t.Fatalf("wrong password must not verify")
	}
}

func TestHasher_SaltedDigestsDiffer(t *testing.T) {
	h := testHasher()

	first, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password must differ")
	}

	for _, digest := range []string{first, second} {
		ok, err := h.Verify("same-password", digest)
		if err != nil || !ok {
			t.Fatalf("digest %q failed to verify: ok=%v err=%v", digest, ok, err)
		}
	}
}

func TestHasher_VerifyUsesEmbeddedParams(t *testing.T) {
	digest, err := testHasher().Hash("portable")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	// A hasher configured with different costs must still verify a digest
	// produced under the old parameters.
	other := NewHasher(HashParams{Time: 2, Memory: 16 * 1024, Parallelism: 2})
	ok, err := other.Verify("portable", digest)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !ok {
		t.Fatalf("digest with embedded params must verify under any hasher config")
	}
}

func TestHasher_MalformedDigest(t *testing.T) {
	h := testHasher()

	cases := []string{
		"",
		"plaintext",
		"$2a$10$bcryptstylehash",
		"$argon2id$v=19$m=8192,t=1,p=1$notbase64!!$notbase64!!",
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdA",
	}
	for _, digest := range cases {
		if _, err := h.Verify("whatever", digest); err != ErrMalformedDigest {
			t.Fatalf("digest %q: expected ErrMalformedDigest, got %v", digest, err)
		}
	}
}
