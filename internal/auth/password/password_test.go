package password

import (
	"strings"
	"testing"
)

func TestHashVerify(t *testing.T) {
	encoded, err := Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$m=65536,t=1,p=4$") {
		t.Fatalf("unexpected encoding %q", encoded)
	}
	if !Verify("s3cret-pass", encoded) {
		t.Fatal("expected password to verify")
	}
	if Verify("other", encoded) {
		t.Fatal("expected wrong password to fail")
	}
}

func TestHashUsesFreshSalt(t *testing.T) {
	a, _ := Hash("same")
	b, _ := Hash("same")
	if a == b {
		t.Fatal("expected distinct hashes for the same password")
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	for _, encoded := range []string{
		"",
		"$bcrypt$whatever",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=0,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!",
	} {
		if Verify("pw", encoded) {
			t.Fatalf("expected %q to be rejected", encoded)
		}
	}
}

func TestNeedsRehash(t *testing.T) {
	current, _ := Hash("pw")
	if NeedsRehash(current) {
		t.Fatal("fresh hash should not need a rehash")
	}
	if !NeedsRehash("$argon2id$v=19$m=32768,t=2,p=2$c2FsdHNhbHQ$a2V5a2V5") {
		t.Fatal("weaker params should need a rehash")
	}
	if !NeedsRehash("garbage") {
		t.Fatal("malformed hash should need a rehash")
	}
}
