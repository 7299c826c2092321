package auth

import "testing"

func TestJWT_SignVerifyRoundTrip(t *testing.T) {
	svc := NewJWT("test-secret")

	token, err := svc.Sign(42, "admin")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	id, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.UserID != 42 {
		t.Fatalf("expected user 42, got %d", id.UserID)
	}
	if id.Role != "admin" {
		t.Fatalf("expected role admin, got %q", id.Role)
	}
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	token, err := NewJWT("secret-a").Sign(1, "user")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewJWT("secret-b").Verify(token); err == nil {
		t.Fatalf("expected verification failure across secrets")
	}
}

func TestJWT_GarbageRejected(t *testing.T) {
	svc := NewJWT("test-secret")
	for _, bad := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		if _, err := svc.Verify(bad); err == nil {
			t.Errorf("Verify(%q): expected error", bad)
		}
	}
}
