package session

import (
	"strings"
	"testing"
)

var testSecret = []byte("test-secret-at-least-32-bytes-long")

func TestTokenRoundTrip(t *testing.T) {
	token, err := EncodeToken(testSecret, "abc-123")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	sid, err := DecodeToken(testSecret, token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sid != "abc-123" {
		t.Errorf("session id = %q, want %q", sid, "abc-123")
	}
}

func TestDecodeTokenRejectsWrongSecret(t *testing.T) {
	token, err := EncodeToken(testSecret, "abc-123")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, err := DecodeToken([]byte("some-other-secret-32-bytes-long!"), token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestDecodeTokenRejectsTampering(t *testing.T) {
	token, err := EncodeToken(testSecret, "abc-123")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	if _, err := DecodeToken(testSecret, tampered); err == nil {
		t.Error("expected error for tampered token")
	}
}

func TestDecodeTokenRejectsGarbage(t *testing.T) {
	if _, err := DecodeToken(testSecret, "not-a-token"); err == nil {
		t.Error("expected error for garbage input")
	}
}
