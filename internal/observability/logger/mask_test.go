package logger

import (
	"net/http"
	"testing"
)

func TestMaskAuthorization(t *testing.T) {
	got := MaskAuthorization("Bearer abcdef1234")
	want := "Bearer ****1234"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMaskHeadersHidesSignature(t *testing.T) {
	headers := http.Header{}
	headers.Set("X-Signature-Ed25519", "deadbeefcafe0123")
	headers.Set("X-Signature-Timestamp", "1700000000")

	masked := MaskHeaders(headers)
	if masked["X-Signature-Ed25519"] != "****0123" {
		t.Fatalf("expected masked signature, got %q", masked["X-Signature-Ed25519"])
	}
	if masked["X-Signature-Timestamp"] != "1700000000" {
		t.Fatalf("timestamp is not secret, got %q", masked["X-Signature-Timestamp"])
	}
}

func TestMaskJSON(t *testing.T) {
	input := map[string]any{
		"password": "hunter2",
		"token":    "abc12345",
		"nested": map[string]any{
			"public_key": "key_12345678",
		},
	}
	masked := MaskJSON(input)
	if masked["password"] != "****ter2" {
		t.Fatalf("expected masked password, got %v", masked["password"])
	}
	if masked["token"] != "****2345" {
		t.Fatalf("expected masked token, got %v", masked["token"])
	}
	nested, ok := masked["nested"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map")
	}
	if nested["public_key"] != "****5678" {
		t.Fatalf("expected masked public_key, got %v", nested["public_key"])
	}
}
