package secretbox

import (
	"errors"
	"strings"
	"testing"
)

func testKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestNewSymmetric(t *testing.T) {
	codec, err := NewSymmetric(testKey())
	if err != nil {
		t.Fatalf("unexpected error with valid key: %v", err)
	}
	if codec == nil {
		t.Fatal("expected non-nil codec")
	}

	// Only 256-bit keys are accepted
	for _, size := range []int{0, 15, 16, 24, 31, 33} {
		if _, err := NewSymmetric(make([]byte, size)); err == nil {
			t.Errorf("expected error with %d-byte key", size)
		}
	}
}

func TestSymmetricRoundTrip(t *testing.T) {
	codec, err := NewSymmetric(testKey())
	if err != nil {
		t.Fatalf("failed to create codec: %v", err)
	}

	tests := []struct {
		name  string
		scope string
		plain string
	}{
		{name: "simple secret", scope: "cred-1", plain: "Sunrise!2024"},
		{name: "empty secret", scope: "cred-1", plain: ""},
		{name: "non-ascii", scope: "cred-2", plain: "pässwörd-日本語-🔑"},
		{name: "long secret", scope: "cred-3", plain: strings.Repeat("x", 10000)},
		{name: "empty scope", scope: "", plain: "value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored, err := codec.Encode(tt.scope, tt.plain)
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}

			if tt.plain == "" {
				if stored != "" {
					t.Errorf("empty secret should encode to empty stored value, got %q", stored)
				}
			} else if stored == tt.plain {
				t.Error("stored value should differ from plaintext")
			}

			decoded, err := codec.Decode(tt.scope, stored)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if decoded != tt.plain {
				t.Errorf("round trip mismatch: got %q, want %q", decoded, tt.plain)
			}
		})
	}
}

func TestSymmetricDecodeWrongScope(t *testing.T) {
	codec, _ := NewSymmetric(testKey())

	stored, err := codec.Encode("cred-1", "secret data")
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	_, err = codec.Decode("cred-2", stored)
	if err == nil {
		t.Fatal("expected decode under a different scope to fail")
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("expected *DecodeError, got %T", err)
	}
	if decodeErr.Scope != "cred-2" {
		t.Errorf("expected scope cred-2 in error, got %q", decodeErr.Scope)
	}
}

func TestSymmetricDecodeMalformed(t *testing.T) {
	codec, _ := NewSymmetric(testKey())

	tests := []struct {
		name   string
		stored string
	}{
		{name: "not base64", stored: "%%% not base64 %%%"},
		{name: "too short", stored: "QQ=="},
		{name: "wrong magic", stored: "WHJhbmRvbS1ub25zZW5zZS1sb25nLWVub3VnaC10by1wYXNz"},
		{name: "truncated ciphertext", stored: "U0FBQUFBQUFBQUFBQUFBQQ=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode("scope", tt.stored)
			if err == nil {
				t.Fatal("expected decode error")
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Errorf("expected *DecodeError, got %T", err)
			}
		})
	}
}

func TestSymmetricLegacyFallback(t *testing.T) {
	codec, _ := NewSymmetric(testKey())
	withFallback := codec.WithLegacyFallback(Base64Codec{})

	// A value written by the legacy base64 store
	legacy, err := Base64Codec{}.Encode("ignored", "old-wifi-password")
	if err != nil {
		t.Fatalf("legacy encode failed: %v", err)
	}

	decoded, err := withFallback.Decode("cred-1", legacy)
	if err != nil {
		t.Fatalf("fallback decode failed: %v", err)
	}
	if decoded != "old-wifi-password" {
		t.Errorf("got %q, want old-wifi-password", decoded)
	}

	// Without the fallback the same value is rejected
	if _, err := codec.Decode("cred-1", legacy); err == nil {
		t.Error("expected decode without fallback to fail")
	}

	// Fallback must not weaken decoding of packed values
	stored, _ := withFallback.Encode("cred-1", "new-secret")
	decoded, err = withFallback.Decode("cred-1", stored)
	if err != nil || decoded != "new-secret" {
		t.Errorf("packed decode through fallback codec: got %q, %v", decoded, err)
	}
}

func TestBase64CodecRoundTrip(t *testing.T) {
	codec := Base64Codec{}

	for _, plain := range []string{"", "guest", "Sunrise!2024", "ünïcode ✓"} {
		stored, err := codec.Encode("s", plain)
		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}
		decoded, err := codec.Decode("s", stored)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if decoded != plain {
			t.Errorf("round trip mismatch: got %q, want %q", decoded, plain)
		}
	}

	if _, err := codec.Decode("s", "!!!"); err == nil {
		t.Error("expected error decoding malformed base64")
	}
}
