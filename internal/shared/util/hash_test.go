package util

import "testing"

func TestFingerprintNormalizesWhitespace(t *testing.T) {
	a := Fingerprint("solar farm proposal")
	b := Fingerprint("  solar farm proposal\n")
	if a != b {
		t.Fatalf("expected identical fingerprints for trimmed content, got %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(a))
	}
	for _, ch := range a {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("fingerprint contains non-hex character: %c", ch)
		}
	}
}

func TestShortHashLength(t *testing.T) {
	got := ShortHash([]byte(`{"summary":"x"}`))
	if len(got) != 16 {
		t.Fatalf("expected 16 hex characters, got %d (%s)", len(got), got)
	}
	if got != ShortHash([]byte(`{"summary":"x"}`)) {
		t.Fatalf("expected stable hash")
	}
}

func TestSignHMACStable(t *testing.T) {
	sig := SignHMAC("secret", []byte("payload"))
	if sig != SignHMAC("secret", []byte("payload")) {
		t.Fatalf("expected stable signature")
	}
	if sig == SignHMAC("other", []byte("payload")) {
		t.Fatalf("expected secret to affect signature")
	}
	if len(sig) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(sig))
	}
}
