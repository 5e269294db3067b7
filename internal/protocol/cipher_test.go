package protocol

import "testing"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	engine := NewCipherEngine()
	plaintext := PadPKCS0([]byte("hello broadlink!"))

	ciphertext, err := engine.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	decrypted, err := engine.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if string(decrypted) != string(plaintext) {
		t.Errorf("round trip mismatch: got %q, want %q", decrypted, plaintext)
	}
}

func TestEncryptRejectsUnalignedLength(t *testing.T) {
	engine := NewCipherEngine()
	if _, err := engine.Encrypt([]byte("not 16 bytes")); err == nil {
		t.Error("expected error for unaligned plaintext length")
	}
}

func TestSetKeyRejectsBadLength(t *testing.T) {
	engine := NewCipherEngine()
	if err := engine.SetKey([]byte{0x01, 0x02, 0x03}); err == nil {
		t.Error("expected error for non-multiple-of-16 key")
	}
}

func TestSetKeyReplacesBootstrap(t *testing.T) {
	engine := NewCipherEngine()
	newKey := make([]byte, 16)
	for i := range newKey {
		newKey[i] = 0x11
	}
	if err := engine.SetKey(newKey); err != nil {
		t.Fatalf("SetKey: %v", err)
	}
	if string(engine.Key()) != string(newKey) {
		t.Error("key was not replaced")
	}
}

func TestPadPKCS0(t *testing.T) {
	got := PadPKCS0([]byte{1, 2, 3})
	if len(got) != 16 {
		t.Fatalf("padded length = %d, want 16", len(got))
	}
	for i := 3; i < 16; i++ {
		if got[i] != 0 {
			t.Errorf("pad byte %d = %#02x, want 0", i, got[i])
		}
	}

	aligned := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	if got := PadPKCS0(aligned); len(got) != 16 {
		t.Errorf("already-aligned input got padded to %d bytes", len(got))
	}
}
