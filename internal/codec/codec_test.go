package codec

import "testing"

func TestRawRoundTrip(t *testing.T) {
	var c Raw
	body := []byte{0x01, 0x02, 0x03}
	wrapped := c.Wrap(0x02, body)
	got, err := c.Unwrap(wrapped)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if string(got) != string(body) {
		t.Errorf("got %v, want %v", got, body)
	}
}

func TestRawUnwrapRejectsShortFrame(t *testing.T) {
	var c Raw
	if _, err := c.Unwrap([]byte{0x01, 0x02}); err == nil {
		t.Error("expected error")
	}
}

func TestLengthPrefixedRoundTrip(t *testing.T) {
	var c LengthPrefixed
	body := []byte("ir-learning-code")
	wrapped := c.Wrap(0x02, body)
	got, err := c.Unwrap(wrapped)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if string(got) != string(body) {
		t.Errorf("got %q, want %q", got, body)
	}
}

func TestLengthPrefixedRejectsOutOfRange(t *testing.T) {
	var c LengthPrefixed
	bad := []byte{0xFF, 0xFF, 0, 0, 0, 0}
	if _, err := c.Unwrap(bad); err == nil {
		t.Error("expected error for out-of-range length")
	}
}

func TestCRCFramedRoundTrip(t *testing.T) {
	var c CRCFramed
	body := []byte{0x01, 0x03, 0x00, 0x00, 0x00, 0x16}
	wrapped := c.Wrap(body)
	got, err := c.Unwrap(wrapped)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if string(got) != string(body) {
		t.Errorf("got %v, want %v", got, body)
	}
}

func TestCRCFramedDetectsCorruption(t *testing.T) {
	var c CRCFramed
	wrapped := c.Wrap([]byte{0x01, 0x02, 0x03})
	wrapped[2] ^= 0xFF // flip a body byte
	if _, err := c.Unwrap(wrapped); err == nil {
		t.Error("expected checksum mismatch error")
	}
}

func TestJSONFramedRoundTrip(t *testing.T) {
	var c JSONFramed
	payload := []byte(`{"pwr":1,"brightness":80}`)
	wrapped := c.Wrap(0x02, payload)

	flag, got, err := c.Unwrap(wrapped)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if flag != 0x02 {
		t.Errorf("flag = %#02x, want 0x02", flag)
	}
	if string(got) != string(payload) {
		t.Errorf("json = %q, want %q", got, payload)
	}
}

func TestJSONFramedDetectsCorruption(t *testing.T) {
	var c JSONFramed
	wrapped := c.Wrap(0x01, []byte(`{"pwr":0}`))
	wrapped[len(wrapped)-1] ^= 0xFF
	if _, _, err := c.Unwrap(wrapped); err == nil {
		t.Error("expected checksum mismatch error")
	}
}

func TestDoubleFramedRoundTrip(t *testing.T) {
	var c DoubleFramed
	prefix := []byte{((0x01 << 4) | 1), 0x01}
	data := append(append([]byte{}, prefix...), 0x00, 0x00, 0x00)

	wrapped := c.Wrap(data)
	got, err := c.Unwrap(wrapped)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("got %v, want %v", got, data)
	}
}

func TestDoubleFramedDetectsCorruption(t *testing.T) {
	var c DoubleFramed
	wrapped := c.Wrap([]byte{0x11, 0x01, 0x00})
	wrapped[3] ^= 0xFF
	if _, err := c.Unwrap(wrapped); err == nil {
		t.Error("expected checksum mismatch error")
	}
}
