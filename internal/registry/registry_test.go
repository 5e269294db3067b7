package registry

import "testing"

func TestLookupKnownCode(t *testing.T) {
	e, ok := Lookup(0x2712)
	if !ok {
		t.Fatal("expected 0x2712 to resolve")
	}
	if e.Profile != ProfileRMPro {
		t.Errorf("profile = %v, want %v", e.Profile, ProfileRMPro)
	}
	if e.Model != "RM pro/pro+" {
		t.Errorf("model = %q", e.Model)
	}
}

func TestLookupUnknownCode(t *testing.T) {
	if _, ok := Lookup(0xDEAD); ok {
		t.Error("expected unknown code to miss")
	}
}

func TestSP2CodeDoesNotCarryDeviceTypeOverride(t *testing.T) {
	e, ok := Lookup(0x2728)
	if !ok {
		t.Fatal("expected 0x2728 to resolve")
	}
	if e.Profile != ProfileSP2 {
		t.Errorf("profile = %v, want %v", e.Profile, ProfileSP2)
	}
	if e.DeviceTypeBytes != nil {
		t.Error("expected no device-type byte override for the shared sp2 code")
	}
}
