package device

import (
	"encoding/json"
	"testing"

	"broadlink/internal/codec"
)

func TestHubGetSubdevicesDedupesAcrossPages(t *testing.T) {
	page := 0
	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		var c codec.JSONFramed
		flag, body, err := c.Unwrap(plaintext)
		if err != nil {
			t.Fatalf("Unwrap request: %v", err)
		}
		if flag != 14 {
			t.Errorf("flag = %d, want 14", flag)
		}
		var req map[string]any
		json.Unmarshal(body, &req)

		var resp map[string]any
		if page == 0 {
			resp = map[string]any{
				"total": float64(3),
				"list": []any{
					map[string]any{"did": "a"},
					map[string]any{"did": "b"},
				},
			}
		} else {
			resp = map[string]any{
				"total": float64(3),
				"list": []any{
					map[string]any{"did": "b"}, // duplicate, should be skipped
					map[string]any{"did": "c"},
				},
			}
		}
		page++
		respBody, _ := json.Marshal(resp)
		return 0, c.Wrap(14, respBody)
	})

	hub := NewHub(h)
	subs, err := hub.GetSubdevices(2, dl)
	if err != nil {
		t.Fatalf("GetSubdevices: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("got %d subdevices, want 3: %+v", len(subs), subs)
	}
}

func TestHubSetState(t *testing.T) {
	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		var c codec.JSONFramed
		flag, body, err := c.Unwrap(plaintext)
		if err != nil {
			t.Fatalf("Unwrap request: %v", err)
		}
		if flag != 2 {
			t.Errorf("flag = %d, want 2", flag)
		}
		var req map[string]any
		json.Unmarshal(body, &req)
		if req["did"] != "dev1" {
			t.Errorf("did = %v", req["did"])
		}
		if pwr1, _ := req["pwr1"].(float64); pwr1 != 1 {
			t.Errorf("pwr1 = %v", req["pwr1"])
		}
		respBody, _ := json.Marshal(req)
		return 0, c.Wrap(2, respBody)
	})

	hub := NewHub(h)
	on := true
	_, err := hub.SetState(SetStateRequest{DID: "dev1", Pwr1: &on}, dl)
	if err != nil {
		t.Fatalf("SetState: %v", err)
	}
}
