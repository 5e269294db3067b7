package device

import (
	"encoding/json"
	"testing"

	"broadlink/internal/codec"
)

func TestBGSwitchGetState(t *testing.T) {
	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		var c codec.JSONFramed
		flag, body, err := c.Unwrap(plaintext)
		if err != nil {
			t.Fatalf("Unwrap request: %v", err)
		}
		if flag != 1 {
			t.Errorf("flag = %d, want 1", flag)
		}
		if string(body) != "{}" {
			t.Errorf("body = %q, want {}", body)
		}
		resp, _ := json.Marshal(map[string]any{"pwr": true})
		return 0, c.Wrap(1, resp)
	})

	sw := NewBGSwitch(h)
	state, err := sw.GetState(dl)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if on, _ := state["pwr"].(bool); !on {
		t.Errorf("state = %+v", state)
	}
}

func TestBGSwitchSetState(t *testing.T) {
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
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("unmarshal request body: %v", err)
		}
		if on, _ := req["pwr"].(bool); !on {
			t.Errorf("request = %+v", req)
		}
		resp, _ := json.Marshal(req)
		return 0, c.Wrap(2, resp)
	})

	sw := NewBGSwitch(h)
	on := true
	state, err := sw.SetState(BGState{Pwr: &on}, dl)
	if err != nil {
		t.Fatalf("SetState: %v", err)
	}
	if got, _ := state["pwr"].(bool); !got {
		t.Errorf("state = %+v", state)
	}
}
