package device

import (
	"encoding/json"
	"time"

	"broadlink/internal/codec"
)

// MaxHubSubdevices bounds how many subdevices a single Hub will ever
// report, regardless of what it claims its total is.
const MaxHubSubdevices = 8

// Hub controls a Broadlink S3 smart hub and its attached subdevices.
// It shares the JSON-framed wire codec with BGSwitch: the S3's real
// firmware checksums the whole frame under a different seed, but every
// hub and switch in this family exposes the same {flag, json} semantics,
// so treating them as one wire format keeps one decoder instead of two
// near-identical ones.
type Hub struct {
	h *Handle
}

// NewHub wraps h as an S3 hub.
func NewHub(h *Handle) *Hub { return &Hub{h: h} }

func (hb *Hub) roundTrip(flag byte, state map[string]any, deadline time.Duration) (map[string]any, error) {
	body, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	var c codec.JSONFramed
	wrapped := c.Wrap(flag, body)

	resp, err := hb.h.SendCommand(commandDispatch, wrapped, deadline)
	if err != nil {
		return nil, err
	}
	_, js, err := c.Unwrap(resp)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(js, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Subdevice is one entry of a hub's reported device list.
type Subdevice struct {
	DID  string
	Data map[string]any
}

// GetSubdevices pages through the hub's subdevice list step entries at a
// time, deduplicating by did, until the hub's reported total is covered
// or MaxHubSubdevices is reached.
func (hb *Hub) GetSubdevices(step int, deadline time.Duration) ([]Subdevice, error) {
	seen := make(map[string]bool)
	var result []Subdevice

	total := MaxHubSubdevices
	for index := 0; index < total; index += step {
		resp, err := hb.roundTrip(14, map[string]any{"count": step, "index": index}, deadline)
		if err != nil {
			return nil, err
		}

		list, _ := resp["list"].([]any)
		for _, entry := range list {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			did, _ := m["did"].(string)
			if did == "" || seen[did] {
				continue
			}
			seen[did] = true
			result = append(result, Subdevice{DID: did, Data: m})
		}

		if reportedTotal, ok := resp["total"].(float64); ok {
			total = int(reportedTotal)
			if total > MaxHubSubdevices {
				total = MaxHubSubdevices
			}
		}
		if len(seen) >= total {
			break
		}
	}
	return result, nil
}

// GetState returns the hub's own power state, or a subdevice's state
// when did is non-empty.
func (hb *Hub) GetState(did string, deadline time.Duration) (map[string]any, error) {
	state := map[string]any{}
	if did != "" {
		state["did"] = did
	}
	return hb.roundTrip(1, state, deadline)
}

// SetStateRequest names the socket(s) to toggle on a hub or subdevice.
// Nil fields are left untouched.
type SetStateRequest struct {
	DID  string
	Pwr1 *bool
	Pwr2 *bool
	Pwr3 *bool
}

// SetState writes the non-nil socket fields of req and returns the
// resulting reported state.
func (hb *Hub) SetState(req SetStateRequest, deadline time.Duration) (map[string]any, error) {
	state := map[string]any{}
	if req.DID != "" {
		state["did"] = req.DID
	}
	if req.Pwr1 != nil {
		state["pwr1"] = boolToInt(*req.Pwr1)
	}
	if req.Pwr2 != nil {
		state["pwr2"] = boolToInt(*req.Pwr2)
	}
	if req.Pwr3 != nil {
		state["pwr3"] = boolToInt(*req.Pwr3)
	}
	return hb.roundTrip(2, state, deadline)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
