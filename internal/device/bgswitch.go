package device

import (
	"encoding/json"
	"time"

	"broadlink/internal/codec"
)

// BGSwitch controls a BG Electrical smart outlet over the JSON-framed
// inner codec.
type BGSwitch struct {
	h *Handle
}

// NewBGSwitch wraps h as a BG1 switch.
func NewBGSwitch(h *Handle) *BGSwitch { return &BGSwitch{h: h} }

// BGState mirrors the fields the device reports and accepts; zero-value
// fields are omitted from outgoing requests.
type BGState struct {
	Pwr             *bool `json:"pwr,omitempty"`
	Pwr1            *bool `json:"pwr1,omitempty"`
	Pwr2            *bool `json:"pwr2,omitempty"`
	MaxWorkTime     *int  `json:"maxworktime,omitempty"`
	MaxWorkTime1    *int  `json:"maxworktime1,omitempty"`
	MaxWorkTime2    *int  `json:"maxworktime2,omitempty"`
	IdcBrightness   *int  `json:"idcbrightness,omitempty"`
}

func (b *BGSwitch) roundTrip(flag byte, body []byte, deadline time.Duration) (map[string]any, error) {
	var c codec.JSONFramed
	wrapped := c.Wrap(flag, body)

	resp, err := b.h.SendCommand(commandDispatch, wrapped, deadline)
	if err != nil {
		return nil, err
	}
	_, js, err := c.Unwrap(resp)
	if err != nil {
		return nil, err
	}
	var state map[string]any
	if err := json.Unmarshal(js, &state); err != nil {
		return nil, err
	}
	return state, nil
}

// GetState returns the device's current reported state.
func (b *BGSwitch) GetState(deadline time.Duration) (map[string]any, error) {
	return b.roundTrip(1, []byte("{}"), deadline)
}

// SetState writes the non-nil fields of state and returns the device's
// resulting reported state.
func (b *BGSwitch) SetState(state BGState, deadline time.Duration) (map[string]any, error) {
	body, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	return b.roundTrip(2, body, deadline)
}
