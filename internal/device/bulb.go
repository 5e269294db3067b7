package device

import (
	"encoding/json"
	"time"

	"broadlink/internal/codec"
)

// Bulb controls an LB1/LB27-family smart bulb over the JSON-framed inner
// codec, the same {flag, json} wire shape as BGSwitch and Hub.
type Bulb struct {
	h *Handle
}

// NewBulb wraps h as an LB1/LB27 bulb.
func NewBulb(h *Handle) *Bulb { return &Bulb{h: h} }

// BulbState mirrors the fields the device reports and accepts; nil
// fields are omitted from outgoing SetState requests.
type BulbState struct {
	Pwr                *bool `json:"pwr,omitempty"`
	Red                *int  `json:"red,omitempty"`
	Green              *int  `json:"green,omitempty"`
	Blue               *int  `json:"blue,omitempty"`
	Brightness         *int  `json:"brightness,omitempty"`
	ColorTemp          *int  `json:"colortemp,omitempty"`
	Hue                *int  `json:"hue,omitempty"`
	Saturation         *int  `json:"saturation,omitempty"`
	TransitionDuration *int  `json:"transitionduration,omitempty"`
	MaxWorkTime        *int  `json:"maxworktime,omitempty"`
	BulbColorMode      *int  `json:"bulb_colormode,omitempty"`
}

func (b *Bulb) roundTrip(flag byte, body []byte, deadline time.Duration) (map[string]any, error) {
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

// GetState returns the bulb's current reported state, including its
// color channels, brightness, and scene fields.
func (b *Bulb) GetState(deadline time.Duration) (map[string]any, error) {
	return b.roundTrip(1, []byte("{}"), deadline)
}

// SetState writes the non-nil fields of state and returns the bulb's
// resulting reported state.
func (b *Bulb) SetState(state BulbState, deadline time.Duration) (map[string]any, error) {
	body, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	return b.roundTrip(2, body, deadline)
}
