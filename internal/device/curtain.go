package device

import (
	"time"

	"broadlink/internal/protocol"
)

// Curtain controls a Dooya DT360E curtain motor.
type Curtain struct {
	h *Handle
}

// NewCurtain wraps h as a Dooya curtain motor.
func NewCurtain(h *Handle) *Curtain { return &Curtain{h: h} }

func (c *Curtain) send(magic1, magic2 byte, deadline time.Duration) (byte, error) {
	packet := make([]byte, 16)
	packet[0x00] = 0x09
	packet[0x02] = 0xBB
	packet[0x03] = magic1
	packet[0x04] = magic2
	packet[0x09] = 0xFA
	packet[0x0A] = 0x44

	resp, err := c.h.SendCommand(commandDispatch, packet, deadline)
	if err != nil {
		return 0, err
	}
	if len(resp) < 5 {
		return 0, protocol.NewError(protocol.DataValidation, "curtain response too short", nil)
	}
	return resp[4], nil
}

// Open starts the curtain moving open.
func (c *Curtain) Open(deadline time.Duration) (byte, error) { return c.send(0x01, 0x00, deadline) }

// Close starts the curtain moving closed.
func (c *Curtain) Close(deadline time.Duration) (byte, error) { return c.send(0x02, 0x00, deadline) }

// Stop halts the curtain wherever it currently is.
func (c *Curtain) Stop(deadline time.Duration) (byte, error) { return c.send(0x03, 0x00, deadline) }

// GetPercentage reads the curtain's current open position, 0-100.
func (c *Curtain) GetPercentage(deadline time.Duration) (byte, error) {
	return c.send(0x06, 0x5D, deadline)
}

// SetPercentageAndWait drives the curtain toward newPercentage, polling
// its reported position every 200ms, then stops it once reached. The wait
// has no cancellation hook: it ends when the target is reached or a
// position poll fails, and Stop is sent in either case.
func (c *Curtain) SetPercentageAndWait(newPercentage byte, deadline time.Duration, sleep func(time.Duration)) error {
	current, err := c.GetPercentage(deadline)
	if err != nil {
		return err
	}

	switch {
	case current > newPercentage:
		if _, err := c.Close(deadline); err != nil {
			return err
		}
		for current > newPercentage {
			sleep(200 * time.Millisecond)
			current, err = c.GetPercentage(deadline)
			if err != nil {
				break
			}
		}
	case current < newPercentage:
		if _, err := c.Open(deadline); err != nil {
			return err
		}
		for current < newPercentage {
			sleep(200 * time.Millisecond)
			current, err = c.GetPercentage(deadline)
			if err != nil {
				break
			}
		}
	}

	_, err = c.Stop(deadline)
	return err
}
