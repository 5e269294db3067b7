package device

import (
	"encoding/hex"
	"strings"
	"time"

	"broadlink/internal/protocol"
)

// Alarm controls a Broadlink S1C security hub and its paired sensors.
type Alarm struct {
	h *Handle
}

// NewAlarm wraps h as an S1C alarm hub.
func NewAlarm(h *Handle) *Alarm { return &Alarm{h: h} }

// alarmSensorTypes maps the sensor-type byte reported at offset 3 of
// each sensor record to a human-readable label.
var alarmSensorTypes = map[byte]string{
	0x31: "Door Sensor",
	0x91: "Key Fob",
	0x21: "Motion Sensor",
}

// Sensor is one paired sensor's last-reported status.
type Sensor struct {
	Status byte
	Name   string
	Type   string
	Order  byte
	Serial string
}

// SensorsStatus is the hub's full paired-sensor report.
type SensorsStatus struct {
	Count   byte
	Sensors []Sensor
}

// GetSensorsStatus reads the status of every sensor paired with the hub.
func (a *Alarm) GetSensorsStatus(deadline time.Duration) (SensorsStatus, error) {
	packet := make([]byte, 16)
	packet[0] = 0x06

	resp, err := a.h.SendCommand(commandDispatch, packet, deadline)
	if err != nil {
		return SensorsStatus{}, err
	}
	if len(resp) < 6 {
		return SensorsStatus{}, protocol.NewError(protocol.DataValidation, "alarm sensors response too short", nil)
	}

	count := resp[0x04]
	records := resp[0x06:]

	const recordSize = 83
	status := SensorsStatus{Count: count}
	for i := 0; i+recordSize <= len(records); i += recordSize {
		record := records[i : i+recordSize]
		serial := hex.EncodeToString(record[26:30])
		if serial == "00000000" {
			continue
		}
		status.Sensors = append(status.Sensors, Sensor{
			Status: record[0],
			Order:  record[1],
			Type:   alarmSensorTypeName(record[3]),
			Name:   strings.TrimRight(string(record[4:26]), "\x00"),
			Serial: serial,
		})
	}
	return status, nil
}

func alarmSensorTypeName(t byte) string {
	if name, ok := alarmSensorTypes[t]; ok {
		return name
	}
	return "Unknown"
}
