package device

import (
	"time"

	"broadlink/internal/codec"
	"broadlink/internal/protocol"
)

// AirSensor controls a Broadlink A1 environmental sensor.
type AirSensor struct {
	h *Handle
}

// NewAirSensor wraps h as an A1 sensor.
func NewAirSensor(h *Handle) *AirSensor { return &AirSensor{h: h} }

// SensorReadings holds the A1's raw numeric and ordinal sensor values.
type SensorReadings struct {
	TemperatureC float64
	HumidityPct  float64
	Light        byte
	AirQuality   byte
	Noise        byte
}

var lightLevels = [...]string{"dark", "dim", "normal", "bright"}
var airQualityLevels = [...]string{"excellent", "good", "normal", "bad"}
var noiseLevels = [...]string{"quiet", "normal", "noisy"}

func levelName(levels []string, ordinal byte) string {
	if int(ordinal) >= len(levels) {
		return "unknown"
	}
	return levels[ordinal]
}

// CheckSensorsRaw reads the raw numeric/ordinal sensor values.
func (a *AirSensor) CheckSensorsRaw(deadline time.Duration) (SensorReadings, error) {
	var c codec.Raw
	wrapped := c.Wrap(0x01, nil)
	raw, err := a.h.SendCommand(commandDispatch, wrapped, deadline)
	if err != nil {
		return SensorReadings{}, err
	}
	resp, err := c.Unwrap(raw)
	if err != nil {
		return SensorReadings{}, err
	}
	if len(resp) < 9 {
		return SensorReadings{}, protocol.NewError(protocol.DataValidation, "A1 sensor response too short", nil)
	}
	return SensorReadings{
		TemperatureC: float64(int8(resp[0])) + float64(int8(resp[1]))/10.0,
		HumidityPct:  float64(resp[2]) + float64(resp[3])/10.0,
		Light:        resp[4],
		AirQuality:   resp[6],
		Noise:        resp[8],
	}, nil
}

// SensorLevels mirrors SensorReadings with the ordinal fields resolved to
// their named levels.
type SensorLevels struct {
	TemperatureC float64
	HumidityPct  float64
	Light        string
	AirQuality   string
	Noise        string
}

// CheckSensors reads the sensor values and resolves the ordinal fields to
// named levels.
func (a *AirSensor) CheckSensors(deadline time.Duration) (SensorLevels, error) {
	raw, err := a.CheckSensorsRaw(deadline)
	if err != nil {
		return SensorLevels{}, err
	}
	return SensorLevels{
		TemperatureC: raw.TemperatureC,
		HumidityPct:  raw.HumidityPct,
		Light:        levelName(lightLevels[:], raw.Light),
		AirQuality:   levelName(airQualityLevels[:], raw.AirQuality),
		Noise:        levelName(noiseLevels[:], raw.Noise),
	}, nil
}
