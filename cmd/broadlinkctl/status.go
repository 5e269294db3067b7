package main

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"broadlink/internal/device"
	"broadlink/internal/registry"
)

func newStatusCmd() *cobra.Command {
	var devTypeFlag string
	var portFlag int
	var timeoutFlag time.Duration

	cmd := &cobra.Command{
		Use:   "status <host> <hwaddr>",
		Short: "Read and print a device's current state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadedConfig()

			hw, err := parseHWAddr(args[1])
			if err != nil {
				return err
			}
			devType, err := parseDeviceType(devTypeFlag)
			if err != nil {
				return err
			}

			h, ch, err := dial(cfg, args[0], portFlag, hw, devType)
			if err != nil {
				return err
			}
			defer ch.Close()

			deadline := commandDeadline(cfg, timeoutFlag)
			entry, known := registry.Lookup(devType)
			if !known {
				return fmt.Errorf("unrecognized device type 0x%04X; pass --devtype explicitly", devType)
			}

			fields, err := fetchStatus(h, entry.Profile, deadline)
			if err != nil {
				return err
			}

			table := pterm.TableData{{"Field", "Value"}}
			for _, kv := range fields {
				table = append(table, []string{kv[0], kv[1]})
			}
			return pterm.DefaultTable.WithHasHeader(true).WithData(table).Render()
		},
	}

	cmd.Flags().StringVar(&devTypeFlag, "devtype", "0x0000", "device type code, e.g. 0x2737")
	cmd.Flags().IntVar(&portFlag, "port", 80, "device UDP port")
	cmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "command deadline (default: session.command_timeout from config)")
	return cmd
}

func fetchStatus(h *device.Handle, profile registry.Profile, deadline time.Duration) ([][2]string, error) {
	switch profile {
	case registry.ProfileSP1, registry.ProfileSP2, registry.ProfileSP2S, registry.ProfileSP3,
		registry.ProfileSP3S, registry.ProfileSP4, registry.ProfileSP4B, registry.ProfileSP2Mini2:
		plug := device.NewSmartPlug(h, true)
		on, err := plug.CheckPower(deadline)
		if err != nil {
			return nil, err
		}
		night, err := plug.CheckNightlight(deadline)
		if err != nil {
			return nil, err
		}
		energy, err := plug.GetEnergy(deadline)
		if err != nil {
			return nil, err
		}
		return [][2]string{
			{"power", fmt.Sprintf("%v", on)},
			{"nightlight", fmt.Sprintf("%v", night)},
			{"energy_kwh", fmt.Sprintf("%.2f", energy)},
		}, nil

	case registry.ProfileMP1:
		strip := device.NewPowerStrip(h)
		state, err := strip.CheckPower(deadline)
		if err != nil {
			return nil, err
		}
		return [][2]string{{"sockets", fmt.Sprintf("%+v", state)}}, nil

	case registry.ProfileBG1:
		sw := device.NewBGSwitch(h)
		state, err := sw.GetState(deadline)
		if err != nil {
			return nil, err
		}
		return mapToRows(state), nil

	case registry.ProfileDooya:
		curtain := device.NewCurtain(h)
		percent, err := curtain.GetPercentage(deadline)
		if err != nil {
			return nil, err
		}
		return [][2]string{{"percent", fmt.Sprintf("%d", percent)}}, nil

	case registry.ProfileHysen:
		t := device.NewThermostat(h)
		s, err := t.GetFullStatus(deadline)
		if err != nil {
			return nil, err
		}
		return [][2]string{
			{"power", fmt.Sprintf("%v", s.Power)},
			{"room_temp_c", fmt.Sprintf("%.1f", s.RoomTempC)},
			{"thermostat_temp_c", fmt.Sprintf("%.1f", s.ThermostatTempC)},
			{"auto_mode", fmt.Sprintf("%v", s.AutoMode)},
		}, nil

	case registry.ProfileHVAC:
		hvac := device.NewHVAC(h)
		s, err := hvac.GetState(deadline)
		if err != nil {
			return nil, err
		}
		return [][2]string{
			{"power", fmt.Sprintf("%v", s.Power)},
			{"target_temp_c", fmt.Sprintf("%.1f", s.TargetTempC)},
			{"mode", fmt.Sprintf("%d", s.Mode)},
			{"speed", fmt.Sprintf("%d", s.Speed)},
		}, nil

	case registry.ProfileA1:
		sensor := device.NewAirSensor(h)
		levels, err := sensor.CheckSensors(deadline)
		if err != nil {
			return nil, err
		}
		return [][2]string{
			{"temperature_c", fmt.Sprintf("%.1f", levels.TemperatureC)},
			{"humidity_pct", fmt.Sprintf("%.1f", levels.HumidityPct)},
			{"light", levels.Light},
			{"air_quality", levels.AirQuality},
			{"noise", levels.Noise},
		}, nil

	case registry.ProfileS3Hub:
		hub := device.NewHub(h)
		subs, err := hub.GetSubdevices(device.MaxHubSubdevices, deadline)
		if err != nil {
			return nil, err
		}
		return [][2]string{{"subdevices", fmt.Sprintf("%d", len(subs))}}, nil

	case registry.ProfileLB1, registry.ProfileLB27:
		bulb := device.NewBulb(h)
		state, err := bulb.GetState(deadline)
		if err != nil {
			return nil, err
		}
		return mapToRows(state), nil

	case registry.ProfileS1C:
		alarm := device.NewAlarm(h)
		status, err := alarm.GetSensorsStatus(deadline)
		if err != nil {
			return nil, err
		}
		rows := [][2]string{{"sensor_count", fmt.Sprintf("%d", status.Count)}}
		for _, s := range status.Sensors {
			rows = append(rows, [2]string{"sensor:" + s.Serial, fmt.Sprintf("%s %q status=%d", s.Type, s.Name, s.Status)})
		}
		return rows, nil
	}

	return nil, fmt.Errorf("status is not supported for profile %q", profile)
}

func mapToRows(m map[string]any) [][2]string {
	rows := make([][2]string, 0, len(m))
	for k, v := range m {
		rows = append(rows, [2]string{k, fmt.Sprintf("%v", v)})
	}
	return rows
}
