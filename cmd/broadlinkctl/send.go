package main

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"broadlink/internal/device"
	"broadlink/internal/pkg/logger"
	"broadlink/internal/registry"
)

func newSendCmd() *cobra.Command {
	var devTypeFlag string
	var portFlag int
	var timeoutFlag time.Duration
	var cmdFlag string
	var onFlag bool
	var socketFlag int
	var codeFlag string
	var tempFlag float64
	var percentFlag int

	cmd := &cobra.Command{
		Use:   "send <host> <hwaddr>",
		Short: "Send a single control command to a device",
		Long: `send dispatches a control command appropriate to the device's
registry profile. --cmd selects the action; which of --on, --socket, --code,
--temp, --percent it reads depends on the profile:

  smartplug (sp1/sp2/sp3/sp4/sp4b): power, nightlight   (--on)
  powerstrip (mp1):                 socket              (--socket, --on)
  bgswitch (bg1):                   power               (--on)
  curtain (dooya):                  open, close, stop, percent   (--percent)
  thermostat (hysen):               temp                (--temp)
  hvac:                             power               (--on)
  bulb (lb1/lb27):                  power, brightness   (--on, --percent)
  remote (rmmini/rmpro/rm4*):       play                (--code, hex IR/RF)
`,
		Args: cobra.ExactArgs(2),
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

			start := time.Now()
			err = dispatchSend(h, entry.Profile, cmdFlag, deadline, sendOpts{
				on:      onFlag,
				socket:  socketFlag,
				code:    codeFlag,
				tempC:   tempFlag,
				percent: percentFlag,
			})
			status := "ok"
			if err != nil {
				status = "error"
			}
			logger.LogCommand(args[0], 0, status, time.Since(start), map[string]interface{}{"cmd": cmdFlag})
			if err != nil {
				return err
			}

			pterm.Success.Printf("%s: %s ok\n", entry.Profile, cmdFlag)
			return nil
		},
	}

	cmd.Flags().StringVar(&devTypeFlag, "devtype", "0x0000", "device type code, e.g. 0x2737")
	cmd.Flags().IntVar(&portFlag, "port", 80, "device UDP port")
	cmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "command deadline (default: session.command_timeout from config)")
	cmd.Flags().StringVar(&cmdFlag, "cmd", "power", "command to send (power, nightlight, socket, open, close, stop, percent, temp, brightness, play)")
	cmd.Flags().BoolVar(&onFlag, "on", false, "turn on (vs off)")
	cmd.Flags().IntVar(&socketFlag, "socket", 1, "1-based socket index, for powerstrip")
	cmd.Flags().StringVar(&codeFlag, "code", "", "hex-encoded learned IR/RF code, for remote play")
	cmd.Flags().Float64Var(&tempFlag, "temp", 0, "target temperature in Celsius, for thermostat")
	cmd.Flags().IntVar(&percentFlag, "percent", 0, "target percentage: curtain open position or bulb brightness")
	return cmd
}

type sendOpts struct {
	on      bool
	socket  int
	code    string
	tempC   float64
	percent int
}

func dispatchSend(h *device.Handle, profile registry.Profile, cmdName string, deadline time.Duration, opts sendOpts) error {
	switch profile {
	case registry.ProfileSP1, registry.ProfileSP2, registry.ProfileSP2S, registry.ProfileSP3,
		registry.ProfileSP3S, registry.ProfileSP4, registry.ProfileSP4B, registry.ProfileSP2Mini2:
		plug := device.NewSmartPlug(h, profile != registry.ProfileSP1)
		switch cmdName {
		case "power":
			return plug.SetPower(opts.on, deadline)
		case "nightlight":
			return plug.SetNightlight(opts.on, deadline)
		}
	case registry.ProfileMP1:
		strip := device.NewPowerStrip(h)
		if cmdName == "socket" {
			return strip.SetSocket(opts.socket, opts.on, deadline)
		}
	case registry.ProfileBG1:
		sw := device.NewBGSwitch(h)
		if cmdName == "power" {
			_, err := sw.SetState(device.BGState{Pwr: &opts.on}, deadline)
			return err
		}
	case registry.ProfileDooya:
		curtain := device.NewCurtain(h)
		switch cmdName {
		case "open":
			_, err := curtain.Open(deadline)
			return err
		case "close":
			_, err := curtain.Close(deadline)
			return err
		case "stop":
			_, err := curtain.Stop(deadline)
			return err
		case "percent":
			return curtain.SetPercentageAndWait(byte(opts.percent), deadline, time.Sleep)
		}
	case registry.ProfileHysen:
		t := device.NewThermostat(h)
		if cmdName == "temp" {
			return t.SetTemp(opts.tempC, deadline)
		}
	case registry.ProfileHVAC:
		hvac := device.NewHVAC(h)
		if cmdName == "power" {
			state, err := hvac.GetState(deadline)
			if err != nil {
				return err
			}
			state.Power = opts.on
			_, err = hvac.SetState(state, deadline)
			return err
		}
	case registry.ProfileLB1, registry.ProfileLB27:
		bulb := device.NewBulb(h)
		switch cmdName {
		case "power":
			on := opts.on
			_, err := bulb.SetState(device.BulbState{Pwr: &on}, deadline)
			return err
		case "brightness":
			percent := opts.percent
			_, err := bulb.SetState(device.BulbState{Brightness: &percent}, deadline)
			return err
		}
	case registry.ProfileRMMini, registry.ProfileRMPro, registry.ProfileRMMiniB:
		remote := device.NewRemote(h)
		if cmdName == "play" {
			code, err := hex.DecodeString(opts.code)
			if err != nil {
				return fmt.Errorf("decoding --code: %w", err)
			}
			return remote.SendData(code, deadline)
		}
	case registry.ProfileRM4Mini, registry.ProfileRM4Pro:
		remote := device.NewRemote4(h)
		if cmdName == "play" {
			code, err := hex.DecodeString(opts.code)
			if err != nil {
				return fmt.Errorf("decoding --code: %w", err)
			}
			return remote.SendData(code, deadline)
		}
	}

	return fmt.Errorf("command %q is not supported for profile %q", cmdName, profile)
}
