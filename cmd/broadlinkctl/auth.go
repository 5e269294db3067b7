package main

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"broadlink/internal/pkg/logger"
)

func newAuthCmd() *cobra.Command {
	var devTypeFlag string
	var portFlag int
	var timeoutFlag time.Duration

	cmd := &cobra.Command{
		Use:   "auth <host> <hwaddr>",
		Short: "Perform the key-exchange handshake with a device",
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
			spinner, _ := pterm.DefaultSpinner.Start("authenticating with " + args[0])
			err = h.Auth(deadline)
			if err != nil {
				spinner.Fail("authentication failed: " + err.Error())
				logger.LogSessionAuth(args[0], devType, "failed", err.Error(), nil)
				return err
			}
			spinner.Success("authenticated")
			logger.LogSessionAuth(args[0], devType, "success", "", nil)
			return nil
		},
	}

	cmd.Flags().StringVar(&devTypeFlag, "devtype", "0x0000", "device type code, e.g. 0x2737")
	cmd.Flags().IntVar(&portFlag, "port", 80, "device UDP port")
	cmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "command deadline (default: session.command_timeout from config)")
	return cmd
}
