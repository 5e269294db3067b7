package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"broadlink/internal/device"
	"broadlink/internal/pkg/logger"
	"broadlink/internal/registry"
	"broadlink/internal/transport"
)

func newDiscoverCmd() *cobra.Command {
	var timeoutFlag time.Duration

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Broadcast a discovery probe and list responding devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadedConfig()

			ch, err := transport.Listen(context.Background(), cfg.Network.ListenAddress)
			if err != nil {
				return err
			}
			defer ch.Close()

			deadline := timeoutFlag
			if deadline == 0 {
				deadline = cfg.Discovery.Timeout
			}

			start := time.Now()
			found, err := device.Discover(ch, deadline)
			logger.LogDiscovery(cfg.Network.BroadcastAddress, len(found), time.Since(start), nil)
			if err != nil {
				return err
			}

			if len(found) == 0 {
				pterm.Warning.Println("no devices responded")
				return nil
			}

			table := pterm.TableData{{"Address", "HW Addr", "Device Type", "Model", "Manufacturer", "Name", "Locked"}}
			for _, d := range found {
				model, manufacturer := "unknown", "unknown"
				if entry, ok := registry.Lookup(d.DeviceType); ok {
					model, manufacturer = entry.Model, entry.Manufacturer
				}
				table = append(table, []string{
					d.Remote.String(),
					hex.EncodeToString(d.HWAddr[:]),
					fmt.Sprintf("0x%04X", d.DeviceType),
					model,
					manufacturer,
					d.Name,
					fmt.Sprintf("%v", d.Locked),
				})
			}
			return pterm.DefaultTable.WithHasHeader(true).WithData(table).Render()
		},
	}

	cmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "how long to collect discovery replies (default: discovery.timeout from config)")
	return cmd
}
