package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tifye/climateclock/climate"
)

func newPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the quick-scenario parameter bundles",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range climate.Presets() {
				p, _ := climate.PresetParameters(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s years=%d co2=%d rain=%d%% green=%d%% urban=%d%%\n",
					name, p.HorizonYears, p.CO2PPM, p.RainfallChangePct, p.GreenInfraPct, p.UrbanizationPct)
			}
		},
	}
}
