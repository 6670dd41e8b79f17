package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tifye/climateclock/climate"
)

func newSimulateCommand() *cobra.Command {
	params := climate.Defaults()

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one simulation and print the year table",
		RunE: func(cmd *cobra.Command, args []string) error {
			clamped := climate.Clamp(params)
			if clamped != params {
				fmt.Fprintf(cmd.ErrOrStderr(), "parameters clamped to domain: %+v\n", clamped)
			}

			result := climate.Simulate(clamped)

			fmt.Fprintf(cmd.OutOrStdout(), "%-6s %12s %12s %12s\n", "year", "temp (°C)", "flood", "drought")
			for _, rec := range result {
				fmt.Fprintf(cmd.OutOrStdout(), "%-6d %12.3f %12.1f %12.1f\n", rec.Year, rec.TempAnomalyC, rec.FloodRisk, rec.DroughtRisk)
			}

			final := result.Final()
			fmt.Fprintf(cmd.OutOrStdout(), "\nend of horizon (%d): warming %.2f°C, flood %.0f, drought %.0f\n",
				final.Year, final.TempAnomalyC, final.FloodRisk, final.DroughtRisk)
			return nil
		},
	}

	cmd.Flags().IntVar(&params.HorizonYears, "years", params.HorizonYears, "simulation horizon in years")
	cmd.Flags().IntVar(&params.CO2PPM, "co2", params.CO2PPM, "CO2 concentration in ppm")
	cmd.Flags().IntVar(&params.RainfallChangePct, "rain", params.RainfallChangePct, "rainfall change in percent")
	cmd.Flags().IntVar(&params.GreenInfraPct, "green", params.GreenInfraPct, "green infrastructure coverage in percent")
	cmd.Flags().IntVar(&params.UrbanizationPct, "urban", params.UrbanizationPct, "urbanization in percent")

	return cmd
}
