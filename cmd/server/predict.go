package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jengzang/risk-heatmap-go/internal/models"
)

func newPredictCmd(opts *rootOptions) *cobra.Command {
	var req models.PredictionRequest
	var asGeoJSON bool

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run one zone prediction and print the JSON response",
		Example: "  riesgo predict --zona Guayas --fecha 2024-06-15\n" +
			"  riesgo predict --zona Pichincha --fecha 2024-06-15 --geojson",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, log, err := loadConfig(opts)
			if err != nil {
				return err
			}
			defer log.Sync()

			a, err := newApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			var out interface{}
			if asGeoJSON {
				out, err = a.predictions.PredictGeoJSON(ctx, req)
			} else {
				out, err = a.predictions.Predict(ctx, req)
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&req.Zone, "zona", "", "province name, e.g. Guayas")
	cmd.Flags().StringVar(&req.Date, "fecha", "", "target date, e.g. 2024-06-15")
	cmd.Flags().BoolVar(&asGeoJSON, "geojson", false, "print a GeoJSON FeatureCollection")
	cmd.MarkFlagRequired("zona")
	cmd.MarkFlagRequired("fecha")
	return cmd
}
