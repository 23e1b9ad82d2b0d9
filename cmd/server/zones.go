package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jengzang/risk-heatmap-go/internal/zones"
)

func newZonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List the supported provinces and their bounding boxes",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := zones.Default()
			for _, name := range reg.Names() {
				z, _ := reg.Lookup(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-32s lat [%7.3f, %7.3f]  lon [%8.3f, %8.3f]\n",
					name, z.LatMin, z.LatMax, z.LonMin, z.LonMax)
			}
			return nil
		},
	}
}
