package cmd

import (
	"github.com/spf13/cobra"
)

var fatigueCmd = &cobra.Command{
	Use:   "fatigue",
	Short: "Fatigue safety factors of a stepped shaft",
	Long: `Compute the fatigue safety factors of a stepped rotating shaft at a
shoulder fillet.

Subcommands:
  analyze  - Run one calculation from flags or a case file
  batch    - Run every case in a CSV, Excel, YAML or JSON file

Quantities that cannot be computed for the given inputs are reported as
n/a together with the reason; the remaining quantities are still computed.`,
}

func init() {
	rootCmd.AddCommand(fatigueCmd)
}
