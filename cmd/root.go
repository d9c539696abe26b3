package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/goshaft/internal/logger"
	"github.com/alexiusacademia/goshaft/internal/version"
	"github.com/spf13/cobra"
)

var (
	debug     bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "goshaft",
	Short: "Shaft Fatigue Safety Factor Calculator",
	Long: `goshaft - Go Shaft Fatigue Calculator

A CLI tool for the fatigue check of stepped rotating shafts
following the stress-life method (Shigley, Mechanical Engineering Design).

This tool helps machine designers perform:
  - Stress concentration (Kt) and notch sensitivity (Neuber) estimates
  - Endurance limit with Marin surface and size factors
  - Fluctuating stress analysis with von Mises equivalents
  - Modified Goodman, Gerber and first-cycle yield safety factors
  - Finite-life (S-N) cycle estimates
  - Batch runs from CSV, Excel, YAML or JSON case files

All stresses in MPa, lengths in mm, forces in N, moments in N·mm.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if debug {
			level = "debug"
		}
		_, err := logger.Setup(logger.Config{Level: level, Format: logFormat, Output: os.Stderr})
		return err
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   goshaft v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Shaft Fatigue Calculator                             ║")
		fmt.Printf("  ║   %s ©  %-36s║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the fatigue check of stepped rotating shafts")
		fmt.Println("  using the stress-life method.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Kt, Neuber constant and fatigue stress-concentration factor")
		fmt.Println("    • Endurance limit with Marin surface and size factors")
		fmt.Println("    • Goodman, Gerber and yield safety factors")
		fmt.Println("    • Finite-life cycle estimate")
		fmt.Println("    • Batch runs and CSV/Excel export")
		fmt.Println("    • HTTP API (goshaft serve)")
		fmt.Println()
		fmt.Println("  Use 'goshaft --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
}
