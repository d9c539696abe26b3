package cmd

import (
	"fmt"

	"github.com/alexiusacademia/goshaft/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of goshaft",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("goshaft v%s\n", version.Version)
		fmt.Println("Shaft Fatigue Safety Factor Calculator")
		fmt.Println("Stress-life method (modified Goodman, Gerber, Langer yield)")
		if version.GitCommit != "unknown" {
			fmt.Printf("Commit %s, built %s\n", version.GitCommit, version.BuildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
