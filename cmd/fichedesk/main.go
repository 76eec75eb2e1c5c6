// Command fichedesk serves the insurance fiche dashboard API.
//
// @title        Fichedesk API
// @version      1.0
// @description  Role-based dashboard over insurance client records.
// @BasePath     /
package main

import (
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "fichedesk",
	Short:         "Insurance fiche dashboard API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("fichedesk: " + err.Error() + "\n")
		os.Exit(1)
	}
}
