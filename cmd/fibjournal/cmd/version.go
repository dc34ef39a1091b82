package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the fibjournal CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "fibjournal version %s\n", version)
		fmt.Fprintln(out, "Fibonacci retracement and extension levels with a trading journal")
		fmt.Fprintln(out, "https://github.com/rustyeddy/fibjournal")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
