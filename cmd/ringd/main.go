// Command ringd wires the ring buffer, the demo market-data generators,
// the WebSocket broadcast server, and Prometheus metrics together.
package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ringd",
	Short: "ringd runs the seqlock ring buffer demo",
	Long:  "ringd runs the seqlock ring buffer demo: a random-walk producer feeding a fixed-capacity SPMC ring, fanned out to WebSocket subscribers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(benchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
