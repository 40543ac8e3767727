package cmd

import (
	"fmt"

	"github.com/jsphweid/scoreclean/instrument"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(instrumentsCmd)
}

var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "Lists instrument presets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		table := instrument.Builtin()
		for _, name := range table.Names() {
			p := table[name]
			mode := "poly"
			if p.Monophonic {
				mode = "mono"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-16v %+3d  %v\n", name, p.Semitones, mode)
		}
	},
}
