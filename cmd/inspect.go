package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/scoreclean/chord"
	"github.com/jsphweid/scoreclean/engine"
	"github.com/jsphweid/scoreclean/sample"
	"github.com/spf13/cobra"
)

var (
	inspectFlags normalizeFlags
	inspectFrom  float64
	inspectLimit int
)

func init() {
	inspectFlags.register(inspectCmd)
	inspectCmd.Flags().Float64Var(&inspectFrom, "from", 0, "first beat to show")
	inspectCmd.Flags().IntVar(&inspectLimit, "limit", 16, "max notes to show, 0 for all")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Shows raw chords and cleaned notes side by side",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := inspectFlags.presets()
		if err != nil {
			return err
		}
		return inspect(args[0], os.Stdout, inspectFrom, inspectLimit, inspectFlags.options(cmd, table))
	},
}

func inspect(path string, w io.Writer, from float64, limit int, opts []engine.Option) error {
	notes, err := readNotes(path)
	if err != nil {
		return err
	}

	var chords int
	for _, g := range chord.GroupByStart(notes) {
		if g.IsChord() {
			chords++
			fmt.Fprintf(w, "chord at %v: %v\n", g.StartTime, chord.CreateChordKey(g.Pitches()))
		}
	}

	res, err := engine.Run(notes, opts...)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "raw notes: %v, chords: %v, cleaned notes: %v, dropped: %v\n",
		res.Stats.Input, chords, res.Stats.Output, res.Stats.Dropped)
	for _, n := range sample.Excerpt(res.Notes, from, limit) {
		fmt.Fprintf(w, "%6.2f  %-5v %v\n", n.StartTime, n.Pitch, n.Duration)
	}
	return nil
}
