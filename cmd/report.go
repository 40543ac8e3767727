package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/scoreclean/batch"
	"github.com/jsphweid/scoreclean/constants"
	"github.com/jsphweid/scoreclean/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarizes the last batch run",
	Long:  `Summarizes the last batch run from the manifest in OUT_PATH`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(constants.GetOutDir(), os.Stdout)
	},
}

func report(outDir string, w io.Writer) error {
	manifest, err := batch.ReadManifest(outDir)
	if err != nil {
		return err
	}
	s := batch.Summarize(manifest)

	fmt.Fprintf(w, "files: %v (%v failed)\n", s.NumFiles, s.NumFailed)
	fmt.Fprintf(w, "notes in: %v\n", s.Totals.Input)
	fmt.Fprintf(w, "notes out: %v\n", s.Totals.Output)
	fmt.Fprintf(w, "flattened from chords: %v\n", s.Totals.Flattened)
	fmt.Fprintf(w, "dropped by collisions: %v\n", s.Totals.Dropped)
	fmt.Fprintf(w, "extended to legato: %v\n", s.Totals.Extended)
	for _, num := range util.GetSortedKeys(manifest) {
		entry := manifest[num]
		if entry.Err != "" {
			fmt.Fprintf(w, "failed: %v: %v\n", entry.Source, entry.Err)
		}
	}
	return nil
}
