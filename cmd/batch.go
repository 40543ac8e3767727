package cmd

import (
	"strconv"

	"github.com/jsphweid/scoreclean/batch"
	"github.com/jsphweid/scoreclean/constants"
	"github.com/jsphweid/scoreclean/engine"
	"github.com/jsphweid/scoreclean/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var batchFlags normalizeFlags

func init() {
	batchFlags.register(batchCmd)
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch <dir> [maxNum]",
	Short: "Cleans every MIDI file under a directory",
	Long: `Cleans every MIDI file under a directory into OUT_PATH (default ./out).
Output files get random names; manifest.dat maps them back to their sources.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var maxNum int
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			maxNum = n
		}
		table, err := batchFlags.presets()
		if err != nil {
			return err
		}
		return runBatch(args[0], maxNum, batchFlags.options(cmd, table))
	},
}

func runBatch(dir string, maxNum int, opts []engine.Option) error {
	outDir := constants.GetOutDir()
	if err := util.RecreateOutputDir(outDir); err != nil {
		return err
	}
	paths, err := util.GatherAllMidiPaths(dir, maxNum)
	if err != nil {
		return err
	}
	manifest := batch.ProcessAllMidiFiles(batch.NumberFiles(paths), outDir, log, opts...)
	if err := batch.WriteManifest(outDir, manifest); err != nil {
		return err
	}
	log.Info("batch done", zap.Int("files", len(manifest)), zap.String("out", outDir))
	return nil
}
