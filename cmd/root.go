package cmd

import (
	"github.com/jsphweid/scoreclean/constants"
	"github.com/jsphweid/scoreclean/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var log = zap.NewNop()

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "scoreclean",
	Short: "Cleans detected notes into engravable note sequences",
	Long: `scoreclean takes raw pitch-detector output (as MIDI or JSON note events)
and quantizes, flattens and de-overlaps it so it can be engraved as sheet music.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logger.Must(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.GetLogLevel(), "debug, info, warn or error")
}

func Execute() {
	defer func() { _ = log.Sync() }()
	cobra.CheckErr(rootCmd.Execute())
}
