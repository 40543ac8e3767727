package cmd

import (
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/scoreclean/engine"
	"github.com/jsphweid/scoreclean/live"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
	"go.uber.org/zap"
)

var (
	listenFlags normalizeFlags
	listenPort  int
	listenBpm   float64
	listenQuiet time.Duration
)

func init() {
	listenFlags.register(listenCmd)
	listenCmd.Flags().IntVar(&listenPort, "port", 0, "MIDI input port number")
	listenCmd.Flags().Float64Var(&listenBpm, "bpm", 120, "tempo used to turn milliseconds into beats")
	listenCmd.Flags().DurationVar(&listenQuiet, "debounce", time.Second, "quiet time before the take is re-cleaned")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Cleans a live take from a MIDI input",
	Long: `Records notes from a MIDI input port and prints the cleaned take every time
playing pauses for the debounce interval. Ctrl+C stops.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := listenFlags.presets()
		if err != nil {
			return err
		}
		return listen(listenPort, listenBpm, listenQuiet, listenFlags.options(cmd, table))
	},
}

func printTake(take *live.Take, w io.Writer, opts []engine.Option) error {
	res, err := engine.Run(take.Notes(), opts...)
	if err != nil {
		return err
	}
	log.Info("take cleaned",
		zap.Int("input", res.Stats.Input),
		zap.Int("output", res.Stats.Output),
		zap.Int("dropped", res.Stats.Dropped))
	return json.NewEncoder(w).Encode(res.Notes)
}

func listen(port int, bpm float64, quiet time.Duration, opts []engine.Option) error {
	defer gomidi.CloseDriver()
	in, err := gomidi.InPort(port)
	if err != nil {
		return err
	}
	log.Info("listening to MIDI input", zap.String("port", in.String()))

	take := live.NewTake(bpm)
	debounced := debounce.New(quiet)
	reclean := func() {
		if err := printTake(take, os.Stdout, opts); err != nil {
			log.Error("could not clean take", zap.Error(err))
		}
	}

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			take.Start(key, timestampms)
		case msg.GetNoteEnd(&ch, &key):
			if take.End(key, timestampms) {
				debounced(reclean)
			}
		default:
			// ignore
		}
	})
	if err != nil {
		return err
	}
	defer stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
	return nil
}
