package cmd

import (
	"github.com/jsphweid/soundevents/constants"
	"github.com/jsphweid/soundevents/logger"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "soundevents",
	Short: "Turns MIDI files into timed sound events",
	Long: `Reads standard MIDI files, integrates their tempo map and pairs note
on/off messages into notes with real durations, grouped into chords.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.GetLogLevel(), "debug, info, warn or error")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
