package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/hako/durafmt"
	"github.com/jsphweid/soundevents/midi"
	"github.com/jsphweid/soundevents/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Shows the tempo map and overview of a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(cmd.OutOrStdout(), args[0])
	},
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func inspect(w io.Writer, path string) error {
	out, err := midi.ConvertFile(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "resolution: %v ticks/quarter\n", out.Resolution)
	fmt.Fprintf(w, "length: %v (%v ticks)\n", durafmt.Parse(seconds(out.LengthSeconds)).LimitFirstN(3), out.FinalTick)
	fmt.Fprintf(w, "tempo segments: %v\n", len(out.Tempos))
	for _, seg := range out.Tempos {
		fmt.Fprintf(w, "  tick %8d  %7.2f bpm  (%v us/quarter)\n", seg.StartTick, seg.BPM(), seg.MicrosPerQuarter)
	}

	for _, sig := range out.Meta.TimeSignatures {
		fmt.Fprintf(w, "time signature: %v at tick %v\n", sig, sig.Tick)
	}
	for _, sig := range out.Meta.KeySignatures {
		fmt.Fprintf(w, "key signature: %v at tick %v\n", sig.Key, sig.Tick)
	}

	var chords int
	for _, e := range out.Events {
		if e.IsChord() {
			chords++
		}
	}
	fmt.Fprintf(w, "sound events: %v (%v chords)\n", len(out.Events), chords)
	fmt.Fprintf(w, "notes: %v\n", out.NumNotes())
	fmt.Fprintf(w, "orphan note offs: %v\n", out.CountWarnings(model.WarningOrphanNoteOff))
	fmt.Fprintf(w, "unterminated notes: %v\n", out.CountWarnings(model.WarningUnterminatedNote))
	fmt.Fprintf(w, "retriggers: %v\n", out.CountWarnings(model.WarningRetrigger))
	return nil
}
