package cmd

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jsphweid/soundevents/chord"
	"github.com/jsphweid/soundevents/midi"
	"github.com/spf13/cobra"
)

var top int

func init() {
	reportCmd.Flags().IntVar(&top, "top", 20, "number of chords to list, 0 for all")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Lists the most frequent chords of a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(cmd.OutOrStdout(), args[0], top)
	},
}

func report(w io.Writer, path string, top int) error {
	out, err := midi.ConvertFile(path)
	if err != nil {
		return err
	}

	hist := chord.Histogram(out.Events)
	if top > 0 && len(hist) > top {
		hist = hist[:top]
	}
	fmt.Fprintf(w, "%v sound events, %v distinct chords\n", humanize.Comma(int64(len(out.Events))), len(chord.Histogram(out.Events)))
	for _, c := range hist {
		fmt.Fprintf(w, "%-24s %6v  %8.2fs\n", c.Key, c.Count, c.Seconds)
	}
	return nil
}
