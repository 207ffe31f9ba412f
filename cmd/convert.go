package cmd

import (
	"encoding/json"
	"io"

	"github.com/jsphweid/soundevents/midi"
	"github.com/spf13/cobra"
)

var pretty bool

func init() {
	convertCmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Prints the sound events of a MIDI file as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return convert(cmd.OutOrStdout(), args[0])
	},
}

func convert(w io.Writer, path string) error {
	out, err := midi.ConvertFile(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
