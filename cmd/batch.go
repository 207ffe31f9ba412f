package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/jsphweid/soundevents/batch"
	"github.com/jsphweid/soundevents/constants"
	"github.com/jsphweid/soundevents/db"
	"github.com/spf13/cobra"
)

var (
	workers      int
	withMetadata bool
)

func init() {
	batchCmd.Flags().IntVar(&workers, "workers", constants.GetWorkers(), "files converted in parallel")
	batchCmd.Flags().BoolVar(&withMetadata, "metadata", false, "look up file metadata in DynamoDB")
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch [dir] [max]",
	Short: "Converts every MIDI file below a directory",
	Long:  `Converts every .mid/.midi file below dir (MEDIA_PATH by default) and prints a summary.`,
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := constants.GetMediaDir()
		if len(args) > 0 {
			root = args[0]
		}
		var maxNum int
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			maxNum = n
		}

		opts := batch.Options{Workers: workers, MaxFiles: maxNum}
		if withMetadata {
			store, err := db.Connect()
			if err != nil {
				return err
			}
			opts.Metadata = store
		}
		return runBatch(cmd.OutOrStdout(), root, opts)
	},
}

func runBatch(w io.Writer, root string, opts batch.Options) error {
	summary, err := batch.Run(root, opts)
	if err != nil {
		return err
	}

	for _, r := range summary.Results {
		if r.Err != nil {
			fmt.Fprintf(w, "%5d  %-40s  FAILED: %v\n", r.FileNum, r.Filename, r.Err)
			continue
		}
		title := ""
		if r.Metadata != nil {
			title = fmt.Sprintf("  %v - %v", r.Metadata.Artist, r.Metadata.Title)
		}
		fmt.Fprintf(w, "%5d  %-40s  %6d events  %6d notes  %3d warnings%s\n",
			r.FileNum, r.Filename, len(r.Output.Events), r.Output.NumNotes(), r.Output.NumWarnings(), title)
	}

	fmt.Fprintf(w, "run %v: %v files (%v), %v failed\n",
		summary.RunId, len(summary.Results), humanize.Bytes(summary.TotalBytes()), summary.NumFailed())
	fmt.Fprintf(w, "%v notes, %v warnings, %v of music\n",
		humanize.Comma(int64(summary.TotalNotes())), humanize.Comma(int64(summary.TotalWarnings())),
		durafmt.Parse(seconds(summary.TotalSeconds())).LimitFirstN(2))
	return nil
}
