package batch

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/soundevents/logger"
	"github.com/jsphweid/soundevents/midi"
	"github.com/jsphweid/soundevents/model"
	"github.com/jsphweid/soundevents/util"
	"github.com/remeh/sizedwaitgroup"
	"github.com/sirupsen/logrus"
)

// MetadataSource resolves metadata for files named relative to the root.
type MetadataSource interface {
	GetMidiMetadatas(filenames []string) (map[string]model.MidiMetadata, error)
}

type Options struct {
	Workers  int
	MaxFiles int
	// Metadata is optional.
	Metadata MetadataSource
}

type FileResult struct {
	FileNum  uint32
	Filename string
	Bytes    int64
	Output   model.Output
	Metadata *model.MidiMetadata
	Err      error
}

type Summary struct {
	RunId   string
	Results []FileResult
}

func CreateFileNumMap(paths []string) model.FileNumToMidiPath {
	res := make(model.FileNumToMidiPath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}

// Run converts every MIDI file below root. Each file gets its own
// conversion run; up to Workers files are converted at once.
func Run(root string, opts Options) (Summary, error) {
	paths, err := util.GatherAllMidiPaths(root, opts.MaxFiles)
	if err != nil {
		return Summary{}, err
	}
	var names []string
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return Summary{}, err
		}
		names = append(names, filepath.ToSlash(rel))
	}
	return ProcessAllMidiFiles(root, CreateFileNumMap(names), opts), nil
}

func ProcessAllMidiFiles(root string, m model.FileNumToMidiPath, opts Options) Summary {
	summary := Summary{RunId: uuid.New().String()}
	log := logger.Get().WithField("run", summary.RunId)

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	keys := util.GetKeys(m)
	summary.Results = make([]FileResult, len(keys))
	swg := sizedwaitgroup.New(workers)
	for i, num := range keys {
		swg.Add()
		go func(i int, num uint32) {
			defer swg.Done()
			summary.Results[i] = processMidiFile(root, num, m[num])
			log.WithField("file", m[num]).Debugf("Processed %v of %v midi files", i+1, len(keys))
		}(i, num)
	}
	swg.Wait()

	if opts.Metadata != nil {
		attachMetadata(summary.Results, opts.Metadata, log)
	}

	for _, r := range summary.Results {
		if r.Err != nil {
			log.WithField("file", r.Filename).Warnf("Skipping because: %v", r.Err)
		}
	}
	return summary
}

func processMidiFile(root string, fileNum uint32, filename string) FileResult {
	res := FileResult{FileNum: fileNum, Filename: filename}
	path := filepath.Join(root, filepath.FromSlash(filename))
	if info, err := os.Stat(path); err == nil {
		res.Bytes = info.Size()
	}
	res.Output, res.Err = midi.ConvertFile(path)
	return res
}

func attachMetadata(results []FileResult, source MetadataSource, log *logrus.Entry) {
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Filename)
	}
	metadatas, err := source.GetMidiMetadatas(names)
	if err != nil {
		log.Warnf("Could not fetch metadata: %v", err)
		return
	}
	for i := range results {
		if md, ok := metadatas[results[i].Filename]; ok {
			md := md
			results[i].Metadata = &md
		}
	}
}

func (s Summary) NumFailed() int {
	var n int
	for _, r := range s.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

func (s Summary) TotalNotes() int {
	var n int
	for _, r := range s.Results {
		n += r.Output.NumNotes()
	}
	return n
}

// TotalWarnings counts input problems over all files; retriggers are left
// out.
func (s Summary) TotalWarnings() int {
	var n int
	for _, r := range s.Results {
		n += r.Output.NumWarnings()
	}
	return n
}

func (s Summary) TotalBytes() uint64 {
	var n uint64
	for _, r := range s.Results {
		n += uint64(r.Bytes)
	}
	return n
}

func (s Summary) TotalSeconds() float64 {
	var n float64
	for _, r := range s.Results {
		n += r.Output.LengthSeconds
	}
	return n
}
