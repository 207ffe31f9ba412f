package midi

import (
	"io"

	"github.com/jsphweid/soundevents/model"
	"github.com/jsphweid/soundevents/sequence"
	"github.com/pkg/errors"
)

// ConvertFile reads, decodes and sequences the MIDI file at path.
func ConvertFile(path string) (model.Output, error) {
	s, err := ReadMidiFile(path)
	if err != nil {
		return model.Output{}, err
	}
	out, err := sequence.Build(Decode(s))
	return out, errors.Wrapf(err, "converting %s", path)
}

// Convert reads, decodes and sequences an SMF from r.
func Convert(r io.Reader) (model.Output, error) {
	s, err := Read(r)
	if err != nil {
		return model.Output{}, err
	}
	return sequence.Build(Decode(s))
}
