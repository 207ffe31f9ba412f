package midi

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/jsphweid/soundevents/model"
	"github.com/jsphweid/soundevents/tempo"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading midi file")
	}
	s, err := Read(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", filepath)
	}
	return s, nil
}

// Read parses an SMF from r. Files with a frame based (SMPTE) division are
// rejected with *tempo.UnsupportedFormatError.
func Read(r io.Reader) (s *smf.SMF, e error) {
	// smf panics on some malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if rec := recover(); rec != nil {
			s, e = nil, errors.Errorf("Error parsing midi file... %v", rec)
		}
	}()

	dat, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading midi data")
	}
	if frameBased(dat) {
		return nil, &tempo.UnsupportedFormatError{Division: model.Division{FrameBased: true}}
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrap(err, "Error parsing midi file")
	}
	return res, nil
}

// frameBased checks the division word of the MThd header. smf can not
// decode the tracks of such files.
func frameBased(dat []byte) bool {
	if len(dat) < 14 || string(dat[:4]) != "MThd" {
		return false
	}
	return binary.BigEndian.Uint16(dat[12:14])&0x8000 != 0
}
