package tempo

import (
	"errors"
	"fmt"

	"github.com/jsphweid/soundevents/model"
)

var ErrTempoOutOfOrder = errors.New("tempo change recorded before the last tempo segment")

// InvalidTempoError is returned for a tempo change with a non-positive
// microseconds-per-quarter value. It aborts the run.
type InvalidTempoError struct {
	Tick             int64
	MicrosPerQuarter int64
}

func (e *InvalidTempoError) Error() string {
	return fmt.Sprintf("invalid tempo %d us/quarter at tick %d", e.MicrosPerQuarter, e.Tick)
}

// UnsupportedFormatError is returned when the stream's time division can not
// be converted: frame based (SMPTE) division or a non-positive resolution.
type UnsupportedFormatError struct {
	Division model.Division
}

func (e *UnsupportedFormatError) Error() string {
	if e.Division.FrameBased {
		return "unsupported time division: frame based (SMPTE)"
	}
	return fmt.Sprintf("unsupported time division: %d ticks per quarter", e.Division.TicksPerQuarter)
}
