package tempo

import (
	"sort"

	"github.com/jsphweid/soundevents/model"
)

// DefaultMicrosPerQuarter is 120 BPM, in effect until the first tempo change.
const DefaultMicrosPerQuarter = 500000

// Map is an append-only tempo table ordered by strictly increasing start
// tick. It always has a segment starting at tick 0.
type Map struct {
	segments []model.TempoSegment
}

func NewMap() *Map {
	return &Map{
		segments: []model.TempoSegment{{StartTick: 0, MicrosPerQuarter: DefaultMicrosPerQuarter}},
	}
}

// RecordTempoChange appends a segment starting at tick. A change on the same
// tick as the last segment replaces its tempo.
func (m *Map) RecordTempoChange(tick int64, microsPerQuarter int64) error {
	if microsPerQuarter <= 0 {
		return &InvalidTempoError{Tick: tick, MicrosPerQuarter: microsPerQuarter}
	}
	last := &m.segments[len(m.segments)-1]
	switch {
	case tick == last.StartTick:
		last.MicrosPerQuarter = microsPerQuarter
	case tick > last.StartTick:
		m.segments = append(m.segments, model.TempoSegment{StartTick: tick, MicrosPerQuarter: microsPerQuarter})
	default:
		return ErrTempoOutOfOrder
	}
	return nil
}

// index returns the index of the segment in effect at tick.
func (m *Map) index(tick int64) int {
	i := sort.Search(len(m.segments), func(i int) bool {
		return m.segments[i].StartTick > tick
	})
	if i == 0 {
		return 0
	}
	return i - 1
}

func (m *Map) SegmentAt(tick int64) model.TempoSegment {
	return m.segments[m.index(tick)]
}

func (m *Map) Len() int {
	return len(m.segments)
}

func (m *Map) Segments() []model.TempoSegment {
	res := make([]model.TempoSegment, len(m.segments))
	copy(res, m.segments)
	return res
}
