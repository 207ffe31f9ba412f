package tempo

import "github.com/jsphweid/soundevents/model"

// Converter turns tick spans into seconds by integrating over the tempo
// segments of a Map. The map is read live, so changes recorded after the
// converter was built are taken into account.
type Converter struct {
	tempos     *Map
	resolution int64
}

func NewConverter(tempos *Map, division model.Division) (*Converter, error) {
	if err := CheckDivision(division); err != nil {
		return nil, err
	}
	return &Converter{tempos: tempos, resolution: int64(division.TicksPerQuarter)}, nil
}

// CheckDivision reports an UnsupportedFormatError for divisions the
// converter can not handle.
func CheckDivision(division model.Division) error {
	if division.FrameBased || division.TicksPerQuarter <= 0 {
		return &UnsupportedFormatError{Division: division}
	}
	return nil
}

func (c *Converter) Resolution() int {
	return int(c.resolution)
}

// ElapsedSeconds returns the real time between two ticks. If fromTick is
// after toTick the result is negative.
func (c *Converter) ElapsedSeconds(fromTick, toTick int64) float64 {
	if fromTick > toTick {
		return -c.ElapsedSeconds(toTick, fromTick)
	}
	return float64(c.microTicks(fromTick, toTick)) / (float64(c.resolution) * 1e6)
}

// SecondsAt returns the real time of tick measured from tick 0.
func (c *Converter) SecondsAt(tick int64) float64 {
	if tick <= 0 {
		return 0
	}
	return c.ElapsedSeconds(0, tick)
}

// microTicks sums ticks*us/quarter over every segment overlapping
// [from, to). Keeping the sum integral means a single rounding at the end.
func (c *Converter) microTicks(from, to int64) int64 {
	segs := c.tempos.segments
	var total int64
	for i := c.tempos.index(from); i < len(segs) && from < to; i++ {
		end := to
		if i+1 < len(segs) && segs[i+1].StartTick < end {
			end = segs[i+1].StartTick
		}
		total += (end - from) * segs[i].MicrosPerQuarter
		from = end
	}
	return total
}
