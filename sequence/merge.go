package sequence

import (
	"sort"

	"github.com/jsphweid/soundevents/model"
)

// Merge flattens all tracks into one stream ordered by tick. Messages on the
// same tick keep track order, then declaration order. Each message's Track
// is set to the index of the track it came from.
func Merge(tracks [][]model.RawMessage) []model.RawMessage {
	var n int
	for _, t := range tracks {
		n += len(t)
	}
	res := make([]model.RawMessage, 0, n)
	for i, t := range tracks {
		for _, msg := range t {
			msg.Track = i
			res = append(res, msg)
		}
	}
	// concatenation is already in (track, declaration) order
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Tick < res[j].Tick
	})
	return res
}
