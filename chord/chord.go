package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/soundevents/model"
)

// CreateChordKey returns the canonical key for a set of pitches, lowest
// first, e.g. "60-64-67". The input is not modified.
func CreateChordKey(notes []uint8) string {
	sorted := make([]uint8, len(notes))
	copy(sorted, notes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	var res string
	for i, note := range sorted {
		res += fmt.Sprintf("%v", note)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}

// Key is the chord key of a sound event. Doubled pitches (same pitch on
// two channels) are kept once.
func Key(e model.SoundEvent) string {
	seen := make(map[uint8]bool)
	var notes []uint8
	for _, p := range e.Pitches() {
		if !seen[p] {
			seen[p] = true
			notes = append(notes, p)
		}
	}
	return CreateChordKey(notes)
}

// ignore really short or really long chords
func isCountable(e model.SoundEvent) bool {
	return len(e.Notes) >= 2 && len(e.Notes) <= 16
}

type Count struct {
	Key   string
	Count int
	// Seconds is the summed duration of the chord's longest note.
	Seconds float64
}

// Histogram counts how often each chord occurs in events.
func Histogram(events []model.SoundEvent) []Count {
	byKey := make(map[string]*Count)
	for _, e := range events {
		if !isCountable(e) {
			continue
		}
		k := Key(e)
		c, ok := byKey[k]
		if !ok {
			c = &Count{Key: k}
			byKey[k] = c
		}
		c.Count++
		c.Seconds += longest(e)
	}

	res := make([]Count, 0, len(byKey))
	for _, c := range byKey {
		res = append(res, *c)
	}
	// most frequent first
	sort.Slice(res, func(i, j int) bool {
		if res[i].Count != res[j].Count {
			return res[i].Count > res[j].Count
		}
		return res[i].Key < res[j].Key
	})
	return res
}

func longest(e model.SoundEvent) float64 {
	var res float64
	for _, n := range e.Notes {
		if n.Duration > res {
			res = n.Duration
		}
	}
	return res
}
