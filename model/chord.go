package model

type Notes = []uint8

// Chord is a set of pitches sounding together. Time is in beats for score
// chords and in clock units for performed ones.
type Chord struct {
	Time  float64 `json:"time"`
	Notes Notes   `json:"notes"`
	Key   string  `json:"key"`
	// NOTE: only set for performed chords
	FormedByNoteOn bool `json:"formed_by_note_on,omitempty"`
}
