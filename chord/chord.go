package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/matchalign/matchfile"
	"github.com/jsphweid/matchalign/model"
)

func CreateChordKey(notes []uint8) string {
	sort.Slice(notes, func(i, j int) bool {
		return notes[i] < notes[j]
	})
	var res string
	for i, note := range notes {
		res += fmt.Sprintf("%v", note)
		if i < len(notes)-1 {
			res += "-"
		}
	}
	return res
}

func uniqueNotes(notes []uint8) []uint8 {
	seen := make(map[uint8]bool)
	var res []uint8
	for _, n := range notes {
		if !seen[n] {
			seen[n] = true
			res = append(res, n)
		}
	}
	return res
}

// AtScoreTimes returns the pitches of the score notes sounding at each beat
// time. Notes without a known pitch and rests are left out.
func AtScoreTimes(doc *matchfile.Document, times []float64) []model.Chord {
	res := make([]model.Chord, len(times))
	for i, lines := range doc.LinesAtScoreTimes(times) {
		var notes []uint8
		for _, l := range lines {
			if l.Score.NoteName == "r" {
				continue
			}
			mp, err := l.Score.MidiPitch()
			if err != nil || mp.Number < 0 || mp.Number > 127 {
				continue
			}
			notes = append(notes, uint8(mp.Number))
		}
		notes = uniqueNotes(notes)
		res[i] = model.Chord{Time: times[i], Notes: notes, Key: CreateChordKey(notes)}
	}
	return res
}

// BeatGrid returns times from the first score onset up to the last offset.
func BeatGrid(doc *matchfile.Document, step float64) []float64 {
	first, ok := doc.FirstOnset()
	if !ok || step <= 0 {
		return nil
	}
	var last float64
	for _, l := range doc.ScoreLines() {
		if l.Score.OffsetInBeats > last {
			last = l.Score.OffsetInBeats
		}
	}
	var res []float64
	for i := 0; first+float64(i)*step < last; i++ {
		res = append(res, first+float64(i)*step)
	}
	return res
}

type reducedEvent struct {
	offset    float64
	isNoteOff bool
	note      uint8
}

func getChord(at float64, pressed map[uint8]bool, byNoteOn bool) model.Chord {
	var notes []uint8
	for note := range pressed {
		notes = append(notes, note)
	}
	return model.Chord{Time: at, Notes: notes, Key: CreateChordKey(notes), FormedByNoteOn: byNoteOn}
}

// Performed returns the chords formed by the performed notes, one for each
// timestamp at which the set of held pitches changes and is not empty.
func Performed(doc *matchfile.Document) []model.Chord {
	var reducedEvents []reducedEvent
	for _, p := range doc.PlayedNotes() {
		mp, err := p.MidiPitch()
		if err != nil || p.NoteName == "r" || mp.Number < 0 || mp.Number > 127 {
			continue
		}
		key := uint8(mp.Number)
		reducedEvents = append(reducedEvents,
			reducedEvent{offset: p.Onset, note: key},
			reducedEvent{offset: p.Offset, isNoteOff: true, note: key})
	}

	// prioritize smaller offset values then note off
	sort.SliceStable(reducedEvents, func(i, j int) bool {
		if reducedEvents[i].offset != reducedEvents[j].offset {
			return reducedEvents[i].offset < reducedEvents[j].offset
		}
		return reducedEvents[i].isNoteOff && !reducedEvents[j].isNoteOff
	})

	timestampToChord := make(map[float64]model.Chord)
	var timestamps []float64
	pressed := make(map[uint8]int)
	held := func() map[uint8]bool {
		res := make(map[uint8]bool, len(pressed))
		for k := range pressed {
			res[k] = true
		}
		return res
	}
	for _, evt := range reducedEvents {
		if _, ok := timestampToChord[evt.offset]; !ok {
			timestamps = append(timestamps, evt.offset)
		}
		if evt.isNoteOff {
			if pressed[evt.note]--; pressed[evt.note] <= 0 {
				delete(pressed, evt.note)
			}
			timestampToChord[evt.offset] = getChord(evt.offset, held(), false)
		} else {
			pressed[evt.note]++
			timestampToChord[evt.offset] = getChord(evt.offset, held(), true)
		}
	}

	var chords []model.Chord
	for _, ts := range timestamps {
		if c := timestampToChord[ts]; len(c.Notes) > 0 {
			chords = append(chords, c)
		}
	}
	return chords
}
