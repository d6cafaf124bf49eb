package matchfile

import (
	"sort"

	"github.com/jsphweid/matchalign/model"
)

// LinesAtScoreTimes returns, for each time t in the order given, the score
// lines whose interval [onset, offset) contains t.
func (d *Document) LinesAtScoreTimes(times []float64) [][]*model.Line {
	ivs := d.sortedIntervals()

	order := make([]int, len(times))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return times[order[a]] < times[order[b]]
	})

	res := make([][]*model.Line, len(times))
	start := 0
	for _, ti := range order {
		t := times[ti]
		active := []*model.Line{}
		firstActive := -1
		for i := start; i < len(ivs); i++ {
			s := ivs[i].Score
			if s.OnsetInBeats > t && s.OffsetInBeats > t {
				break
			}
			if s.OnsetInBeats <= t && t < s.OffsetInBeats {
				if firstActive < 0 {
					firstActive = i
				}
				active = append(active, ivs[i])
			}
		}
		// Intervals before the first active one ended at or before t and
		// cannot contain any later time.
		if firstActive >= 0 {
			start = firstActive
		}
		res[ti] = active
	}
	return res
}

func (d *Document) sortedIntervals() []*model.Line {
	d.intervalsOnce.Do(func() {
		sl := d.ScoreLines()
		ivs := make([]*model.Line, len(sl))
		copy(ivs, sl)
		sort.SliceStable(ivs, func(i, j int) bool {
			a, b := ivs[i].Score, ivs[j].Score
			if a.OnsetInBeats != b.OnsetInBeats {
				return a.OnsetInBeats < b.OnsetInBeats
			}
			return a.OffsetInBeats < b.OffsetInBeats
		})
		d.intervals = ivs
	})
	return d.intervals
}

type voiceKey struct {
	highest      bool
	excludeGrace bool
}

func (d *Document) cachedVoice(key voiceKey, compute func() []*model.Line) []*model.Line {
	d.voiceMu.Lock()
	defer d.voiceMu.Unlock()
	if v, ok := d.voices[key]; ok {
		return v
	}
	v := compute()
	if d.voices == nil {
		d.voices = make(map[voiceKey][]*model.Line)
	}
	d.voices[key] = v
	return v
}

// SopranoVoice returns the score lines tagged "s" with a positive duration.
func (d *Document) SopranoVoice(excludeGrace bool) []*model.Line {
	return d.cachedVoice(voiceKey{excludeGrace: excludeGrace}, func() []*model.Line {
		return d.soprano(excludeGrace)
	})
}

func (d *Document) soprano(excludeGrace bool) []*model.Line {
	res := []*model.Line{}
	for _, l := range d.ScoreLines() {
		s := l.Score
		if !s.HasAttribute("s") || (excludeGrace && s.IsGrace()) {
			continue
		}
		if s.SymbolicDuration() > 0 {
			res = append(res, l)
		}
	}
	return res
}

// HighestVoice returns the soprano voice when the file marks one. Otherwise
// it builds a monophonic line greedily: candidates are ordered by onset with
// the higher pitch first on ties, and each is taken if it starts no earlier
// than the previously taken note ends.
func (d *Document) HighestVoice(excludeGrace bool) []*model.Line {
	if sop := d.SopranoVoice(excludeGrace); len(sop) > 0 {
		return sop
	}
	return d.cachedVoice(voiceKey{highest: true, excludeGrace: excludeGrace}, func() []*model.Line {
		return d.highest(excludeGrace)
	})
}

func (d *Document) highest(excludeGrace bool) []*model.Line {
	var cands []*model.Line
	for _, l := range d.ScoreLines() {
		s := l.Score
		if s.HasAttribute("staff2") || (excludeGrace && s.IsGrace()) || s.SymbolicDuration() == 0 {
			continue
		}
		cands = append(cands, l)
	}
	voice := []*model.Line{}
	if len(cands) == 0 {
		return voice
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return midiNumber(cands[i]) > midiNumber(cands[j])
	})
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Score.OnsetInBeats < cands[j].Score.OnsetInBeats
	})

	voice = append(voice, cands[0])
	for _, c := range cands[1:] {
		last := voice[len(voice)-1].Score
		if c.Score.OnsetInBeats >= last.OffsetInBeats {
			voice = append(voice, c)
		}
	}
	return voice
}

// midiNumber ranks unpitchable notes below every real pitch.
func midiNumber(l *model.Line) int {
	mp, err := l.Score.MidiPitch()
	if err != nil {
		return -1
	}
	return mp.Number
}
