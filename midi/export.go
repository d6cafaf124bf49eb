package midi

import (
	"io"
	"math"
	"sort"

	"github.com/jsphweid/matchalign/constants"
	"github.com/jsphweid/matchalign/matchfile"
	"github.com/jsphweid/matchalign/model"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type ExportStats struct {
	Notes   int
	Pedals  int
	Skipped int
}

type timedEvent struct {
	tick      uint32
	isNoteOff bool
	msg       []byte
}

// clock reads the performance resolution and tempo from the info lines.
func clock(doc *matchfile.Document) (units uint16, microsPerQuarter float64) {
	units, microsPerQuarter = constants.DefaultMidiClockUnits, constants.DefaultMidiClockRate
	if v, ok := doc.Info(constants.MidiClockUnitsAttribute); ok {
		if n, ok := v.Number(); ok && n >= 1 && n <= math.MaxUint16 {
			units = uint16(n)
		}
	}
	if v, ok := doc.Info(constants.MidiClockRateAttribute); ok {
		if n, ok := v.Number(); ok && n > 0 {
			microsPerQuarter = n
		}
	}
	return units, microsPerQuarter
}

func toTick(t float64) uint32 {
	if t <= 0 || math.IsNaN(t) {
		return 0
	}
	if t >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(math.Round(t))
}

func clamp7(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return uint8(v)
}

func noteEvents(p *model.PlayedNote) []timedEvent {
	mp, err := p.MidiPitch()
	if err != nil || p.NoteName == "r" {
		return nil
	}
	key := clamp7(mp.Number)
	vel := clamp7(p.Velocity)
	if vel == 0 {
		vel = 1
	}
	on, off := toTick(p.Onset), toTick(p.Offset)
	if off < on {
		off = on
	}
	return []timedEvent{
		{tick: on, msg: gomidi.NoteOn(0, key, vel)},
		{tick: off, isNoteOff: true, msg: gomidi.NoteOff(0, key)},
	}
}

func pedalEvent(p *model.PedalEvent) (timedEvent, bool) {
	t, ok := p.Time.Number()
	if !ok {
		return timedEvent{}, false
	}
	v, ok := p.Value.Number()
	if !ok {
		return timedEvent{}, false
	}
	controller := uint8(constants.SustainController)
	if p.Kind == model.SoftPedal {
		controller = constants.SoftController
	}
	return timedEvent{tick: toTick(t), msg: gomidi.ControlChange(0, controller, clamp7(int(v)))}, true
}

// WritePerformance writes the performed notes and pedal changes of doc as a
// single track Standard MIDI File. Onsets are taken as clock units of the
// file's midiClockUnits resolution.
func WritePerformance(w io.Writer, doc *matchfile.Document) (ExportStats, error) {
	var stats ExportStats
	var events []timedEvent
	for _, p := range doc.PlayedNotes() {
		evs := noteEvents(p)
		if evs == nil {
			stats.Skipped++
			continue
		}
		stats.Notes++
		events = append(events, evs...)
	}
	pedals := append(append([]*model.PedalEvent{}, doc.SustainEvents()...), doc.SoftPedalEvents()...)
	for _, p := range pedals {
		ev, ok := pedalEvent(p)
		if !ok {
			stats.Skipped++
			continue
		}
		stats.Pedals++
		events = append(events, ev)
	}

	// prioritize smaller tick values then note off
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].isNoteOff && !events[j].isNoteOff
	})

	units, microsPerQuarter := clock(doc)
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(units)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(doc.Name()))
	tr.Add(0, smf.MetaTempo(60000000/microsPerQuarter))
	if ts := doc.TimeSignatures(); len(ts) > 0 && ts[0].Meter.Denominator > 0 {
		m := ts[0].Meter
		tr.Add(0, smf.MetaMeter(clamp7(m.Numerator), clamp7(m.Denominator)))
	}
	var last uint32
	for _, ev := range events {
		tr.Add(ev.tick-last, ev.msg)
		last = ev.tick
	}
	tr.Close(0)

	if err := s.Add(tr); err != nil {
		return stats, err
	}
	if _, err := s.WriteTo(w); err != nil {
		return stats, err
	}
	return stats, nil
}
