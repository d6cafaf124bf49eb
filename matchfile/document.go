// Package matchfile holds a classified Match file and the queries derived
// from it. A Document never changes after New returns; derived results are
// computed on first use and cached, so a Document may be shared between
// goroutines.
package matchfile

import (
	"fmt"
	"sync"

	"github.com/jsphweid/matchalign/field"
	"github.com/jsphweid/matchalign/grammar"
	"github.com/jsphweid/matchalign/model"
)

// LineError is a line that matched a rule but could not be turned into a
// record. The line stays in the document as Kind Invalid.
type LineError struct {
	Line int
	Text string
	err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.err)
}

func (e LineError) Unwrap() error { return e.err }

type Document struct {
	name        string
	lines       []*model.Line
	diagnostics []LineError

	infoOnce sync.Once
	info     []*model.InfoEntry

	sustainOnce sync.Once
	sustain     []*model.PedalEvent

	softOnce sync.Once
	soft     []*model.PedalEvent

	pairsOnce sync.Once
	pairs     []model.NotePair

	scoreOnce  sync.Once
	scoreLines []*model.Line

	onsetOnce  sync.Once
	firstOnset float64
	hasOnset   bool

	tsOnce         sync.Once
	timeSignatures []TimeSignature

	intervalsOnce sync.Once
	intervals     []*model.Line

	voiceMu sync.Mutex
	voices  map[voiceKey][]*model.Line
}

// New classifies every line. The result always has len(lines) records, one
// per input line, in input order.
func New(name string, lines []string) *Document {
	doc := &Document{
		name:  name,
		lines: make([]*model.Line, len(lines)),
	}
	for i, text := range lines {
		line, err := grammar.Classify(i, text)
		if err != nil {
			doc.diagnostics = append(doc.diagnostics, LineError{Line: i, Text: text, err: err})
		}
		doc.lines[i] = line
	}
	return doc
}

func (d *Document) Name() string { return d.name }

func (d *Document) Len() int { return len(d.lines) }

// Lines returns every record including NoMatch and Invalid ones.
func (d *Document) Lines() []*model.Line { return d.lines }

// Diagnostics lists lines that were quarantined during classification.
func (d *Document) Diagnostics() []LineError { return d.diagnostics }

// Counts returns the number of records per kind.
func (d *Document) Counts() map[model.Kind]int {
	res := make(map[model.Kind]int)
	for _, l := range d.lines {
		res[l.Kind]++
	}
	return res
}

func (d *Document) InfoEntries() []*model.InfoEntry {
	d.infoOnce.Do(func() {
		for _, l := range d.lines {
			if l.Kind == model.Info {
				d.info = append(d.info, l.Info)
			}
		}
	})
	return d.info
}

// Info returns the value of the first info line for attribute.
func (d *Document) Info(attribute string) (field.Value, bool) {
	for _, e := range d.InfoEntries() {
		if e.Attribute == attribute {
			return e.Value, true
		}
	}
	return field.Value{}, false
}

func (d *Document) MetaEntries(attribute string) []*model.MetaEntry {
	var res []*model.MetaEntry
	for _, l := range d.lines {
		if l.Kind == model.Meta && l.Meta.Attribute == attribute {
			res = append(res, l.Meta)
		}
	}
	return res
}

func (d *Document) SustainEvents() []*model.PedalEvent {
	d.sustainOnce.Do(func() { d.sustain = d.pedals(model.Sustain) })
	return d.sustain
}

func (d *Document) SoftPedalEvents() []*model.PedalEvent {
	d.softOnce.Do(func() { d.soft = d.pedals(model.Soft) })
	return d.soft
}

func (d *Document) pedals(kind model.Kind) []*model.PedalEvent {
	var res []*model.PedalEvent
	for _, l := range d.lines {
		if l.Kind == kind {
			res = append(res, l.Pedal)
		}
	}
	return res
}

func (d *Document) NotePairs() []model.NotePair {
	d.pairsOnce.Do(func() {
		for _, l := range d.lines {
			if l.Kind == model.Pairing {
				d.pairs = append(d.pairs, model.NotePair{Score: l.Score, Played: l.Played})
			}
		}
	})
	return d.pairs
}

// PlayedNotes returns every performed note whatever its role.
func (d *Document) PlayedNotes() []*model.PlayedNote {
	var res []*model.PlayedNote
	for _, l := range d.lines {
		if l.Played != nil {
			res = append(res, l.Played)
		}
	}
	return res
}

// ScoreLines returns the lines carrying a score note, in document order.
func (d *Document) ScoreLines() []*model.Line {
	d.scoreOnce.Do(func() {
		for _, l := range d.lines {
			if l.Score != nil {
				d.scoreLines = append(d.scoreLines, l)
			}
		}
	})
	return d.scoreLines
}

func (d *Document) ScoreNoteIndices() []int {
	sl := d.ScoreLines()
	res := make([]int, len(sl))
	for i, l := range sl {
		res[i] = l.Index
	}
	return res
}

// FirstOnset is the smallest score onset in beats; false without score notes.
func (d *Document) FirstOnset() (float64, bool) {
	d.onsetOnce.Do(func() {
		for _, l := range d.ScoreLines() {
			if !d.hasOnset || l.Score.OnsetInBeats < d.firstOnset {
				d.firstOnset = l.Score.OnsetInBeats
				d.hasOnset = true
			}
		}
	})
	return d.firstOnset, d.hasOnset
}
