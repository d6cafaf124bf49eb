package model

import "github.com/jsphweid/matchalign/field"

type ScoreTimesRequestBody struct {
	Times []float64 `json:"times"`
}

type InfoResponse struct {
	Attribute string      `json:"attribute"`
	Value     field.Value `json:"value"`
}

// NoteView is the JSON shape of a score or played note.
type NoteView struct {
	Line      int      `json:"line"`
	ID        string   `json:"id"`
	Pitch     *int     `json:"midi_pitch,omitempty"`
	Onset     float64  `json:"onset"`
	Offset    float64  `json:"offset"`
	Velocity  int      `json:"velocity,omitempty"`
	Attribute []string `json:"attributes,omitempty"`
}

type PairView struct {
	Score  NoteView `json:"score"`
	Played NoteView `json:"played"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

func NewScoreNoteView(line int, s *ScoreNote) NoteView {
	v := NoteView{
		Line:      line,
		ID:        s.Anchor,
		Onset:     s.OnsetInBeats,
		Offset:    s.OffsetInBeats,
		Attribute: s.ScoreAttributesList,
	}
	if mp, err := s.MidiPitch(); err == nil {
		v.Pitch = &mp.Number
	}
	return v
}

func NewPlayedNoteView(line int, p *PlayedNote) NoteView {
	v := NoteView{
		Line:     line,
		ID:       p.Number.String(),
		Onset:    p.Onset,
		Offset:   p.Offset,
		Velocity: p.Velocity,
	}
	if mp, err := p.MidiPitch(); err == nil {
		v.Pitch = &mp.Number
	}
	return v
}
