package model

import (
	"github.com/jsphweid/matchalign/field"
	"github.com/jsphweid/matchalign/pitch"
)

type Kind uint8

const (
	NoMatch Kind = iota
	// Invalid lines matched a rule but could not be built; see Document diagnostics.
	Invalid
	ScoreOnly
	Pairing
	Deletion
	TrailingScoreNote
	Insertion
	Ornament
	Trill
	HammerBounce
	TrailingPlayedNote
	Info
	Meta
	Sustain
	Soft
)

var kindNames = [...]string{
	NoMatch:            "no_match",
	Invalid:            "invalid",
	ScoreOnly:          "snote",
	Pairing:            "pairing",
	Deletion:           "deletion",
	TrailingScoreNote:  "trailing_score_note",
	Insertion:          "insertion",
	Ornament:           "ornament",
	Trill:              "trill",
	HammerBounce:       "hammer_bounce",
	TrailingPlayedNote: "trailing_played_note",
	Info:               "info",
	Meta:               "meta",
	Sustain:            "sustain",
	Soft:               "soft",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	res := make([]Kind, len(kindNames))
	for i := range kindNames {
		res[i] = Kind(i)
	}
	return res
}

// Line is one classified input line. Which pointers are set depends on Kind.
type Line struct {
	Index int    `json:"index"`
	Kind  Kind   `json:"kind"`
	Text  string `json:"-"`

	Score  *ScoreNote  `json:"score,omitempty"`
	Played *PlayedNote `json:"played,omitempty"`
	Info   *InfoEntry  `json:"info,omitempty"`
	Meta   *MetaEntry  `json:"meta,omitempty"`
	Pedal  *PedalEvent `json:"pedal,omitempty"`

	// Anchor inside trill(...) or ornament(...)
	Ornament string `json:"ornament,omitempty"`
}

func (l *Line) HasScore() bool { return l.Score != nil }

func (l *Line) HasPlayed() bool { return l.Played != nil }

type ScoreNote struct {
	Anchor           string
	NoteName         string
	Modifier         string
	Octave           int
	Bar              field.Value
	Beat             field.Value
	Offset           field.Value
	Duration         field.Value
	DurationSymbolic string
	OnsetInBeats     float64
	OffsetInBeats    float64
	// ScoreAttributesList is an ordered set; empty, never nil.
	ScoreAttributesList []string

	midi    pitch.Midi
	midiErr error
}

func NewScoreNote(s ScoreNote) *ScoreNote {
	if s.ScoreAttributesList == nil {
		s.ScoreAttributesList = []string{}
	}
	s.midi, s.midiErr = pitch.ToMidi(s.Modifier, s.NoteName, s.Octave)
	return &s
}

func (s *ScoreNote) DurationInBeats() float64 { return s.OffsetInBeats - s.OnsetInBeats }

func (s *ScoreNote) MidiPitch() (pitch.Midi, error) { return s.midi, s.midiErr }

func (s *ScoreNote) HasAttribute(attr string) bool {
	for _, a := range s.ScoreAttributesList {
		if a == attr {
			return true
		}
	}
	return false
}

func (s *ScoreNote) IsGrace() bool { return s.HasAttribute("grace") }

// SymbolicDuration is the interpreted Duration token, falling back to
// DurationInBeats when the token is not numeric.
func (s *ScoreNote) SymbolicDuration() float64 {
	if d, ok := s.Duration.Number(); ok {
		return d
	}
	return s.DurationInBeats()
}

type PlayedNote struct {
	Number    field.Value
	NoteName  string
	Modifier  string
	Octave    int
	Onset     float64
	Offset    float64
	AdjOffset float64
	Velocity  int

	midi    pitch.Midi
	midiErr error
}

func NewPlayedNote(p PlayedNote) *PlayedNote {
	p.midi, p.midiErr = pitch.ToMidi(p.Modifier, p.NoteName, p.Octave)
	return &p
}

func (p *PlayedNote) MidiPitch() (pitch.Midi, error) { return p.midi, p.midiErr }

type InfoEntry struct {
	Attribute string      `json:"attribute"`
	Value     field.Value `json:"value"`
}

type MetaEntry struct {
	Attribute   string      `json:"attribute"`
	Value       string      `json:"value"`
	Bar         field.Value `json:"bar"`
	TimeInBeats field.Value `json:"time_in_beats"`
}

type PedalKind uint8

const (
	SustainPedal PedalKind = iota
	SoftPedal
)

func (k PedalKind) String() string {
	if k == SoftPedal {
		return "soft"
	}
	return "sustain"
}

type PedalEvent struct {
	Kind  PedalKind   `json:"-"`
	Time  field.Value `json:"time"`
	Value field.Value `json:"value"`
}

// NotePair is a score note aligned to its performance.
type NotePair struct {
	Score  *ScoreNote  `json:"score"`
	Played *PlayedNote `json:"played"`
}
