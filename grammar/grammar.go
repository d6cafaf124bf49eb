// Package grammar classifies single Match file lines into typed records.
//
// A line is tried against the note patterns first, because compound lines
// such as "snote(...)-note(...)" or "insertion-note(...)" contain them as
// substrings. Only when neither snote nor note match are the single fact
// rules meta, info, sustain and soft tried, in that order.
package grammar

import (
	"regexp"
	"strings"

	"github.com/jsphweid/matchalign/field"
	"github.com/jsphweid/matchalign/model"
)

const (
	NotePattern = `note\(([^,]+),\[([^,]+),([^,]+)\],([^,]+),([^,]+),([^,]+),([^,]+),([^,]+)\)`
	// The attribute list is greedy so nested brackets stay inside it.
	SnotePattern   = `snote\(([^,]+),\[([^,]+),([^,]+)\],([^,]+),([^,]+):([^,]+),([^,]+),([^,]+),([^,]+),([^,]+),\[(.*)\]\)`
	MetaPattern    = `meta\(\s*([^,]*)\s*,\s*([^,]*)\s*,\s*([^,]*)\s*,\s*([^,]*)\s*\)\.`
	InfoPattern    = `info\(\s*([^,]+)\s*,\s*(.+)\s*\)\.`
	SustainPattern = `sustain\(\s*([^,]*)\s*,\s*([^,]*)\s*\)\.`
	SoftPattern    = `soft\(\s*([^,]*)\s*,\s*([^,]*)\s*\)\.`
)

var (
	noteRule = newRule("note", NotePattern,
		"Number", "NoteName", "Modifier", "Octave",
		"Onset", "Offset", "AdjOffset", "Velocity")
	snoteRule = newRule("snote", SnotePattern,
		"Anchor", "NoteName", "Modifier", "Octave",
		"Bar", "Beat", "Offset", "Duration",
		"OnsetInBeats", "OffsetInBeats", "ScoreAttributesList")
	metaRule    = newRule("meta", MetaPattern, "Attribute", "Value", "Bar", "TimeInBeats")
	infoRule    = newRule("info", InfoPattern, "Attribute", "Value")
	sustainRule = newRule("sustain", SustainPattern, "Time", "Value")
	softRule    = newRule("soft", SoftPattern, "Time", "Value")
)

const (
	deletionSuffix     = "-deletion."
	trailingSuffix     = "-trailing_score_note."
	insertionPrefix    = "insertion-"
	trailingNotePrefix = "trailing_played_note-"
	hammerBouncePrefix = "hammer_bounce-"
)

var (
	trillPrefix    = regexp.MustCompile(`^trill\(([^)]*)\)-$`)
	ornamentPrefix = regexp.MustCompile(`^ornament\(([^)]*)\)-$`)
)

// Classify turns one trimmed line into a record. index is the 0-based line
// position. A line no rule accepts yields Kind NoMatch and no error. When a
// rule matches but its fields cannot be built, the line has Kind Invalid and
// the error says why.
func Classify(index int, text string) (*model.Line, error) {
	line := &model.Line{Index: index, Kind: model.NoMatch, Text: text}
	err := classify(line)
	if err != nil {
		*line = model.Line{Index: index, Kind: model.Invalid, Text: text}
	}
	return line, err
}

func classify(line *model.Line) error {
	text := line.Text
	sm := snoteRule.match(text, 0)
	pos := 0
	if sm != nil {
		pos = sm.end()
	}
	nm := noteRule.match(text, pos)

	if sm != nil {
		score, err := buildScoreNote(sm)
		if err != nil {
			return err
		}
		line.Score = score
		rest := text[sm.end():]
		switch {
		case nm != nil:
			played, err := buildPlayedNote(nm)
			if err != nil {
				return err
			}
			line.Kind, line.Played = model.Pairing, played
		case rest == deletionSuffix:
			line.Kind = model.Deletion
		case rest == trailingSuffix:
			line.Kind = model.TrailingScoreNote
		default:
			line.Kind = model.ScoreOnly
		}
		return nil
	}

	if nm != nil {
		kind, anchor, ok := playedRole(text[:nm.start()])
		if !ok {
			return nil
		}
		played, err := buildPlayedNote(nm)
		if err != nil {
			return err
		}
		line.Kind, line.Played, line.Ornament = kind, played, anchor
		return nil
	}

	if m := metaRule.match(text, 0); m != nil {
		return buildMeta(line, m)
	}
	if m := infoRule.match(text, 0); m != nil {
		return buildInfo(line, m)
	}
	if m := sustainRule.match(text, 0); m != nil {
		return buildPedal(line, m, model.Sustain, model.SustainPedal)
	}
	if m := softRule.match(text, 0); m != nil {
		return buildPedal(line, m, model.Soft, model.SoftPedal)
	}
	return nil
}

// playedRole identifies the compound form from the text before a note.
func playedRole(prefix string) (kind model.Kind, anchor string, ok bool) {
	switch prefix {
	case insertionPrefix:
		return model.Insertion, "", true
	case trailingNotePrefix:
		return model.TrailingPlayedNote, "", true
	case hammerBouncePrefix:
		return model.HammerBounce, "", true
	}
	if m := trillPrefix.FindStringSubmatch(prefix); m != nil {
		return model.Trill, m[1], true
	}
	if m := ornamentPrefix.FindStringSubmatch(prefix); m != nil {
		return model.Ornament, m[1], true
	}
	return model.NoMatch, "", false
}

func buildScoreNote(m *match) (*model.ScoreNote, error) {
	g, err := m.groups()
	if err != nil {
		return nil, err
	}
	fb := fieldBuilder{rule: m.rule.name, groups: g}
	s := model.ScoreNote{
		Anchor:              g["Anchor"],
		NoteName:            g["NoteName"],
		Modifier:            g["Modifier"],
		Octave:              fb.integer("Octave"),
		Bar:                 fb.rational("Bar", false),
		Beat:                fb.rational("Beat", false),
		Offset:              fb.rational("Offset", false),
		Duration:            fb.rational("Duration", true),
		DurationSymbolic:    g["Duration"],
		OnsetInBeats:        fb.number("OnsetInBeats"),
		OffsetInBeats:       fb.number("OffsetInBeats"),
		ScoreAttributesList: attributeSet(g["ScoreAttributesList"]),
	}
	if fb.err != nil {
		return nil, fb.err
	}
	return model.NewScoreNote(s), nil
}

func buildPlayedNote(m *match) (*model.PlayedNote, error) {
	g, err := m.groups()
	if err != nil {
		return nil, err
	}
	fb := fieldBuilder{rule: m.rule.name, groups: g}
	p := model.PlayedNote{
		Number:    fb.rational("Number", false),
		NoteName:  g["NoteName"],
		Modifier:  g["Modifier"],
		Octave:    fb.integer("Octave"),
		Onset:     fb.number("Onset"),
		Offset:    fb.number("Offset"),
		AdjOffset: fb.number("AdjOffset"),
		Velocity:  fb.integer("Velocity"),
	}
	if fb.err != nil {
		return nil, fb.err
	}
	return model.NewPlayedNote(p), nil
}

func buildMeta(line *model.Line, m *match) error {
	g, err := m.groups()
	if err != nil {
		return err
	}
	line.Kind = model.Meta
	line.Meta = &model.MetaEntry{
		Attribute:   g["Attribute"],
		Value:       g["Value"],
		Bar:         field.InterpretNumeric(g["Bar"]),
		TimeInBeats: field.InterpretNumeric(g["TimeInBeats"]),
	}
	return nil
}

func buildInfo(line *model.Line, m *match) error {
	g, err := m.groups()
	if err != nil {
		return err
	}
	line.Kind = model.Info
	line.Info = &model.InfoEntry{
		Attribute: g["Attribute"],
		Value:     field.InterpretNumeric(g["Value"]),
	}
	return nil
}

func buildPedal(line *model.Line, m *match, kind model.Kind, pedal model.PedalKind) error {
	g, err := m.groups()
	if err != nil {
		return err
	}
	line.Kind = kind
	line.Pedal = &model.PedalEvent{
		Kind:  pedal,
		Time:  field.InterpretNumeric(g["Time"]),
		Value: field.InterpretNumeric(g["Value"]),
	}
	return nil
}

// attributeSet splits the bracketed list into an ordered set.
func attributeSet(list string) []string {
	res := []string{}
	if list == "" {
		return res
	}
	seen := make(map[string]bool)
	for _, a := range strings.Split(list, ",") {
		if seen[a] {
			continue
		}
		seen[a] = true
		res = append(res, a)
	}
	return res
}

// fieldBuilder keeps the first coercion error so a record can be built in
// one expression.
type fieldBuilder struct {
	rule   string
	groups map[string]string
	err    error
}

func (fb *fieldBuilder) fail(name string, err error) {
	if fb.err == nil {
		fb.err = &FieldError{Rule: fb.rule, Field: name, Token: fb.groups[name], err: err}
	}
}

func (fb *fieldBuilder) rational(name string, additions bool) field.Value {
	v, err := field.InterpretRational(fb.groups[name], additions)
	if err != nil {
		fb.fail(name, err)
	}
	return v
}

func (fb *fieldBuilder) number(name string) float64 {
	v := fb.rational(name, false)
	n, ok := v.Number()
	if !ok {
		fb.fail(name, nil)
	}
	return n
}

func (fb *fieldBuilder) integer(name string) int {
	v := fb.rational(name, false)
	switch {
	case v.Kind == field.Int:
		return int(v.Int)
	case v.Kind == field.Float && v.Float == float64(int(v.Float)):
		return int(v.Float)
	}
	fb.fail(name, nil)
	return 0
}
