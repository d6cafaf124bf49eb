package pitch

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownSymbol = errors.New("unknown pitch symbol")

type UnknownSymbolError struct {
	// Field is "name" or "modifier".
	Field  string
	Symbol string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("%s: note %s %q", ErrUnknownSymbol, e.Field, e.Symbol)
}

func (e *UnknownSymbolError) Unwrap() error { return ErrUnknownSymbol }

// Midi is an absolute MIDI note number with its pitch class.
type Midi struct {
	Number int
	Class  int
}

var diatonic = map[string]int{
	"c": 0, "d": 2, "e": 4, "f": 5, "g": 7, "a": 9, "b": 11,
}

var accidentals = map[string]int{
	"": 0, "b": -1, "bb": -2, "#": 1, "x": 2, "##": 2, "n": 0,
}

// ToMidi maps a spelled pitch to MIDI. Rests ("r") map to (0, 0).
func ToMidi(modifier, name string, octave int) (Midi, error) {
	if name == "r" {
		return Midi{}, nil
	}
	step, ok := diatonic[strings.ToLower(name)]
	if !ok {
		return Midi{}, &UnknownSymbolError{Field: "name", Symbol: name}
	}
	alter, ok := accidentals[modifier]
	if !ok {
		return Midi{}, &UnknownSymbolError{Field: "modifier", Symbol: modifier}
	}
	base := step + alter
	return Midi{
		Number: (octave+1)*12 + base,
		Class:  ((base % 12) + 12) % 12,
	}, nil
}
