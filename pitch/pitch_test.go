package pitch

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMidi(t *testing.T) {
	cases := []struct {
		modifier, name string
		octave         int
		want           Midi
	}{
		{"#", "c", 4, Midi{61, 1}},
		{"", "c", 4, Midi{60, 0}},
		{"n", "A", 4, Midi{69, 9}},
		{"b", "c", 4, Midi{59, 11}},
		{"bb", "c", 4, Midi{58, 10}},
		{"x", "b", 3, Midi{61, 1}},
		{"##", "e", 5, Midi{78, 6}},
		{"", "r", 4, Midi{0, 0}},
		{"#", "r", 9, Midi{0, 0}},
	}
	for _, c := range cases {
		name := fmt.Sprintf("%s%s%d", c.name, c.modifier, c.octave)
		t.Run(name, func(t *testing.T) {
			got, err := ToMidi(c.modifier, c.name, c.octave)
			assert.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestToMidiUnknownSymbol(t *testing.T) {
	_, err := ToMidi("?", "c", 4)
	assert.True(t, errors.Is(err, ErrUnknownSymbol))

	var use *UnknownSymbolError
	assert.True(t, errors.As(err, &use))
	assert.Equal(t, "modifier", use.Field)

	_, err = ToMidi("", "h", 4)
	assert.True(t, errors.As(err, &use))
	assert.Equal(t, "name", use.Field)
	assert.Equal(t, "h", use.Symbol)
}
