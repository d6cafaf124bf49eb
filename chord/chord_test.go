package chord

import (
	"testing"

	"github.com/jsphweid/matchalign/matchfile"
	"github.com/jsphweid/matchalign/model"
	"github.com/stretchr/testify/assert"
)

func TestCreateChordKey(t *testing.T) {
	assert.Equal(t, "60-64-67", CreateChordKey([]uint8{67, 60, 64}))
	assert.Equal(t, "72", CreateChordKey([]uint8{72}))
	assert.Equal(t, "", CreateChordKey(nil))
}

func scoreDocument() *matchfile.Document {
	return matchfile.New("chords", []string{
		"snote(n1,[c,n],4,1:1,0,1/2,0.0,2.0,[])-note(1,[c,n],4,0,960,960,60).",
		"snote(n2,[e,n],4,1:1,0,1/4,0.0,1.0,[])-note(2,[e,n],4,0,480,480,60).",
		"snote(n3,[g,n],4,1:2,0,1/4,1.0,2.0,[])-note(3,[g,n],4,480,960,960,60).",
		"snote(n4,[c,n],4,1:2,0,1/4,1.0,2.0,[])-deletion.",
		"snote(n5,[r,n],4,1:3,0,1/4,2.0,3.0,[])-deletion.",
	})
}

func TestAtScoreTimes(t *testing.T) {
	chords := AtScoreTimes(scoreDocument(), []float64{1.5, 0.5, 2.5})

	assert := assert.New(t)
	assert.Len(chords, 3)
	assert.Equal(model.Chord{Time: 1.5, Notes: []uint8{60, 67}, Key: "60-67"}, chords[0])
	assert.Equal("60-64", chords[1].Key)
	assert.Equal(0.5, chords[1].Time)
	assert.Empty(chords[2].Notes)
	assert.Equal("", chords[2].Key)
}

func TestBeatGrid(t *testing.T) {
	assert.Equal(t, []float64{0, 1, 2}, BeatGrid(scoreDocument(), 1))
	assert.Nil(t, BeatGrid(scoreDocument(), 0))
	assert.Nil(t, BeatGrid(matchfile.New("empty", nil), 1))
}

func TestPerformed(t *testing.T) {
	chords := Performed(scoreDocument())

	assert := assert.New(t)
	assert.Len(chords, 2)
	assert.Equal(0.0, chords[0].Time)
	assert.Equal("60-64", chords[0].Key)
	assert.True(chords[0].FormedByNoteOn)
	assert.Equal(480.0, chords[1].Time)
	assert.Equal("60-67", chords[1].Key)
	assert.True(chords[1].FormedByNoteOn)
}

func TestPerformedReleasesRepeatedPitch(t *testing.T) {
	doc := matchfile.New("repeat", []string{
		"insertion-note(1,[c,n],4,0,100,100,60).",
		"insertion-note(2,[c,n],4,50,200,200,60).",
		"insertion-note(3,[e,n],4,100,300,300,60).",
	})
	chords := Performed(doc)

	assert := assert.New(t)
	assert.Len(chords, 4)
	assert.Equal("60", chords[0].Key)
	assert.Equal("60", chords[1].Key)
	assert.Equal(100.0, chords[2].Time)
	assert.Equal("60-64", chords[2].Key)
	assert.Equal(200.0, chords[3].Time)
	assert.Equal("64", chords[3].Key)
	assert.False(chords[3].FormedByNoteOn)
}
