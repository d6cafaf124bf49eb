package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/matchalign/matchfile"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"
)

func performance() *matchfile.Document {
	return matchfile.New("perf", []string{
		"info(midiClockUnits,500).",
		"info(midiClockRate,600000).",
		"info(timeSignature,3/4).",
		"snote(n1,[c,n],4,1:1,0,1/4,0.0,1.0,[s])-note(1,[c,n],4,0,500,500,80).",
		"snote(n2,[e,n],4,1:2,0,1/4,1.0,2.0,[s])-note(2,[e,n],4,500,1000,1000,70).",
		"insertion-note(3,[r,n],4,100,200,200,10).",
		"trill(n2)-note(4,[f,n],4,600,700,700,0).",
		"snote(n3,[g,n],4,1:3,0,1/4,2.0,3.0,[s])-deletion.",
		"sustain(0,127).",
		"soft(900,40).",
	})
}

type noteCounts struct {
	ons, offs                int
	firstOnTick, lastOffTick uint32
}

func countNotes(t *testing.T, s *smf.SMF) noteCounts {
	t.Helper()
	var res noteCounts
	for _, tr := range s.Tracks {
		var abs uint32
		for _, ev := range tr {
			abs += ev.Delta
			var ch, key, vel uint8
			switch {
			case ev.Message.GetNoteOn(&ch, &key, &vel):
				if res.ons == 0 {
					res.firstOnTick = abs
				}
				res.ons++
			case ev.Message.GetNoteOff(&ch, &key, &vel):
				res.offs++
				res.lastOffTick = abs
			}
		}
	}
	return res
}

func TestWritePerformance(t *testing.T) {
	var buf bytes.Buffer
	stats, err := WritePerformance(&buf, performance())

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(ExportStats{Notes: 3, Pedals: 2, Skipped: 1}, stats)

	s, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	assert.NoError(err)
	assert.Len(s.Tracks, 1)
	assert.Equal(smf.MetricTicks(500), s.TimeFormat)

	counts := countNotes(t, s)
	assert.Equal(3, counts.ons)
	assert.Equal(3, counts.offs)
	assert.Equal(uint32(0), counts.firstOnTick)
	assert.Equal(uint32(1000), counts.lastOffTick)
}

func TestWritePerformanceDefaults(t *testing.T) {
	var buf bytes.Buffer
	doc := matchfile.New("plain", []string{"insertion-note(1,[a,n],4,10,20,20,64)."})
	stats, err := WritePerformance(&buf, doc)
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.Notes)

	s, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	assert.Equal(t, smf.MetricTicks(480), s.TimeFormat)
}

func TestReadMidiFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perf.mid")
	f, err := os.Create(path)
	assert.NoError(t, err)
	_, err = WritePerformance(f, performance())
	assert.NoError(t, err)
	assert.NoError(t, f.Close())

	s, err := ReadMidiFile(path)
	assert.NoError(t, err)
	assert.Equal(t, 3, countNotes(t, s).ons)

	_, err = ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, err)
}
