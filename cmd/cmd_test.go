package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/jsphweid/matchalign/chord"
	"github.com/jsphweid/matchalign/file"
	"github.com/stretchr/testify/assert"
)

func TestInspect(t *testing.T) {
	doc, err := file.Load(filepath.Join("testdata", "mozart.match"))
	assert.NoError(t, err)

	var buf bytes.Buffer
	inspect(&buf, doc)
	out := buf.String()
	assert.Contains(t, out, "lines: 17\n")
	assert.Contains(t, out, "  pairing: 4\n")
	assert.Contains(t, out, "info piece: sonata\n")
	assert.Contains(t, out, "time signature 2/4 at beat 3\n")
	assert.Contains(t, out, "highest voice: 3 notes\n")
}

func TestReport(t *testing.T) {
	docs, err := file.LoadMany(context.Background(), filepath.Join("testdata", "mozart.match"))
	assert.NoError(t, err)

	var buf bytes.Buffer
	report(&buf, analyzeFiles(docs))
	out := buf.String()
	assert.Contains(t, out, "numFiles: 1\n")
	assert.Contains(t, out, "numLines: 17\n")
	assert.Contains(t, out, "numPairs: 4\n")
	assert.Contains(t, out, "  deletion: 1\n")
	assert.NotContains(t, out, "quarantined")
}

func TestPrintChords(t *testing.T) {
	doc, err := file.Load(filepath.Join("testdata", "mozart.match"))
	assert.NoError(t, err)

	var buf bytes.Buffer
	printChords(&buf, chord.AtScoreTimes(doc, chord.BeatGrid(doc, 1)))
	assert.Equal(t, "0\t64-72\n1\t66-74\n2\t76\n", buf.String())
}

func TestExport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "mozart.mid")
	assert.NoError(t, export(filepath.Join("testdata", "mozart.match"), out))
	assert.FileExists(t, out)
}
