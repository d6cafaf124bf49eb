package cmd

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/matchalign/matchfile"
	"github.com/jsphweid/matchalign/model"
	"github.com/stretchr/testify/assert"
)

func serveRequest(t *testing.T, method, target string, body io.Reader) *http.Response {
	t.Helper()
	if err := LoadServeFile(filepath.Join("testdata", "mozart.match")); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(method, target, body)
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	return w.Result()
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatal(err)
	}
}

func TestHandleInfo(t *testing.T) {
	resp := serveRequest(t, http.MethodGet, "/info/piece", nil)
	assert.Equal(t, 200, resp.StatusCode)

	var info struct {
		Attribute string `json:"attribute"`
		Value     string `json:"value"`
	}
	decode(t, resp, &info)
	assert.Equal(t, "piece", info.Attribute)
	assert.Equal(t, "sonata", info.Value)

	resp = serveRequest(t, http.MethodGet, "/info/composer", nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleNotePairs(t *testing.T) {
	resp := serveRequest(t, http.MethodGet, "/pairs", nil)
	assert.Equal(t, 200, resp.StatusCode)

	var pairs []model.PairView
	decode(t, resp, &pairs)
	assert.Len(t, pairs, 4)
	assert.Equal(t, "n1", pairs[0].Score.ID)
	assert.Equal(t, "1", pairs[0].Played.ID)
	assert.Equal(t, 72, *pairs[0].Score.Pitch)
	assert.Equal(t, 72, pairs[0].Played.Velocity)
}

func TestHandleTimeSignatures(t *testing.T) {
	resp := serveRequest(t, http.MethodGet, "/timesignatures", nil)

	var ts []matchfile.TimeSignature
	decode(t, resp, &ts)
	assert.Equal(t, []matchfile.TimeSignature{
		{Onset: 0, Meter: matchfile.Meter{Numerator: 3, Denominator: 4}},
		{Onset: 3, Meter: matchfile.Meter{Numerator: 2, Denominator: 4}},
	}, ts)
}

func TestHandleVoice(t *testing.T) {
	resp := serveRequest(t, http.MethodGet, "/voice", nil)

	var voice []model.NoteView
	decode(t, resp, &voice)
	assert.Len(t, voice, 3)
	assert.Equal(t, []int{6, 8, 11}, []int{voice[0].Line, voice[1].Line, voice[2].Line})
}

func TestHandleScoreTimes(t *testing.T) {
	resp := serveRequest(t, http.MethodPost, "/at", strings.NewReader(`{"times":[2.5,0.5]}`))
	assert.Equal(t, 200, resp.StatusCode)

	var res [][]model.NoteView
	decode(t, resp, &res)
	assert.Len(t, res, 2)
	assert.Len(t, res[0], 1)
	assert.Equal(t, "n5", res[0][0].ID)
	assert.Len(t, res[1], 2)

	resp = serveRequest(t, http.MethodPost, "/at", strings.NewReader(`not json`))
	assert.Equal(t, 400, resp.StatusCode)
}
