//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jsphweid/matchalign/cmd"
	"github.com/jsphweid/matchalign/model"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	if err := cmd.LoadServeFile("../cmd/testdata/mozart.match"); err != nil {
		panic(err.Error())
	}

	exitVal := m.Run()

	os.Exit(exitVal)
}

func createScoreTimesReqBody(times ...float64) io.Reader {
	data, err := json.Marshal(model.ScoreTimesRequestBody{Times: times})
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func TestScoreTimesE2E(t *testing.T) {
	server := httptest.NewServer(cmd.NewRouter())
	defer server.Close()

	resp, err := http.Post(server.URL+"/at", "application/json", createScoreTimesReqBody(0.5, 1.5))
	if err != nil {
		panic(err.Error())
	}
	defer resp.Body.Close()

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var res [][]model.NoteView
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		panic(err.Error())
	}
	assert.Len(res, 2)
	assert.Equal([]string{"n1", "n2"}, []string{res[0][0].ID, res[0][1].ID})
	assert.Equal([]string{"n3", "n4"}, []string{res[1][0].ID, res[1][1].ID})
}

func TestCorsPreflightE2E(t *testing.T) {
	server := httptest.NewServer(cmd.NewRouter())
	defer server.Close()

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/pairs", nil)
	req.Header.Set("Origin", "http://example.com")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		panic(err.Error())
	}
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
