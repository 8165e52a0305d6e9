package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/compscan/internal/analysis"
)

type stubRunner struct {
	result *analysis.Result
	err    error

	gotAddress string
	gotRadius  float64
}

func (s *stubRunner) Run(_ context.Context, address string, radiusMiles float64) (*analysis.Result, error) {
	s.gotAddress = address
	s.gotRadius = radiusMiles
	return s.result, s.err
}

func TestHealthEndpoint(t *testing.T) {
	router := apiRouter(&stubRunner{}, 5)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestAnalyzeEndpoint(t *testing.T) {
	runner := &stubRunner{
		result: &analysis.Result{
			RunID:   "run-1",
			Address: "123 Main St",
			Summary: analysis.Summary{TotalCompetitors: 2},
		},
	}
	router := apiRouter(runner, 5)

	body := `{"address":"123 Main St","radius_miles":8}`
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "123 Main St", runner.gotAddress)
	assert.InDelta(t, 8.0, runner.gotRadius, 0.001)

	var got analysis.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, 2, got.Summary.TotalCompetitors)
}

func TestAnalyzeEndpoint_DefaultRadius(t *testing.T) {
	runner := &stubRunner{result: &analysis.Result{}}
	router := apiRouter(runner, 5)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"address":"123 Main St"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 5.0, runner.gotRadius, 0.001)
}

func TestAnalyzeEndpoint_BadRequests(t *testing.T) {
	router := apiRouter(&stubRunner{result: &analysis.Result{}}, 5)

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{not json`},
		{"missing address", `{"radius_miles":5}`},
		{"radius too small", `{"address":"x","radius_miles":0.5}`},
		{"radius too large", `{"address":"x","radius_miles":26}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAnalyzeEndpoint_RunnerError(t *testing.T) {
	runner := &stubRunner{err: eris.New("provider unavailable")}
	router := apiRouter(runner, 5)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"address":"123 Main St"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "analysis failed")
}
