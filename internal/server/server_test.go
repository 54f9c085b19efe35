package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aundre1/incentedge/internal/engine"
	"github.com/aundre1/incentedge/internal/server"
	"github.com/aundre1/incentedge/pkg/incentive"
	"github.com/aundre1/incentedge/pkg/testutil"
)

func newTestHandler() http.Handler {
	return server.NewHandler(zap.NewNop(), 0, "test")
}

func evaluateRequest(t *testing.T, input engine.Input) *http.Request {
	t.Helper()
	body, err := json.Marshal(input)
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, "/api/evaluate", bytes.NewReader(body))
}

func TestHandleEvaluate(t *testing.T) {
	input := engine.Input{
		Project:  testutil.SampleProject(),
		Programs: []incentive.IncentiveProgram{testutil.SampleProgram()},
		Config:   engine.Config{EvaluationDate: testutil.FixedEvaluationDate},
	}

	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, evaluateRequest(t, input))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var output engine.Output
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &output))
	require.Len(t, output.Matches, 1)
	assert.True(t, output.Matches[0].Qualified)
	assert.Equal(t, "prog-ny-green", output.Matches[0].ProgramID)
	assert.Equal(t, 1_050_000.0, output.Matches[0].EstimatedValue)
	assert.Equal(t, "2025-06-15", output.Meta.EvaluationDate)
}

func TestHandleEvaluateMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/evaluate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleEvaluateMalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/evaluate", strings.NewReader("{not json"))
	newTestHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "malformed request")
}

func TestHandleEvaluateUnknownFieldRejected(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/evaluate",
		strings.NewReader(`{"project": {"id": "p"}, "programs": [], "surprise": true}`))
	newTestHandler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleEvaluateInvalidProject(t *testing.T) {
	project := testutil.SampleProject()
	project.TotalUnits = -10
	input := engine.Input{Project: project, Programs: []incentive.IncentiveProgram{testutil.SampleProgram()}}

	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, evaluateRequest(t, input))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleEvaluateInvalidProgram(t *testing.T) {
	program := testutil.SampleProgram()
	program.Category = "galactic"
	input := engine.Input{Project: testutil.SampleProject(), Programs: []incentive.IncentiveProgram{program}}

	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, evaluateRequest(t, input))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleEvaluateBodyTooLarge(t *testing.T) {
	h := server.NewHandler(zap.NewNop(), 64, "test")
	input := engine.Input{
		Project:  testutil.SampleProject(),
		Programs: []incentive.IncentiveProgram{testutil.SampleProgram()},
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, evaluateRequest(t, input))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleVersion(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "test", resp["version"])
}

func TestHandleVersionMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/version", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandlerDefaultVersion(t *testing.T) {
	h := server.NewHandler(zap.NewNop(), 0, "   ")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["version"])
	assert.NotEqual(t, "   ", resp["version"])
}
