package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medflow/translation-backend/internal/translation/domain"
	"github.com/medflow/translation-backend/internal/translation/service"
	"github.com/medflow/translation-backend/internal/translation/translator"
	"github.com/medflow/translation-backend/pkg/logger"
	"github.com/medflow/translation-backend/pkg/metrics"
	"github.com/medflow/translation-backend/pkg/testutil"
)

func newTestRouter(tr translator.Translator) (*chi.Mux, *metrics.Metrics) {
	log := logger.New("translation-service-test", "development")
	m := metrics.New()
	svc := service.New(service.Config{
		Translator: tr,
		Workers:    2,
		Metrics:    m,
		Logger:     log,
	})

	h := NewHandler(svc, nil, m, log)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r, m
}

func postJSON(t *testing.T, r http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestTranslate(t *testing.T) {
	r, _ := newTestRouter(testutil.UpperTranslator())

	rec := postJSON(t, r, "/api/v1/translations", TranslateRequest{
		Summary:        testutil.SampleSummary(),
		TargetLanguage: "spanish",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var resp TranslateResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))

	assert.Equal(t, "Lisinopril 10mg", resp.Summary.Medications[1].Name)
	assert.Contains(t, resp.Summary.CareInstructions, "Metformin 500mg")
	assert.Equal(t, domain.StatusTranslated, resp.Outcome.Status)
	assert.Contains(t, resp.Outcome.FieldsTranslated, "care_instructions")
	assert.NotEmpty(t, resp.Outcome.TranslationNotice)
}

func TestTranslate_MissingTargetLanguage(t *testing.T) {
	r, _ := newTestRouter(testutil.EchoTranslator())

	rec := postJSON(t, r, "/api/v1/translations", TranslateRequest{
		Summary: testutil.MinimalSummary(),
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestTranslate_UnsupportedLanguage(t *testing.T) {
	r, _ := newTestRouter(testutil.EchoTranslator())

	rec := postJSON(t, r, "/api/v1/translations", TranslateRequest{
		Summary:        testutil.MinimalSummary(),
		TargetLanguage: "klingon",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestTranslate_InvalidBody(t *testing.T) {
	r, _ := newTestRouter(testutil.EchoTranslator())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/translations", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerify(t *testing.T) {
	r, _ := newTestRouter(testutil.EchoTranslator())

	original := testutil.SampleSummary()
	tampered := original.Clone()
	tampered.Medications[0].DosageAmount = "9999"

	rec := postJSON(t, r, "/api/v1/translations/verify", VerifyRequest{
		Original:   original,
		Translated: tampered,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)

	var report service.ValidationReport
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.False(t, report.Safe)
	assert.False(t, report.MedicationsPreserved)
	assert.True(t, report.LabValuesPreserved)
}

func TestLanguages(t *testing.T) {
	r, _ := newTestRouter(testutil.EchoTranslator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/translations/languages", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)

	var data struct {
		Languages []string `json:"languages"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, []string{"mandarin", "spanish"}, data.Languages)
}

func TestStats(t *testing.T) {
	r, m := newTestRouter(testutil.EchoTranslator())

	postJSON(t, r, "/api/v1/translations", TranslateRequest{
		Summary:        testutil.MinimalSummary(),
		TargetLanguage: "spanish",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/translations/stats", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)

	var snap metrics.Snapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.EqualValues(t, 1, snap.Runs)
	assert.Equal(t, m.Snapshot().Runs, snap.Runs)
}

func TestListAudit_NotConfigured(t *testing.T) {
	r, _ := newTestRouter(testutil.EchoTranslator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/translations/audit", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
