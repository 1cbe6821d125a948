package faq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/faq-orchestrator/internal/eventlog"
	"github.com/Vovarama1992/faq-orchestrator/internal/httpx"
)

type fakeService struct {
	got string
	out []Suggestion
	err error
}

func (f *fakeService) Resolve(_ context.Context, q string) ([]Suggestion, error) {
	f.got = q
	return f.out, f.err
}

func serveQuery(t *testing.T, svc Service, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(svc, eventlog.New(nil)))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(body)))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleQueryOK(t *testing.T) {
	svc := &fakeService{out: []Suggestion{
		{Intent: "FAQ-A_B", IntentStr: "A B", Text: "text", Confidence: 0.8},
	}}

	rec := serveQuery(t, svc, `{"query":"hello"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", svc.got)
	assert.JSONEq(t, `[{"intent":"FAQ-A_B","intent_str":"A B","text":"text","confidence":0.8}]`, rec.Body.String())
}

func TestHandleQueryEmptyList(t *testing.T) {
	rec := serveQuery(t, &fakeService{out: []Suggestion{}}, `{"query":"hello"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandleQueryBadInput(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "missing", body: `{}`, wantMsg: "Missing 'query' parameter"},
		{name: "null", body: `{"query":null}`, wantMsg: "Missing 'query' parameter"},
		{name: "wrong type", body: `{"query":42}`, wantMsg: "Wrong 'query' parameter type"},
		{name: "not json", body: `query=1`, wantMsg: "invalid json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			rec := serveQuery(t, svc, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, "invalid_input", body["kind"])
			assert.Contains(t, body["error"], tt.wantMsg)
			assert.Empty(t, svc.got)
		})
	}
}

func TestHandleQueryServiceError(t *testing.T) {
	svc := &fakeService{err: httpx.ExternalService("assistant request failed", assertErr("404 Not Found"))}

	rec := serveQuery(t, svc, `{"query":"hello"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "external_service", body["kind"])
	assert.Equal(t, "assistant request failed: 404 Not Found", body["error"])
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
