package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("resolve: %w", ExternalService("assistant call failed", errors.New("404")))

	assert.Equal(t, KindExternalService, KindOf(wrapped))
	assert.Equal(t, KindInvalidInput, KindOf(InvalidInput("Missing '%s' parameter", "query")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Missing 'query' parameter", InvalidInput("Missing '%s' parameter", "query").Error())
	assert.Equal(t, "assistant call failed: 404", ExternalService("assistant call failed", errors.New("404")).Error())
	assert.Equal(t, "boom", Internal(errors.New("boom")).Error())
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, InvalidInput("Missing 'query' parameter"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_input", body["kind"])
	assert.Equal(t, "Missing 'query' parameter", body["error"])
}

func TestRecover(t *testing.T) {
	var seen any
	h := Recover(func(v any) { seen = v })(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaput")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "kaput", seen)
	assert.Contains(t, rec.Body.String(), `"kind":"internal"`)
	assert.Contains(t, rec.Body.String(), `"error":"kaput"`)
}
