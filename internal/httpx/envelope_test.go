package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var e Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, http.StatusOK, "todo bien", map[string]any{"id": "1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	e := decode(t, rec)
	assert.True(t, e.Success)
	assert.Equal(t, "todo bien", e.Message)
	assert.NotNil(t, e.Data)
}

func TestError_DataIsNull(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusForbidden, "Acceso denegado")

	assert.Equal(t, http.StatusForbidden, rec.Code)

	e := decode(t, rec)
	assert.False(t, e.Success)
	assert.Equal(t, "Acceso denegado", e.Message)
	assert.Nil(t, e.Data)
}

func TestEmptyList(t *testing.T) {
	rec := httptest.NewRecorder()
	EmptyList(rec, "No se encontraron elementos")

	e := decode(t, rec)
	assert.True(t, e.Success)
	assert.Equal(t, []any{}, e.Data)
}
