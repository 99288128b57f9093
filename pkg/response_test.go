package pkg

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResponseBytes(t *testing.T) {
	rec := httptest.NewRecorder()

	testJson := `{"key":"val"}`
	WriteResponseBytes(rec, ContentType.JSON, []byte(testJson), http.StatusCreated)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, ContentType.JSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, testJson, rec.Body.String())
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, map[string]int{"deleted": 2}, http.StatusOK)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":2}`, rec.Body.String())
}

func TestWriteJSON_Unmarshalable(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, make(chan int), http.StatusOK)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
