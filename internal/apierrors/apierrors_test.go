package apierrors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestKeyForStatus(t *testing.T) {
	require.Equal(t, KeyNotFound, KeyForStatus(http.StatusNotFound))
	require.Equal(t, KeyConflict, KeyForStatus(http.StatusConflict))
	// Unmapped statuses fall back to the unknown key
	require.Equal(t, KeyUnknown, KeyForStatus(http.StatusTeapot))
}

func TestRespond_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	NotFound(c, "company not found")

	require.Equal(t, http.StatusNotFound, w.Code)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, http.StatusNotFound, envelope.Error.Code)
	require.Equal(t, KeyNotFound, envelope.Error.Key)
	require.Equal(t, "company not found", envelope.Error.Message)
}

func TestRespond_DefaultMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Unauthorized(c, "")

	var envelope Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "Authentication required", envelope.Error.Message)
}
