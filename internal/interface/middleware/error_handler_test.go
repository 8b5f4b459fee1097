package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamvault/streamvault/pkg/apperror"
)

func boundaryEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	logger := logrus.New()
	r.Use(RequestID())
	r.Use(ErrorHandler(logger))
	return r
}

func TestErrorHandlerRendersAppError(t *testing.T) {
	r := boundaryEngine()
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(apperror.NotFound("video not found"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(http.StatusNotFound), body["statusCode"])
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "video not found", body["message"])
	assert.NotEmpty(t, body["request_id"])
}

func TestErrorHandlerHidesUnknownErrors(t *testing.T) {
	r := boundaryEngine()
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: relation does not exist"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
	assert.NotContains(t, w.Body.String(), "relation")
}

func TestErrorHandlerLeavesWrittenResponsesAlone(t *testing.T) {
	r := boundaryEngine()
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"fine": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fine")
}

func TestErrorHandlerRendersValidationDetails(t *testing.T) {
	r := boundaryEngine()
	r.GET("/invalid", func(c *gin.Context) {
		_ = c.Error(apperror.BadRequest("invalid payload", map[string]string{"email": "must be a valid email"}))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/invalid", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must be a valid email")
}

func TestRecoveryRendersEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(logrus.New()))
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
	assert.NotContains(t, w.Body.String(), "boom")
}
