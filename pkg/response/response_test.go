package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestSuccessWritesEnvelope(t *testing.T) {
	c, w := testCtx()
	c.Set("request_id", "req-123")

	Success(c, http.StatusCreated, gin.H{"id": "v1"}, "created", nil)

	assert.Equal(t, http.StatusCreated, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(http.StatusCreated), body["statusCode"])
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "created", body["message"])
	assert.Equal(t, "req-123", body["request_id"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestErrorBuildsWithoutWriting(t *testing.T) {
	c, w := testCtx()

	resp := Error(c, http.StatusNotFound, "video not found", nil)

	assert.False(t, c.Writer.Written(), "Error must leave rendering to the boundary")
	assert.Empty(t, w.Body.String())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, resp.Success)
	assert.Equal(t, "video not found", resp.Message)
}

func TestErrorDefaultsStatus(t *testing.T) {
	c, _ := testCtx()
	resp := Error(c, 0, "oops", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
