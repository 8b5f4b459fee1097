package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupPayload struct {
	UserName string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

func bindJSON(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	var p signupPayload
	return c.ShouldBindJSON(&p)
}

func TestToDetailsUsesJSONFieldNames(t *testing.T) {
	Init()

	err := bindJSON(t, `{"username":"ab","email":"nope","password":"123"}`)
	require.Error(t, err)

	details := ToDetails(err)
	assert.Contains(t, details, "username")
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.Equal(t, "must be a valid email", details["email"])
}

func TestToDetailsMissingFields(t *testing.T) {
	Init()

	err := bindJSON(t, `{}`)
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "is required", details["username"])
	assert.Equal(t, "is required", details["email"])
	assert.Equal(t, "is required", details["password"])
}

type registerForm struct {
	UserName string `form:"username" binding:"required,username"`
	FullName string `form:"fullName" binding:"required"`
}

func TestToDetailsUsesFormFieldNames(t *testing.T) {
	Init()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("username=ab"))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	var f registerForm
	err := c.ShouldBind(&f)
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be 3-20 characters", details["username"])
	assert.Equal(t, "is required", details["fullName"])
}

func TestToDetailsInvalidJSON(t *testing.T) {
	err := bindJSON(t, `{"username": }`)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}

func TestToDetailsNil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}
