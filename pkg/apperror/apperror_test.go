package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, BadRequest("x").Code)
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("x").Code)
	assert.Equal(t, http.StatusForbidden, Forbidden("x").Code)
	assert.Equal(t, http.StatusNotFound, NotFound("x").Code)
	assert.Equal(t, http.StatusConflict, Conflict("x").Code)
	assert.Equal(t, http.StatusInternalServerError, Internal("x").Code)
}

func TestFromPassesTypedErrorsThrough(t *testing.T) {
	src := NotFound("video not found")
	got := From(src)
	assert.Same(t, src, got)
}

func TestFromUnwrapsWrappedErrors(t *testing.T) {
	src := Forbidden("not yours")
	wrapped := fmt.Errorf("handler: %w", src)
	got := From(wrapped)
	assert.Equal(t, http.StatusForbidden, got.Code)
	assert.Equal(t, "not yours", got.Message)
}

func TestFromHidesUnknownErrors(t *testing.T) {
	got := From(errors.New("pq: connection reset"))
	assert.Equal(t, http.StatusInternalServerError, got.Code)
	assert.Equal(t, "internal server error", got.Message)
}

func TestFromNil(t *testing.T) {
	assert.Nil(t, From(nil))
}
