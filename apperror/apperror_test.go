package apperror

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("x").Status)
	assert.Equal(t, http.StatusUnprocessableEntity, Unprocessable("x").Status)
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("x").Status)
}

func TestStatusOfWrappedError(t *testing.T) {
	err := fmt.Errorf("placing order: %w", NotFound("Cart does not exist"))
	assert.Equal(t, http.StatusNotFound, StatusOf(err))

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "Cart does not exist", appErr.Message)
}

func TestStatusOfPlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.Wrap(errors.New("boom"), "loading cart")))
}

func TestWithCauseKeepsMessage(t *testing.T) {
	cause := errors.New("record not found")
	err := NotFound("There is no product with this ID").WithCause(cause)

	assert.Equal(t, "There is no product with this ID", err.Message)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Cause(err))
}
