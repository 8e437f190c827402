package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessErrorSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("creating appointment: %w", ErrConflict("time_conflict", "employee %d is busy", 3))

	assert.True(t, IsKind(err, KindConflict))
	assert.True(t, IsBusiness(err, "time_conflict"))
	assert.False(t, IsKind(err, KindValidation))

	be, ok := AsBusiness(err)
	assert.True(t, ok)
	assert.Equal(t, "employee 3 is busy", be.Message)
	assert.Equal(t, "time_conflict: employee 3 is busy", be.Error())
}

func TestErrBusinessDefaultsToValidation(t *testing.T) {
	err := ErrBusiness("invalid_state")
	assert.True(t, IsKind(err, KindValidation))
	assert.Equal(t, "invalid_state", err.Error())
}

func TestPlainErrorsAreNotBusiness(t *testing.T) {
	_, ok := AsBusiness(errors.New("connection reset"))
	assert.False(t, ok)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(KindValidation))
	assert.Equal(t, http.StatusNotFound, StatusFor(KindNotFound))
	assert.Equal(t, http.StatusConflict, StatusFor(KindConflict))
	assert.Equal(t, http.StatusForbidden, StatusFor(KindAuthorization))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(Kind("other")))
}
