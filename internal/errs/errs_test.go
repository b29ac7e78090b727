package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorsCarryCategory(t *testing.T) {
	assert.ErrorIs(t, ErrAlreadyMember, ErrConflict)
	assert.ErrorIs(t, ErrNoPendingRequest, ErrInvalidState)
	assert.ErrorIs(t, ErrNotApproved, ErrInvalidState)
	assert.ErrorIs(t, ErrNoPendingPage, ErrInvalidState)
	assert.ErrorIs(t, ErrNotMember, ErrNotFound)
	assert.ErrorIs(t, ErrAuthorNotFound, ErrNotFound)
}

func TestRetryableOnlyStoreTimeout(t *testing.T) {
	assert.True(t, Retryable(ErrStoreTimeout))
	assert.True(t, Retryable(fmt.Errorf("add count: %w", ErrStoreTimeout)))
	assert.False(t, Retryable(ErrConflict))
	assert.False(t, Retryable(ErrNotFound))
	assert.False(t, Retryable(errors.New("boom")))
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[error]int{
		ErrNotFound:        http.StatusNotFound,
		ErrNotMember:       http.StatusNotFound,
		ErrAlreadyMember:   http.StatusConflict,
		ErrNoPendingPage:   http.StatusUnprocessableEntity,
		ErrUnauthorized:    http.StatusForbidden,
		ErrStoreTimeout:    http.StatusServiceUnavailable,
		errors.New("boom"): http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, HTTPStatus(err), err.Error())
	}
}
