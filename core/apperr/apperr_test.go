package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"app-webserver/core/apperr"

	"github.com/stretchr/testify/assert"
)

func TestKind_Status(t *testing.T) {
	tests := []struct {
		kind apperr.Kind
		want int
	}{
		{apperr.KindRouteNotFound, http.StatusNotFound},
		{apperr.KindNotFound, http.StatusNotFound},
		{apperr.KindBadRequest, http.StatusBadRequest},
		{apperr.KindConflict, http.StatusConflict},
		{apperr.KindUnauthorized, http.StatusUnauthorized},
		{apperr.KindNotSupported, http.StatusNotImplemented},
		{apperr.KindHandlerFailure, http.StatusInternalServerError},
		{apperr.KindArchiveCorrupt, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Status())
		})
	}
}

func TestError_IsMatchesKindSentinel(t *testing.T) {
	err := apperr.Wrap(apperr.KindArchiveCorrupt, errors.New("zip: not a valid zip file"), "cannot open bundle")
	wrapped := fmt.Errorf("start: %w", err)

	assert.ErrorIs(t, wrapped, apperr.ErrArchiveCorrupt)
	assert.NotErrorIs(t, wrapped, apperr.ErrStorageUnavailable)
	assert.Equal(t, apperr.KindArchiveCorrupt, apperr.KindOf(wrapped))
}

func TestError_AlreadyRunningIsInvalidState(t *testing.T) {
	assert.ErrorIs(t, apperr.ErrAlreadyRunning, apperr.ErrInvalidState)
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, apperr.Wrap(apperr.KindHandlerFailure, nil, "ignored"))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusTeapot, apperr.StatusOf(apperr.WithStatus(http.StatusTeapot, apperr.KindConflict, "brewing")))
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(apperr.New(apperr.KindNotFound, "profile %s", "x")))
	assert.Equal(t, http.StatusInternalServerError, apperr.StatusOf(errors.New("boom")))
	assert.Equal(t, apperr.KindHandlerFailure, apperr.KindOf(errors.New("boom")))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "profile x not found", apperr.MessageOf(apperr.New(apperr.KindNotFound, "profile %s not found", "x")))
	assert.Equal(t, "boom", apperr.MessageOf(errors.New("boom")))
}
