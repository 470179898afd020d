package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		category ErrorCategory
		status   int
	}{
		{
			name:     "validation error",
			err:      NewValidationError("query cannot be empty"),
			category: CategoryValidation,
			status:   http.StatusBadRequest,
		},
		{
			name:     "not found error",
			err:      NewNotFoundError("GitHub user not found: ghost"),
			category: CategoryNotFound,
			status:   http.StatusNotFound,
		},
		{
			name:     "rate limit error",
			err:      NewRateLimitError(120),
			category: CategoryRateLimit,
			status:   http.StatusTooManyRequests,
		},
		{
			name:     "external api error",
			err:      NewExternalAPIError("github request failed", fmt.Errorf("connection refused")),
			category: CategoryExternalAPI,
			status:   http.StatusBadGateway,
		},
		{
			name:     "internal error",
			err:      NewInternalError("something broke", nil),
			category: CategoryInternal,
			status:   http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestRateLimitErrorMessage(t *testing.T) {
	err := NewRateLimitError(300)
	assert.Contains(t, err.Error(), "Resets in 300 seconds")
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")

	// Unknown reset instant drops the countdown but keeps the guidance.
	err = NewRateLimitError(-1)
	assert.NotContains(t, err.Error(), "Resets in")
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
}

func TestCategoryPredicates(t *testing.T) {
	notFound := NewNotFoundError("missing")
	rateLimited := NewRateLimitError(60)

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(rateLimited))
	assert.True(t, IsRateLimited(rateLimited))
	assert.False(t, IsRateLimited(notFound))

	// Wrapped errors are still recognized.
	wrapped := fmt.Errorf("fetch failed: %w", notFound)
	assert.True(t, IsNotFound(wrapped))

	assert.False(t, IsNotFound(fmt.Errorf("plain error")))
	assert.False(t, IsNotFound(nil))
}

func TestToAppError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.Nil(t, ToAppError(nil))
	})

	t.Run("app error is preserved", func(t *testing.T) {
		original := NewNotFoundError("missing")
		converted := ToAppError(original)
		assert.Same(t, original, converted)
	})

	t.Run("deadline exceeded becomes gateway timeout", func(t *testing.T) {
		converted := ToAppError(fmt.Errorf("fetch: %w", context.DeadlineExceeded))
		require.NotNil(t, converted)
		assert.Equal(t, http.StatusGatewayTimeout, converted.HTTPStatus)
	})

	t.Run("unknown error becomes internal", func(t *testing.T) {
		converted := ToAppError(fmt.Errorf("boom"))
		require.NotNil(t, converted)
		assert.Equal(t, CategoryInternal, converted.Category)
		assert.Equal(t, http.StatusInternalServerError, converted.HTTPStatus)
	})
}
