package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	err := New(ErrorTypeNotFound, 404, "profile %q not found", "ghost")
	assert.Equal(t, `not_found error (code 404): profile "ghost" not found`, err.Error())
}

func TestIsTransport(t *testing.T) {
	assert.True(t, IsTransport(ErrorTypeTimeout))
	assert.True(t, IsTransport(ErrorTypeConnection))
	assert.False(t, IsTransport(ErrorTypeNotFound))
	assert.False(t, IsTransport(ErrorTypeStrategy))
	assert.False(t, IsTransport(ErrorTypeParsing))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrorTypeTimeout))
	assert.True(t, IsRetryable(ErrorTypeConnection))
	assert.True(t, IsRetryable(ErrorTypeStrategy))
	assert.False(t, IsRetryable(ErrorTypeNotFound))
	assert.False(t, IsRetryable(ErrorTypeParsing))
	assert.False(t, IsRetryable(ErrorTypeOther))
}

func TestIsRetryableStatusCode(t *testing.T) {
	retryable := []int{0, 429, 500, 502, 503, 504, 599}
	for _, code := range retryable {
		assert.True(t, IsRetryableStatusCode(code), code)
	}

	permanent := []int{200, 301, 400, 401, 403, 404}
	for _, code := range permanent {
		assert.False(t, IsRetryableStatusCode(code), code)
	}
}
