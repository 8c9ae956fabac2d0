package gmail

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestProviderErrorMessage(t *testing.T) {
	err := &ProviderError{Op: "get", MessageID: "abc123", Status: 404, Err: errors.New("not found")}
	assert.Equal(t, "gmail get abc123: status 404: not found", err.Error())

	err = &ProviderError{Op: "list", Err: errors.New("dial tcp: timeout")}
	assert.Equal(t, "gmail list: dial tcp: timeout", err.Error())
}

func TestProviderErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &ProviderError{Op: "list", Err: inner}
	assert.ErrorIs(t, err, inner)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, 0, statusOf(errors.New("plain")))
	assert.Equal(t, 429, statusOf(&googleapi.Error{Code: 429}))

	wrapped := &ProviderError{Op: "get", Err: &googleapi.Error{Code: 500}}
	assert.Equal(t, 500, statusOf(wrapped))
}
