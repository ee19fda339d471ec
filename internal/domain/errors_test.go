package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeUnauthenticated, CodeOf(Unauthenticated("x")))
	assert.Equal(t, CodeForbidden, CodeOf(Forbidden("x")))
	assert.Equal(t, CodeNotFound, CodeOf(NotFound("x")))
	assert.Equal(t, CodeConflict, CodeOf(Conflict("x")))
	assert.Equal(t, CodeStoreFailure, CodeOf(StoreFailure("x")))
	assert.Equal(t, CodeBadRequest, CodeOf(BadRequest("x")))

	assert.Empty(t, CodeOf(fmt.Errorf("plain")))
	assert.Empty(t, CodeOf(nil))
}

func TestCodeOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("handling intent: %w", Conflict("Webinar is already live"))
	assert.Equal(t, CodeConflict, CodeOf(wrapped))
}

func TestErrorMessage(t *testing.T) {
	err := NotFound("Stream not found")
	assert.Equal(t, "Stream not found", err.Error())
}
