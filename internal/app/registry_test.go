package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()
	assert.Zero(t, r.Len())

	conn := &fakeConn{}
	id := r.Register(conn)
	require.NotEmpty(t, id)
	assert.Equal(t, 1, r.Len())

	got, ok := r.Get(id)
	require.True(t, ok)
	assert.Same(t, conn, got.(*fakeConn))

	r.Unregister(id)
	_, ok = r.Get(id)
	assert.False(t, ok)
	assert.Zero(t, r.Len())

	// Repeated unregister is a no-op.
	r.Unregister(id)
	assert.Zero(t, r.Len())
}

func TestRegistryIDsAreUnique(t *testing.T) {
	r := NewRegistry()
	a := r.Register(&fakeConn{})
	b := r.Register(&fakeConn{})
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, r.Len())
}
