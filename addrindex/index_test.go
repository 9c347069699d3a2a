package addrindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLookupDelete(t *testing.T) {
	tests := []struct {
		name string
		addr int
		cls  int
		slot int
	}{
		{"zero address", 0, 0, 0},
		{"mid arena", 1024, 2, 5},
		{"deep slot", 4096, 5, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := New()
			ix.Set(tt.addr, tt.cls, tt.slot)

			class, slot, ok := ix.Lookup(tt.addr)
			require.True(t, ok)
			assert.Equal(t, tt.cls, class)
			assert.Equal(t, tt.slot, slot)

			ix.Delete(tt.addr)
			_, _, ok = ix.Lookup(tt.addr)
			assert.False(t, ok)
		})
	}
}

func TestLookupMissingAddressNotFound(t *testing.T) {
	ix := New()
	_, _, ok := ix.Lookup(42)
	assert.False(t, ok)
}

func TestSetOverwritesPriorLocation(t *testing.T) {
	ix := New()
	ix.Set(100, 1, 1)
	ix.Set(100, 2, 9)

	class, slot, ok := ix.Lookup(100)
	require.True(t, ok)
	assert.Equal(t, 2, class)
	assert.Equal(t, 9, slot)
}

func TestLen(t *testing.T) {
	ix := New()
	assert.Equal(t, 0, ix.Len())

	ix.Set(0, 0, 0)
	ix.Set(32, 0, 1)
	assert.Equal(t, 2, ix.Len())

	ix.Delete(0)
	assert.Equal(t, 1, ix.Len())
}
