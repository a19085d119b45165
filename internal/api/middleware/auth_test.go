package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "sk_l****cdef", maskAPIKey("sk_live_abcdef"))
}

func TestValidKey(t *testing.T) {
	keys := []string{"k1", "k2"}
	assert.True(t, validKey(keys, "k2"))
	assert.False(t, validKey(keys, "k3"))
	assert.False(t, validKey(nil, ""))
}
