package shortid

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	re := regexp.MustCompile(`^[0-9a-z]{9}$`)
	seen := make(map[string]struct{})

	for i := 0; i < 1000; i++ {
		id, err := New(9)
		require.NoError(t, err)
		assert.Regexp(t, re, id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 1000)
}

func TestNew_InvalidLength(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)
}
