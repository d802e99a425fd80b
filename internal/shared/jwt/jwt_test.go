package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeParse_RoundTrip(t *testing.T) {
	tok, err := Make(42)
	require.NoError(t, err)

	uid, err := Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)
}

func TestParse_Garbage(t *testing.T) {
	_, err := Parse("not-a-token")
	assert.Error(t, err)
}
