package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomGenerators(t *testing.T) {
	digits, err := RandomDigits(6)
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9]{6}$`, digits)

	letters, err := RandomLetters(2)
	require.NoError(t, err)
	assert.Regexp(t, `^[A-Z]{2}$`, letters)

	alnum, err := RandomAlphanumeric(8)
	require.NoError(t, err)
	assert.Regexp(t, `^[A-Z0-9]{8}$`, alnum)
}
