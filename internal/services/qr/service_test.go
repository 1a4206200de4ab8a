package qr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDataURL(t *testing.T) {
	svc := New("http://localhost:3000/")

	out, err := svc.Generate("aB3xY9kQ2m")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "data:image/png;base64,"))
	assert.Greater(t, len(out), len("data:image/png;base64,"))
}

func TestGenerateCached(t *testing.T) {
	svc := New("http://localhost:3000")

	first, err := svc.Generate("aB3xY9kQ2m")
	require.NoError(t, err)
	second, err := svc.Generate("aB3xY9kQ2m")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateDistinctPerID(t *testing.T) {
	svc := New("http://localhost:3000")

	a, err := svc.Generate("aaaaaaaaaa")
	require.NoError(t, err)
	b, err := svc.Generate("bbbbbbbbbb")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
