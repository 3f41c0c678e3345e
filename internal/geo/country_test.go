package geo

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_EmptyPathDisabled(t *testing.T) {
	r, err := Open("")
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.Equal(t, "", r.Country("127.0.0.1:5000"))
	assert.NoError(t, r.Close())
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.mmdb"))
	assert.Error(t, err)
}

func TestHostOnly(t *testing.T) {
	assert.Equal(t, "10.0.0.1", hostOnly("10.0.0.1:8080"))
	assert.Equal(t, "10.0.0.1", hostOnly("10.0.0.1"))
	assert.Equal(t, "::1", hostOnly("[::1]:443"))
	assert.Equal(t, "::1", hostOnly("[::1]"))
}
