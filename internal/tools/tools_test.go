package tools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePrefersShareDir(t *testing.T) {
	share := t.TempDir()
	bin := filepath.Join(share, Mash)
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))

	got, err := Resolver{ShareDir: share}.Resolve(Mash)
	require.NoError(t, err)
	assert.Equal(t, bin, got)
}

func TestResolveMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	_, err := Resolver{ShareDir: t.TempDir()}.ResolveAll(Required...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'mash' was not found")
}
