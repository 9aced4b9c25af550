// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eval

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.yaml.in/yaml/v3"
)

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	started := time.Date(2026, 8, 25, 9, 30, 0, 0, time.UTC)

	exps := Experiments()
	require.NoError(t, WriteManifest(path, started, 5, exps))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var m Manifest
	require.NoError(t, yaml.Unmarshal(data, &m))
	assert.True(t, started.Equal(m.StartedAt))
	assert.Equal(t, 5, m.RunsPerConfig)
	require.Len(t, m.Experiments, len(exps))

	assert.Equal(t, "lexical_only", m.Experiments[0].Name)
	assert.Equal(t, "additive", m.Experiments[0].Catalogue)
	assert.Equal(t, "lexical_length", m.Experiments[0].Groups)
}
