package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-fu/cin-rms/internal/session"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cin-rms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
node:
  socket_dir: /tmp/cin-test
  node_id: 7
  buffer_size: 4096
logger:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/cin-test", cfg.Node.SocketDir)
	assert.Equal(t, uint32(7), cfg.Node.NodeID)
	assert.Equal(t, 4096, cfg.Node.BufferSize)
	require.NotNil(t, cfg.Logger)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/var/run/cin", cfg.Node.SocketDir)
	assert.Equal(t, uint32(5), cfg.Node.NodeID)
	assert.Equal(t, session.DefaultBufferSize, cfg.Node.BufferSize)
	require.NotNil(t, cfg.Logger)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
node:
  node_id: 9
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint32(9), cfg.Node.NodeID)
	assert.Equal(t, "/var/run/cin", cfg.Node.SocketDir)
	assert.Equal(t, session.DefaultBufferSize, cfg.Node.BufferSize)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, `
node:
  socket_dir: /tmp/from-file
`)
	t.Setenv("CINRMS_NODE_SOCKET_DIR", "/tmp/from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env", cfg.Node.SocketDir)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
