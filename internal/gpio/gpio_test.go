package gpio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/clambin/ledsequencer/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, testutils.InitGPIO(tmpDir, 4))

	l, err := Open(tmpDir, 4, Out)
	require.NoError(t, err)
	assert.Equal(t, 4, l.Number())
	assertContent(t, filepath.Join(tmpDir, "gpio4", "direction"), "out")

	require.NoError(t, l.Write(true))
	assertContent(t, filepath.Join(tmpDir, "gpio4", "value"), "1")
	high, err := l.Read()
	require.NoError(t, err)
	assert.True(t, high)

	require.NoError(t, l.Write(false))
	high, err = l.Read()
	require.NoError(t, err)
	assert.False(t, high)
}

func TestLine_Read(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, testutils.InitGPIO(tmpDir, 15))

	l, err := Open(tmpDir, 15, In)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "gpio15", "value"), []byte("1\n"), 0644))
	high, err := l.Read()
	require.NoError(t, err)
	assert.True(t, high)
}

func TestOpen_Export(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, testutils.InitGPIO(tmpDir))
	exportRetries, exportDelay = 1000, time.Millisecond

	// the kernel creates the line's directory after the export: simulate that
	go func() {
		time.Sleep(5 * time.Millisecond)
		_ = os.MkdirAll(filepath.Join(tmpDir, "gpio17"), 0755)
	}()

	l, err := Open(tmpDir, 17, Out)
	require.NoError(t, err)
	assert.Equal(t, 17, l.Number())
	assertContent(t, filepath.Join(tmpDir, "export"), "17")
}

func TestOpen_Fail(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"), 5, Out)
	assert.Error(t, err)
}

func assertContent(t *testing.T, path string, want string) {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, string(content))
}
