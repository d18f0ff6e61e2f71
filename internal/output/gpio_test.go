package output_test

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/clambin/ledsequencer/internal/output"
	"github.com/clambin/ledsequencer/internal/pattern"
	"github.com/clambin/ledsequencer/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPIO_Set(t *testing.T) {
	tests := []struct {
		name      string
		activeLow bool
		levels    pattern.Levels
		want      string
	}{
		{name: "active low", activeLow: true, levels: pattern.Levels{true, false, false, false}, want: "0111"},
		{name: "active high", activeLow: false, levels: pattern.Levels{true, false, false, false}, want: "1000"},
		{name: "active low pairs", activeLow: true, levels: pattern.Levels{true, true, false, false}, want: "0011"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			lines := [pattern.ChannelCount]int{4, 16, 17, 5}
			require.NoError(t, testutils.InitGPIO(tmpDir, lines[:]...))

			g, err := output.NewGPIO(tmpDir, lines, tt.activeLow)
			require.NoError(t, err)
			require.NoError(t, g.Set(tt.levels))

			var got string
			for _, line := range lines {
				content, err := os.ReadFile(filepath.Join(tmpDir, "gpio"+strconv.Itoa(line), "value"))
				require.NoError(t, err)
				got += string(content)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGPIO_Set_Error(t *testing.T) {
	var ok fakeLine
	g := output.GPIO{Lines: [pattern.ChannelCount]output.LineWriter{&ok, &fakeLine{err: errors.New("fail")}, &ok, &ok}}

	err := g.Set(pattern.Levels{true, true, true, true})
	assert.ErrorContains(t, err, "channel 1: fail")
	// the other lines are still written
	assert.Equal(t, 3, ok.writes)
}

func TestNewGPIO_Fail(t *testing.T) {
	_, err := output.NewGPIO(filepath.Join(t.TempDir(), "missing"), [pattern.ChannelCount]int{1, 2, 3, 4}, true)
	assert.Error(t, err)
}

type fakeLine struct {
	writes int
	err    error
}

func (f *fakeLine) Write(bool) error {
	f.writes++
	return f.err
}
