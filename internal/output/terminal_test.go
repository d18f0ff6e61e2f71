package output_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/clambin/ledsequencer/internal/output"
	"github.com/clambin/ledsequencer/internal/pattern"
	"github.com/clambin/ledsequencer/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal_Set(t *testing.T) {
	var buf bytes.Buffer
	term := output.NewTerminal(&buf)

	require.NoError(t, term.Set(pattern.Levels{true, false, true, true}))
	require.NoError(t, term.Set(pattern.Levels{}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 3, strings.Count(lines[0], "●"))
	assert.Equal(t, 1, strings.Count(lines[0], "○"))
	assert.Equal(t, 4, strings.Count(lines[1], "○"))
}

func TestMulti_Set(t *testing.T) {
	var o1, o2 testutils.FakeOutput
	o3 := testutils.FakeOutput{Err: errors.New("fail")}
	m := output.Multi{&o1, &o2, &o3}

	assert.Error(t, m.Set(pattern.Levels{true}))
	for _, o := range []*testutils.FakeOutput{&o1, &o2, &o3} {
		assert.Equal(t, 1, o.Writes())
		assert.Equal(t, "1000", o.Last().String())
	}

	assert.NoError(t, output.Multi{&o1}.Set(pattern.Levels{}))
}
