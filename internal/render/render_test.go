package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/passw0rds/internal/model"
)

func TestPassphrasesPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, false, false).Passphrases([]string{"a~b", "c-d"}))
	assert.Equal(t, "a~b\nc-d\n", buf.String())
}

func TestPassphrasesNumbered(t *testing.T) {
	phrases := make([]string, 10)
	for i := range phrases {
		phrases[i] = "x"
	}
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, false, true).Passphrases(phrases))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, " 1: x", lines[0])
	assert.Equal(t, "10: x", lines[9])
}

func TestConfigTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, false, false).Config(model.DefaultConfig(), [2]string{"source", "embedded"}))
	out := buf.String()
	assert.Contains(t, out, "count       3\n")
	assert.Contains(t, out, "pattern     AVNP\n")
	assert.Contains(t, out, "mode        miniLeet\n")
	assert.Contains(t, out, "source      embedded\n")
}

func TestQRString(t *testing.T) {
	out, err := QRString("Quick~jump~f0x~dogs")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.NotEmpty(t, lines)
	width := len([]rune(lines[0]))
	for _, line := range lines {
		assert.Equal(t, width, len([]rune(line)))
	}
	// two module rows per line
	assert.Equal(t, (width+1)/2, len(lines))

	_, err = QRString("")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestRenderBitmap(t *testing.T) {
	out := renderBitmap([][]bool{
		{true, false, true},
		{true, true, false},
		{false, true, false},
	})
	assert.Equal(t, "█▄▀\n ▀ ", out)
}
