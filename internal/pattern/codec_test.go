package pattern

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JacopoBartoli/game-of-life/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	text := "!Name: Glider\n!comment\n.O.\n..O\nOOO\n"
	g, err := Parse(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, core.Size{Rows: 3, Cols: 3}, g.Size())
	assert.Equal(t, []uint8{
		0, 1, 0,
		0, 0, 1,
		1, 1, 1,
	}, g.Cells())
}

func TestParseCountsCharacters(t *testing.T) {
	g, err := Parse(strings.NewReader("éO\n...\n"))
	require.NoError(t, err)
	assert.Equal(t, core.Size{Rows: 2, Cols: 3}, g.Size())
	assert.Equal(t, []uint8{
		0, 1, 0,
		0, 0, 0,
	}, g.Cells())

	// Invalid UTF-8 decodes to a single replacement character.
	g, err = Parse(strings.NewReader("\xffO\n"))
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 1}, g.Cells())
}

func TestParseRaggedLines(t *testing.T) {
	// Short lines are padded with dead cells; anything but 'O' is dead.
	g, err := Parse(strings.NewReader("O\r\n.xO*O\r\n!not a row\r\n\r\n..O"))
	require.NoError(t, err)
	assert.Equal(t, core.Size{Rows: 4, Cols: 5}, g.Size())
	assert.Equal(t, []uint8{
		1, 0, 0, 0, 0,
		0, 0, 1, 0, 1,
		0, 0, 0, 0, 0,
		0, 0, 1, 0, 0,
	}, g.Cells())
}

func TestParseBangInsideLineIsDead(t *testing.T) {
	g, err := Parse(strings.NewReader("O!O\n"))
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 0, 1}, g.Cells())
}

func TestParseInvalid(t *testing.T) {
	for name, text := range map[string]string{
		"empty":         "",
		"comments only": "!a\n!b\n",
		"blank lines":   "\n\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(text))
			assert.ErrorIs(t, err, ErrInvalidPattern)
		})
	}

	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.cells"))
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestSerializeParseRoundTrip(t *testing.T) {
	texts := []string{
		"O\n",
		".....\n..O..\n.OOO.\n.....\n",
		"OO.O\n....\nO..O\n",
	}
	for _, text := range texts {
		g, err := Parse(strings.NewReader(text))
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, Serialize(&buf, g))
		assert.Equal(t, text, buf.String())
	}
}

func TestParseSerializeDropsAges(t *testing.T) {
	g := core.NewGrid(2, 3)
	require.NoError(t, g.SetAge(0, 0, 200))
	require.NoError(t, g.SetAge(1, 2, 255))
	require.NoError(t, g.SetAge(1, 1, 1))

	var buf bytes.Buffer
	require.NoError(t, Serialize(&buf, g))
	assert.Equal(t, "O..\n.OO\n", buf.String())

	back, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 0, 0, 0, 1, 1}, back.Cells())
}

func TestPlaceCentres(t *testing.T) {
	p, err := Parse(strings.NewReader("OO\nO.\nOO\n"))
	require.NoError(t, err)

	g, err := Place(p, core.Size{Rows: 6, Cols: 7})
	require.NoError(t, err)
	// v margin (6-3)/2 = 1, h margin (7-2)/2 = 2.
	want := map[[2]int]bool{{1, 2}: true, {1, 3}: true, {2, 2}: true, {3, 2}: true, {3, 3}: true}
	for r := 0; r < 6; r++ {
		for c := 0; c < 7; c++ {
			age, _ := g.At(r, c)
			if want[[2]int{r, c}] {
				assert.Equal(t, uint8(1), age, "cell (%d,%d)", r, c)
			} else {
				assert.Equal(t, uint8(0), age, "cell (%d,%d)", r, c)
			}
		}
	}

	same, err := Place(p, p.Size())
	require.NoError(t, err)
	assert.True(t, same.Equal(p))
}

func TestPlaceTooLarge(t *testing.T) {
	p := core.NewGrid(3, 4)
	for _, target := range []core.Size{{Rows: 2, Cols: 10}, {Rows: 10, Cols: 3}} {
		_, err := Place(p, target)
		assert.ErrorIs(t, err, ErrPatternTooLarge)
	}
}

func TestSaveFileAddsExtension(t *testing.T) {
	dir := t.TempDir()
	g := core.NewGrid(2, 2)
	require.NoError(t, g.SetAge(1, 1, 9))

	written, err := SaveFile(filepath.Join(dir, "mine"), g)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mine.cells"), written)
	data, err := os.ReadFile(written)
	require.NoError(t, err)
	assert.Equal(t, "..\n.O\n", string(data))

	written, err = SaveFile(filepath.Join(dir, "other.cells"), g)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "other.cells"), written)

	loaded, err := Load(written, core.Size{Rows: 4, Cols: 4})
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.AliveCount())
	assert.True(t, loaded.Alive(2, 2))
}
