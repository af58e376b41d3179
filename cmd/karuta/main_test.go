package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"karuta-server/internal/rng"
	"karuta-server/pkg/catalog"
	"karuta-server/pkg/layout"
)

func init() {
	color.NoColor = true
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestValidateCmd(t *testing.T) {
	out, err := execute(t, "validate", "../../pkg/catalog/testdata/karuta_data.json")
	assert.NoError(t, err)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "100 cards (7 one-syllable, 6 oyama, 87 other)")

	out, err = execute(t, "validate", "../../pkg/catalog/testdata/short.json")
	assert.Error(t, err)
	assert.Contains(t, out, "is invalid")
}

func TestDealCmd(t *testing.T) {
	out, err := execute(t, "deal", "--count", "20", "--seed", "42")
	assert.NoError(t, err)
	assert.Contains(t, out, "opponent-bottom")
	assert.Contains(t, out, "own-top")
	assert.Contains(t, out, "80 blank cards")

	_, err = execute(t, "deal", "--count", "21", "--seed", "42")
	assert.Equal(t, layout.ErrInvalidCardCount, err)
}

func Test_dealField(t *testing.T) {
	a := assert.New(t)

	field, deal, err := dealField(catalog.Generated(), 50, rng.NewSeeded(1))
	require.NoError(t, err)
	a.ElementsMatch(deal.Own, field.Cards(layout.Own))
	a.ElementsMatch(deal.Opponent, field.Cards(layout.Opponent))
	a.Len(deal.Blank, 50)
}

func Test_printField(t *testing.T) {
	field := layout.NewField()
	field.Append(layout.SlotKey{Side: layout.Own, Row: layout.Bottom, Column: layout.Right}, 87)
	field.Append(layout.SlotKey{Side: layout.Opponent, Row: layout.Top, Column: layout.Left}, 5)

	buf := &bytes.Buffer{}
	printField(buf, field)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if assert.Len(t, lines, 7) {
		assert.Equal(t, "opponent-top      5 | ", lines[2])
		assert.Equal(t, "own-bottom       |  87", lines[6])
	}
}
