package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := plain(RenderTable(
		[]string{"ID", "NAME"},
		[][]string{{"1", "Launch"}, {"1200", StyleBold.Render("Ops")}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "ID    NAME", lines[0])
	assert.Equal(t, "────  ──────", lines[1])
	assert.Equal(t, "1     Launch", lines[2])
	assert.Equal(t, "1200  Ops", lines[3])
}

func TestRenderTable_ShortRowsRenderEmptyCells(t *testing.T) {
	out := plain(RenderTable([]string{"A", "B"}, [][]string{{"x"}}))
	assert.Contains(t, out, "x  \n")
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}
