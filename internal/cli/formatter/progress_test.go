package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name   string
		pct    float64
		filled int
		label  string
	}{
		{"empty", 0, 0, "  0%"},
		{"half", 50, 5, " 50%"},
		{"full", 100, 10, "100%"},
		{"clamped above", 140, 10, "100%"},
		{"clamped below", -5, 0, "  0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := plain(RenderProgress(tt.pct, 10))
			assert.Equal(t, tt.filled, strings.Count(out, filledBlock))
			assert.Equal(t, 10-tt.filled, strings.Count(out, emptyBlock))
			assert.True(t, strings.HasSuffix(out, tt.label), out)
		})
	}
}

func TestRenderCompactBar_MinimumWidth(t *testing.T) {
	out := RenderCompactBar(100, 0, true)
	assert.Equal(t, strings.Repeat(filledBlock, 2), out)
}
