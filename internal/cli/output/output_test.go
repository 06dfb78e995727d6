package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode(t *testing.T) {
	tests := []struct {
		in   string
		want OutputMode
	}{
		{"", ModeAuto},
		{"auto", ModeAuto},
		{"TEXT", ModeText},
		{"markdown", ModeMarkdown},
		{"md", ModeMarkdown},
		{"json", ModeJSON},
		{"yaml", ModeAuto},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Mode(tt.in))
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, ModeText, NewRendererWithTTY(&buf, &buf, true, ModeAuto).EffectiveMode())
	assert.Equal(t, ModeMarkdown, NewRendererWithTTY(&buf, &buf, false, ModeAuto).EffectiveMode())
	assert.Equal(t, ModeJSON, NewRendererWithTTY(&buf, &buf, true, ModeJSON).EffectiveMode())
	// A buffer is never a terminal.
	assert.False(t, NewRenderer(&buf, &buf, ModeAuto).IsTTY())
}

func TestRenderer_TableMarkdown(t *testing.T) {
	var out bytes.Buffer
	r := NewRendererWithTTY(&out, &out, false, ModeAuto)

	r.Header(2, "Financial")
	r.Table([]string{"Metric", "Value"}, [][]string{{"Total Cash Flow", "$3,500"}})

	got := out.String()
	assert.Contains(t, got, "## Financial")
	assert.Contains(t, got, "| Metric | Value |")
	assert.Contains(t, got, "| Total Cash Flow | $3,500 |")
	assert.NotContains(t, got, "\x1b[")
}

func TestRenderer_TableText(t *testing.T) {
	var out bytes.Buffer
	r := NewRendererWithTTY(&out, &out, true, ModeText)

	r.Table([]string{"Metric", "Value"}, [][]string{{"Avg RSCR", "1.30"}})

	got := out.String()
	assert.Contains(t, got, "Avg RSCR")
	assert.Contains(t, got, "┌")
}

func TestRenderer_JSON(t *testing.T) {
	var out bytes.Buffer
	r := NewRendererWithTTY(&out, &out, false, ModeJSON)

	require.NoError(t, r.JSON(map[string]string{"a": "b"}))
	assert.Equal(t, "{\n  \"a\": \"b\"\n}\n", out.String())
}

func TestRenderer_WarningGoesToErrOut(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeMarkdown)

	r.Warning("no metrics")
	r.Success("done")

	assert.True(t, strings.HasPrefix(errOut.String(), "> Warning: no metrics"))
	assert.Equal(t, "**done**\n", out.String())
}
