package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer(40)
	require.NoError(t, err)

	out, err := render("# Title\n\nSome body text.")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "Some body text.")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "Completor", "1.2.3")

	assert.Contains(t, buf.String(), "overlay")
	assert.Contains(t, buf.String(), "Completor")
	assert.Contains(t, buf.String(), "v1.2.3")
}
