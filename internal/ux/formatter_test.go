package ux

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type stringerValue struct{}

func (stringerValue) String() string { return "rendered by Stringer" }

type textValue struct{}

func (textValue) RenderText() string { return "rendered by TextRenderer" }

func TestNewFormatterSelection(t *testing.T) {
	tests := []struct {
		format  string
		want    any
		wantErr bool
	}{
		{format: "json", want: &JSONFormatter{}},
		{format: "yaml", want: &YAMLFormatter{}},
		{format: "text", want: &TextFormatter{}},
		{format: "", want: &TextFormatter{}},
		{format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		f, err := NewFormatter(tt.format, nil)
		if tt.wantErr {
			assert.Error(t, err, "format %q", tt.format)
			continue
		}
		require.NoError(t, err, "format %q", tt.format)
		assert.IsType(t, tt.want, f)
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("json", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, f.Format(map[string]int{"points": 13}))

	var got map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 13, got["points"])
	assert.Contains(t, buf.String(), "  ", "default output is indented")
}

func TestJSONFormatterCompact(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("json", &FormatterOptions{Writer: &buf, Compact: true})
	require.NoError(t, err)

	require.NoError(t, f.Format(map[string]int{"points": 13}))

	assert.Equal(t, `{"points":13}`, strings.TrimSpace(buf.String()))
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("yaml", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, f.Format(map[string]string{"increment": "PI 2024.1"}))

	var got map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "PI 2024.1", got["increment"])
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("text", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, f.Format("plain string"))
	assert.Equal(t, "plain string\n", buf.String())

	buf.Reset()
	require.NoError(t, f.Format(stringerValue{}))
	assert.Equal(t, "rendered by Stringer\n", buf.String())

	buf.Reset()
	require.NoError(t, f.Format(textValue{}))
	assert.Equal(t, "rendered by TextRenderer\n", buf.String())
}

func TestTextFormatterFallsBackToYAML(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("text", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, f.Format(map[string]int{"iterations": 6}))
	assert.Contains(t, buf.String(), "iterations: 6")
}
