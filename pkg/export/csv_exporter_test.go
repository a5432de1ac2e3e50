package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	table := Table{
		Headers: []string{"ID", "Nombre"},
		Rows: [][]string{
			{"a1", "Acto cívico"},
			{"b2", "Reunión, general"},
		},
	}

	content, err := NewCSVExporter().Render(table)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Nombre", lines[0])
	assert.Equal(t, "a1,Acto cívico", lines[1])
	assert.Equal(t, `b2,"Reunión, general"`, lines[2])
}

func TestCSVExporterRenderPadsShortRows(t *testing.T) {
	table := Table{
		Headers: []string{"ID", "Nombre", "Fecha"},
		Rows:    [][]string{{"a1"}},
	}

	content, err := NewCSVExporter().Render(table)
	require.NoError(t, err)
	assert.Contains(t, string(content), "a1,,")
}

func TestCSVExporterRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Table{})
	require.Error(t, err)
}
