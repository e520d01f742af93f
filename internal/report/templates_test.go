package report

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedTemplatesParse(t *testing.T) {
	p := NewEmbeddedTemplateProvider()
	for _, name := range []string{"index.html.tmpl", "path.html.tmpl"} {
		a, err := p.GetTemplate(name)
		require.NoError(t, err, name)
		b, err := p.GetTemplate(name)
		require.NoError(t, err)
		assert.Same(t, a, b, "template %s should be cached", name)
	}

	_, err := p.GetTemplate("missing.tmpl")
	assert.Error(t, err)
}

func TestStylesheetEmbedded(t *testing.T) {
	css, err := stylesheet()
	require.NoError(t, err)
	assert.Contains(t, string(css), ".tone-red")
}

func TestMockTemplateProvider(t *testing.T) {
	m := NewMockTemplateProvider(map[string]string{"x": `{{num .}} · {{rgba "#f00" 0.5}}`})

	var buf bytes.Buffer
	require.NoError(t, m.ExecuteTemplate(&buf, "x", 2.5))
	assert.Equal(t, "2.5 · rgba(255, 0, 0, 0.5)", buf.String())
	require.Len(t, m.ExecuteCalls, 1)
	assert.Equal(t, "x", m.ExecuteCalls[0].Name)

	err := m.ExecuteTemplate(&buf, "nope", nil)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
