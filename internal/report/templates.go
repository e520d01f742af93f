package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"sync"

	"github.com/banshee-data/drillsense/internal/chart"
)

//go:embed templates/*.tmpl templates/*.css
var templateFS embed.FS

// TemplateProvider abstracts template loading and execution.
// Production uses EmbeddedTemplateProvider; tests use MockTemplateProvider.
type TemplateProvider interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

// funcs are available to every page template.
var funcs = template.FuncMap{
	"num":  func(v float64) string { return fmt.Sprintf("%g", v) },
	"f1":   func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"f2":   func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"rgba": chart.HexToRGBA,
	"add":  func(a, b float64) float64 { return a + b },
	"sub":  func(a, b float64) float64 { return a - b },
	"half": func(v float64) float64 { return v / 2 },
}

// EmbeddedTemplateProvider parses templates from an embedded filesystem and
// caches them by name.
type EmbeddedTemplateProvider struct {
	fs      fs.FS
	baseDir string

	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewEmbeddedTemplateProvider serves the built-in page templates.
func NewEmbeddedTemplateProvider() *EmbeddedTemplateProvider {
	return &EmbeddedTemplateProvider{
		fs:      templateFS,
		baseDir: "templates",
		cache:   make(map[string]*template.Template),
	}
}

// GetTemplate parses and caches a template.
func (p *EmbeddedTemplateProvider) GetTemplate(name string) (*template.Template, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if t, ok := p.cache[name]; ok {
		return t, nil
	}
	content, err := fs.ReadFile(p.fs, p.baseDir+"/"+name)
	if err != nil {
		return nil, err
	}
	t, err := template.New(name).Funcs(funcs).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	p.cache[name] = t
	return t, nil
}

// ExecuteTemplate loads and executes a template.
func (p *EmbeddedTemplateProvider) ExecuteTemplate(w io.Writer, name string, data any) error {
	t, err := p.GetTemplate(name)
	if err != nil {
		return err
	}
	return t.Execute(w, data)
}

// MockTemplateProvider renders inline template sources and records calls.
type MockTemplateProvider struct {
	Templates    map[string]string
	ExecuteError error
	ExecuteCalls []ExecuteCall
}

// ExecuteCall records one ExecuteTemplate invocation.
type ExecuteCall struct {
	Name string
	Data any
}

// NewMockTemplateProvider creates a mock provider with predefined templates.
func NewMockTemplateProvider(templates map[string]string) *MockTemplateProvider {
	return &MockTemplateProvider{Templates: templates}
}

// ExecuteTemplate records the call and executes the template.
func (m *MockTemplateProvider) ExecuteTemplate(w io.Writer, name string, data any) error {
	m.ExecuteCalls = append(m.ExecuteCalls, ExecuteCall{Name: name, Data: data})
	if m.ExecuteError != nil {
		return m.ExecuteError
	}
	content, ok := m.Templates[name]
	if !ok {
		return fs.ErrNotExist
	}
	t, err := template.New(name).Funcs(funcs).Parse(content)
	if err != nil {
		return err
	}
	return t.Execute(w, data)
}

// stylesheet returns the shared page stylesheet.
func stylesheet() ([]byte, error) {
	return templateFS.ReadFile("templates/style.css")
}
