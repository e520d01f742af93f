package security

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestResolveWithin(t *testing.T) {
	tests := []struct {
		name    string
		root    string
		rel     string
		want    string
		wantErr bool
	}{
		{"file", "out", "index.html", filepath.Join("out", "index.html"), false},
		{"nested", "out", "charts/gnss.html", filepath.Join("out", "charts", "gnss.html"), false},
		{"dot segments inside", "out", "charts/../path.html", filepath.Join("out", "path.html"), false},
		{"absolute root", "/srv/site", "preview/path-top.webp", "/srv/site/preview/path-top.webp", false},
		{"parent", "out", "../etc/passwd", "", true},
		{"deep parent", "out", "charts/../../x", "", true},
		{"absolute", "out", "/etc/passwd", "", true},
		{"root itself", "out", ".", "", true},
		{"empty", "out", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveWithin(tt.root, tt.rel)
			if tt.wantErr {
				if !errors.Is(err, ErrPathEscape) {
					t.Fatalf("ResolveWithin(%q, %q) error = %v, want ErrPathEscape", tt.root, tt.rel, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveWithin(%q, %q) unexpected error: %v", tt.root, tt.rel, err)
			}
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("ResolveWithin(%q, %q) = %q, want %q", tt.root, tt.rel, got, tt.want)
			}
		})
	}
}
