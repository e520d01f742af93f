package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/google/uuid"
	"gonum.org/v1/plot"

	"github.com/banshee-data/drillsense/internal/deviation"
	"github.com/banshee-data/drillsense/internal/fsutil"
	"github.com/banshee-data/drillsense/internal/monitoring"
	"github.com/banshee-data/drillsense/internal/scene"
	"github.com/banshee-data/drillsense/internal/security"
	"github.com/banshee-data/drillsense/internal/telemetry"
	"github.com/banshee-data/drillsense/internal/timeutil"
	"github.com/banshee-data/drillsense/internal/version"
	"github.com/banshee-data/drillsense/internal/wellpath"
)

// ManifestName is the manifest file written at the root of the output directory.
const ManifestName = "manifest.json"

// Manifest describes one render.
type Manifest struct {
	RunID       uuid.UUID         `json:"run_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Version     string            `json:"version"`
	GitSHA      string            `json:"git_sha"`
	Operator    string            `json:"operator"`
	Verdict     deviation.Verdict `json:"verdict"`
	ThresholdM  float64           `json:"threshold_m"`
	Summary     wellpath.Summary  `json:"summary"`
	Files       []string          `json:"files"`
}

// Renderer writes the static site for a snapshot.
type Renderer struct {
	FS        fsutil.FileSystem
	Clock     timeutil.Clock
	Templates TemplateProvider
	Options   Options

	// NewID generates the run ID; defaults to uuid.New.
	NewID func() uuid.UUID
}

// NewRenderer renders to the OS filesystem with the built-in templates.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{
		FS:        fsutil.OSFileSystem{},
		Clock:     timeutil.RealClock{},
		Templates: NewEmbeddedTemplateProvider(),
		Options:   opts,
		NewID:     uuid.New,
	}
}

// site accumulates the files of one render.
type site struct {
	fs    fsutil.FileSystem
	root  string
	files []string
}

// prepare resolves rel under the root and creates its parent directory.
func (s *site) prepare(rel string) (string, error) {
	full, err := security.ResolveWithin(s.root, rel)
	if err != nil {
		return "", err
	}
	if err := s.fs.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("mkdir for %s: %w", rel, err)
	}
	return full, nil
}

func (s *site) write(rel string, data []byte) error {
	full, err := s.prepare(rel)
	if err != nil {
		return err
	}
	if err := s.fs.WriteFile(full, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	s.files = append(s.files, rel)
	return nil
}

// create opens rel for streamed output. The caller must Close it.
func (s *site) create(rel string) (io.WriteCloser, error) {
	full, err := s.prepare(rel)
	if err != nil {
		return nil, err
	}
	w, err := s.fs.Create(full)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", rel, err)
	}
	s.files = append(s.files, rel)
	return w, nil
}

// RenderFrom fetches a snapshot from p and renders it.
func (r *Renderer) RenderFrom(ctx context.Context, p telemetry.Provider, outDir string) (*Manifest, error) {
	snap, err := p.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return r.Render(ctx, snap, outDir)
}

// Render writes index.html, path.html, charts, plots, previews and the
// manifest under outDir.
func (r *Renderer) Render(ctx context.Context, snap *telemetry.Snapshot, outDir string) (*Manifest, error) {
	start := r.Clock.Now()
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	o := r.Options

	cmp, err := Compare(snap, o)
	if err != nil {
		return nil, fmt.Errorf("compare paths: %w", err)
	}
	sc := scene.Build(snap.Path.PlannedPath(), snap.Path.ActualPath(), cmp.ThresholdM, o.preset())

	out := &site{fs: r.FS, root: outDir}
	steps := []struct {
		name string
		fn   func() error
	}{
		{"pages", func() error { return r.writePages(out, snap, cmp, sc) }},
		{"charts", func() error { return writeCharts(out, snap, sc, o) }},
		{"plots", func() error { return writePlots(out, snap, cmp, o) }},
		{"previews", func() error { return writePreviews(out, sc, o) }},
	}
	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := st.fn(); err != nil {
			return nil, fmt.Errorf("render %s: %w", st.name, err)
		}
		monitoring.Debugf("report: %s done after %v", st.name, r.Clock.Since(start))
	}

	newID := r.NewID
	if newID == nil {
		newID = uuid.New
	}
	m := &Manifest{
		RunID:       newID(),
		GeneratedAt: r.Clock.Now().UTC(),
		Version:     version.Version,
		GitSHA:      version.GitSHA,
		Operator:    snap.Operator,
		Verdict:     deviation.NewReadout(snap.Path.Sample(), o.Thresholds, o.Scale).Verdict,
		ThresholdM:  cmp.ThresholdM,
		Summary:     cmp.Summary,
		Files:       append(append([]string(nil), out.files...), ManifestName),
	}
	sort.Strings(m.Files)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := out.write(ManifestName, data); err != nil {
		return nil, err
	}

	monitoring.Logf("report: rendered %d files to %s in %v (verdict=%s, %d/%d segments beyond %g m)",
		len(m.Files), outDir, r.Clock.Since(start), m.Verdict, cmp.Summary.BeyondSegments, cmp.Summary.Segments, cmp.ThresholdM)
	return m, nil
}

func (r *Renderer) writePages(out *site, snap *telemetry.Snapshot, cmp wellpath.Comparison, sc scene.Scene) error {
	css, err := stylesheet()
	if err != nil {
		return err
	}
	if err := out.write("style.css", css); err != nil {
		return err
	}

	pages := []struct {
		file, tmpl string
		data       any
	}{
		{"index.html", "index.html.tmpl", buildDashboard(snap, r.Options)},
		{"path.html", "path.html.tmpl", buildPath(snap, cmp, sc, r.Options)},
	}
	for _, p := range pages {
		var buf bytes.Buffer
		if err := r.Templates.ExecuteTemplate(&buf, p.tmpl, p.data); err != nil {
			return fmt.Errorf("execute %s: %w", p.tmpl, err)
		}
		if err := out.write(p.file, buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func writeCharts(out *site, snap *telemetry.Snapshot, sc scene.Scene, o Options) error {
	pages := []struct {
		name  string
		chart components.Charter
	}{
		{"gnss", gnssChart(snap, o)},
		{"vibration", vibrationChart(snap, o)},
		{"sparkline", sparklineChart(snap, o)},
		{"path3d", path3DChart(sc, o)},
	}
	for _, p := range pages {
		html, err := renderPage(p.chart, o)
		if err != nil {
			return fmt.Errorf("%s: %w", p.name, err)
		}
		if err := out.write(path.Join("charts", p.name+".html"), html); err != nil {
			return err
		}
	}
	return nil
}

func writePlots(out *site, snap *telemetry.Snapshot, cmp wellpath.Comparison, o Options) error {
	builders := []struct {
		name  string
		build func() (*plot.Plot, error)
	}{
		{"gnss", func() (*plot.Plot, error) { return gnssPlot(snap) }},
		{"vibration", func() (*plot.Plot, error) { return vibrationPlot(snap) }},
		{"offsets", func() (*plot.Plot, error) { return offsetsPlot(cmp) }},
	}
	for _, b := range builders {
		p, err := b.build()
		if err != nil {
			return fmt.Errorf("%s: %w", b.name, err)
		}
		data, err := encodePlot(p, o.PlotFormat)
		if err != nil {
			return fmt.Errorf("%s: %w", b.name, err)
		}
		if err := out.write(path.Join("plots", b.name+"."+o.PlotFormat), data); err != nil {
			return err
		}
	}
	return nil
}

func writePreviews(out *site, sc scene.Scene, o Options) error {
	ro := scene.DefaultRenderOptions()
	if o.PreviewWidth > 0 {
		ro.Width = o.PreviewWidth
	}
	if o.PreviewHeight > 0 {
		ro.Height = o.PreviewHeight
	}
	if o.Supersample > 0 {
		ro.Supersample = o.Supersample
	}
	for _, preset := range scene.Presets() {
		img := scene.Rasterize(sc, scene.PresetCamera(preset), ro)
		w, err := out.create(previewPath(preset))
		if err != nil {
			return err
		}
		if err := scene.EncodeWebP(w, img); err != nil {
			w.Close()
			return fmt.Errorf("%s: %w", preset, err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("close %s: %w", preset, err)
		}
	}
	return nil
}
