package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/drillsense/internal/deviation"
	"github.com/banshee-data/drillsense/internal/monitoring"
	"github.com/banshee-data/drillsense/internal/report"
	"github.com/banshee-data/drillsense/internal/telemetry"
	"github.com/banshee-data/drillsense/internal/testutil"
	"github.com/banshee-data/drillsense/internal/version"
	"github.com/banshee-data/drillsense/internal/wellpath"
)

func quietLogs(t *testing.T) {
	t.Helper()
	orig := monitoring.Logf
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.Logf = orig })
}

func runOut(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := run(args, &buf)
	return buf.String(), err
}

// smallConfig keeps preview rasters cheap.
func smallConfig(t *testing.T) string {
	return testutil.WriteJSONFile(t, "drillsense.json", map[string]any{
		"preview_width":  160,
		"preview_height": 90,
		"supersample":    1,
	})
}

func TestRunUsage(t *testing.T) {
	out, err := runOut(t)
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, out, "Usage: drillsense <command>")

	out, err = runOut(t, "frobnicate")
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, out, "Unknown command: frobnicate")

	out, err = runOut(t, "help")
	assert.NoError(t, err)
	assert.Contains(t, out, "segments")
}

func TestRunVersion(t *testing.T) {
	out, err := runOut(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version.String()+"\n", out)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		lateral, angular string
		want             string
	}{
		{"12", "3.1", "Off Plan (red)"},
		{"10", "0.5", "On Plan (green)"},
		{"30", "1", "On Plan (green)"},
		{"45", "1.5", "Drifting (amber)"},
		{"61", "0", "Off Plan (red)"},
	}
	for _, tt := range tests {
		t.Run(tt.lateral+"cm/"+tt.angular+"deg", func(t *testing.T) {
			out, err := runOut(t, "classify", "-lateral-cm", tt.lateral, "-angular-deg", tt.angular)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestClassifyInvalid(t *testing.T) {
	_, err := runOut(t, "classify", "-lateral-cm", "-5")
	assert.ErrorIs(t, err, deviation.ErrInvalidSample)

	_, err = runOut(t, "classify", "-lateral-cm", "abc")
	assert.Error(t, err)
}

func TestClassifyWithConfig(t *testing.T) {
	cfg := testutil.WriteJSONFile(t, "loose.json", map[string]any{
		"on_plan_lateral_m":   1.0,
		"on_plan_angular_deg": 5.0,
		"drift_lateral_m":     2.0,
		"drift_angular_deg":   10.0,
	})
	out, err := runOut(t, "classify", "-config", cfg, "-lateral-cm", "12", "-angular-deg", "3.1")
	require.NoError(t, err)
	assert.Equal(t, "On Plan (green)\n", out)
}

func TestSegmentsDemo(t *testing.T) {
	out, err := runOut(t, "segments")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7, out)
	assert.Equal(t, "threshold 0.5 m, policy truncate, 4 of 4 segments beyond", lines[0])
	assert.Contains(t, lines[1], "OFFSET (m)")
	for _, l := range lines[2:6] {
		assert.True(t, strings.HasSuffix(l, "yes"), l)
	}
	assert.True(t, strings.HasPrefix(lines[6], "max "), lines[6])
}

func TestSegmentsThresholdOverride(t *testing.T) {
	out, err := runOut(t, "segments", "-threshold", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "threshold 100 m, policy truncate, 0 of 4 segments beyond")

	_, err = runOut(t, "segments", "-threshold", "-1")
	assert.Error(t, err)
}

func TestSegmentsUnits(t *testing.T) {
	out, err := runOut(t, "segments", "-units", "cm")
	require.NoError(t, err)
	assert.Contains(t, out, "OFFSET (cm)")
	assert.Contains(t, out, " cm at station ")

	_, err = runOut(t, "segments", "-units", "furlong")
	assert.Error(t, err)
}

func TestSegmentsSnapshotFile(t *testing.T) {
	quietLogs(t)
	snap := telemetry.Demo()
	snap.Path.Actual = snap.Path.Actual[:3]
	path := testutil.WriteJSONFile(t, "short.json", snap)

	out, err := runOut(t, "segments", "-snapshot", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 of 2 segments beyond")

	_, err = runOut(t, "segments", "-snapshot", path, "-strict")
	assert.True(t, errors.Is(err, wellpath.ErrLengthMismatch), "%v", err)
}

func TestRenderCommand(t *testing.T) {
	quietLogs(t)
	dir := t.TempDir()

	out, err := runOut(t, "render", "-config", smallConfig(t), "-out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "rendered 13 files to "+dir)
	assert.Contains(t, out, "Off Plan")

	for _, f := range []string{"index.html", "path.html", "manifest.json", "charts/path3d.html", "preview/path-top.webp"} {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(f)))
		assert.NoError(t, err, f)
	}
}

func TestRenderCommandBadConfig(t *testing.T) {
	cfg := testutil.WriteJSONFile(t, "bad.json", map[string]any{"plot_format": "gif"})
	_, err := runOut(t, "render", "-config", cfg, "-out", t.TempDir())
	assert.Error(t, err)
}

func newTestServer(t *testing.T) *siteServer {
	t.Helper()
	quietLogs(t)
	dir := t.TempDir()
	in := inputFlags{configPath: smallConfig(t)}
	o, err := in.options()
	require.NoError(t, err)
	return newSiteServer(report.NewRenderer(o), telemetry.DemoProvider(), dir)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got), rec.Body.String())
	return got
}

func TestSiteServerManifestBeforeRender(t *testing.T) {
	s := newTestServer(t)
	rec := testutil.Get(t, http.HandlerFunc(s.handleManifest), "/debug/manifest")
	testutil.AssertStatusCode(t, rec.Code, http.StatusNotFound)
}

func TestSiteServerDebugPages(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.refresh(t.Context()))

	rec := testutil.Get(t, http.HandlerFunc(s.handleSegments), "/debug/segments")
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	seg := decode(t, rec)
	assert.Equal(t, 0.5, seg["threshold_m"])
	assert.Len(t, seg["segments"], 4)

	rec = testutil.Get(t, http.HandlerFunc(s.handleSegments), "/debug/segments?format=text")
	assert.Contains(t, rec.Body.String(), "4 of 4 segments beyond")

	rec = testutil.Get(t, http.HandlerFunc(s.handleThresholds), "/debug/thresholds")
	th := decode(t, rec)
	assert.Equal(t, "truncate", th["length_policy"])
	assert.Equal(t, 0.5, th["lateral_threshold_m"])

	rec = testutil.Get(t, http.HandlerFunc(s.handleManifest), "/debug/manifest")
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	assert.Equal(t, "Off Plan", decode(t, rec)["verdict"])
}

func TestSiteServerClassify(t *testing.T) {
	s := newTestServer(t)
	h := http.HandlerFunc(s.handleClassify)

	rec := testutil.Get(t, h, "/debug/classify?lateral_cm=12&angular_deg=3.1")
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	got := decode(t, rec)
	assert.Equal(t, "Off Plan", got["verdict"])
	assert.Equal(t, "red", got["tone"])

	for _, q := range []string{"lateral_cm=abc", "angular_deg=NaN", "lateral_cm=-1"} {
		rec = testutil.Get(t, h, "/debug/classify?"+q)
		testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/debug/classify", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusMethodNotAllowed)
}

func TestSiteServerServesFiles(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.refresh(t.Context()))

	mux := s.routes()
	rec := testutil.Get(t, mux, "/path.html")
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	assert.Contains(t, rec.Body.String(), "Off Plan")

	rec = testutil.Get(t, mux, "/manifest.json")
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
}
