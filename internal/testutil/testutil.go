// Package testutil provides shared test helpers and the demo well fixture.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// PlannedTriples is the demo planned path as [x, depth, z] stations.
func PlannedTriples() [][3]float64 {
	return [][3]float64{{0, 0, 0}, {0, 1, 0}, {0, 2, 0}, {0, 3, 0}, {0, 3.6, 0}}
}

// ActualTriples is the demo actual path, drifting steadily off the plan.
func ActualTriples() [][3]float64 {
	return [][3]float64{{-2, 0, 0}, {-2.1, 0.8, -0.1}, {-2.8, 1.6, -0.2}, {-3.6, 2.4, -0.6}, {-4.8, 3.2, -1.2}}
}

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t testing.TB, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Get serves a GET for path through h and returns the recorder.
func Get(t testing.TB, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

// WriteJSONFile marshals v into name under a fresh temp dir and returns the path.
func WriteJSONFile(t testing.TB, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
