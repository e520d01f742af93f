package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"tailscale.com/tsweb"

	"github.com/banshee-data/drillsense/internal/deviation"
	"github.com/banshee-data/drillsense/internal/httputil"
	"github.com/banshee-data/drillsense/internal/report"
	"github.com/banshee-data/drillsense/internal/telemetry"
	"github.com/banshee-data/drillsense/internal/timeutil"
	"github.com/banshee-data/drillsense/internal/units"
	"github.com/banshee-data/drillsense/internal/wellpath"
)

// siteServer serves a rendered site and keeps the latest comparison for the
// debug pages.
type siteServer struct {
	renderer *report.Renderer
	provider telemetry.Provider
	outDir   string

	mu       sync.RWMutex
	cmp      wellpath.Comparison
	manifest *report.Manifest
}

func newSiteServer(r *report.Renderer, p telemetry.Provider, outDir string) *siteServer {
	return &siteServer{renderer: r, provider: p, outDir: outDir}
}

// refresh re-renders the site from the provider.
func (s *siteServer) refresh(ctx context.Context) error {
	snap, err := s.provider.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	m, err := s.renderer.Render(ctx, snap, s.outDir)
	if err != nil {
		return err
	}
	cmp, err := report.Compare(snap, s.renderer.Options)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cmp, s.manifest = cmp, m
	s.mu.Unlock()
	return nil
}

// watch re-renders on every tick until ctx is done. Failed renders keep the
// previous site.
func (s *siteServer) watch(ctx context.Context, clock timeutil.Clock, every time.Duration) {
	t := clock.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C():
			if err := s.refresh(ctx); err != nil {
				log.Printf("refresh failed: %v", err)
			}
		}
	}
}

func (s *siteServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.outDir)))

	debug := tsweb.Debugger(mux)
	debug.HandleFunc("thresholds", "Classifier and lateral thresholds in use", s.handleThresholds)
	debug.HandleFunc("segments", "Per-segment comparison of the last render", s.handleSegments)
	debug.HandleFunc("manifest", "Manifest of the last render", s.handleManifest)
	debug.HandleSilentFunc("classify", s.handleClassify)
	return mux
}

func (s *siteServer) handleThresholds(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}
	o := s.renderer.Options
	s.mu.RLock()
	lateral := s.cmp.ThresholdM
	s.mu.RUnlock()
	httputil.WriteJSONOK(w, map[string]any{
		"classifier":          o.Thresholds,
		"scale":               o.Scale,
		"lateral_threshold_m": lateral,
		"length_policy":       o.Policy.String(),
	})
}

func (s *siteServer) handleSegments(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}
	s.mu.RLock()
	cmp := s.cmp
	s.mu.RUnlock()
	if r.URL.Query().Get("format") == "text" {
		var buf bytes.Buffer
		if err := writeSegments(&buf, cmp, s.renderer.Options.Policy, units.Meters); err != nil {
			httputil.InternalServerError(w, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write(buf.Bytes())
		return
	}
	httputil.WriteJSONOK(w, cmp)
}

func (s *siteServer) handleManifest(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}
	s.mu.RLock()
	m := s.manifest
	s.mu.RUnlock()
	if m == nil {
		httputil.NotFound(w, "no render yet")
		return
	}
	httputil.WriteJSONOK(w, m)
}

// handleClassify answers /debug/classify?lateral_cm=12&angular_deg=3.1.
func (s *siteServer) handleClassify(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}
	lateral, err := httputil.QueryFloat(r, "lateral_cm", 0)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	angular, err := httputil.QueryFloat(r, "angular_deg", 0)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	sample := deviation.Sample{LateralOffsetCm: lateral, AngularOffsetDeg: angular}
	if err := sample.Validate(); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	v := s.renderer.Options.Thresholds.Classify(sample.LateralOffsetM(), sample.AngularOffsetDeg)
	httputil.WriteJSONOK(w, map[string]any{
		"sample":  sample,
		"verdict": v,
		"tone":    v.Tone(),
	})
}

func handleServe(args []string, stdout io.Writer) error {
	fs := newFlagSet("serve", stdout)
	var in inputFlags
	in.register(fs)
	listen := fs.String("listen", "localhost:8080", "HTTP listen address")
	outDir := fs.String("out", "site", "Output directory")
	every := fs.Duration("refresh", 0, "Re-render interval (0 disables)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	o, err := in.options()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := newSiteServer(report.NewRenderer(o), in.provider(), *outDir)
	if err := s.refresh(ctx); err != nil {
		return err
	}

	var wg sync.WaitGroup
	if *every > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.watch(ctx, timeutil.RealClock{}, *every)
			log.Print("refresh routine terminated")
		}()
	}

	server := &http.Server{
		Addr:              *listen,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()
	log.Printf("serving %s on http://%s (debug pages at /debug/)", *outDir, *listen)

	select {
	case <-ctx.Done():
	case err := <-errc:
		if err != nil {
			stop()
			wg.Wait()
			return fmt.Errorf("listen: %w", err)
		}
	}
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		if err := server.Close(); err != nil {
			log.Printf("HTTP server force close error: %v", err)
		}
	}
	wg.Wait()
	log.Printf("HTTP server routine stopped")
	return nil
}
