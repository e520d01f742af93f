// Package report renders a telemetry snapshot into a static site: the
// dashboard and path pages, interactive echarts pages, static plots, path
// previews and a manifest.
package report

import (
	"github.com/banshee-data/drillsense/internal/config"
	"github.com/banshee-data/drillsense/internal/deviation"
	"github.com/banshee-data/drillsense/internal/scene"
	"github.com/banshee-data/drillsense/internal/telemetry"
	"github.com/banshee-data/drillsense/internal/wellpath"
)

// Options controls what gets rendered and how.
type Options struct {
	Thresholds deviation.Thresholds
	Scale      deviation.Scale

	// ThresholdM overrides the snapshot's lateral threshold when non-zero.
	ThresholdM float64
	Policy     wellpath.LengthPolicy

	// Preset is the camera shown first on the path page.
	Preset        string
	PreviewWidth  int
	PreviewHeight int
	Supersample   int

	AssetsHost string
	Theme      string
	PlotFormat string // "png" or "svg"
}

// DefaultOptions takes every config default and leaves the lateral threshold
// to the snapshot.
func DefaultOptions() Options {
	return OptionsFromConfig(config.EmptyConfig())
}

// OptionsFromConfig maps a loaded config onto render options. The lateral
// threshold is only forced when the config sets it explicitly.
func OptionsFromConfig(cfg *config.Config) Options {
	o := Options{
		Thresholds:    cfg.Thresholds(),
		Scale:         cfg.Scale(),
		Policy:        cfg.GetLengthPolicy(),
		Preset:        cfg.GetCameraPreset(),
		PreviewWidth:  cfg.GetPreviewWidth(),
		PreviewHeight: cfg.GetPreviewHeight(),
		Supersample:   cfg.GetSupersample(),
		AssetsHost:    cfg.GetEChartsAssetsHost(),
		Theme:         cfg.GetTheme(),
		PlotFormat:    cfg.GetPlotFormat(),
	}
	if cfg.LateralThresholdM != nil {
		o.ThresholdM = *cfg.LateralThresholdM
	}
	return o
}

// LateralThreshold picks the lateral threshold for a snapshot: the override,
// then the snapshot's own value, then the package default.
func (o Options) LateralThreshold(snapshotM float64) float64 {
	switch {
	case o.ThresholdM > 0:
		return o.ThresholdM
	case snapshotM > 0:
		return snapshotM
	default:
		return wellpath.DefaultLateralThresholdM
	}
}

func (o Options) preset() string {
	return scene.PresetName(o.Preset)
}

// Compare runs the path comparison for a snapshot under o.
func Compare(snap *telemetry.Snapshot, o Options) (wellpath.Comparison, error) {
	return wellpath.Compare(snap.Path.PlannedPath(), snap.Path.ActualPath(), wellpath.CompareOptions{
		ThresholdM: o.LateralThreshold(snap.Path.ThresholdM),
		Policy:     o.Policy,
	})
}
