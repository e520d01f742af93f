package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/banshee-data/drillsense/internal/deviation"
	"github.com/banshee-data/drillsense/internal/scene"
	"github.com/banshee-data/drillsense/internal/wellpath"
)

// DefaultConfigPath is the path to the canonical defaults file.
const DefaultConfigPath = "config/drillsense.defaults.json"

// Config holds the tunable thresholds and render settings. Every field is
// optional; the Get* accessors supply defaults for anything left unset.
type Config struct {
	// Path colouring
	LateralThresholdM *float64 `json:"lateral_threshold_m,omitempty"`
	LengthPolicy      *string  `json:"length_policy,omitempty"` // "truncate" or "strict"

	// Classification bands
	OnPlanLateralM   *float64 `json:"on_plan_lateral_m,omitempty"`
	OnPlanAngularDeg *float64 `json:"on_plan_angular_deg,omitempty"`
	DriftLateralM    *float64 `json:"drift_lateral_m,omitempty"`
	DriftAngularDeg  *float64 `json:"drift_angular_deg,omitempty"`

	// Readout bars
	LateralBarFullCm  *float64 `json:"lateral_bar_full_cm,omitempty"`
	AngularBarFullDeg *float64 `json:"angular_bar_full_deg,omitempty"`

	// Preview rendering
	CameraPreset  *string `json:"camera_preset,omitempty"`
	PreviewWidth  *int    `json:"preview_width,omitempty"`
	PreviewHeight *int    `json:"preview_height,omitempty"`
	Supersample   *int    `json:"supersample,omitempty"`

	// Report output
	EChartsAssetsHost *string `json:"echarts_assets_host,omitempty"`
	Theme             *string `json:"theme,omitempty"`
	PlotFormat        *string `json:"plot_format,omitempty"` // "png" or "svg"
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyConfig returns a Config with all fields unset.
func EmptyConfig() *Config {
	return &Config{}
}

// DefaultConfig returns a Config with every field populated with its default.
func DefaultConfig() *Config {
	d := deviation.DefaultThresholds()
	s := deviation.DefaultScale()
	return &Config{
		LateralThresholdM: ptrFloat64(wellpath.DefaultLateralThresholdM),
		LengthPolicy:      ptrString(wellpath.Truncate.String()),
		OnPlanLateralM:    ptrFloat64(d.OnPlanLateralM),
		OnPlanAngularDeg:  ptrFloat64(d.OnPlanAngularDeg),
		DriftLateralM:     ptrFloat64(d.DriftLateralM),
		DriftAngularDeg:   ptrFloat64(d.DriftAngularDeg),
		LateralBarFullCm:  ptrFloat64(s.LateralFullCm),
		AngularBarFullDeg: ptrFloat64(s.AngularFullDeg),
		CameraPreset:      ptrString(scene.PresetDefault),
		PreviewWidth:      ptrInt(defaultPreviewWidth),
		PreviewHeight:     ptrInt(defaultPreviewHeight),
		Supersample:       ptrInt(defaultSupersample),
		EChartsAssetsHost: ptrString(defaultAssetsHost),
		Theme:             ptrString(defaultTheme),
		PlotFormat:        ptrString(defaultPlotFormat),
	}
}

const (
	defaultPreviewWidth  = 960
	defaultPreviewHeight = 540
	defaultSupersample   = 3
	defaultAssetsHost    = "https://go-echarts.github.io/go-echarts-assets/assets/"
	defaultTheme         = "dark"
	defaultPlotFormat    = "png"

	maxPreviewSide  = 8192
	maxSupersample  = 8
	maxConfigFileSz = 1 * 1024 * 1024 // 1MB
)

// LoadConfig loads a Config from a JSON file. Fields omitted from the file
// keep their defaults, so partial configs are safe.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxConfigFileSz {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxConfigFileSz)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath from the current directory or
// one of its parents. Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *Config {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // from cmd/drillsense/ and deeper
	}
	for _, path := range candidates {
		if cfg, err := LoadConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.LateralThresholdM != nil {
		if v := *c.LateralThresholdM; math.IsNaN(v) || v <= 0 {
			return fmt.Errorf("lateral_threshold_m must be positive, got %v", v)
		}
	}
	if c.LengthPolicy != nil {
		if _, err := wellpath.ParseLengthPolicy(*c.LengthPolicy); err != nil {
			return fmt.Errorf("length_policy: %w", err)
		}
	}
	if err := c.Thresholds().Validate(); err != nil {
		return err
	}
	if v := c.GetLateralBarFullCm(); v <= 0 {
		return fmt.Errorf("lateral_bar_full_cm must be positive, got %v", v)
	}
	if v := c.GetAngularBarFullDeg(); v <= 0 {
		return fmt.Errorf("angular_bar_full_deg must be positive, got %v", v)
	}
	if c.CameraPreset != nil && *c.CameraPreset != scene.PresetName(*c.CameraPreset) {
		return fmt.Errorf("camera_preset must be one of %v, got %q", scene.Presets(), *c.CameraPreset)
	}
	if w, h := c.GetPreviewWidth(), c.GetPreviewHeight(); w <= 0 || h <= 0 || w > maxPreviewSide || h > maxPreviewSide {
		return fmt.Errorf("preview size must be within 1..%d, got %dx%d", maxPreviewSide, w, h)
	}
	if s := c.GetSupersample(); s < 1 || s > maxSupersample {
		return fmt.Errorf("supersample must be within 1..%d, got %d", maxSupersample, s)
	}
	switch f := c.GetPlotFormat(); f {
	case "png", "svg":
	default:
		return fmt.Errorf("plot_format must be png or svg, got %q", f)
	}
	return nil
}

// Thresholds assembles the classification bands.
func (c *Config) Thresholds() deviation.Thresholds {
	t := deviation.DefaultThresholds()
	if c.OnPlanLateralM != nil {
		t.OnPlanLateralM = *c.OnPlanLateralM
	}
	if c.OnPlanAngularDeg != nil {
		t.OnPlanAngularDeg = *c.OnPlanAngularDeg
	}
	if c.DriftLateralM != nil {
		t.DriftLateralM = *c.DriftLateralM
	}
	if c.DriftAngularDeg != nil {
		t.DriftAngularDeg = *c.DriftAngularDeg
	}
	return t
}

// Scale assembles the readout bar scale.
func (c *Config) Scale() deviation.Scale {
	return deviation.Scale{
		LateralFullCm:  c.GetLateralBarFullCm(),
		AngularFullDeg: c.GetAngularBarFullDeg(),
	}
}

// GetLateralThresholdM returns the lateral_threshold_m value or the default.
func (c *Config) GetLateralThresholdM() float64 {
	if c.LateralThresholdM == nil {
		return wellpath.DefaultLateralThresholdM
	}
	return *c.LateralThresholdM
}

// GetLengthPolicy returns the parsed length_policy, falling back to truncate.
func (c *Config) GetLengthPolicy() wellpath.LengthPolicy {
	if c.LengthPolicy == nil {
		return wellpath.Truncate
	}
	p, err := wellpath.ParseLengthPolicy(*c.LengthPolicy)
	if err != nil {
		return wellpath.Truncate
	}
	return p
}

// GetLateralBarFullCm returns the lateral_bar_full_cm value or the default.
func (c *Config) GetLateralBarFullCm() float64 {
	if c.LateralBarFullCm == nil {
		return deviation.DefaultScale().LateralFullCm
	}
	return *c.LateralBarFullCm
}

// GetAngularBarFullDeg returns the angular_bar_full_deg value or the default.
func (c *Config) GetAngularBarFullDeg() float64 {
	if c.AngularBarFullDeg == nil {
		return deviation.DefaultScale().AngularFullDeg
	}
	return *c.AngularBarFullDeg
}

// GetCameraPreset returns the camera_preset value or the default view.
func (c *Config) GetCameraPreset() string {
	if c.CameraPreset == nil {
		return scene.PresetDefault
	}
	return scene.PresetName(*c.CameraPreset)
}

// GetPreviewWidth returns the preview_width value or the default.
func (c *Config) GetPreviewWidth() int {
	if c.PreviewWidth == nil {
		return defaultPreviewWidth
	}
	return *c.PreviewWidth
}

// GetPreviewHeight returns the preview_height value or the default.
func (c *Config) GetPreviewHeight() int {
	if c.PreviewHeight == nil {
		return defaultPreviewHeight
	}
	return *c.PreviewHeight
}

// GetSupersample returns the supersample value or the default.
func (c *Config) GetSupersample() int {
	if c.Supersample == nil {
		return defaultSupersample
	}
	return *c.Supersample
}

// GetEChartsAssetsHost returns the echarts_assets_host value or the public CDN.
func (c *Config) GetEChartsAssetsHost() string {
	if c.EChartsAssetsHost == nil || *c.EChartsAssetsHost == "" {
		return defaultAssetsHost
	}
	return *c.EChartsAssetsHost
}

// GetTheme returns the theme value or the default.
func (c *Config) GetTheme() string {
	if c.Theme == nil || *c.Theme == "" {
		return defaultTheme
	}
	return *c.Theme
}

// GetPlotFormat returns the plot_format value or the default.
func (c *Config) GetPlotFormat() string {
	if c.PlotFormat == nil || *c.PlotFormat == "" {
		return defaultPlotFormat
	}
	return *c.PlotFormat
}
