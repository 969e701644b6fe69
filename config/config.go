package config

import (
	"os"
	"path/filepath"

	"github.com/LdDl/golf-trace/pipeline"
	"github.com/LdDl/golf-trace/render"
	"github.com/LdDl/golf-trace/trace"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const maxFileSize = 1 * 1024 * 1024

// Config is the complete tracer configuration. Every field is optional: missing or malformed values fall
// back to defaults instead of failing, the tracer is a live feedback loop.
type Config struct {
	// Preset is one of standard, mobile, precise
	Preset      string         `yaml:"preset"`
	Detector    DetectorConfig `yaml:"detector"`
	Sensitivity *float64       `yaml:"sensitivity,omitempty"`
	TraceColor  string         `yaml:"trace_color"`
	TraceEffect string         `yaml:"trace_effect"`
	Smoothing   string         `yaml:"smoothing"` // moving_average, kalman
	RetentionMS *int64         `yaml:"retention_ms,omitempty"`
	Timing      CadenceConfig  `yaml:"cadence"`
	Output      OutputConfig   `yaml:"output"`
}

// DetectorConfig overrides single tunables of the selected preset
type DetectorConfig struct {
	CellSize           *int     `yaml:"cell_size,omitempty"`
	WhiteFloor         *float64 `yaml:"white_floor,omitempty"`
	ChromaCeiling      *int     `yaml:"chroma_ceiling,omitempty"`
	BrightnessWeight   *float64 `yaml:"brightness_weight,omitempty"`
	WhiteRatioWeight   *float64 `yaml:"white_ratio_weight,omitempty"`
	BrightnessFloor    *float64 `yaml:"brightness_floor,omitempty"`
	WhiteRatioFloor    *float64 `yaml:"white_ratio_floor,omitempty"`
	BlockSize          *int     `yaml:"block_size,omitempty"`
	SampleStride       *int     `yaml:"sample_stride,omitempty"`
	MotionThreshold    *float64 `yaml:"motion_threshold,omitempty"`
	CandidateFactor    *float64 `yaml:"candidate_factor,omitempty"`
	FallbackFactor     *float64 `yaml:"fallback_factor,omitempty"`
	SearchRadius       *float64 `yaml:"search_radius,omitempty"`
	Refine             *bool    `yaml:"refine,omitempty"`
	LockRejectDistance *float64 `yaml:"lock_reject_distance,omitempty"`
}

// CadenceConfig contains processing rate and pre-roll settings
type CadenceConfig struct {
	MaxFPS         *float64 `yaml:"max_fps,omitempty"`
	PreRollFrames  int      `yaml:"preroll_frames"`
	LockHoldFrames *int     `yaml:"lock_hold_frames,omitempty"`
	SkipPreRoll    bool     `yaml:"skip_preroll"`
}

// OutputConfig contains optional artifact destinations
type OutputConfig struct {
	VideoPath string `yaml:"video_path"`
	PlotPath  string `yaml:"plot_path"`
	DBPath    string `yaml:"db_path"`
}

// Default returns configuration of the standard preset
func Default() *Config {
	return &Config{
		Preset:      trace.PresetStandard,
		TraceColor:  render.FormatTraceColor(render.DefaultTraceColor),
		TraceEffect: render.DefaultEffect.String(),
		Smoothing:   trace.SmoothingMovingAverage,
	}
}

// Load reads YAML configuration. Only I/O and syntax problems are errors; values are clamped later.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return nil, errors.Errorf("config file must have .yaml or .yml extension, got %q", ext)
	}
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "Can't stat config file")
	}
	if fileInfo.Size() > maxFileSize {
		return nil, errors.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read config file")
	}
	return Parse(data)
}

// Parse decodes YAML document on top of Default
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "Can't parse config")
	}
	return cfg, nil
}

// DetectorParams returns normalized preset with overrides applied
func (cfg *Config) DetectorParams() trace.DetectorParams {
	params := trace.PresetParams(cfg.Preset)
	d := cfg.Detector
	setInt(&params.CellSize, d.CellSize)
	setFloat(&params.WhiteFloor, d.WhiteFloor)
	setInt(&params.ChromaCeiling, d.ChromaCeiling)
	setFloat(&params.BrightnessWeight, d.BrightnessWeight)
	setFloat(&params.WhiteRatioWeight, d.WhiteRatioWeight)
	setFloat(&params.BrightnessFloor, d.BrightnessFloor)
	setFloat(&params.WhiteRatioFloor, d.WhiteRatioFloor)
	setInt(&params.BlockSize, d.BlockSize)
	setInt(&params.SampleStride, d.SampleStride)
	setFloat(&params.MotionThreshold, d.MotionThreshold)
	setFloat(&params.CandidateFactor, d.CandidateFactor)
	setFloat(&params.FallbackFactor, d.FallbackFactor)
	setFloat(&params.SearchRadius, d.SearchRadius)
	setFloat(&params.LockRejectDistance, d.LockRejectDistance)
	if d.Refine != nil {
		params.Refine = *d.Refine
	}
	return params.Normalize()
}

// GetSensitivity returns clamped sensitivity, DefaultSensitivity when unset
func (cfg *Config) GetSensitivity() float64 {
	if cfg.Sensitivity == nil {
		return trace.DefaultSensitivity
	}
	return trace.ClampSensitivity(*cfg.Sensitivity)
}

// GetRetentionMillis returns clamped retention window
func (cfg *Config) GetRetentionMillis() int64 {
	if cfg.RetentionMS == nil {
		return trace.DefaultRetentionMillis
	}
	return trace.ClampRetention(*cfg.RetentionMS)
}

// Smoother returns configured smoothing strategy
func (cfg *Config) Smoother() trace.Smoother {
	return trace.NewSmoother(cfg.Smoothing)
}

// Style returns trail style with malformed color and effect replaced by defaults
func (cfg *Config) Style() render.Style {
	return render.NewStyle(cfg.TraceColor, cfg.TraceEffect)
}

// Cadence returns normalized processing cadence
func (cfg *Config) Cadence() pipeline.Cadence {
	cadence := pipeline.DefaultCadence()
	if cfg.Timing.MaxFPS != nil {
		cadence.MaxFPS = *cfg.Timing.MaxFPS
	}
	if cfg.Timing.LockHoldFrames != nil {
		cadence.LockHoldFrames = *cfg.Timing.LockHoldFrames
	}
	cadence.PreRollFrames = cfg.Timing.PreRollFrames
	cadence.SkipPreRoll = cfg.Timing.SkipPreRoll
	return cadence.Normalize()
}

// SessionOptions bundles session settings derived from configuration
func (cfg *Config) SessionOptions() []trace.SessionOption {
	return []trace.SessionOption{
		trace.WithSensitivity(cfg.GetSensitivity()),
		trace.WithRetention(cfg.GetRetentionMillis()),
		trace.WithSmoother(cfg.Smoother()),
	}
}

func setInt(dst *int, value *int) {
	if value != nil {
		*dst = *value
	}
}

func setFloat(dst *float64, value *float64) {
	if value != nil {
		*dst = *value
	}
}
