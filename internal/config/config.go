package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/photonwalk/internal/stellar"
)

const (
	DefaultPhotons         = 5
	DefaultBackgroundStars = 40
	DefaultMass            = 1.0
	DefaultRadius          = 1.0
	DefaultOpacity         = 1.0
	DefaultFrameRate       = 30
	DefaultRecordStride    = 1
	DefaultDataDir         = ".photonwalk"

	EnvPrefix = "PHOTONWALK"
)

// Bounds of the validated input contract.
var (
	PhotonRange          = Range{Lo: 1, Hi: 25}
	BackgroundStarsRange = Range{Lo: 0, Hi: 100}
	MassRange            = Range{Lo: 0.1, Hi: 25.0}
	RadiusRange          = Range{Lo: 0.2, Hi: 2.0}
	OpacityRange         = Range{Lo: 0.1, Hi: 25.0}
)

type Range struct {
	Lo, Hi float64
}

func (r Range) Clamp(v float64) float64 {
	if v < r.Lo {
		return r.Lo
	}
	if v > r.Hi {
		return r.Hi
	}
	return v
}

// Parameters are the user-facing simulation inputs in solar units.
type Parameters struct {
	Photons         int     `yaml:"photons" mapstructure:"photons"`
	BackgroundStars int     `yaml:"background_stars" mapstructure:"background_stars"`
	Mass            float64 `yaml:"mass" mapstructure:"mass"`
	Radius          float64 `yaml:"radius" mapstructure:"radius"`
	Opacity         float64 `yaml:"opacity" mapstructure:"opacity"`
}

// Adjustment records a value that was moved into its allowed range.
type Adjustment struct {
	Name     string
	From, To float64
	Range    Range
}

func (a Adjustment) String() string {
	return fmt.Sprintf("%s adjusted to %g (allowed range %g-%g)", a.Name, a.To, a.Range.Lo, a.Range.Hi)
}

// Clamp returns parameters inside their documented ranges and the list of
// values that had to change.
func (p Parameters) Clamp() (Parameters, []Adjustment) {
	var adj []Adjustment
	clampF := func(name string, v float64, r Range) float64 {
		c := r.Clamp(v)
		if c != v {
			adj = append(adj, Adjustment{Name: name, From: v, To: c, Range: r})
		}
		return c
	}

	out := Parameters{
		Photons:         int(clampF("Photons", float64(p.Photons), PhotonRange)),
		BackgroundStars: int(clampF("Background Stars", float64(p.BackgroundStars), BackgroundStarsRange)),
		Radius:          clampF("Radius", p.Radius, RadiusRange),
		Mass:            clampF("Mass", p.Mass, MassRange),
		Opacity:         clampF("Opacity", p.Opacity, OpacityRange),
	}
	return out, adj
}

type Config struct {
	Params       Parameters `yaml:"params" mapstructure:"params"`
	Seed         int64      `yaml:"seed" mapstructure:"seed"`
	DensityFloor float64    `yaml:"density_floor" mapstructure:"density_floor"`
	MaxTicks     int        `yaml:"max_ticks" mapstructure:"max_ticks"`
	FrameRate    int        `yaml:"fps" mapstructure:"fps"`
	RecordStride int        `yaml:"record_stride" mapstructure:"record_stride"`
	DataDir      string     `yaml:"data_dir" mapstructure:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Params: Parameters{
			Photons:         DefaultPhotons,
			BackgroundStars: DefaultBackgroundStars,
			Mass:            DefaultMass,
			Radius:          DefaultRadius,
			Opacity:         DefaultOpacity,
		},
		DensityFloor: stellar.DefaultDensityFloor,
		FrameRate:    DefaultFrameRate,
		RecordStride: DefaultRecordStride,
		DataDir:      DefaultDataDir,
	}
}

// Load reads a YAML config file on top of the defaults. Environment
// variables such as PHOTONWALK_PARAMS_MASS or PHOTONWALK_SEED override the file.
func Load(path string) (*Config, error) {
	return load(DefaultConfig(), path)
}

// LoadPreset starts from the named preset instead of the defaults and applies
// the same environment overrides as Load.
func LoadPreset(name string) (*Config, error) {
	base := GetPreset(name)
	if base == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
	}
	return load(base, "")
}

func load(base *Config, path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, base)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("params.photons", cfg.Params.Photons)
	v.SetDefault("params.background_stars", cfg.Params.BackgroundStars)
	v.SetDefault("params.mass", cfg.Params.Mass)
	v.SetDefault("params.radius", cfg.Params.Radius)
	v.SetDefault("params.opacity", cfg.Params.Opacity)
	v.SetDefault("seed", cfg.Seed)
	v.SetDefault("density_floor", cfg.DensityFloor)
	v.SetDefault("max_ticks", cfg.MaxTicks)
	v.SetDefault("fps", cfg.FrameRate)
	v.SetDefault("record_stride", cfg.RecordStride)
	v.SetDefault("data_dir", cfg.DataDir)
}

// Validate clamps the parameters in place and checks the remaining fields.
// Non-finite values cannot be clamped and are rejected before anything changes.
func (c *Config) Validate() ([]Adjustment, error) {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"mass", c.Params.Mass},
		{"radius", c.Params.Radius},
		{"opacity", c.Params.Opacity},
		{"density_floor", c.DensityFloor},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return nil, fmt.Errorf("%s must be a finite number, got %g", f.name, f.v)
		}
	}

	params, adj := c.Params.Clamp()
	c.Params = params
	if c.DensityFloor <= 0 {
		return adj, fmt.Errorf("density_floor must be positive, got %g", c.DensityFloor)
	}
	if c.MaxTicks < 0 {
		return adj, fmt.Errorf("max_ticks must not be negative, got %d", c.MaxTicks)
	}
	if c.FrameRate <= 0 {
		c.FrameRate = DefaultFrameRate
	}
	if c.RecordStride <= 0 {
		c.RecordStride = DefaultRecordStride
	}
	return adj, nil
}
