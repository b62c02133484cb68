// Package config loads runtime settings from SCROLLSPACE_* environment variables.
// Command-line flags in main override whatever is loaded here.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "SCROLLSPACE_"

// Config is the full set of tunables for the scene and its hosts.
type Config struct {
	Width  int `env:"WIDTH"  envDefault:"480"`
	Height int `env:"HEIGHT" envDefault:"320"`
	Scale  int `env:"SCALE"  envDefault:"2"`
	TPS    int `env:"TPS"    envDefault:"60"`

	AssetDir          string `env:"ASSETS"             envDefault:"assets"`
	BackgroundTexture string `env:"TEXTURE_BACKGROUND" envDefault:"pandas.jpg"`
	CubeTexture       string `env:"TEXTURE_CUBE"       envDefault:"northern-lights.jpg"`
	MoonTexture       string `env:"TEXTURE_MOON"       envDefault:"moon.jpg"`

	Stars        int     `env:"STARS"         envDefault:"200"`
	StarSegments int     `env:"STAR_SEGMENTS" envDefault:"8"`
	StarSpread   float64 `env:"STAR_SPREAD"   envDefault:"100"`
	Seed         uint64  `env:"SEED"          envDefault:"1"`

	PageHeight     float64 `env:"PAGE_HEIGHT"     envDefault:"5000"`
	ViewportHeight float64 `env:"VIEWPORT_HEIGHT" envDefault:"800"`
	WheelStep      float64 `env:"WHEEL_STEP"      envDefault:"100"`

	Helpers   bool `env:"HELPERS"   envDefault:"true"`
	Wireframe bool `env:"WIREFRAME" envDefault:"false"`
	HUD       bool `env:"HUD"       envDefault:"true"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses the given variables instead of the process environment when
// environ is non-nil.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: envPrefix, Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot produce a running scene.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"page height", c.PageHeight},
		{"viewport height", c.ViewportHeight},
		{"wheel step", c.WheelStep},
		{"star spread", c.StarSpread},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("config: %s must be finite, got %v", f.name, f.v)
		}
	}
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height)
	case c.Scale <= 0:
		return fmt.Errorf("config: invalid scale %d", c.Scale)
	case c.TPS <= 0:
		return fmt.Errorf("config: invalid tps %d", c.TPS)
	case c.Stars < 0:
		return fmt.Errorf("config: invalid star count %d", c.Stars)
	case c.StarSpread < 0:
		return fmt.Errorf("config: invalid star spread %v", c.StarSpread)
	case c.StarSegments < 3:
		return fmt.Errorf("config: star segments must be >= 3, got %d", c.StarSegments)
	case c.PageHeight < c.ViewportHeight:
		return errors.New("config: page height is smaller than the viewport")
	case c.WheelStep <= 0:
		return fmt.Errorf("config: invalid wheel step %v", c.WheelStep)
	}
	return nil
}
