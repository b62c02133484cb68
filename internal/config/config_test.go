package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Stars != 200 {
		t.Fatalf("Stars = %d, want 200", cfg.Stars)
	}
	if cfg.MoonTexture != "moon.jpg" || cfg.CubeTexture != "northern-lights.jpg" || cfg.BackgroundTexture != "pandas.jpg" {
		t.Fatalf("textures = %q %q %q", cfg.BackgroundTexture, cfg.CubeTexture, cfg.MoonTexture)
	}
	if !cfg.Helpers || cfg.Wireframe {
		t.Fatalf("helpers=%v wireframe=%v, want true/false", cfg.Helpers, cfg.Wireframe)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"SCROLLSPACE_STARS":      "12",
		"SCROLLSPACE_SEED":       "42",
		"SCROLLSPACE_WIREFRAME":  "true",
		"SCROLLSPACE_WHEEL_STEP": "37.5",
		"STARS":                  "999",
	})
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Stars != 12 || cfg.Seed != 42 || !cfg.Wireframe || cfg.WheelStep != 37.5 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"bad int":         {"SCROLLSPACE_WIDTH": "wide"},
		"zero width":      {"SCROLLSPACE_WIDTH": "0"},
		"few segments":    {"SCROLLSPACE_STAR_SEGMENTS": "2"},
		"short page":      {"SCROLLSPACE_PAGE_HEIGHT": "10"},
		"negative stars":  {"SCROLLSPACE_STARS": "-1"},
		"nan page":        {"SCROLLSPACE_PAGE_HEIGHT": "NaN"},
		"inf page":        {"SCROLLSPACE_PAGE_HEIGHT": "+Inf"},
		"nan viewport":    {"SCROLLSPACE_VIEWPORT_HEIGHT": "NaN"},
		"inf wheel":       {"SCROLLSPACE_WHEEL_STEP": "Inf"},
		"nan spread":      {"SCROLLSPACE_STAR_SPREAD": "NaN"},
		"negative spread": {"SCROLLSPACE_STAR_SPREAD": "-5"},
	}
	for name, environ := range tests {
		if _, err := LoadFrom(environ); err == nil {
			t.Fatalf("%s: LoadFrom succeeded, want error", name)
		}
	}
}
