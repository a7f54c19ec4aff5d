package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[scenario]
reference_year = 2026
classification = "UNCLASSIFIED"
description = "harbor exercise"
data_limiting = true
data_limit_points = 500
data_limit_time = 60.0

[defaults.platform]
icon = "ship"
scale = 2.0
data_draw = true

[defaults.beam]
vertical_width = 0.1
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.DataLimiting() {
		t.Fatalf("expected data limiting on")
	}

	props := cfg.ScenarioProperties()
	if props.ReferenceYear != 2026 || props.DataLimitPoints != 500 || props.DataLimitTime != 60 {
		t.Fatalf("scenario properties wrong: %+v", props)
	}

	d := cfg.ScenarioDefaults()
	if d.Platform == nil || d.Platform.Icon == nil || *d.Platform.Icon != "ship" {
		t.Fatalf("platform defaults wrong: %+v", d.Platform)
	}
	if d.Platform.Common.DataDraw == nil || !*d.Platform.Common.DataDraw {
		t.Fatalf("common defaults not applied: %+v", d.Platform.Common)
	}
	if d.Beam == nil || d.Beam.VerticalWidth == nil || *d.Beam.VerticalWidth != 0.1 {
		t.Fatalf("beam defaults wrong: %+v", d.Beam)
	}
	if d.Gate != nil {
		t.Fatalf("absent sections must stay nil")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[scenario]
refrence_year = 2026
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("misspelled key must fail loudly")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("missing file must fail")
	}
}
