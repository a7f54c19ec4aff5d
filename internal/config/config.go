// Package config loads scenario settings and per-type preference defaults
// from a TOML file, for tools that want a declarative starting point
// instead of wiring domain structs by hand.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"

	"trackstore/pkg/domain"
)

// Config is the on-disk shape. Every field is optional; omitted fields
// keep the store's zero-value behavior.
type Config struct {
	Scenario ScenarioConfig `toml:"scenario"`
	Defaults DefaultsConfig `toml:"defaults"`
}

// ScenarioConfig mirrors the scenario-wide properties.
type ScenarioConfig struct {
	ReferenceYear              int32   `toml:"reference_year"`
	Classification             string  `toml:"classification"`
	Description                string  `toml:"description"`
	Source                     string  `toml:"source"`
	IgnoreDuplicateGenericData bool    `toml:"ignore_duplicate_generic_data"`
	DataLimiting               bool    `toml:"data_limiting"`
	DataLimitPoints            uint32  `toml:"data_limit_points"`
	DataLimitTime              float64 `toml:"data_limit_time"`
}

// DefaultsConfig holds the per-type preference defaults applied to newly
// created entities.
type DefaultsConfig struct {
	Platform   *PlatformDefaults   `toml:"platform"`
	Beam       *BeamDefaults       `toml:"beam"`
	Gate       *GateDefaults       `toml:"gate"`
	Laser      *LaserDefaults      `toml:"laser"`
	Projector  *ProjectorDefaults  `toml:"projector"`
	LOBGroup   *LOBGroupDefaults   `toml:"lobgroup"`
	CustomRend *CustomRendDefaults `toml:"customrendering"`
}

// CommonDefaults are the shared preference fields every entity type
// accepts.
type CommonDefaults struct {
	Draw            *bool    `toml:"draw"`
	DataDraw        *bool    `toml:"data_draw"`
	Color           *uint32  `toml:"color"`
	DataLimitPoints *uint32  `toml:"data_limit_points"`
	DataLimitTime   *float64 `toml:"data_limit_time"`
}

func (c CommonDefaults) apply(dst *domain.CommonPrefs) {
	dst.Draw = c.Draw
	dst.DataDraw = c.DataDraw
	dst.Color = c.Color
	dst.DataLimitPoints = c.DataLimitPoints
	dst.DataLimitTime = c.DataLimitTime
}

type PlatformDefaults struct {
	CommonDefaults
	Icon            *string  `toml:"icon"`
	Scale           *float64 `toml:"scale"`
	InterpolatePos  *bool    `toml:"interpolate_pos"`
	SurfaceClamping *bool    `toml:"surface_clamping"`
}

type BeamDefaults struct {
	CommonDefaults
	VerticalWidth      *float64 `toml:"vertical_width"`
	HorizontalWidth    *float64 `toml:"horizontal_width"`
	AzimuthOffset      *float64 `toml:"azimuth_offset"`
	ElevationOffset    *float64 `toml:"elevation_offset"`
	InterpolateBeamPos *bool    `toml:"interpolate_pos"`
}

type GateDefaults struct {
	CommonDefaults
	FillPattern        *int32 `toml:"fill_pattern"`
	CentroidDraw       *bool  `toml:"centroid_draw"`
	InterpolateGatePos *bool  `toml:"interpolate_pos"`
}

type LaserDefaults struct {
	CommonDefaults
	Width           *int32   `toml:"width"`
	AzimuthOffset   *float64 `toml:"azimuth_offset"`
	ElevationOffset *float64 `toml:"elevation_offset"`
}

type ProjectorDefaults struct {
	CommonDefaults
	ShadowMapping  *bool `toml:"shadow_mapping"`
	InterpolateFOV *bool `toml:"interpolate_fov"`
}

type LOBGroupDefaults struct {
	CommonDefaults
	MaxDataPoints  *uint32  `toml:"max_data_points"`
	MaxDataSeconds *float64 `toml:"max_data_seconds"`
	LOBWidth       *int32   `toml:"lob_width"`
}

type CustomRendDefaults struct {
	CommonDefaults
	Persistence *float64 `toml:"persistence"`
}

// Load reads and validates a TOML config file. Unknown keys are rejected
// so typos fail loudly instead of silently keeping a default.
func Load(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "config: load %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Newf("config: unknown key %q in %s", undecoded[0].String(), path)
	}
	return &cfg, nil
}

// DataLimiting reports the configured retention mode. False means file
// mode.
func (c *Config) DataLimiting() bool { return c.Scenario.DataLimiting }

// ScenarioProperties converts the scenario section to the domain struct.
func (c *Config) ScenarioProperties() domain.ScenarioProperties {
	return domain.ScenarioProperties{
		ReferenceYear:              c.Scenario.ReferenceYear,
		Classification:             c.Scenario.Classification,
		Description:                c.Scenario.Description,
		Source:                     c.Scenario.Source,
		IgnoreDuplicateGenericData: c.Scenario.IgnoreDuplicateGenericData,
		DataLimitPoints:            c.Scenario.DataLimitPoints,
		DataLimitTime:              c.Scenario.DataLimitTime,
	}
}

// ScenarioDefaults converts the defaults section to the domain struct.
// Absent sections stay nil so the store falls back to empty prefs.
func (c *Config) ScenarioDefaults() *domain.ScenarioDefaults {
	d := &domain.ScenarioDefaults{}
	if p := c.Defaults.Platform; p != nil {
		prefs := &domain.PlatformPrefs{
			Icon:            p.Icon,
			Scale:           p.Scale,
			InterpolatePos:  p.InterpolatePos,
			SurfaceClamping: p.SurfaceClamping,
		}
		p.CommonDefaults.apply(&prefs.Common)
		d.Platform = prefs
	}
	if b := c.Defaults.Beam; b != nil {
		prefs := &domain.BeamPrefs{
			VerticalWidth:      b.VerticalWidth,
			HorizontalWidth:    b.HorizontalWidth,
			AzimuthOffset:      b.AzimuthOffset,
			ElevationOffset:    b.ElevationOffset,
			InterpolateBeamPos: b.InterpolateBeamPos,
		}
		b.CommonDefaults.apply(&prefs.Common)
		d.Beam = prefs
	}
	if g := c.Defaults.Gate; g != nil {
		prefs := &domain.GatePrefs{
			FillPattern:        g.FillPattern,
			CentroidDraw:       g.CentroidDraw,
			InterpolateGatePos: g.InterpolateGatePos,
		}
		g.CommonDefaults.apply(&prefs.Common)
		d.Gate = prefs
	}
	if l := c.Defaults.Laser; l != nil {
		prefs := &domain.LaserPrefs{
			Width:           l.Width,
			AzimuthOffset:   l.AzimuthOffset,
			ElevationOffset: l.ElevationOffset,
		}
		l.CommonDefaults.apply(&prefs.Common)
		d.Laser = prefs
	}
	if p := c.Defaults.Projector; p != nil {
		prefs := &domain.ProjectorPrefs{
			ShadowMapping:  p.ShadowMapping,
			InterpolateFOV: p.InterpolateFOV,
		}
		p.CommonDefaults.apply(&prefs.Common)
		d.Projector = prefs
	}
	if l := c.Defaults.LOBGroup; l != nil {
		prefs := &domain.LOBGroupPrefs{
			MaxDataPoints:  l.MaxDataPoints,
			MaxDataSeconds: l.MaxDataSeconds,
			LOBWidth:       l.LOBWidth,
		}
		l.CommonDefaults.apply(&prefs.Common)
		d.LOBGroup = prefs
	}
	if cr := c.Defaults.CustomRend; cr != nil {
		prefs := &domain.CustomRenderingPrefs{
			Persistence: cr.Persistence,
		}
		cr.CommonDefaults.apply(&prefs.Common)
		d.CustomRendering = prefs
	}
	return d
}
