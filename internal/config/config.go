package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/fluidview/internal/viewer"
	"gopkg.in/yaml.v3"
)

const (
	DefaultResolution    = 16
	DefaultBoundaryOrder = 2
	DefaultFPS           = 30
	DefaultLogLevel      = "info"
)

type Config struct {
	Visibility VisibilityConfig  `yaml:"visibility"`
	Controller ControllerConfig  `yaml:"controller"`
	Scenes     []SceneConfig     `yaml:"scenes"`
	Keys       map[string]string `yaml:"keys,omitempty"`
	LogLevel   string            `yaml:"log_level"`
	FPS        int               `yaml:"fps"`
}

type VisibilityConfig struct {
	FrameRate          bool `yaml:"frame_rate"`
	GridLines          bool `yaml:"grid_lines"`
	GridVelocity       bool `yaml:"grid_velocity"`
	LevelSet           bool `yaml:"level_set"`
	ParticleVelocity   bool `yaml:"particle_velocity"`
	Pressure           bool `yaml:"pressure"`
	Neighbors          bool `yaml:"neighbors"`
	ParticleAnisotropy bool `yaml:"particle_anisotropy"`
	MatrixConnections  bool `yaml:"matrix_connections"`
	ExternalMesh       bool `yaml:"external_mesh"`
}

type ControllerConfig struct {
	Help          bool `yaml:"help"`
	Resolution    int  `yaml:"resolution"`
	BoundaryOrder int  `yaml:"boundary_order"`
	Variational   bool `yaml:"variational"`
	Correction    int  `yaml:"correction"`
	Scene         int  `yaml:"scene"`
	Adaptive      bool `yaml:"adaptive"`
	Remesh        bool `yaml:"remesh"`
	Mesher        int  `yaml:"mesher"`
}

type SceneConfig struct {
	Name   string  `yaml:"name"`
	Param0 float64 `yaml:"param0"`
	Param1 float64 `yaml:"param1"`
}

func DefaultConfig() *Config {
	return &Config{
		Visibility: VisibilityConfig{
			FrameRate:          true,
			GridLines:          true,
			LevelSet:           true,
			ParticleAnisotropy: true,
			ExternalMesh:       true,
		},
		Controller: ControllerConfig{
			Resolution:    DefaultResolution,
			BoundaryOrder: DefaultBoundaryOrder,
			Variational:   true,
			Correction:    1,
			Adaptive:      true,
			Remesh:        true,
		},
		Scenes:   DefaultScenes(),
		LogLevel: DefaultLogLevel,
		FPS:      DefaultFPS,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Validate checks everything the controller would reject at startup.
func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := c.KeyMap(); err != nil {
		return err
	}
	if _, err := viewer.NewStore(c.VisibilitySettings(), c.ControllerSettings(), len(c.Scenes)); err != nil {
		return err
	}
	return nil
}

func (c *Config) VisibilitySettings() viewer.VisibilitySettings {
	v := c.Visibility
	return viewer.VisibilitySettings{
		viewer.FrameRate:          v.FrameRate,
		viewer.GridLines:          v.GridLines,
		viewer.GridVelocity:       v.GridVelocity,
		viewer.LevelSet:           v.LevelSet,
		viewer.ParticleVelocity:   v.ParticleVelocity,
		viewer.Pressure:           v.Pressure,
		viewer.Neighbors:          v.Neighbors,
		viewer.ParticleAnisotropy: v.ParticleAnisotropy,
		viewer.MatrixConnections:  v.MatrixConnections,
		viewer.ExternalMesh:       v.ExternalMesh,
	}
}

func (c *Config) ControllerSettings() viewer.ControllerSettings {
	ct := c.Controller
	return viewer.ControllerSettings{
		viewer.SlotHelp:          b2i(ct.Help),
		viewer.SlotResolution:    ct.Resolution,
		viewer.SlotBoundaryOrder: ct.BoundaryOrder,
		viewer.SlotVariational:   b2i(ct.Variational),
		viewer.SlotCorrection:    ct.Correction,
		viewer.SlotScene:         ct.Scene,
		viewer.SlotAdaptive:      b2i(ct.Adaptive),
		viewer.SlotRemesh:        b2i(ct.Remesh),
		viewer.SlotMesher:        ct.Mesher,
	}
}

func (c *Config) SceneTable() []viewer.Scene {
	scenes := make([]viewer.Scene, len(c.Scenes))
	for i, s := range c.Scenes {
		scenes[i] = viewer.Scene{Name: s.Name, Param0: s.Param0, Param1: s.Param1}
	}
	return scenes
}

// KeyMap applies the configured overrides to the default bindings.
func (c *Config) KeyMap() (viewer.KeyMap, error) {
	km, err := viewer.DefaultKeyMap().WithOverrides(c.Keys)
	if err != nil {
		return km, err
	}
	return km, km.Validate()
}

// Options assembles the controller seed from the config.
func (c *Config) Options(logger *log.Logger) (viewer.Options, error) {
	km, err := c.KeyMap()
	if err != nil {
		return viewer.Options{}, err
	}
	return viewer.Options{
		Visibility: c.VisibilitySettings(),
		Settings:   c.ControllerSettings(),
		Scenes:     c.SceneTable(),
		Keys:       &km,
		Logger:     logger,
	}, nil
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
