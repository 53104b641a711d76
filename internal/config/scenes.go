package config

// Scene parameters are the width and height of the initial water column,
// as fractions of the unit domain.
var Scenes = map[string]SceneConfig{
	"dam_break":    {Name: "dam_break", Param0: 0.4, Param1: 0.8},
	"shallow_pool": {Name: "shallow_pool", Param0: 1.0, Param1: 0.25},
	"tall_column":  {Name: "tall_column", Param0: 0.2, Param1: 0.9},
	"wide_dam":     {Name: "wide_dam", Param0: 0.6, Param1: 0.5},
}

// sceneOrder is the cycling order of the built-in scene table.
var sceneOrder = []string{"dam_break", "shallow_pool", "tall_column", "wide_dam"}

// DefaultScenes returns the built-in scene table.
func DefaultScenes() []SceneConfig {
	out := make([]SceneConfig, 0, len(sceneOrder))
	for _, name := range sceneOrder {
		out = append(out, Scenes[name])
	}
	return out
}

func GetScene(name string) (SceneConfig, bool) {
	s, ok := Scenes[name]
	return s, ok
}

func ListScenes() []string {
	names := make([]string, len(sceneOrder))
	copy(names, sceneOrder)
	return names
}
