package config

var Presets = map[string]*Config{
	"default": {
		Columns: 24, Rows: 16, Dt: 1.0 / 60, Duration: 10.0, Iterations: 2,
	},
	"dense": {
		Columns: 48, Rows: 32, Dt: 1.0 / 60, Duration: 10.0, Iterations: 2,
	},
	"slack": {
		Columns: 24, Rows: 16, Dt: 1.0 / 60, Duration: 10.0, Iterations: 1,
	},
	"stiff": {
		Columns: 24, Rows: 16, Dt: 1.0 / 60, Duration: 10.0, Iterations: 8,
	},
	"shred": {
		Columns: 32, Rows: 24, Dt: 1.0 / 60, Duration: 12.0, Iterations: 2,
		Cuts: []CutConfig{
			{At: 2.0, FromX: -0.1, FromY: 0.3, ToX: 0.6, ToY: 0.4},
			{At: 4.0, FromX: 0.4, FromY: 0.2, ToX: 1.1, ToY: 0.6},
			{At: 6.0, FromX: 0.5, FromY: -0.1, ToX: 0.5, ToY: 1.1},
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
