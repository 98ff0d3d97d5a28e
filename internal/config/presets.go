package config

var Presets = map[string]map[string]*Config{
	"decay": {
		"coarse": {
			Method: "rk4", Problem: "decay", X0: 0, Xend: 1, Dx0: 0.1,
		},
		"fine": {
			Method: "rk4", Problem: "decay", X0: 0, Xend: 1, Dx0: 0.001,
		},
		"stiff-check": {
			Method: "bdf2", Problem: "decay", X0: 0, Xend: 1, Dx0: 0.01,
			TolIter: DefaultTolIter, IterMax: DefaultIterMax,
		},
	},
	"oscillator": {
		"period": {
			Method: "rk4", Problem: "oscillator", X0: 0, Xend: 6.2832, Dx0: 0.01,
		},
		"implicit": {
			Method: "trapezoidal", Problem: "oscillator", X0: 0, Xend: 6.2832, Dx0: 0.01,
			TolIter: DefaultTolIter, IterMax: DefaultIterMax,
		},
	},
	"vanderpol": {
		"mild": {
			Method: "rk4", Problem: "vanderpol", X0: 0, Xend: 20, Dx0: 0.001,
		},
		"stiff": {
			Method: "bdf2", Problem: "vanderpol", X0: 0, Xend: 20, Dx0: 0.01,
			TolIter: DefaultTolIter, IterMax: DefaultIterMax,
		},
	},
	"robertson": {
		"short": {
			Method: "euler_backward", Problem: "robertson", X0: 0, Xend: 0.4, Dx0: 1e-4,
			TolIter: DefaultTolIter, IterMax: DefaultIterMax,
		},
	},
}

// GetPreset returns a copy of the named preset with zero-valued Newton
// knobs filled from the defaults.
func GetPreset(problem, preset string) *Config {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	cfg, ok := problemPresets[preset]
	if !ok {
		return nil
	}
	out := *cfg
	if out.TolIter == 0 {
		out.TolIter = DefaultTolIter
	}
	if out.IterMax == 0 {
		out.IterMax = DefaultIterMax
	}
	if out.Output.Format == "" {
		out.Output.Format = "json"
	}
	return &out
}

func ListPresets(problem string) []string {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(problemPresets))
	for name := range problemPresets {
		names = append(names, name)
	}
	return names
}
