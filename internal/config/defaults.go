package config

// DefaultConfig returns configuration with sensible defaults, used when no
// config file exists or when a loaded file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Languages: nil,
			Exclude: []string{
				"vendor/**",
				"node_modules/**",
				"dist/**",
				"build/**",
				"**/testdata/**",
			},
		},
		Hierarchy: HierarchyConfig{
			DefaultRoots: []string{"Core", "Tests", "Docs"},
		},
		Lifting: LiftingConfig{
			BatchSize: 25,
		},
	}
}

// Merge merges loaded config with defaults. Values from loaded config take
// precedence over defaults. Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}
	result.Scan = mergeScanConfig(loaded.Scan, defaults.Scan)
	result.Hierarchy = mergeHierarchyConfig(loaded.Hierarchy, defaults.Hierarchy)
	result.Lifting = mergeLiftingConfig(loaded.Lifting, defaults.Lifting)
	return result
}

func mergeScanConfig(loaded, defaults ScanConfig) ScanConfig {
	result := ScanConfig{}

	if len(loaded.Languages) > 0 {
		result.Languages = loaded.Languages
	} else {
		result.Languages = defaults.Languages
	}

	if len(loaded.Exclude) > 0 {
		result.Exclude = loaded.Exclude
	} else {
		result.Exclude = defaults.Exclude
	}

	return result
}

func mergeHierarchyConfig(loaded, defaults HierarchyConfig) HierarchyConfig {
	result := HierarchyConfig{}
	if len(loaded.DefaultRoots) > 0 {
		result.DefaultRoots = loaded.DefaultRoots
	} else {
		result.DefaultRoots = defaults.DefaultRoots
	}
	return result
}

func mergeLiftingConfig(loaded, defaults LiftingConfig) LiftingConfig {
	result := LiftingConfig{}
	if loaded.BatchSize != 0 {
		result.BatchSize = loaded.BatchSize
	} else {
		result.BatchSize = defaults.BatchSize
	}
	return result
}
