package config

// DefaultValues returns the default override map for the keys a Store
// understands, mirroring config.Default().
func DefaultValues() map[string]string {
	return map[string]string{
		"root":                 "DefaultQuests",
		"importance.alpha":     "0.5",
		"importance.use_log":   "true",
		"importance.normalize": "true",
	}
}

// ApplyDefaults fills any missing keys in s with their default values.
func ApplyDefaults(s Store) error {
	defaults := DefaultValues()
	all := s.All()
	for k, v := range defaults {
		if _, exists := all[k]; !exists {
			if err := s.Set(k, v); err != nil {
				return err
			}
		}
	}
	return nil
}
