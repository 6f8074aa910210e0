package config

import (
	"fmt"
	"strconv"
	"strings"
)

// boolLikeKeys are keys whose values must parse as a Go bool.
var boolLikeKeys = map[string]bool{
	"importance.use_log":   true,
	"importance.normalize": true,
}

// Validate checks all values in s for known keys. It returns an error
// describing every invalid value found, or nil if all values are valid.
func Validate(s Store) error {
	all := s.All()
	var errs []string

	if val, ok := all["importance.alpha"]; ok {
		a, err := strconv.ParseFloat(val, 64)
		if err != nil || a < 0 || a > 1 {
			errs = append(errs, fmt.Sprintf(
				"importance.alpha: must be a number in [0, 1], got %q", val))
		}
	}

	for key := range boolLikeKeys {
		val, ok := all[key]
		if !ok {
			continue
		}
		if _, err := strconv.ParseBool(val); err != nil {
			errs = append(errs, fmt.Sprintf(
				"%s: must be a boolean, got %q", key, val))
		}
	}

	if val, ok := all["root"]; ok && strings.TrimSpace(val) == "" {
		errs = append(errs, "root: must not be empty")
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
}
