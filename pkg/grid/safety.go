package grid

import "strings"

// SafetyConfig restricts what the client is allowed to do against the
// remote service.
type SafetyConfig struct {
	// ReadOnly blocks create, update and delete operations.
	ReadOnly bool
	// AllowedBases restricts operations to the listed base IDs.
	// An entry ending in "*" matches any base with that prefix.
	// Empty means every base is allowed.
	AllowedBases []string
}

// UnrestrictedSafetyConfig returns a configuration with no restrictions.
func UnrestrictedSafetyConfig() SafetyConfig {
	return SafetyConfig{}
}

// CheckWrite returns a SafetyError if op modifies data and the
// configuration is read-only.
func (s SafetyConfig) CheckWrite(op string) error {
	if s.ReadOnly {
		return &SafetyError{Op: op, Reason: "read-only mode is enabled"}
	}
	return nil
}

// CheckBase returns a SafetyError if baseID is outside AllowedBases.
func (s SafetyConfig) CheckBase(op, baseID string) error {
	if s.IsBaseAllowed(baseID) {
		return nil
	}
	return &SafetyError{Op: op, Reason: "base " + baseID + " is not in the allowed list"}
}

// IsBaseAllowed reports whether baseID passes the AllowedBases filter.
func (s SafetyConfig) IsBaseAllowed(baseID string) bool {
	if len(s.AllowedBases) == 0 {
		return true
	}
	for _, pattern := range s.AllowedBases {
		if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
			if strings.HasPrefix(baseID, prefix) {
				return true
			}
			continue
		}
		if pattern == baseID {
			return true
		}
	}
	return false
}
