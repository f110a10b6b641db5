package config

import (
	"fmt"
	"strings"
)

// ValidationResult holds config validation results.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// ValidateDetailed performs thorough config validation with suggestions.
func (c *Config) ValidateDetailed() *ValidationResult {
	result := &ValidationResult{}

	// External engine
	if c.External.TimeoutMs < 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("external.timeoutMs: must not be negative, got %d", c.External.TimeoutMs))
	} else if c.External.TimeoutMs != 0 && (c.External.TimeoutMs < 1000 || c.External.TimeoutMs > 10000) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("external.timeoutMs: %d is outside the supported 1000..10000 range and will be clamped", c.External.TimeoutMs))
	}

	// Parser
	seen := map[string]bool{}
	for _, event := range c.Parser.BannedEvents {
		if event == "" {
			result.Errors = append(result.Errors, "parser.bannedEvents: empty event name")
			continue
		}
		if strings.ContainsAny(event, "()[]\"'") {
			result.Errors = append(result.Errors,
				fmt.Sprintf("parser.bannedEvents: %q is not a plain event name — use the name without binding syntax", event))
		}
		if seen[event] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("parser.bannedEvents: %q listed more than once", event))
		}
		seen[event] = true
	}

	// Cache
	if c.Cache.Size <= 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("cache.size: must be positive, got %d", c.Cache.Size))
	} else if c.Cache.Size > 10000 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("cache.size: %d parsed files is unusually large", c.Cache.Size))
	}

	return result
}

// IsValid returns true if there are no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}
