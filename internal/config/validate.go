package config

import (
	"fmt"
	"os"

	"github.com/vmunix/admit/pkg/quality"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validLogFormats = map[string]bool{
	"text": true, "json": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if !validLogFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("log.format: must be one of text, json; got %q", c.Log.Format))
	}
	if c.Scan.Workers < 0 {
		errs = append(errs, fmt.Sprintf("scan.workers: must be positive, got %d", c.Scan.Workers))
	}

	for _, family := range quality.Families() {
		errs = append(errs, c.Quality.For(family).validate(family)...)
	}

	return errs
}

func (p ProfileConfig) validate(family quality.Family) []string {
	var errs []string
	key := "quality." + sectionName(family)

	minimum, minErr := p.minimum(family)
	if minErr != nil {
		errs = append(errs, fmt.Sprintf("%s.minimum: %v", key, minErr))
	}
	cutoff, cutErr := p.cutoff(family)
	if cutErr != nil {
		errs = append(errs, fmt.Sprintf("%s.cutoff: %v", key, cutErr))
	}
	if minErr == nil && cutErr == nil && cutoff.Rank < minimum.Rank {
		errs = append(errs, fmt.Sprintf("%s.cutoff: %s is below minimum %s", key, cutoff.Name, minimum.Name))
	}
	if p.EnforceMinimum && p.Minimum == "" {
		errs = append(errs, fmt.Sprintf("%s.enforce_minimum: set but no minimum configured", key))
	}
	return errs
}

// Warnings reports non-fatal problems such as missing library roots.
func (c *Config) Warnings() []string {
	var warns []string
	for _, family := range quality.Families() {
		root := c.Libraries.For(family).Root
		if root == "" {
			continue
		}
		if _, err := os.Stat(root); os.IsNotExist(err) {
			warns = append(warns, fmt.Sprintf("libraries.%s.root: directory %q does not exist", sectionName(family), root))
		}
	}
	return warns
}
