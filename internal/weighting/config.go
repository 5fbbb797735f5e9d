// Package weighting adjusts similarity scores by document recency and
// curator-assigned quality.
package weighting

import (
	"fmt"

	"github.com/inkstone/quill/internal/models"
)

// Default weighting configuration values.
const (
	// DefaultDecayRate is the recency decay per year of document age.
	DefaultDecayRate = 0.1
	// DefaultRecencyWeight is the share of the combined score taken by recency.
	DefaultRecencyWeight = 0.2
	// DefaultQualityWeight is the share of the combined score taken by quality.
	DefaultQualityWeight = 0.2
)

// Config holds the weighting parameters. RecencyWeight and QualityWeight may
// sum to more than 1.0; the similarity remainder then goes negative, which
// callers use for de-prioritization experiments. That is deliberate and is
// not validated away.
type Config struct {
	DecayRate          float64                          `yaml:"decay_rate"`
	RecencyWeight      float64                          `yaml:"recency_weight"`
	QualityWeight      float64                          `yaml:"quality_weight"`
	QualityMultipliers map[models.QualityRating]float64 `yaml:"quality_multipliers"`
}

// DefaultConfig returns the default weighting configuration.
func DefaultConfig() *Config {
	return &Config{
		DecayRate:     DefaultDecayRate,
		RecencyWeight: DefaultRecencyWeight,
		QualityWeight: DefaultQualityWeight,
		QualityMultipliers: map[models.QualityRating]float64{
			models.QualityPreferred:    1.5,
			models.QualityReference:    1.0,
			models.QualitySupplemental: 0.7,
			models.QualityDeprecated:   0.3,
		},
	}
}

// ApplyDefaults fills zero values with defaults. Multiplier tiers missing
// from a partially-specified map get their default value.
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()
	if c.DecayRate == 0 {
		c.DecayRate = defaults.DecayRate
	}
	if c.RecencyWeight == 0 {
		c.RecencyWeight = defaults.RecencyWeight
	}
	if c.QualityWeight == 0 {
		c.QualityWeight = defaults.QualityWeight
	}
	if c.QualityMultipliers == nil {
		c.QualityMultipliers = defaults.QualityMultipliers
		return
	}
	for rating, mult := range defaults.QualityMultipliers {
		if _, ok := c.QualityMultipliers[rating]; !ok {
			c.QualityMultipliers[rating] = mult
		}
	}
}

// Validate reports structurally invalid configuration. These are fatal to
// the calling operation and never fall back to defaults.
func (c *Config) Validate() error {
	if c.DecayRate < 0 {
		return fmt.Errorf("decay_rate must not be negative: %v", c.DecayRate)
	}
	for rating, mult := range c.QualityMultipliers {
		if !rating.Valid() {
			return fmt.Errorf("unknown quality rating in multipliers: %q", rating)
		}
		if mult <= 0 {
			return fmt.Errorf("quality multiplier for %s must be positive: %v", rating, mult)
		}
	}
	return nil
}
