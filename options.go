package id3

import (
	"github.com/pbanos/id3/dataset"
	"github.com/rs/zerolog"
)

// Option is a function that configures a Grower
type Option func(*Grower)

// WithLogger sets the logger on which the Grower reports its splits
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Grower) {
		g.logger = logger
	}
}

// WithImputer sets the Imputer used to fill missing values before growing
func WithImputer(imputer Imputer) Option {
	return func(g *Grower) {
		g.imputer = imputer
	}
}

// WithDatasetGenerator sets how the imputed examples are held while growing
func WithDatasetGenerator(generator dataset.Generator) Option {
	return func(g *Grower) {
		g.generator = generator
	}
}
