package main

import (
	"context"
	"strings"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/feature/yaml"
	"github.com/pbanos/id3/pkg/errors"
	"github.com/pbanos/id3/source/csv"
	"github.com/pbanos/id3/source/mongosource"
	"github.com/pbanos/id3/source/sqlsource"
	"github.com/spf13/cobra"
)

/*
inputConfig holds the flags shared by the commands that read examples: how
to find the class and the metadata to validate them against.
*/
type inputConfig struct {
	*rootCmdConfig
	classColumn   string
	metadataInput string
	table         string
	collection    string
	features      []*feature.Feature
}

func (ic *inputConfig) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&(ic.classColumn), "class", "c", dataset.ClassKey, "name of the column or field holding the class of the examples")
	cmd.PersistentFlags().StringVarP(&(ic.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the values available for every attribute, to validate the examples read (optional)")
	cmd.PersistentFlags().StringVar(&(ic.table), "table", "examples", "table to read examples from on SQL databases")
	cmd.PersistentFlags().StringVar(&(ic.collection), "collection", mongosource.DefaultCollection, "collection to read examples from on MongoDB databases")
}

/*
examples takes a context, an input and a description of its role for
logging, and returns the examples read from it. The input can be the path to
a CSV file (STDIN if empty) or an SQLite3 (.db) file, a PostgreSQL connection
URL or a MongoDB connection URL.
*/
func (ic *inputConfig) examples(ctx context.Context, input, role string) ([]dataset.Example, error) {
	if ic.features == nil && ic.metadataInput != "" {
		ic.logger.Debug().Str("path", ic.metadataInput).Msg("reading metadata")
		features, err := yaml.ReadFeaturesFromFile(ic.metadataInput)
		if err != nil {
			return nil, err
		}
		ic.features = features
	}
	var examples []dataset.Example
	var err error
	switch {
	case strings.HasPrefix(input, "mongodb://"):
		examples, err = ic.mongoExamples(ctx, input)
	case strings.HasPrefix(input, "postgres://"), strings.HasPrefix(input, "postgresql://"), strings.HasSuffix(input, ".db"):
		examples, err = ic.sqlExamples(ctx, input)
	default:
		if input == "" {
			ic.logger.Info().Str("set", role).Msg("reading examples from STDIN")
		}
		r := &csv.Reader{ClassColumn: ic.classColumn, Features: ic.features}
		examples, err = r.ReadFile(input)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s set", role)
	}
	if len(examples) == 0 {
		return nil, errors.Newf("%s set has no examples", role)
	}
	ic.logger.Info().Str("set", role).Int("examples", len(examples)).Msg("examples read")
	return examples, nil
}

func (ic *inputConfig) sqlExamples(ctx context.Context, input string) ([]dataset.Example, error) {
	ic.logger.Debug().Str("table", ic.table).Msg("opening SQL database")
	s, err := sqlsource.Open(ctx, input)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	examples, err := s.Read(ctx, ic.table, ic.classColumn)
	if err != nil {
		return nil, err
	}
	return examples, ic.validate(examples)
}

func (ic *inputConfig) mongoExamples(ctx context.Context, input string) ([]dataset.Example, error) {
	ic.logger.Debug().Str("collection", ic.collection).Msg("connecting to MongoDB")
	s, err := mongosource.Dial(input, ic.collection)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	examples, err := s.Read(ctx, ic.classColumn)
	if err != nil {
		return nil, err
	}
	return examples, ic.validate(examples)
}

func (ic *inputConfig) validate(examples []dataset.Example) error {
	if ic.features == nil {
		return nil
	}
	for i, e := range examples {
		if err := feature.Validate(e, ic.features); err != nil {
			return errors.Wrapf(err, "example %d", i)
		}
	}
	return nil
}
