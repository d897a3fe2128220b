package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/pkg/errors"
	"github.com/pbanos/id3/source/csv"
	"github.com/pbanos/id3/source/mongosource"
	"github.com/pbanos/id3/source/sqlsource"
	"github.com/spf13/cobra"
)

type setCmdConfig struct {
	inputConfig
	setInput         string
	setOutput        string
	outputTable      string
	outputCollection string
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{inputConfig: inputConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Copy a set of examples into another storage",
		Long:  `Read a set of examples and write it as CSV, into a table of an SQLite3 or PostgreSQL database, or into a MongoDB collection. The class is written under the Class column or field`,
		Run: func(cmd *cobra.Command, args []string) {
			examples, err := config.examples(cmd.Context(), config.setInput, "input")
			if err != nil {
				logError(config.logger, err, "reading the input set")
				os.Exit(2)
			}
			written, err := config.writeExamples(cmd.Context(), cmd.OutOrStdout(), examples)
			if err != nil {
				logError(config.logger, err, "writing the output set")
				os.Exit(3)
			}
			config.logger.Info().Int("examples", written).Msg("output set written")
		},
	}
	config.inputConfig.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the examples to copy (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to dump the output set (defaults to STDOUT in CSV)")
	cmd.PersistentFlags().StringVar(&(config.outputTable), "output-table", "examples", "table to write examples to on SQL databases, created if it does not exist")
	cmd.PersistentFlags().StringVar(&(config.outputCollection), "output-collection", mongosource.DefaultCollection, "collection to write examples to on MongoDB databases")
	return cmd
}

/*
writeExamples writes the examples to the output of the command and returns
how many were written.
*/
func (scc *setCmdConfig) writeExamples(ctx context.Context, stdout io.Writer, examples []dataset.Example) (int, error) {
	switch {
	case strings.HasPrefix(scc.setOutput, "mongodb://"):
		scc.logger.Debug().Str("collection", scc.outputCollection).Msg("connecting to MongoDB")
		s, err := mongosource.Dial(scc.setOutput, scc.outputCollection)
		if err != nil {
			return 0, err
		}
		defer s.Close()
		return s.Write(ctx, examples)
	case strings.HasPrefix(scc.setOutput, "postgres://"), strings.HasPrefix(scc.setOutput, "postgresql://"), strings.HasSuffix(scc.setOutput, ".db"):
		scc.logger.Debug().Str("table", scc.outputTable).Msg("opening SQL database")
		s, err := sqlsource.Open(ctx, scc.setOutput)
		if err != nil {
			return 0, err
		}
		defer s.Close()
		return s.Write(ctx, scc.outputTable, examples)
	case scc.setOutput == "":
		return writeCSV(stdout, examples)
	}
	f, err := os.Create(scc.setOutput)
	if err != nil {
		return 0, errors.Wrapf(err, "creating %s", scc.setOutput)
	}
	defer f.Close()
	return writeCSV(f, examples)
}

func writeCSV(w io.Writer, examples []dataset.Example) (int, error) {
	cw, err := csv.NewWriter(w, dataset.Attributes(examples))
	if err != nil {
		return 0, err
	}
	if _, err = cw.Write(examples); err != nil {
		return cw.Count(), err
	}
	if err = cw.Flush(); err != nil {
		return cw.Count(), err
	}
	return cw.Count(), nil
}
