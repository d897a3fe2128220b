package main

import (
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/pkg/errors"
	"github.com/pbanos/id3/source/csv"
	"github.com/spf13/cobra"
)

type splitCmdConfig struct {
	inputConfig
	setInput         string
	setOutput        string
	splitOutput      string
	splitProbability int
	seed             int64
}

func splitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &splitCmdConfig{inputConfig: inputConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Split a set into an output set and a split set, to hold out validation or test examples`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				logError(config.logger, err, "invalid flags")
				os.Exit(1)
			}
			examples, err := config.examples(cmd.Context(), config.setInput, "input")
			if err != nil {
				logError(config.logger, err, "reading the input set")
				os.Exit(2)
			}
			seed := config.seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			output, split := splitExamples(examples, config.splitProbability, rand.New(rand.NewSource(seed)))

			err = writeSet(cmd.OutOrStdout(), config.setOutput, output)
			if err != nil {
				logError(config.logger, err, "writing the output set")
				os.Exit(3)
			}
			err = writeSet(nil, config.splitOutput, split)
			if err != nil {
				logError(config.logger, err, "writing the split set")
				os.Exit(4)
			}
			config.logger.Info().
				Int("input", len(examples)).
				Int("output", len(output)).
				Int("split", len(split)).
				Int64("seed", seed).
				Msg("input set split")
		},
	}
	config.inputConfig.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the examples to split (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", "path to a CSV file to dump the output set (defaults to STDOUT)")
	cmd.PersistentFlags().IntVarP(&(config.splitProbability), "split-probability", "p", 20, "probability as percent integer that an example of the set will be assigned to the split set")
	cmd.PersistentFlags().StringVarP(&(config.splitOutput), "split-output", "s", "", "path to a CSV file to dump the split set (required)")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", 0, "seed for the random assignment of examples, for reproducible splits (defaults to 0: seeded from the current time)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.splitOutput == "" {
		return errors.New("required split-output flag was not set")
	}
	if scc.splitProbability <= 0 || scc.splitProbability > 100 {
		return errors.New("split-probability flag was set to an invalid value: it must be set to an integer between 1 and 100")
	}
	return nil
}

/*
splitExamples assigns every example to the split set with the given percent
probability and to the output set otherwise, keeping their order.
*/
func splitExamples(examples []dataset.Example, splitProbability int, randomizer *rand.Rand) ([]dataset.Example, []dataset.Example) {
	var output, split []dataset.Example
	for _, e := range examples {
		if (100 * randomizer.Float32()) >= float32(splitProbability) {
			output = append(output, e)
		} else {
			split = append(split, e)
		}
	}
	return output, split
}

func writeSet(stdout io.Writer, path string, examples []dataset.Example) error {
	if path == "" {
		return csv.Write(stdout, examples)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return csv.Write(f, examples)
}
