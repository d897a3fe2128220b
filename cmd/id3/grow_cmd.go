package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pbanos/id3"
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/pkg/errors"
	"github.com/pbanos/id3/tree"
	"github.com/spf13/cobra"
)

/*
growConfig holds the flags of the commands that grow a tree: the examples to
grow it from and how to prune it.
*/
type growConfig struct {
	inputConfig
	dataInput          string
	validationInput    string
	defaultLabel       string
	pruneStrategy      string
	cpuIntensiveSet    bool
	memoryIntensiveSet bool
}

type growCmdConfig struct {
	growConfig
	output string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{growConfig: growConfig{inputConfig: inputConfig{rootCmdConfig: rootConfig}}}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of examples",
		Long:  `Grow a decision tree from a set of examples to predict their class, optionally prune it with a validation set, and print it`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				logError(config.logger, err, "invalid flags")
				os.Exit(1)
			}
			t, err := config.growTree(cmd.Context())
			if err != nil {
				logError(config.logger, err, "growing the tree")
				os.Exit(2)
			}
			err = outputTree(config.output, t)
			if err != nil {
				logError(config.logger, err, "writing the tree")
				os.Exit(3)
			}
		},
	}
	config.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written (defaults to STDOUT)")
	return cmd
}

func (gc *growConfig) addFlags(cmd *cobra.Command) {
	gc.inputConfig.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(gc.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with examples to grow the tree from (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVar(&(gc.validationInput), "validation", "", "input with examples to prune the tree against, in the same formats as input")
	cmd.PersistentFlags().StringVarP(&(gc.defaultLabel), "default", "d", "", "class to predict on branches no training example reaches")
	cmd.PersistentFlags().StringVarP(&(gc.pruneStrategy), "prune", "p", "reduced-error", "pruning strategy to apply, the following are valid: reduced-error, minimum-description, minimum-information-gain:[VALUE], none")
	cmd.PersistentFlags().BoolVar(&(gc.memoryIntensiveSet), "memory-intensive", false, "force the use of memory-intensive subsetting to decrease time at the cost of increasing memory use")
	cmd.PersistentFlags().BoolVar(&(gc.cpuIntensiveSet), "cpu-intensive", false, "force the use of cpu-intensive subsetting to decrease memory use at the cost of increasing time")
}

func (gc *growConfig) Validate() error {
	if gc.cpuIntensiveSet && gc.memoryIntensiveSet {
		return errors.New("cannot set both memory-intensive and cpu-intensive flags at the same time")
	}
	_, _, err := pruningStrategy(gc.pruneStrategy)
	return err
}

func (gc *growConfig) datasetGenerator() dataset.Generator {
	if gc.memoryIntensiveSet {
		return dataset.NewMemoryIntensive
	}
	if gc.cpuIntensiveSet {
		return dataset.NewCPUIntensive
	}
	return dataset.New
}

/*
growTree reads the training examples, grows a tree from them and prunes it
with the configured strategy.
*/
func (gc *growConfig) growTree(ctx context.Context) (*tree.Node, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	pruner, needsValidation, err := pruningStrategy(gc.pruneStrategy)
	if err != nil {
		return nil, err
	}
	examples, err := gc.examples(ctx, gc.dataInput, "training")
	if err != nil {
		return nil, err
	}
	grower := id3.New(
		id3.WithLogger(gc.logger),
		id3.WithDatasetGenerator(gc.datasetGenerator()),
	)
	t, err := grower.Grow(examples, gc.defaultLabel)
	if err != nil {
		return nil, err
	}
	gc.logger.Info().Int("nodes", t.Size()).Int("depth", t.Depth()).Msg("tree grown")
	var validation []dataset.Example
	if needsValidation {
		if gc.validationInput == "" {
			gc.logger.Info().Str("prune", gc.pruneStrategy).Msg("no validation set given, skipping pruning")
			return t, nil
		}
		validation, err = gc.examples(ctx, gc.validationInput, "validation")
		if err != nil {
			return nil, err
		}
	}
	pruned, err := pruner.Prune(t, validation)
	if err != nil {
		return nil, errors.Wrap(err, "pruning the tree")
	}
	if pruned != t {
		gc.logger.Info().Int("nodes", pruned.Size()).Int("depth", pruned.Depth()).Msg("tree pruned")
	}
	return pruned, nil
}

func outputTree(outputPath string, t *tree.Node) error {
	f := os.Stdout
	if outputPath != "" {
		var err error
		f, err = os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	_, err := fmt.Fprint(f, t)
	return err
}

/*
pruningStrategy takes the name of a pruning strategy, with its parameters
separated by colons, and returns its Pruner and whether it needs validation
examples.
*/
func pruningStrategy(ps string) (id3.Pruner, bool, error) {
	parsedPS := strings.Split(ps, ":")
	ps = parsedPS[0]
	psParams := parsedPS[1:]
	switch ps {
	case "reduced-error":
		return id3.ReducedErrorPruner(), true, nil
	case "minimum-description":
		return id3.MinimumDescriptionPruner(), false, nil
	case "none":
		return id3.NoPruner(), false, nil
	case "minimum-information-gain":
		if len(psParams) != 1 {
			return nil, false, errors.New("minimum-information-gain pruning strategy takes exactly one parameter")
		}
		minimum, err := strconv.ParseFloat(psParams[0], 64)
		if err != nil {
			return nil, false, errors.Wrap(err, "parsing minimum-information-gain parameter")
		}
		return id3.FixedInformationGainPruner(minimum), false, nil
	}
	return nil, false, errors.Newf("unknown pruning strategy %s", ps)
}
