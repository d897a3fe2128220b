package main

import (
	"io"
	"os"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/pkg/errors"
	"github.com/pbanos/id3/source/csv"
	"github.com/pbanos/id3/tree"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	growConfig
	predictInput string
	output       string
	strict       bool
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{growConfig: growConfig{inputConfig: inputConfig{rootCmdConfig: rootConfig}}}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the class of examples",
		Long:  `Grow a tree from a training set and use it to predict the class of the examples in a CSV file, writing them back as CSV with the predicted class`,
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
			r := &csv.Reader{ClassColumn: config.classColumn, Features: config.features, Unlabelled: true}
			examples, err := r.ReadFile(config.predictInput)
			if err != nil {
				logError(config.logger, err, "reading the examples to predict")
				os.Exit(3)
			}
			predicted, err := config.predict(t, examples)
			if err != nil {
				logError(config.logger, err, "predicting")
				os.Exit(4)
			}
			err = config.outputExamples(cmd.OutOrStdout(), predicted)
			if err != nil {
				logError(config.logger, err, "writing the predictions")
				os.Exit(5)
			}
		},
	}
	config.addFlags(cmd)
	cmd.PersistentFlags().StringVar(&(config.predictInput), "examples", "", "path to a CSV file with the examples whose class to predict (required)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a CSV file to which the examples will be written with their predicted class (defaults to STDOUT)")
	cmd.PersistentFlags().BoolVar(&(config.strict), "strict", false, "fail on values the tree did not see while growing instead of predicting the majority class of the node")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.predictInput == "" {
		return errors.New("required examples flag was not set")
	}
	return pcc.growConfig.Validate()
}

func (pcc *predictCmdConfig) predict(t *tree.Node, examples []dataset.Example) ([]dataset.Example, error) {
	result := make([]dataset.Example, 0, len(examples))
	fallbacks := 0
	for i, e := range examples {
		var label string
		if pcc.strict {
			var err error
			label, err = t.Predict(e)
			if err != nil {
				return nil, errors.Wrapf(err, "example %d", i)
			}
		} else {
			var fellBack bool
			label, fellBack = t.Evaluate(e)
			if fellBack {
				fallbacks++
				pcc.logger.Debug().Int("example", i).Str("label", label).Msg("fell back to majority class")
			}
		}
		p := e.Clone()
		p[dataset.ClassKey] = label
		result = append(result, p)
	}
	pcc.logger.Info().Int("examples", len(result)).Int("fallbacks", fallbacks).Msg("classes predicted")
	return result, nil
}

func (pcc *predictCmdConfig) outputExamples(stdout io.Writer, examples []dataset.Example) error {
	if pcc.output == "" {
		return csv.Write(stdout, examples)
	}
	f, err := os.Create(pcc.output)
	if err != nil {
		return err
	}
	defer f.Close()
	return csv.Write(f, examples)
}
