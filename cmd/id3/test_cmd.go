package main

import (
	"fmt"
	"os"

	"github.com/pbanos/id3/pkg/errors"
	"github.com/pbanos/id3/tree"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	growConfig
	testInput string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{growConfig: growConfig{inputConfig: inputConfig{rootCmdConfig: rootConfig}}}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Grow a tree from a training set, optionally prune it with a validation set, and test its performance against a test set`,
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
			examples, err := config.examples(cmd.Context(), config.testInput, "test")
			if err != nil {
				logError(config.logger, err, "reading the test set")
				os.Exit(3)
			}
			accuracy, fallbacks, err := tree.Score(t, examples)
			if err != nil {
				logError(config.logger, err, "testing the tree")
				os.Exit(4)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%f success rate, fell back to a majority class for %d of %d examples\n", accuracy, fallbacks, len(examples))
		},
	}
	config.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.testInput), "test", "t", "", "input with examples to test the tree against, in the same formats as input (required)")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.testInput == "" {
		return errors.New("required test flag was not set")
	}
	return tcc.growConfig.Validate()
}
