package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose    bool
	configFile string
	logger     zerolog.Logger
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{logger: zerolog.Nop()}
	rootCmd := &cobra.Command{
		Use:   "id3",
		Short: "id3 is a tool to grow decision trees",
		Long:  `A tool to grow decision trees with ID3 from examples with discrete attributes, prune them, test them, and use them to make predictions`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.logger = newLogger(os.Stderr, config.verbose)
			if config.configFile == "" {
				return nil
			}
			return applyConfigFile(cmd, config.configFile)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log the progress of the command, with every split made while growing")
	rootCmd.PersistentFlags().StringVar(&(config.configFile), "config", "", "path to a YML file with default values for the flags of the command")
	rootCmd.AddCommand(versionCmd(), growCmd(config), testCmd(config), predictCmd(config), splitCmd(config), setCmd(config))
	return rootCmd
}
