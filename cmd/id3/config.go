package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/pbanos/id3/pkg/errors"
	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"
)

/*
applyConfigFile reads a YML file mapping flag names to values and sets every
flag of the command that was not given on the command line to its value in
the file. Keys that name no flag of the command are ignored, so one file can
serve several commands.
*/
func applyConfigFile(cmd *cobra.Command, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading config file %s", path)
	}
	values, err := parseConfig(content)
	if err != nil {
		return errors.Wrapf(err, "parsing config file %s", path)
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	flags := cmd.Flags()
	for _, name := range names {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if err := flags.Set(name, values[name]); err != nil {
			return errors.Wrapf(err, "setting flag %s from config file %s", name, path)
		}
	}
	return nil
}

func parseConfig(content []byte) (map[string]string, error) {
	raw := make(map[string]interface{})
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v.(type) {
		case map[interface{}]interface{}, []interface{}:
			return nil, errors.Newf("value for %s must be a scalar", k)
		case nil:
			continue
		}
		values[k] = fmt.Sprintf("%v", v)
	}
	return values, nil
}
