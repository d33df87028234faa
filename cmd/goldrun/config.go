package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// config holds settings read from an optional .goldrun.yaml in the
// current directory. Absence of the file is not an error; every field
// has a zero-value-safe default. Grammar is decoded but no command reads
// it: parse and watch always take the table path as an argument.
type config struct {
	Grammar        string `yaml:"grammar"`
	Trace          bool   `yaml:"trace"`
	WatchDebounceMS int   `yaml:"watchDebounceMs"`
}

func defaultConfig() config {
	return config{WatchDebounceMS: 150}
}

// loadConfig reads the config file at path (the --config flag, by
// default .goldrun.yaml in the working directory), if present,
// overlaying it onto the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
