// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config package should avoid importing any punchcard packages in order to
// prevent any cyclic-dependancy issues

const (
	// current working dir
	searchPath1 = "."
	// home datadir
	searchPath2 = "$HOME/.punchcard/"

	// name for the config file. Does not include extension.
	configFileName = "punchcard"

	envPrefix = "PUNCHCARD"
)

var (
	r *Registry
)

// Registry stores all loaded configurations according to the config order
// NB It should be cheap to be copied by value
type Registry struct {
	UsedConfigFile string

	// All configuration groups
	Logger loggerConfiguration
	Ledger ledgerConfiguration
	Bench  benchConfiguration
}

// Load makes an attempt to read and unmarshal any configs from args, env and
// punchcard config file.
//
// It uses the following precedence order. Each item takes precedence over the item below it:
//  - flag
//  - env
//  - config
//  - default
//
// The configuration file can be in form of TOML, JSON or YAML. A missing
// config file is not an error unless one was requested with --config.
func Load(args []string) error {
	reg := new(Registry)

	if err := reg.init(args); err != nil {
		return err
	}

	// Validation should be done by the consumers (packages) as they will be
	// the best at knowing what they expect
	r = reg
	return nil
}

// Get returns registry by value in order to avoid further modifications after
// initial configuration loading
func Get() Registry {
	return *r
}

func (r *Registry) init(args []string) error {
	v := viper.New()
	setDefaults(v)

	// Make an attempt to find punchcard.toml/punchcard.json/punchcard.yaml
	// in any of the provided paths below
	v.SetConfigName(configFileName)

	// search paths
	v.AddConfigPath(searchPath1)
	v.AddConfigPath(searchPath2)

	// Initialize and parse flags
	confFile, err := loadFlags(v, args)
	if err != nil {
		return err
	}

	// confPath is overwritten by the one from command line
	if len(confFile) > 0 {
		v.SetConfigFile(confFile)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || len(confFile) > 0 {
			return errors.Wrap(err, "error reading config file")
		}
	}

	if err := defineENV(v); err != nil {
		return err
	}

	// Unmarshal all configurations from all conf levels to the registry struct
	if err := v.Unmarshal(r); err != nil {
		return errors.Wrap(err, "unable to decode into struct")
	}

	r.UsedConfigFile = v.ConfigFileUsed()
	return nil
}

func loadFlags(v *viper.Viper, args []string) (string, error) {
	fs := pflag.NewFlagSet("punchcard", pflag.ContinueOnError)

	fs.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage of %s:\n", "punchcard")
		fs.PrintDefaults()
	}

	// Define all supported flags.
	// All flags should be verified `loader_test.go/TestSupportedFlags`
	defineFlags(fs)
	configFile := fs.String("config", "", "Set path to the config file")

	if err := fs.Parse(args); err != nil {
		return "", err
	}

	// Bind all command line parameters to their corresponding file configs
	//
	// e.g CLI argument `--logger.level="warn"` will overwrite the value from
	// `[logger] level = "info"` in the loaded config file
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		// only flags set explicitly may override lower levels
		if f.Changed {
			_ = v.BindPFlag(f.Name, f)
		}
	})

	return *configFile, nil
}

// define a set of flags as bindings to config file settings
// The settings that are needed to be passed frequently by CLI should be added here
func defineFlags(fs *pflag.FlagSet) {
	_ = fs.StringP("logger.level", "l", "", "override logger.level settings in config file")
	_ = fs.StringP("logger.output", "o", "", "specifies the log output")
	_ = fs.String("logger.format", "", "log format, text or json")
	_ = fs.StringP("ledger.driver", "d", "", "sets the ledger driver")
	_ = fs.StringP("ledger.dir", "b", "", "sets the ledger directory")
	_ = fs.Int("ledger.preload", 0, "number of synthetic entries to preload the ledger with")
	_ = fs.StringP("bench.suite", "s", "", "group the benchmark runs over")
	_ = fs.Uint32P("bench.punches", "p", 0, "punches per card")
	_ = fs.IntP("bench.cards", "c", 0, "number of cards")
	_ = fs.IntP("bench.workers", "w", 0, "redemption worker count")
}

// keys lists every setting that can be set through the environment.
var keys = []string{
	"logger.level", "logger.output", "logger.format",
	"ledger.driver", "ledger.dir", "ledger.preload",
	"bench.suite", "bench.punches", "bench.cards", "bench.workers",
}

// EnvName returns the environment variable bound to a config key, e.g.
// PUNCHCARD_LEDGER_DRIVER for ledger.driver.
func EnvName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// define a set of environment variables as bindings to config file settings
func defineENV(v *viper.Viper) error {
	for _, key := range keys {
		// Bind config key ledger.driver to ENV var PUNCHCARD_LEDGER_DRIVER
		if err := v.BindEnv(key, EnvName(key)); err != nil {
			return errors.Wrapf(err, "defineENV %s", key)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.format", "text")
	v.SetDefault("ledger.driver", DefaultLedgerDriver)
	v.SetDefault("ledger.dir", DefaultLedgerDir)
	v.SetDefault("ledger.preload", 0)
	v.SetDefault("bench.suite", DefaultSuite)
	v.SetDefault("bench.punches", DefaultPunches)
	v.SetDefault("bench.cards", DefaultCards)
	v.SetDefault("bench.workers", DefaultWorkers)
}

// Mock should be used only in test packages. It could be useful when a unit
// test needs to be rerun with configs different from the default ones.
func Mock(m *Registry) {
	r = m
}

func init() {
	// By default Registry should be empty but not nil. In that way, consumers
	// (packages) can use their default values on unit testing
	r = new(Registry)
	r.Logger.Level = "info"
	r.Logger.Output = "stdout"
	r.Ledger.Driver = DefaultLedgerDriver
	r.Ledger.Dir = DefaultLedgerDir
	r.Bench.Suite = DefaultSuite
	r.Bench.Punches = DefaultPunches
	r.Bench.Cards = DefaultCards
	r.Bench.Workers = DefaultWorkers
}
