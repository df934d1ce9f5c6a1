package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug                  = "debug"
	ConfigConfigFile             = "config-file"
	ConfigLexiconPath            = "lexicon-path"
	ConfigLetterDistributionPath = "letter-distribution-path"
	ConfigMinWordLength          = "min-word-length"
	ConfigMinScoreFraction       = "min-score-fraction"
	ConfigRackWeights            = "rack-weights"
	ConfigDedupeCandidates       = "dedupe-candidates"
	ConfigSearchTimeout          = "search-timeout"
	ConfigAutoplayThreads        = "autoplay-threads"
	ConfigCPUProfile             = "cpu-profile"
	ConfigMemProfile             = "mem-profile"
)

// Rack weight table names for ConfigRackWeights.
const (
	RackWeightsPoints    = "points"
	RackWeightsFrequency = "frequency"
)

const envPrefix = "OPENER"

// Config wraps a viper instance. Every setting is reachable through the
// embedded Get* methods with one of the Config* keys above.
type Config struct {
	*viper.Viper
	args []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigConfigFile, "")
	v.SetDefault(ConfigLexiconPath, "./data/lexica/dictionary.txt")
	v.SetDefault(ConfigLetterDistributionPath, "")
	v.SetDefault(ConfigMinWordLength, 4)
	v.SetDefault(ConfigMinScoreFraction, 0.40)
	v.SetDefault(ConfigRackWeights, RackWeightsPoints)
	v.SetDefault(ConfigDedupeCandidates, true)
	v.SetDefault(ConfigSearchTimeout, time.Duration(0))
	v.SetDefault(ConfigAutoplayThreads, 4)
	v.SetDefault(ConfigCPUProfile, "")
	v.SetDefault(ConfigMemProfile, "")
}

// DefaultConfig returns a config with every key at its default value. It
// does not read flags, the environment, or files.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{Viper: v}
}

// Load populates the config from, in increasing priority: defaults, an
// optional YAML config file, OPENER_* environment variables, and args.
func (c *Config) Load(args []string) error {
	if c.Viper == nil {
		c.Viper = viper.New()
	}
	setDefaults(c.Viper)

	fs := pflag.NewFlagSet("opener", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigConfigFile, "", "optional YAML file with settings")
	fs.String(ConfigLexiconPath, "./data/lexica/dictionary.txt", "word list, one word per line")
	fs.String(ConfigLetterDistributionPath, "", "YAML letter table; the built-in English table is used if empty")
	fs.Int(ConfigMinWordLength, 4, "shortest word considered a candidate")
	fs.Float64(ConfigMinScoreFraction, 0.40, "fraction of the rack's max score a candidate must reach")
	fs.String(ConfigRackWeights, RackWeightsPoints, "weight table for the rack max score: points or frequency")
	fs.Bool(ConfigDedupeCandidates, true, "report each candidate word at most once")
	fs.Duration(ConfigSearchTimeout, 0, "time budget for one move search; 0 means none")
	fs.Int(ConfigAutoplayThreads, 4, "worker goroutines for autoplay")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigMemProfile, "", "write a memory profile to this file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	// Anything after the flags (or after a "--") is a shell command line.
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cfgFile := c.GetString(ConfigConfigFile); cfgFile != "" {
		c.SetConfigFile(cfgFile)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
		log.Info().Str("file", c.ConfigFileUsed()).Msg("read config file")
	}
	return c.Validate()
}

// Validate checks settings that would otherwise produce a silently broken
// search.
func (c *Config) Validate() error {
	if c.GetInt(ConfigMinWordLength) < 1 {
		return fmt.Errorf("%s must be at least 1", ConfigMinWordLength)
	}
	f := c.GetFloat64(ConfigMinScoreFraction)
	if f < 0 || f > 1 {
		return fmt.Errorf("%s must be between 0 and 1, got %v", ConfigMinScoreFraction, f)
	}
	switch c.GetString(ConfigRackWeights) {
	case RackWeightsPoints, RackWeightsFrequency:
	default:
		return fmt.Errorf("%s must be %q or %q", ConfigRackWeights,
			RackWeightsPoints, RackWeightsFrequency)
	}
	if c.GetInt(ConfigAutoplayThreads) < 1 {
		return fmt.Errorf("%s must be at least 1", ConfigAutoplayThreads)
	}
	return nil
}

// Args returns the positional arguments left over after Load parsed flags.
func (c *Config) Args() []string {
	return c.args
}

// AdjustRelativePaths makes relative data paths relative to basepath (the
// directory of the executable) when they don't exist relative to the cwd.
func (c *Config) AdjustRelativePaths(basepath string) {
	for _, key := range []string{ConfigLexiconPath, ConfigLetterDistributionPath} {
		p := c.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			continue
		}
		c.Set(key, filepath.Join(basepath, p))
	}
}

// SanitizedSettings returns a printable view of all settings, sorted by key.
func (c *Config) SanitizedSettings() string {
	keys := c.AllKeys()
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s=%v ", k, c.Get(k))
	}
	return strings.TrimSpace(sb.String())
}
