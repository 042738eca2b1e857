package cli

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/adamluzsi/streams/internal/errorkit"
)

const ErrInvalidConfig errorkit.Error = "invalid streamcat configuration"

const (
	grepFlag          = "grep"
	untilFlag         = "until"
	skipFlag          = "skip"
	limitFlag         = "limit"
	collateFlag       = "collate"
	stepFlag          = "step"
	keepRemainderFlag = "keep-remainder"
	repeatFlag        = "repeat"
	numberFlag        = "number"
	metricsFlag       = "metrics"
	logLevelFlag      = "log-level"
	logFormatFlag     = "log-format"
	configFlag        = "config"
)

// Config is what a streamcat run is made of.
// A zero Collate disables the collating, a negative Limit disables the limiting.
type Config struct {
	Grep          string `mapstructure:"grep"`
	Until         string `mapstructure:"until"`
	Skip          int    `mapstructure:"skip"`
	Limit         int    `mapstructure:"limit"`
	Collate       int    `mapstructure:"collate"`
	Step          int    `mapstructure:"step"`
	KeepRemainder bool   `mapstructure:"keep-remainder"`
	Repeat        int    `mapstructure:"repeat"`
	Number        bool   `mapstructure:"number"`
	Metrics       bool   `mapstructure:"metrics"`
	LogLevel      string `mapstructure:"log-level"`
	LogFormat     string `mapstructure:"log-format"`
}

func DefaultConfig() Config {
	return Config{
		Limit:         -1,
		KeepRemainder: true,
		Repeat:        1,
		LogLevel:      "warn",
		LogFormat:     "json",
	}
}

func (c Config) Validate() error {
	switch {
	case c.Skip < 0:
		return ErrInvalidConfig.F("--%s must not be negative", skipFlag)
	case c.Collate < 0:
		return ErrInvalidConfig.F("--%s must not be negative", collateFlag)
	case c.Step < 0:
		return ErrInvalidConfig.F("--%s must not be negative", stepFlag)
	case c.Step != 0 && c.Collate == 0:
		return ErrInvalidConfig.F("--%s requires --%s", stepFlag, collateFlag)
	case c.Repeat < 0:
		return ErrInvalidConfig.F("--%s must not be negative", repeatFlag)
	}
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	d := DefaultConfig()
	flags.String(grepFlag, d.Grep, "keep only the lines matching this regular expression")
	flags.String(untilFlag, d.Until, "stop at the first line matching this regular expression")
	flags.Int(skipFlag, d.Skip, "skip this many lines")
	flags.Int(limitFlag, d.Limit, "emit at most this many lines, negative means no limit")
	flags.Int(collateFlag, d.Collate, "group the lines into windows of this size, joined by a space")
	flags.Int(stepFlag, d.Step, "distance between the start of two windows, defaults to the window size")
	flags.Bool(keepRemainderFlag, d.KeepRemainder, "emit the last, incomplete windows too")
	flags.Int(repeatFlag, d.Repeat, "emit the whole output this many times")
	flags.Bool(numberFlag, d.Number, "prefix every output line with its position")
	flags.Bool(metricsFlag, d.Metrics, "print the prometheus counters of the pipeline to stderr at the end")
	flags.String(logLevelFlag, d.LogLevel, "debug, info, warn or error")
	flags.String(logFormatFlag, d.LogFormat, "json or console")

	for _, name := range []string{
		grepFlag, untilFlag, skipFlag, limitFlag, collateFlag, stepFlag, keepRemainderFlag,
		repeatFlag, numberFlag, metricsFlag, logLevelFlag, logFormatFlag,
	} {
		mustBindPFlag(v, name, flags.Lookup(name))
	}
}

func mustBindPFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic("failed to bind pflag: " + err.Error())
	}
}

// load reads the configuration from the flags, the STREAMCAT prefixed environment variables,
// and the streamcat.yaml config file, in that order of precedence.
func load(v *viper.Viper, configFile string) (Config, error) {
	v.SetEnvPrefix("STREAMCAT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("streamcat")
		v.SetConfigType("yaml")
		for _, path := range []string{"$HOME/.streamcat", "."} {
			v.AddConfigPath(path)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, ErrInvalidConfig.Wrap(err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, ErrInvalidConfig.Wrap(err)
	}
	return c, c.Validate()
}
