package config

import (
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "ELIGIBILITY"
	ConfigName = "eligibility"
	DotEnvFile = ".env"

	KeyCatalog = "catalog"
	KeyOutput  = "output"
	KeyLog     = "log"
	KeyStrict  = "strict"
)

// Config holds the settings shared by every command
type Config struct {
	// Path to a catalog document. Empty means the catalog embedded in the binary
	Catalog string `mapstructure:"catalog"`
	Output  string `mapstructure:"output" validate:"oneof=human json yaml"`
	Log     string `mapstructure:"log" validate:"omitempty,oneof=silent debug info warn error"`
	Strict  bool   `mapstructure:"strict"`
}

// New builds the settings source. Precedence, from highest: bound flags, ELIGIBILITY_* environment (a .env file in the working directory included), config file, defaults.
// The config file is configFile when given, otherwise eligibility.yaml (or .json) next to the executable or in the working directory, if any
func New(configFile string) (*viper.Viper, error) {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault(KeyCatalog, "")
	conf.SetDefault(KeyOutput, "human")
	conf.SetDefault(KeyLog, "silent")
	conf.SetDefault(KeyStrict, false)

	// load .env if it exists (ignore if it does not)
	if _, err := os.Stat(DotEnvFile); err == nil {
		if err := godotenv.Load(DotEnvFile); err != nil {
			return nil, errors.Wrapf(err, "cannot load %s", DotEnvFile)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "cannot stat %s", DotEnvFile)
	}
	conf.SetEnvPrefix(EnvPrefix)
	conf.AutomaticEnv()

	if configFile != "" {
		conf.SetConfigFile(configFile)
		if err := conf.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "cannot read config file %q", configFile)
		}
		return conf, nil
	}

	conf.SetConfigName(ConfigName)
	if execPath, err := os.Executable(); err == nil {
		conf.AddConfigPath(filepath.Dir(execPath))
	}
	conf.AddConfigPath(".")
	if err := conf.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "cannot read config file")
		}
	}
	return conf, nil
}

// BindFlags makes the given flags, when set on the command line, override every other source
func BindFlags(conf *viper.Viper, flags *pflag.FlagSet, keys ...string) error {
	for _, key := range keys {
		flag := flags.Lookup(key)
		if flag == nil {
			continue
		}
		if err := conf.BindPFlag(key, flag); err != nil {
			return errors.Wrapf(err, "cannot bind flag %q", key)
		}
	}
	return nil
}

// Load decodes and validates the settings
func Load(conf *viper.Viper) (Config, error) {
	var config Config
	if err := conf.Unmarshal(&config); err != nil {
		return Config{}, errors.Wrap(err, "cannot decode configuration")
	}
	if err := validator.New().Struct(config); err != nil {
		return Config{}, errors.Wrap(err, "invalid configuration")
	}
	return config, nil
}
