package common

import (
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	commonconfig "github.com/G-Research/loadsweep/internal/common/config"
	"github.com/G-Research/loadsweep/internal/common/logging"
)

const (
	EnvPrefix         = "LOADSWEEP"
	DefaultConfigName = ".loadsweep"

	LogFormatText = "text"
	LogFormatJson = "json"
)

// LoadConfig reads cfgFile into v, or $HOME/.loadsweep.yaml if cfgFile is empty,
// and unmarshals the result into config. Environment variables prefixed with LOADSWEEP_ take precedence,
// e.g. LOADSWEEP_SIMULATOR_PATH overrides simulator.path.
// A missing default config file is not an error.
func LoadConfig(v *viper.Viper, cfgFile string, config interface{}) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return errors.Wrap(err, "error getting user home directory")
		}
		v.AddConfigPath(home)
		v.SetConfigName(DefaultConfigName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrapf(err, "error reading config file %s", v.ConfigFileUsed())
		}
		// Users don't have to create the default config file.
	} else {
		log.Debugf("Using config file %s", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(config, commonconfig.CustomHooks...); err != nil {
		return errors.Wrap(err, "error unmarshalling config")
	}
	return nil
}

// ConfigureCommandLineLogging sets up logging for interactive use: messages and fields only, on stdout.
func ConfigureCommandLineLogging() {
	log.SetLevel(log.InfoLevel)
	log.SetFormatter(&logging.CommandLineFormatter{})
	log.SetOutput(os.Stdout)
}

// ConfigureLogging switches to timestamped text or json logs at the given level.
// An empty format keeps the current formatter.
func ConfigureLogging(format, level string) error {
	switch format {
	case "":
	case LogFormatText:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case LogFormatJson:
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return errors.Errorf("unknown log format %q, expected %s or %s", format, LogFormatText, LogFormatJson)
	}
	if level == "" {
		return nil
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return errors.WithStack(err)
	}
	log.SetLevel(parsed)
	return nil
}
