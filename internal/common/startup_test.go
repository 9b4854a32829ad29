package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/G-Research/loadsweep/internal/common/logging"
)

type testConfig struct {
	Simulator struct {
		Path    string
		Timeout time.Duration
	}
	Sweep struct {
		ResultFile string
		LoadLevels []float64
	}
}

func newTestViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("simulator.path", "schedsim")
	v.SetDefault("simulator.timeout", time.Duration(0))
	v.SetDefault("sweep.resultFile", "out.txt")
	v.SetDefault("sweep.loadLevels", []float64{0.5})
	return v
}

func TestLoadConfig_File(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "loadsweep.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("simulator:\n  timeout: 2m\nsweep:\n  resultFile: mesh.txt\n"), 0o644))

	var config testConfig
	require.NoError(t, LoadConfig(newTestViper(), cfgFile, &config))
	assert.Equal(t, "schedsim", config.Simulator.Path)
	assert.Equal(t, 2*time.Minute, config.Simulator.Timeout)
	assert.Equal(t, "mesh.txt", config.Sweep.ResultFile)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("LOADSWEEP_SIMULATOR_PATH", "/usr/local/bin/schedsim")
	t.Setenv("LOADSWEEP_SWEEP_LOADLEVELS", "0.1, 0.5, 0.9")
	t.Setenv("HOME", t.TempDir())

	var config testConfig
	require.NoError(t, LoadConfig(newTestViper(), "", &config))
	assert.Equal(t, "/usr/local/bin/schedsim", config.Simulator.Path)
	assert.Equal(t, "out.txt", config.Sweep.ResultFile)
	assert.Equal(t, []float64{0.1, 0.5, 0.9}, config.Sweep.LoadLevels)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	var config testConfig
	err := LoadConfig(newTestViper(), filepath.Join(t.TempDir(), "missing.yaml"), &config)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "loadsweep.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("simulator: [\n"), 0o644))

	var config testConfig
	assert.Error(t, LoadConfig(newTestViper(), cfgFile, &config))
}

func TestConfigureLogging(t *testing.T) {
	defer ConfigureCommandLineLogging()

	tests := map[string]struct {
		format    string
		level     string
		formatter log.Formatter
		logLevel  log.Level
		err       bool
	}{
		"defaults": {
			formatter: &logging.CommandLineFormatter{},
			logLevel:  log.InfoLevel,
		},
		"text": {
			format:    LogFormatText,
			level:     "debug",
			formatter: &log.TextFormatter{FullTimestamp: true},
			logLevel:  log.DebugLevel,
		},
		"json": {
			format:    LogFormatJson,
			level:     "warn",
			formatter: &log.JSONFormatter{},
			logLevel:  log.WarnLevel,
		},
		"unknown format": {
			format: "xml",
			err:    true,
		},
		"unknown level": {
			level: "loud",
			err:   true,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ConfigureCommandLineLogging()
			err := ConfigureLogging(tc.format, tc.level)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.formatter, log.StandardLogger().Formatter)
			assert.Equal(t, tc.logLevel, log.GetLevel())
		})
	}
}
