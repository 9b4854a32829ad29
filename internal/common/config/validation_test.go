package config

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Path  string `validate:"required"`
	Cores int    `validate:"gt=0"`
}

func TestLogValidationErrors(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	err := validator.New().Struct(testConfig{Cores: -1})
	require.Error(t, err)
	LogValidationErrors(err)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.ErrorLevel, entries[0].Level)
	assert.Equal(t, "ConfigError: Field Path is required but was not found", entries[0].Message)
	assert.Equal(t, "ConfigError: Field Cores has invalid value -1: gt", entries[1].Message)
}

func TestLogValidationErrors_OtherErrors(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	LogValidationErrors(nil)
	assert.Empty(t, hook.AllEntries())

	LogValidationErrors(errors.New("columns must be a subset of metrics"))
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, "ConfigError: columns must be a subset of metrics", hook.LastEntry().Message)
}

func TestStripPrefix(t *testing.T) {
	assert.Equal(t, "Sweep.ResultFile", stripPrefix("LoadSweepConfiguration.Sweep.ResultFile"))
	assert.Equal(t, "Path", stripPrefix("Path"))
}
