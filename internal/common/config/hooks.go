package config

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// CustomHooks replace viper's default decode hooks. Durations are decoded as before;
// comma-separated strings, e.g., from environment variables, are split into slices with each element trimmed,
// so that "0.1, 0.5" decodes into []float64{0.1, 0.5}.
var CustomHooks = []viper.DecoderConfigOption{
	viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		TrimmedStringToSliceHookFunc(","),
	)),
}

func TrimmedStringToSliceHookFunc(sep string) mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Slice {
			return data, nil
		}
		raw := strings.TrimSpace(data.(string))
		raw = strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
		if strings.TrimSpace(raw) == "" {
			return []string{}, nil
		}
		parts := strings.Split(raw, sep)
		for i, part := range parts {
			parts[i] = strings.TrimSpace(part)
		}
		return parts, nil
	}
}
