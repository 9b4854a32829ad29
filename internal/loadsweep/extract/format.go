package extract

import (
	"github.com/pkg/errors"
	"github.com/sanity-io/litter"
	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v2"
)

// Formatter renders a results table for display.
type Formatter func(t *ResultsTable) ([]byte, error)

const (
	FormatLitter = "litter"
	FormatYaml   = "yaml"
)

var formatters = map[string]Formatter{
	FormatLitter: LitterFormatter,
	FormatYaml:   YamlFormatter,
}

// FormatterByName returns the formatter registered under name.
func FormatterByName(name string) (Formatter, error) {
	formatter, ok := formatters[name]
	if !ok {
		return nil, errors.Errorf("unknown dump format: %s. Valid formats are %s", name, maps.Keys(formatters))
	}
	return formatter, nil
}

// LitterFormatter pretty-prints the entries of the table as Go literals. Metrics are sorted by name.
func LitterFormatter(t *ResultsTable) ([]byte, error) {
	return []byte(litter.Options{HidePrivateFields: true}.Sdump(t.Entries()) + "\n"), nil
}

// YamlFormatter renders the table as a YAML mapping from rate to metrics,
// keeping rates in file order and metrics in column order.
func YamlFormatter(t *ResultsTable) ([]byte, error) {
	doc := make(yaml.MapSlice, 0, t.Len())
	for _, entry := range t.Entries() {
		metrics := make(yaml.MapSlice, 0, len(entry.Metrics))
		for _, metric := range t.Metrics() {
			if value, ok := entry.Metrics[metric]; ok {
				metrics = append(metrics, yaml.MapItem{Key: metric, Value: value})
			}
		}
		doc = append(doc, yaml.MapItem{Key: entry.Rate, Value: metrics})
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return out, nil
}
