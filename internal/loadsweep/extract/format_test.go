package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestFormatterByName(t *testing.T) {
	for _, name := range []string{FormatLitter, FormatYaml} {
		formatter, err := FormatterByName(name)
		require.NoError(t, err)
		assert.NotNil(t, formatter)
	}
	_, err := FormatterByName("xml")
	assert.Error(t, err)
}

func TestLitterFormatter(t *testing.T) {
	table := testTable()
	table.Open("0.5")

	out, err := LitterFormatter(table)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `Rate: "0.36"`)
	assert.Contains(t, s, `"99th": "80.5"`)
	assert.Contains(t, s, `Rate: "0.5"`)
	assert.Less(t, strings.Index(s, `"0.36"`), strings.Index(s, `"0.004"`))
	assert.Less(t, strings.Index(s, `"0.004"`), strings.Index(s, `"0.2"`))
}

func TestYamlFormatter(t *testing.T) {
	table := testTable()
	table.Open("0.5")

	out, err := YamlFormatter(table)
	require.NoError(t, err)
	assert.Equal(t, `"0.36":
  AVG: "14.1"
  50th: "12.000001"
  99th: "80.5"
"0.004":
  AVG: "10.2"
  50th: "10"
  99th: "1e+02"
"0.2":
  AVG: "12"
  50th: "11.10"
  99th: "40.25"
"0.5": {}
`, string(out))

	var parsed map[string]map[string]string
	require.NoError(t, yaml.Unmarshal(out, &parsed))
	assert.Equal(t, "1e+02", parsed["0.004"]["99th"])
	assert.Empty(t, parsed["0.5"])
}
