package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/finplan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	c, err := Decode(strings.NewReader(`
eodhd:
  api_key: abc
  requests_per_second: 2.5
  cache: false
policy:
  equity_multiplier: 1.5
suggestions: [ZAG.TO, VDY.TO]
`))
	require.NoError(t, err)
	assert.Equal(t, "abc", c.EODHD.APIKey)
	assert.Equal(t, 2.5, c.EODHD.RequestsPerSecond)
	assert.Equal(t, 5, c.EODHD.Burst, "missing keys keep their default")
	assert.False(t, c.EODHD.Cache)
	assert.Equal(t, 1.5, c.Policy.EquityMultiplier)
	assert.Equal(t, 0.8, c.Policy.BondMultiplier)
	assert.Equal(t, 252, c.Policy.PeriodsPerYear)
	assert.Equal(t, []string{"ZAG.TO", "VDY.TO"}, c.Suggestions)
}

func TestDecodeEmpty(t *testing.T) {
	c, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("eodhd:\n  apikey: abc\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	dir := t.TempDir()

	c, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	path := filepath.Join(dir, "finplan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("eodhd:\n  api_key: from-file\n"), 0o644))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", c.EODHD.APIKey)

	t.Setenv(APIKeyEnv, "from-env")
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.EODHD.APIKey)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"negative rate": "eodhd:\n  requests_per_second: -1\n",
		"no burst":      "eodhd:\n  burst: 0\n",
		"relative url":  "eodhd:\n  base_url: eodhd.com\n",
		"confidence":    "policy:\n  var_confidence: 1.5\n",
		"negative mult": "policy:\n  bond_multiplier: -0.8\n",
		"malformed":     "eodhd: [",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "finplan.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestValidateReportsInvalidInput(t *testing.T) {
	c := Default()
	c.Policy.PeriodsPerYear = 0
	assert.ErrorIs(t, c.Validate(), finplan.ErrInvalidInput)
}

func TestOptions(t *testing.T) {
	c := Default().EODHD
	assert.Len(t, c.Options(), 2)
	c.Cache = false
	assert.Len(t, c.Options(), 3)
}
