package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCurrentConfigDefaultsRoundTrip verifies that every default set by
// setDefaults() is read back under the same key by CurrentConfig().
func TestCurrentConfigDefaultsRoundTrip(t *testing.T) {
	viper.Reset()
	setDefaults()

	assert.Equal(t, Defaults(), CurrentConfig())
}

func TestInitConfigReadsFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
payload:
  compress: true
scan:
  workers: 9
report:
  format: YAML
`), 0o644))

	CfgFile = path
	defer func() { CfgFile = "" }()

	require.NoError(t, InitConfig())
	cfg := CurrentConfig()

	assert.True(t, cfg.Payload.Compress)
	assert.True(t, cfg.Payload.AutoDecompress)
	assert.Equal(t, 9, cfg.Scan.Workers)
	assert.Equal(t, FormatYAML, cfg.Report.Format)
}

func TestInitConfigMissingExplicitFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	CfgFile = filepath.Join(t.TempDir(), "missing.yaml")
	defer func() { CfgFile = "" }()

	assert.Error(t, InitConfig())
}

func TestEnvOverride(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("STEGO_SCAN_WORKERS", "2")

	require.NoError(t, InitConfig())
	assert.Equal(t, 2, CurrentConfig().Scan.Workers)
}

func TestWorkersClamped(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	setDefaults()
	viper.Set("scan.workers", 0)
	assert.Equal(t, 1, CurrentConfig().Scan.Workers)
}

func TestValidateReportFormat(t *testing.T) {
	for _, f := range []string{FormatText, FormatJSON, FormatYAML} {
		assert.NoError(t, ValidateReportFormat(f))
	}
	assert.Error(t, ValidateReportFormat("xml"))
}
