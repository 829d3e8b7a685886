package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/faanross/stegokit/internal/logger"
	"github.com/samber/oops"
	"github.com/spf13/viper"
)

var (
	CfgFile string
	log     = logger.GetStegoLogger()
)

const (
	STEGO_BASE_DIR = ".stegokit"
	ENV_PREFIX     = "STEGO"
)

// Report formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the typed view of the current viper settings.
type Config struct {
	Image   ImageConfig
	Payload PayloadConfig
	Scan    ScanConfig
	Report  ReportConfig
}

type ImageConfig struct {
	// OutputFormat is used when an output path has no extension.
	OutputFormat string
}

type PayloadConfig struct {
	// Compress gzips messages before embedding when it helps.
	Compress bool
	// AutoDecompress inflates extracted payloads that carry the gzip magic.
	AutoDecompress bool
}

type ScanConfig struct {
	Workers        int
	AnalysisSample int
}

type ReportConfig struct {
	Format string
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Image:   ImageConfig{OutputFormat: "png"},
		Payload: PayloadConfig{Compress: false, AutoDecompress: true},
		Scan:    ScanConfig{Workers: 4, AnalysisSample: 10000},
		Report:  ReportConfig{Format: FormatText},
	}
}

// InitConfig loads the config file (CfgFile, or $HOME/.stegokit/config.yaml
// if present) and environment overrides prefixed with STEGO_. A missing
// default config file is not an error.
func InitConfig() error {
	if CfgFile != "" {
		viper.SetConfigFile(CfgFile)
	} else {
		viper.AddConfigPath(BuildStegoDirPath())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(ENV_PREFIX)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	return handleConfigFile()
}

func setDefaults() {
	d := Defaults()

	viper.SetDefault("image.output_format", d.Image.OutputFormat)

	viper.SetDefault("payload.compress", d.Payload.Compress)
	viper.SetDefault("payload.auto_decompress", d.Payload.AutoDecompress)

	viper.SetDefault("scan.workers", d.Scan.Workers)
	viper.SetDefault("scan.analysis_sample", d.Scan.AnalysisSample)

	viper.SetDefault("report.format", d.Report.Format)
}

func handleConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && CfgFile == "" {
			log.Debug("No config file found, using defaults")
			return nil
		}
		return oops.With("config_file", CfgFile).Wrapf(err, "error reading config file")
	}
	log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	return nil
}

// CurrentConfig builds a Config from the current viper settings.
func CurrentConfig() Config {
	cfg := Config{
		Image: ImageConfig{
			OutputFormat: viper.GetString("image.output_format"),
		},
		Payload: PayloadConfig{
			Compress:       viper.GetBool("payload.compress"),
			AutoDecompress: viper.GetBool("payload.auto_decompress"),
		},
		Scan: ScanConfig{
			Workers:        viper.GetInt("scan.workers"),
			AnalysisSample: viper.GetInt("scan.analysis_sample"),
		},
		Report: ReportConfig{
			Format: strings.ToLower(viper.GetString("report.format")),
		},
	}

	if cfg.Scan.Workers < 1 {
		log.WithField("workers", cfg.Scan.Workers).Warn("scan.workers must be positive, using 1")
		cfg.Scan.Workers = 1
	}
	return cfg
}

// ValidateReportFormat checks a --format value.
func ValidateReportFormat(f string) error {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return oops.With("format", f).Errorf("unknown report format %q (want text, json or yaml)", f)
	}
}

func BuildStegoDirPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return STEGO_BASE_DIR
	}
	return filepath.Join(home, STEGO_BASE_DIR)
}
