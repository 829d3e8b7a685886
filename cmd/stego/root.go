package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/faanross/stegokit/internal/config"
	"github.com/faanross/stegokit/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var log = logger.GetStegoLogger()

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "stego",
		Short: "Hide and extract messages in images and text",
		Long: `stego hides messages in the least significant bits of an image's
pixels, or in invisible zero-width code points spliced into text, and
recovers them later.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				if err := logger.SetLevel("debug"); err != nil {
					return err
				}
			}
			if err := config.InitConfig(); err != nil {
				return err
			}
			return config.ValidateReportFormat(config.CurrentConfig().Report.Format)
		},
	}

	root.PersistentFlags().StringVar(&config.CfgFile, "config", "", "config file (default $HOME/.stegokit/config.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
	root.PersistentFlags().String("format", config.FormatText, "report format: text, json or yaml")
	if err := viper.BindPFlag("report.format", root.PersistentFlags().Lookup("format")); err != nil {
		log.WithError(err).Error("Failed to bind format flag")
	}

	root.AddCommand(
		newHideImageCmd(),
		newExtractImageCmd(),
		newUnicodeHideCmd(),
		newUnicodeExtractCmd(),
		newCapacityCmd(),
		newAnalyzeCmd(),
		newScanCmd(),
	)
	return root
}
