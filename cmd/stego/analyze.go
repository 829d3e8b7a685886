package main

import (
	"fmt"

	"github.com/faanross/stegokit/internal/analysis"
	"github.com/faanross/stegokit/internal/carrier"
	"github.com/faanross/stegokit/internal/config"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <image>",
		Short: "Report least significant bit statistics of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raster, err := carrier.Load(args[0])
			if err != nil {
				return err
			}

			report := analysis.Analyze(raster, config.CurrentConfig().Scan.AnalysisSample)

			out := cmd.OutOrStdout()
			return render(out, report, func() {
				fmt.Fprintf(out, "\n%s\n", headingStyle.Render("🔒 Security Analysis:"))
				fmt.Fprintf(out, "   Image: %s (%dx%d, %s)\n", args[0], report.Width, report.Height, raster.Format)
				fmt.Fprintf(out, "   Capacity: %d bytes\n", report.Capacity)
				fmt.Fprintf(out, "   LSB Entropy: %.4f bits (max: 8.0)\n", report.Entropy)
				fmt.Fprintf(out, "   Randomness: %.1f%%\n", report.Randomness)
				fmt.Fprintf(out, "   LSB Distribution (sample): %.1f%% zeros, %.1f%% ones\n",
					report.ZeroRatio, report.OneRatio)
				fmt.Fprintf(out, "   Channel averages: R %.0f, G %.0f, B %.0f\n",
					report.ChannelMeans[0], report.ChannelMeans[1], report.ChannelMeans[2])
				if report.Uniform {
					fmt.Fprintf(out, "   %s Uniform color distribution detected\n", warnStyle.Render("⚠️"))
				}

				switch report.Verdict {
				case analysis.VerdictRandom:
					fmt.Fprintf(out, "   %s %s\n", successStyle.Render("✅"), report.Verdict)
				case analysis.VerdictDifficult:
					fmt.Fprintf(out, "   %s %s\n", warnStyle.Render("⚠️"), report.Verdict)
				default:
					fmt.Fprintf(out, "   %s %s\n", errorStyle.Render("❌"), report.Verdict)
				}
			})
		},
	}
}
