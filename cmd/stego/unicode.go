package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/faanross/stegokit/internal/carrier"
	"github.com/faanross/stegokit/internal/compress"
	"github.com/faanross/stegokit/internal/config"
	"github.com/faanross/stegokit/internal/stego"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// UnicodeHideReport describes a zero-width embed.
type UnicodeHideReport struct {
	Result        string `json:"result,omitempty" yaml:"result,omitempty"`
	Output        string `json:"output,omitempty" yaml:"output,omitempty"`
	VisibleLength int    `json:"visible_length" yaml:"visible_length"`
	ActualLength  int    `json:"actual_length" yaml:"actual_length"`
	Compressed    bool   `json:"compressed" yaml:"compressed"`
}

func newUnicodeHideCmd() *cobra.Command {
	var (
		textFile   string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "unicode-hide [text] <message>",
		Short: "Hide in zero-width Unicode",
		Long: `Hide a message in cover text as invisible zero-width characters.
Pass "-" as the text to read it from stdin, or use --file and give only
the message.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) == 2 {
				if textFile != "" {
					return oops.Errorf("pass the cover text as an argument or with --file, not both")
				}
				arg = args[0]
			}
			host, err := carrier.ReadText(arg, textFile)
			if err != nil {
				return err
			}

			message := []byte(args[len(args)-1])
			compressed := false
			if config.CurrentConfig().Payload.Compress {
				message, compressed, err = compress.Compress(message)
				if err != nil {
					return err
				}
			}

			z := stego.ZeroWidth{}
			result, err := z.Embed(host, message)
			if err != nil {
				return err
			}
			visible, actual := z.Lengths(result)

			report := UnicodeHideReport{
				Result:        result,
				VisibleLength: visible,
				ActualLength:  actual,
				Compressed:    compressed,
			}
			if outputFile != "" {
				if err := os.WriteFile(outputFile, []byte(result), 0o644); err != nil {
					return oops.With("path", outputFile).Wrapf(err, "error saving output")
				}
				report.Result = ""
				report.Output = outputFile
			}

			out := cmd.OutOrStdout()
			return render(out, report, func() {
				if outputFile != "" {
					fmt.Fprintf(out, "💾 Result saved to: %s\n", outputFile)
				} else {
					fmt.Fprintf(out, "%s %s\n", headingStyle.Render("Result (copy this):"), result)
				}
				fmt.Fprintf(out, "Visible length: %d, Actual length: %d\n", visible, actual)
			})
		},
	}

	cmd.Flags().StringVarP(&textFile, "file", "f", "", "read the cover text from a file")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the result to a file instead of stdout")
	cmd.Flags().Bool("compress", false, "gzip the message before embedding when it helps")
	bindCompress(cmd)
	return cmd
}

func newUnicodeExtractCmd() *cobra.Command {
	var textFile string

	cmd := &cobra.Command{
		Use:   "unicode-extract <text>",
		Short: "Extract from zero-width Unicode",
		Long: `Extract a message hidden as zero-width characters.
Pass "-" as the text to read it from stdin, or use --file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			text, err := carrier.ReadText(arg, textFile)
			if err != nil {
				return err
			}

			msg, err := stego.ZeroWidth{}.Extract(text)
			if err != nil {
				if errors.Is(err, stego.ErrInvalidOrUnencoded) {
					return oops.Errorf("Zero-width markers found but they do not hold a valid message: %w", stego.ErrInvalidOrUnencoded)
				}
				return err
			}

			source := textFile
			if source == "" {
				source = "argument"
			}
			report, _ := messageReport(cmd.ErrOrStderr(), source, stego.KindZeroWidth, msg,
				config.CurrentConfig().Payload.AutoDecompress)

			out := cmd.OutOrStdout()
			return render(out, report, func() {
				if !report.Found {
					fmt.Fprintln(out, "No hidden message found")
					return
				}
				fmt.Fprintf(out, "%s %s\n", headingStyle.Render("Hidden message:"), report.Message)
			})
		},
	}

	cmd.Flags().StringVarP(&textFile, "file", "f", "", "read the text from a file")
	return cmd
}
