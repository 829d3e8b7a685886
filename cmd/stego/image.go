package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/faanross/stegokit/internal/carrier"
	"github.com/faanross/stegokit/internal/compress"
	"github.com/faanross/stegokit/internal/config"
	"github.com/faanross/stegokit/internal/format"
	"github.com/faanross/stegokit/internal/frame"
	"github.com/faanross/stegokit/internal/logger"
	"github.com/faanross/stegokit/internal/stego"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// HideReport summarizes an image embed.
type HideReport struct {
	Output      string  `json:"output" yaml:"output"`
	FrameBytes  int     `json:"frame_bytes" yaml:"frame_bytes"`
	Capacity    int     `json:"capacity_bytes" yaml:"capacity_bytes"`
	Utilization float64 `json:"utilization" yaml:"utilization"`
	Compressed  bool    `json:"compressed" yaml:"compressed"`
}

// ExtractReport is the result of an extraction from any carrier.
type ExtractReport struct {
	Source     string `json:"source" yaml:"source"`
	Channel    string `json:"channel" yaml:"channel"`
	Found      bool   `json:"found" yaml:"found"`
	Length     int    `json:"length" yaml:"length"`
	ValidUTF8  bool   `json:"valid_utf8" yaml:"valid_utf8"`
	Compressed bool   `json:"compressed" yaml:"compressed"`
	Message    string `json:"message,omitempty" yaml:"message,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// CapacityReport describes how much an image can carry.
type CapacityReport struct {
	Image      string `json:"image" yaml:"image"`
	Width      int    `json:"width" yaml:"width"`
	Height     int    `json:"height" yaml:"height"`
	Capacity   int    `json:"capacity_bytes" yaml:"capacity_bytes"`
	MaxMessage int    `json:"max_message_bytes" yaml:"max_message_bytes"`
}

func newHideImageCmd() *cobra.Command {
	var messageFile string

	cmd := &cobra.Command{
		Use:   "hide-image <image> <message> <output>",
		Short: "Hide message in image (LSB)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			imagePath, output := args[0], args[len(args)-1]
			var message []byte
			switch {
			case messageFile != "" && len(args) == 3:
				return oops.Errorf("pass the message as an argument or with --message-file, not both")
			case messageFile != "":
				data, err := os.ReadFile(messageFile)
				if err != nil {
					return oops.With("path", messageFile).Wrapf(err, "error reading message file")
				}
				message = data
			case len(args) == 3:
				message = []byte(args[1])
			default:
				return oops.Errorf("expected <image> <message> <output>, or <image> <output> with --message-file")
			}
			return hideImage(cmd, imagePath, message, output)
		},
	}

	cmd.Flags().StringVarP(&messageFile, "message-file", "m", "", "read the message from a file")
	cmd.Flags().Bool("compress", false, "gzip the message before embedding when it helps")
	bindCompress(cmd)
	return cmd
}

// bindCompress ties cmd's --compress flag to payload.compress. Binding happens
// when the command runs so that only the invoked command's flag is consulted.
func bindCompress(cmd *cobra.Command) {
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return viper.BindPFlag("payload.compress", cmd.Flags().Lookup("compress"))
	}
}

func hideImage(cmd *cobra.Command, imagePath string, message []byte, output string) error {
	cfg := config.CurrentConfig()
	out := cmd.OutOrStdout()

	if filepath.Ext(output) == "" {
		output += "." + cfg.Image.OutputFormat
	}
	if _, err := carrier.FormatFromPath(output); err != nil {
		return err
	}

	raster, err := carrier.Load(imagePath)
	if err != nil {
		return err
	}

	compressed := false
	if cfg.Payload.Compress {
		message, compressed, err = compress.Compress(message)
		if err != nil {
			return err
		}
	}

	embedding, err := stego.PixelPlane{}.Embed(raster.Pix, message)
	if err != nil {
		var capErr *stego.CapacityError
		if errors.As(err, &capErr) {
			return oops.Errorf("Message too large. Max %d bytes, got %d: %w",
				capErr.Available, capErr.Needed, stego.ErrCapacityExceeded)
		}
		return err
	}

	result, err := raster.WithPix(embedding.Carrier)
	if err != nil {
		return err
	}
	if err := carrier.Save(output, result); err != nil {
		return err
	}

	log.WithFields(logger.Fields{
		"image":  imagePath,
		"output": output,
		"bytes":  embedding.FrameBytes,
	}).Debug("Message hidden in image")

	report := HideReport{
		Output:      output,
		FrameBytes:  embedding.FrameBytes,
		Capacity:    embedding.Capacity,
		Utilization: embedding.Utilization,
		Compressed:  compressed,
	}
	return render(out, report, func() {
		fmt.Fprintf(out, "%s Message hidden in %s\n", successStyle.Render("✅"), output)
		fmt.Fprintf(out, "   Capacity used: %d/%d bytes (%s)\n",
			embedding.FrameBytes, embedding.Capacity, percent(embedding.Utilization))
		if compressed {
			fmt.Fprintf(out, "   Compression: %s\n", "gzip")
		}
	})
}

func newExtractImageCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "extract-image <image>",
		Short: "Extract message from image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raster, err := carrier.Load(args[0])
			if err != nil {
				return err
			}

			msg, err := stego.PixelPlane{}.Extract(raster.Pix)
			if err != nil {
				if errors.Is(err, stego.ErrInvalidOrUnencoded) {
					return oops.Errorf("No valid message found or image not encoded: %w", stego.ErrInvalidOrUnencoded)
				}
				return err
			}

			report, msg := messageReport(cmd.ErrOrStderr(), args[0], stego.KindPixelPlane, msg,
				config.CurrentConfig().Payload.AutoDecompress)
			if outputFile != "" {
				if err := os.WriteFile(outputFile, msg.Payload, 0o644); err != nil {
					return oops.With("path", outputFile).Wrapf(err, "error saving output")
				}
			}
			return printExtraction(cmd, report, outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "save the raw message to a file")
	return cmd
}

// messageReport applies optional decompression and UTF-8 handling to msg
// and returns the message the report describes.
func messageReport(warn io.Writer, source string, kind stego.Kind, msg *frame.Message, decompress bool) (ExtractReport, *frame.Message) {
	report := ExtractReport{
		Source:  source,
		Channel: kind.String(),
		Found:   msg != nil,
	}
	if msg == nil {
		return report, nil
	}

	if decompress {
		if inflated, ok := compress.Decompress(msg.Payload); ok {
			msg = frame.NewMessage(inflated)
			report.Compressed = true
		}
	}

	text, err := msg.Text()
	if err != nil {
		log.WithField("source", source).Debug("Payload is not valid UTF-8")
		fmt.Fprintf(warn, "%s Warning: Could not decode as UTF-8, returning raw bytes\n", warnStyle.Render("⚠️"))
	}
	report.Length = msg.Len()
	report.ValidUTF8 = msg.ValidUTF8
	report.Message = text
	return report, msg
}

func printExtraction(cmd *cobra.Command, report ExtractReport, savedTo string) error {
	out := cmd.OutOrStdout()
	return render(out, report, func() {
		fmt.Fprintf(out, "%s %s\n", headingStyle.Render("Extracted message:"), report.Message)
		if report.Compressed {
			fmt.Fprintf(out, "   Decompressed: %d bytes\n", report.Length)
		}
		if savedTo != "" {
			fmt.Fprintf(out, "💾 Message saved to: %s\n", savedTo)
		}
	})
}

func newCapacityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capacity <image>",
		Short: "Show how many bytes an image can hide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raster, err := carrier.Load(args[0])
			if err != nil {
				return err
			}

			capacity := stego.PixelPlane{}.Capacity(raster.Pix)
			report := CapacityReport{
				Image:      args[0],
				Width:      raster.Width,
				Height:     raster.Height,
				Capacity:   capacity,
				MaxMessage: max(capacity-format.HEADER_SIZE, 0),
			}

			out := cmd.OutOrStdout()
			return render(out, report, func() {
				fmt.Fprintf(out, "📷 %s (%dx%d)\n", report.Image, report.Width, report.Height)
				fmt.Fprintf(out, "   Capacity: %d bytes\n", report.Capacity)
				fmt.Fprintf(out, "   Largest message: %d bytes\n", report.MaxMessage)
			})
		},
	}
}
