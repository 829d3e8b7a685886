package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/faanross/stegokit/internal/carrier"
	"github.com/faanross/stegokit/internal/config"
	"github.com/faanross/stegokit/internal/frame"
	"github.com/faanross/stegokit/internal/logger"
	"github.com/faanross/stegokit/internal/stego"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	imageExtensions = map[string]bool{".png": true, ".bmp": true, ".gif": true, ".jpg": true, ".jpeg": true}
	textExtensions  = map[string]bool{".txt": true, ".md": true}
)

func newScanCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "scan <path>...",
		Short: "Look for hidden messages in image and text files",
		Long: `Scan files and directories for hidden messages. Images are checked
with the pixel-plane channel, .txt and .md files with the zero-width channel.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.CurrentConfig()
			if cmd.Flags().Changed("workers") {
				cfg.Scan.Workers = max(workers, 1)
			}

			files, err := collectFiles(args)
			if err != nil {
				return err
			}

			results, err := scanFiles(cmd.Context(), files, cfg.Scan.Workers, cfg.Payload.AutoDecompress)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return render(out, results, func() {
				found := 0
				for _, r := range results {
					switch {
					case r.Error != "":
						fmt.Fprintf(out, "%s %s: %s\n", errorStyle.Render("❌"), r.Source, r.Error)
					case r.Found:
						found++
						fmt.Fprintf(out, "%s %s [%s, %d bytes]: %s\n",
							successStyle.Render("🔓"), r.Source, r.Channel, r.Length, r.Message)
					default:
						fmt.Fprintf(out, "   %s: no hidden message\n", r.Source)
					}
				}
				fmt.Fprintf(out, "\n%s %d/%d files carry a message\n", headingStyle.Render("Scan complete:"), found, len(results))
			})
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "files processed concurrently (default from scan.workers)")
	return cmd
}

// collectFiles expands directories into the carrier files they contain.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, oops.With("path", root).Wrapf(err, "cannot scan")
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if imageExtensions[ext] || textExtensions[ext] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, oops.With("path", root).Wrapf(err, "cannot walk directory")
		}
	}
	return files, nil
}

// scanFiles extracts from every file with at most workers in flight. Results
// keep the order of files.
func scanFiles(ctx context.Context, files []string, workers int, decompress bool) ([]ExtractReport, error) {
	results := make([]ExtractReport, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = scanFile(path, decompress)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, oops.Wrapf(err, "scan interrupted")
	}

	log.WithFields(logger.Fields{
		"files":   len(files),
		"workers": workers,
	}).Debug("Scan finished")
	return results, nil
}

func scanFile(path string, decompress bool) ExtractReport {
	var (
		kind stego.Kind
		msg  *frame.Message
		err  error
	)

	if textExtensions[strings.ToLower(filepath.Ext(path))] {
		kind = stego.KindZeroWidth
		var text string
		if text, err = carrier.ReadText("", path); err == nil {
			msg, err = stego.ZeroWidth{}.Extract(text)
		}
	} else {
		kind = stego.KindPixelPlane
		var raster *carrier.Raster
		if raster, err = carrier.Load(path); err == nil {
			msg, err = stego.PixelPlane{}.Extract(raster.Pix)
		}
	}

	if err != nil {
		log.WithError(err).WithField("path", path).Debug("No message extracted")
		report := ExtractReport{Source: path, Channel: kind.String()}
		if !errors.Is(err, stego.ErrInvalidOrUnencoded) {
			report.Error = err.Error()
		}
		return report
	}

	report, _ := messageReport(io.Discard, path, kind, msg, decompress)
	return report
}
