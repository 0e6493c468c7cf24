package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/gammazero/workerpool"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ironsheep/pixel-tools/internal/catalog"
	"github.com/ironsheep/pixel-tools/internal/config"
	"github.com/ironsheep/pixel-tools/internal/imaging"
)

type applyFlags struct {
	options string
	outDir  string
	suffix  string
}

func (a *application) applyCmd() *cobra.Command {
	var f applyFlags
	cmd := &cobra.Command{
		Use:   "apply PLUGIN FILE...",
		Short: "Apply a plugin to every file",
		Long: "Apply a plugin to every file and write each result in its source format.\n" +
			"Files are processed concurrently by batch.workers workers.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := lookupPlugin(args[0], f.options)
			if err != nil {
				return err
			}
			return runBatch(cmd.Context(), e, json.RawMessage(f.options), args[1:], f, config.Config.Batch.Workers)
		},
	}
	cmd.Flags().StringVarP(&f.options, "options", "o", "", "Plugin options as a JSON object")
	cmd.Flags().StringVar(&f.outDir, "out", "", "Output directory (default: next to each input)")
	cmd.Flags().StringVar(&f.suffix, "suffix", "", `Appended to output file names (default "-PLUGIN")`)
	return cmd
}

// lookupPlugin resolves name and checks the options so a bad option fails
// before any file is read.
func lookupPlugin(name, options string) (*catalog.Entry, error) {
	e, ok := catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown plugin %q", name)
	}
	if err := e.Validate(json.RawMessage(options)); err != nil {
		return nil, err
	}
	return e, nil
}

// outputPath places the result for path in dir (path's own directory when
// empty) with suffix inserted before the extension.
func outputPath(path, dir, suffix string) string {
	if dir == "" {
		dir = filepath.Dir(path)
	}
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return filepath.Join(dir, strings.TrimSuffix(base, ext)+suffix+ext)
}

func runBatch(ctx context.Context, e *catalog.Entry, opts json.RawMessage, files []string, f applyFlags, workers int) error {
	if f.suffix == "" {
		f.suffix = "-" + e.Name
	}
	if f.outDir != "" {
		if err := os.MkdirAll(f.outDir, 0o755); err != nil {
			return err
		}
	}

	var failed atomic.Int64
	pool := workerpool.New(workers)
	for _, path := range files {
		pool.Submit(func() {
			l := log.WithFields(log.Fields{"plugin": e.Name, "path": path})
			defer func() {
				if r := recover(); r != nil {
					l.WithField("recover", r).Error("error during apply")
					failed.Add(1)
				}
			}()

			out := outputPath(path, f.outDir, f.suffix)
			if err := applyFile(ctx, e, opts, path, out); err != nil {
				l.WithError(err).WithField("kind", imaging.KindOf(err).String()).Error("apply failed")
				failed.Add(1)
				return
			}
			l.WithField("output", out).Info("applied")
		})
	}
	pool.StopWait()

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d files failed", n, len(files))
	}
	return nil
}

func applyFile(ctx context.Context, e *catalog.Entry, opts json.RawMessage, path, out string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	img, err := openImage(ctx, path)
	if err != nil {
		return err
	}
	if err := e.Apply(img, opts); err != nil {
		return err
	}
	return img.Write(out)
}

func (a *application) exportCmd() *cobra.Command {
	var options string
	cmd := &cobra.Command{
		Use:   "export FILE [PLUGIN]",
		Short: "Print the image as a data URI, optionally after a plugin",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := openImage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(args) == 2 {
				e, err := lookupPlugin(args[1], options)
				if err != nil {
					return err
				}
				if err := e.Apply(img, json.RawMessage(options)); err != nil {
					return err
				}
			}

			uri, err := img.ExportBase64()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), uri)
			return err
		},
	}
	cmd.Flags().StringVarP(&options, "options", "o", "", "Plugin options as a JSON object")
	return cmd
}
