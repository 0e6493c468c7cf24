// Package app is the pixel-tools command line.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ironsheep/pixel-tools/internal/config"
	"github.com/ironsheep/pixel-tools/internal/imaging"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

type application struct {
	info       BuildInfo
	configPath string
	logLevel   string
}

// NewRootCommand builds the command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	a := &application{info: info}

	root := &cobra.Command{
		Use:               "pixel-tools",
		Short:             "Decode, transform and re-encode raster images",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.persistentPreRun,
	}
	root.PersistentFlags().StringVarP(
		&a.configPath, "config", "c",
		"", "Configuration file",
	)
	root.PersistentFlags().StringVarP(
		&a.logLevel, "level", "l",
		config.Config.Main.LogLevel, "Log level",
	)

	root.AddCommand(
		a.serveCmd(),
		a.infoCmd(),
		a.pixelCmd(),
		a.applyCmd(),
		a.exportCmd(),
		a.pluginsCmd(),
		a.configCmd(),
		a.versionCmd(),
	)
	return root
}

func (a *application) persistentPreRun(cmd *cobra.Command, _ []string) error {
	if err := config.LoadConfiguration(a.configPath); err != nil {
		return fmt.Errorf("error loading configuration (%w)", err)
	}
	if f := cmd.Flag("level"); f != nil && f.Changed {
		config.Config.Main.LogLevel = a.logLevel
	}

	// stdout carries MCP traffic and command output
	log.SetOutput(cmd.ErrOrStderr())
	lvl, err := log.ParseLevel(config.Config.Main.LogLevel)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	log.WithField("log_level", lvl).Debug()
	return nil
}

// Run executes the command line until it completes or the process is
// interrupted.
func Run(info BuildInfo) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand(info).ExecuteContext(ctx)
}

func newCache() *imaging.Cache {
	return imaging.NewCache(config.Config.Handlers(), config.Config.ImageOptions()...)
}

func openImage(ctx context.Context, path string) (*imaging.Image, error) {
	return imaging.OpenWith(ctx, path, config.Config.Handlers(), config.Config.ImageOptions()...)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
