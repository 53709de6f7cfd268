// portfolio - 3D explorable portfolio
// Fly through a field of glowing markers and click one to read about a project.
//
// Controls:
//
//	Click       - Capture the mouse (free look), then inspect the marker under the crosshair
//	Mouse       - Look around
//	WASD/Arrows - Move
//	ESC         - Release the mouse
//	Backspace   - Close the project popup
//	F3          - Toggle debug overlays
//	`           - Toggle the command console
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"portfolio3d/internal/app"
	"portfolio3d/internal/config"
	"portfolio3d/internal/content"
	"portfolio3d/internal/env"
	"portfolio3d/internal/logger"
	"portfolio3d/internal/metrics"
)

var (
	configPath  string
	contentPath string
	cssPath     string
	logLevel    string
	metricsAddr string
	fullscreen  bool
	asJSON      bool
	asYAML      bool
)

func main() {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "3D explorable portfolio",
		Long: `portfolio - 3D explorable portfolio

Fly through a scene of glowing markers, one per project, and click a marker
to open its details.

Controls:
  Click       - Capture mouse, then inspect the marker under the crosshair
  Mouse       - Look around
  WASD/Arrows - Move
  ESC         - Release mouse
  Backspace   - Close popup
  F3          - Debug overlays
  ` + "`" + `           - Console`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultPath, "Preferences file (YAML)")
	flags.StringVar(&contentPath, "content", content.DefaultPath, "Portfolio items file (YAML)")
	cmd.Flags().StringVar(&cssPath, "css", "", "Stylesheet merged over the built-in overlay style")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve /metrics and /api on this address, e.g. localhost:9090")
	cmd.Flags().BoolVar(&fullscreen, "fullscreen", false, "Open fullscreen at monitor size")

	itemsCmd := &cobra.Command{
		Use:   "items",
		Short: "List portfolio items",
		Long:  "Print the portfolio items the viewer would show, after applying the content file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItems()
		},
	}
	itemsCmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	itemsCmd.Flags().BoolVar(&asYAML, "yaml", false, "Print as a content file (YAML), ready to edit and pass to --content")
	itemsCmd.MarkFlagsMutuallyExclusive("json", "yaml")
	cmd.AddCommand(itemsCmd)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadPrefs reads .env, then the preferences file, then environment overrides, then flags.
func loadPrefs(cmd *cobra.Command) (config.Prefs, []error) {
	var warnings []error
	if _, err := env.Load(env.DefaultPath); err != nil {
		warnings = append(warnings, err)
	}
	prefs, err := config.Load(configPath)
	if err != nil {
		warnings = append(warnings, err)
	}
	prefs = prefs.ApplyEnv(os.LookupEnv)

	f := cmd.Flags()
	if f.Changed("log-level") {
		prefs.LogLevel = logLevel
	}
	if f.Changed("metrics-addr") {
		prefs.MetricsAddr = metricsAddr
	}
	if f.Changed("fullscreen") {
		prefs.Fullscreen = fullscreen
	}
	return prefs, warnings
}

func run(cmd *cobra.Command) error {
	prefs, warnings := loadPrefs(cmd)

	log := logger.New(prefs.LogLevel, os.Stdout, logger.LogFilePath)
	defer log.Close()
	for _, w := range warnings {
		log.Warn().Err(w).Msg("using default preferences")
	}

	items, err := content.Load(contentPath)
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	if prefs.MetricsAddr != "" {
		m = metrics.New()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("config", configPath).
		Str("content", contentPath).
		Int("items", len(items)).
		Msg("starting")

	a := app.New(app.Options{
		Prefs:      prefs,
		Items:      items,
		Log:        log,
		Metrics:    m,
		Stylesheet: cssPath,
		ConfigPath: configPath,
	})
	if err := a.Run(ctx); err != nil {
		log.Error().Err(err).Msg("viewer stopped")
		return err
	}
	log.Info().Msg("bye")
	return nil
}

func runItems() error {
	items, err := content.Load(contentPath)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	if asYAML {
		data, err := content.Marshal(items)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	for i, it := range items {
		fmt.Printf("%d. %s\n", i+1, it.Title)
		fmt.Printf("   %s\n", it.Description)
		if len(it.Technologies) > 0 {
			fmt.Printf("   Technologies: %s\n", strings.Join(it.Technologies, ", "))
		}
		if it.HasLink() {
			fmt.Printf("   Link: %s\n", it.Link)
		}
	}
	return nil
}
