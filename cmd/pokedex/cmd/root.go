// Package cmd contains all CLI commands for the pokedex tool.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/f3rmion/pokedex/internal/clipboard"
	"github.com/f3rmion/pokedex/internal/config"
	"github.com/f3rmion/pokedex/internal/dex"
	"github.com/f3rmion/pokedex/internal/observability"
	"github.com/f3rmion/pokedex/internal/pokeapi"
	"github.com/f3rmion/pokedex/internal/tui"
	"github.com/f3rmion/pokedex/internal/tui/blockart"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pokedex",
	Short: "Browse pokemon from PokeAPI in your terminal",
	Long: `pokedex looks up pokemon by name or national dex number and shows
their sprites, types, abilities, first moves, an encounter location and
their evolution path.

Typing in the search box looks up on every change. Favorites are kept
for the length of the session.

Running 'pokedex' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/pokedex/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log at debug level")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig resolves which config file to read.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_file", cfgFile)
		return
	}
	viper.Set("config_file", "")
	if path := config.DefaultConfigFile(); path != "" {
		if _, err := os.Stat(path); err == nil {
			viper.Set("config_file", path)
		}
	}
}

// loadConfig reads the config file chosen by initConfig, if any.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetString("config_file"))
	if err != nil {
		return config.Config{}, err
	}
	if viper.GetBool("verbose") {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// services are the collaborators shared by the TUI and the lookup command.
type services struct {
	cfg      config.Config
	logger   *zap.Logger
	client   *pokeapi.Client
	pipeline *dex.Pipeline
}

func newServices() (*services, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	client := pokeapi.NewClient(
		pokeapi.WithBaseURL(cfg.API.BaseURL),
		pokeapi.WithTimeout(cfg.API.Timeout),
		pokeapi.WithLogger(logger.Sugar()),
	)

	return &services{
		cfg:      cfg,
		logger:   logger,
		client:   client,
		pipeline: dex.NewPipeline(client, dex.WithMaxRandomID(cfg.API.MaxRandomID)),
	}, nil
}

func (s *services) close() {
	_ = s.logger.Sync()
}

// runTUI launches the interactive TUI.
func runTUI(cmd *cobra.Command, args []string) error {
	svc, err := newServices()
	if err != nil {
		return err
	}
	defer svc.close()

	banner, err := blockart.NewBanner(svc.cfg.UI.BannerFont)
	if err != nil {
		svc.logger.Warn("falling back to built-in banner font", zap.Error(err))
		banner, _ = blockart.NewBanner("")
	}

	svc.logger.Info("starting pokedex", zap.String("base_url", svc.client.BaseURL()))

	app := tui.NewApp(tui.Deps{
		Lookup:    svc.pipeline,
		Sprites:   svc.client,
		Clipboard: clipboard.New(clipboard.WithTerminal(os.Stderr)),
		Banner:    banner,
		Logger:    svc.logger,
	}, svc.cfg.UI)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
