package cmd

import (
	"github.com/bz888/ollamachat/internal/config"
	"github.com/bz888/ollamachat/internal/logger"
	"github.com/bz888/ollamachat/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configPath string
	host       string
	dev        bool
	logPath    string
)

var rootCmd = &cobra.Command{
	Use:           "ollamachat",
	Short:         "Terminal chat client for a local Ollama server",
	Long:          "ollamachat lists the models served by a local Ollama instance, shows their details and streams chat replies into a scrolling conversation.",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a TOML config file")
	rootCmd.Flags().StringVar(&host, "host", config.DefaultHost, "Ollama base URL")
	rootCmd.Flags().BoolVar(&dev, "dev", false, "development mode: show the debug console")
	rootCmd.Flags().StringVar(&logPath, "log-path", "", "directory to write the log file to")
}

func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("host") {
		cfg.Host = host
	}
	if cmd.Flags().Changed("dev") {
		cfg.Dev = dev
	}
	if cmd.Flags().Changed("log-path") {
		cfg.LogPath = logPath
	}
	if err := cfg.Normalize(); err != nil {
		return err
	}

	app, err := ui.New(cfg)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Options{
		Dev:     cfg.Dev,
		LogPath: cfg.LogPath,
		Console: app.DebugConsole(),
	}); err != nil {
		return err
	}
	defer logger.Close()

	localLogger := logger.NewLogger("main")
	if cfg.Dev {
		localLogger.Info("Debug mode is enabled")
	}
	localLogger.Info("Using Ollama at", cfg.Host)

	err = app.Run()
	localLogger.Info("Exiting")
	return err
}
