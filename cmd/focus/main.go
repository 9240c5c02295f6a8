// Package main is the entry point for the focus timer. With a terminal on
// stdin it runs the Bubble Tea program; otherwise it prints statistics.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/j-veylop/focus-tui/internal/app"
	"github.com/j-veylop/focus-tui/internal/config"
	"github.com/j-veylop/focus-tui/internal/logger"
	"github.com/j-veylop/focus-tui/internal/services"
	"github.com/j-veylop/focus-tui/internal/ui/tabs/history"
	"github.com/j-veylop/focus-tui/internal/ui/tabs/info"
	"github.com/j-veylop/focus-tui/internal/ui/tabs/settings"
	"github.com/j-veylop/focus-tui/internal/ui/tabs/stats"
	"github.com/j-veylop/focus-tui/internal/ui/tabs/timer"
	"github.com/j-veylop/focus-tui/internal/version"
)

var (
	dbFlag    string
	storeFlag string
)

var rootCmd = &cobra.Command{
	Use:           "focus",
	Short:         "A focus and break timer for the terminal",
	Long:          "Pomodoro-style focus timer with daily goals, streaks, history and ambient noise",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return runTUI()
		}
		return runStats(cmd.OutOrStdout(), formatText)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print today's, this week's and streak statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("output")
		return runStats(cmd.OutOrStdout(), format)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Info())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "session database path (overrides FOCUS_DATABASE_PATH)")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "persistence backend: sqlite or file (overrides FOCUS_STORE)")

	statsCmd.Flags().StringP("output", "o", formatText, "output format: text, json or yaml")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads configuration and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if dbFlag == "" && storeFlag == "" {
		return cfg, nil
	}
	if dbFlag != "" {
		cfg.DatabasePath = dbFlag
	}
	if storeFlag != "" {
		cfg.Store = storeFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openServices loads configuration, starts file logging and opens the
// service manager. The returned cleanup closes both.
func openServices() (*config.Config, *services.Manager, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	logger.Init(logger.Options{Path: cfg.LogPath, Level: cfg.LogLevel})

	mgr, err := services.NewManager(cfg)
	if err != nil {
		logger.Close()
		return nil, nil, nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	cleanup := func() {
		if closeErr := mgr.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
		logger.Close()
	}
	return cfg, mgr, cleanup, nil
}

// runTUI builds the root model with its tabs and runs the program until the
// user quits.
func runTUI() error {
	cfg, mgr, cleanup, err := openServices()
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("starting", "version", version.GetVersion(), "store", cfg.Store)

	model := app.NewModel(mgr)
	model.SetTimerInterval(cfg.TickInterval)

	state := model.GetState()
	model.SetTabs([]app.Tab{
		timer.New(state),
		stats.New(state, mgr),
		history.New(state, mgr),
		settings.New(state, mgr),
		info.New(state, cfg),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		if _, ok := <-sigChan; ok {
			p.Send(tea.Quit())
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
