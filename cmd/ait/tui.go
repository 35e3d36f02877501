package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/activity-insights-tui/internal/app"
	"github.com/j-veylop/activity-insights-tui/internal/clock"
	"github.com/j-veylop/activity-insights-tui/internal/config"
	"github.com/j-veylop/activity-insights-tui/internal/logger"
	"github.com/j-veylop/activity-insights-tui/internal/services"
	"github.com/j-veylop/activity-insights-tui/internal/ui/tabs/apps"
	"github.com/j-veylop/activity-insights-tui/internal/ui/tabs/dev"
	"github.com/j-veylop/activity-insights-tui/internal/ui/tabs/forecast"
	"github.com/j-veylop/activity-insights-tui/internal/ui/tabs/info"
	"github.com/j-veylop/activity-insights-tui/internal/ui/tabs/overview"
	"github.com/j-veylop/activity-insights-tui/internal/ui/tabs/patterns"
	"github.com/j-veylop/activity-insights-tui/internal/ui/tabs/sessions"
)

// runTUI starts the services and runs the dashboard until the user quits.
func runTUI(cfg *config.Config, clk clock.Clock) error {
	// The alt screen owns stderr while the program runs.
	logCloser, err := logger.Init(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	svcManager, err := services.NewManager(cfg, clk)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			logger.Warn("error closing services", "error", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	// Tab order matches app.TabID.
	state := model.GetState()
	model.SetTabs([]app.Tab{
		overview.New(state),
		patterns.New(state),
		sessions.New(state),
		apps.New(state),
		forecast.New(state),
		dev.New(state),
		info.New(state, cfg, svcManager),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		if _, ok := <-sigChan; ok {
			p.Send(tea.Quit())
		}
	}()

	logger.Info("Dashboard started", "log", cfg.ActivityLogPath)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
