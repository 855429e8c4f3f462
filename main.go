package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/achievify/goaltrack/internal/api"
	"github.com/achievify/goaltrack/internal/app"
	"github.com/achievify/goaltrack/internal/engine"
	"github.com/achievify/goaltrack/internal/model"
	"github.com/achievify/goaltrack/internal/quote"
	"github.com/achievify/goaltrack/internal/reminder"
	"github.com/achievify/goaltrack/internal/session"
	"github.com/achievify/goaltrack/internal/store"
	"github.com/achievify/goaltrack/internal/theme"
)

func main() {
	// No .env file is the normal case.
	_ = godotenv.Load()

	cfgPath := model.DefaultConfigPath()
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	theme.Apply(cfg.Display.Theme)

	sessions := session.NewManager()
	client := api.NewClient(cfg.Server.BaseURL, sessions)
	goals := store.New()
	eng := engine.New(goals, client, sessions)
	scheduler := reminder.NewScheduler(cfg.Reminders.NotificationsEnabled)
	quotes := quote.NewClient(cfg.Server.QuoteURL)

	m := app.New(cfg, cfgPath, sessions, client, eng, scheduler, quotes)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "goaltrack: %v\n", err)
		os.Exit(1)
	}
}
