package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/meur/cs2hub/internal/admin"
	"github.com/meur/cs2hub/internal/catalogue"
	"github.com/meur/cs2hub/internal/config"
	"github.com/meur/cs2hub/internal/pkg/logger"
	"github.com/meur/cs2hub/internal/tui"
)

func main() {
	conf, err := config.ParseClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// The terminal belongs to bubbletea, so logs go to a file.
	logFile, err := logger.ConfigureFile(conf.Common, conf.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()

	log.Info().Str("endpoint", conf.CatalogueEndpoint).Msg("starting admin screen")

	bridge := tui.NewBridge()
	client := catalogue.NewClient(conf.CatalogueEndpoint, conf.RequestTimeout)
	session := admin.NewSession(catalogue.NewManager(client, bridge, bridge))

	program := tea.NewProgram(tui.NewModel(session, bridge), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Error().Err(err).Msg("admin screen exited with error")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
