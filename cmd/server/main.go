package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/meur/cs2hub/internal/app"
	"github.com/meur/cs2hub/internal/config"
	"github.com/meur/cs2hub/internal/pkg/logger"
)

func main() {
	cliApp := &cli.App{
		Name:  "cs2hub-server",
		Usage: "serve the skin catalogue, trade offer and server browser API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address, overrides CS2HUB_SERVICE_ADDRESS"},
			&cli.StringFlag{Name: "db", Usage: "SQLite database path, overrides CS2HUB_DB_PATH"},
		},
		Action: func(c *cli.Context) error {
			conf, err := config.ParseServer()
			if err != nil {
				return err
			}
			if c.IsSet("addr") {
				conf.ServiceAddress = c.String("addr")
			}
			if c.IsSet("db") {
				conf.DBPath = c.String("db")
			}

			logger.Configure(conf.Common)
			app.New(conf).Run()
			return nil
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run server")
	}
}
