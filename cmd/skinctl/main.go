package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "skinctl",
		Usage: "manage the skin catalogue from scripts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "endpoint", Usage: "skins resource URL, overrides CS2HUB_CATALOGUE_ENDPOINT"},
			&cli.DurationFlag{Name: "timeout", Usage: "request timeout, overrides CS2HUB_REQUEST_TIMEOUT"},
		},
		Commands: []*cli.Command{
			listCommand(),
			addCommand(),
			updateCommand(),
			deleteCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("skinctl failed")
	}
}
