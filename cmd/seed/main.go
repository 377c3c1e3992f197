package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/meur/cs2hub/internal/config"
	"github.com/meur/cs2hub/internal/models"
	"github.com/meur/cs2hub/internal/pkg/logger"
	"github.com/meur/cs2hub/internal/storage"
)

func main() {
	cliApp := &cli.App{
		Name:  "cs2hub-seed",
		Usage: "load sample skins and servers into the database",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Value: "./cs2hub.db", Usage: "SQLite database path"},
			&cli.StringFlag{Name: "seeds", Value: "./seeds", Usage: "seeds directory"},
		},
		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
}

func run(c *cli.Context) error {
	logger.Configure(config.Common{})

	store, err := storage.New(c.String("db"))
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := c.Context
	seedsDir := c.String("seeds")

	var skins []models.Skin
	if err := readSeed(filepath.Join(seedsDir, "skins.json"), &skins); err != nil {
		log.Warn().Err(err).Msg("skipping skins")
	} else if err := seedSkins(ctx, store, skins); err != nil {
		return err
	}

	var servers []models.GameServer
	if err := readSeed(filepath.Join(seedsDir, "servers.json"), &servers); err != nil {
		log.Warn().Err(err).Msg("skipping servers")
	} else if err := store.BulkCreateServers(ctx, servers); err != nil {
		return err
	} else {
		log.Info().Int("count", len(servers)).Msg("seeded servers")
	}

	log.Info().Msg("seeding complete")
	return nil
}

func seedSkins(ctx context.Context, store *storage.Store, skins []models.Skin) error {
	for _, skin := range skins {
		if err := skin.Draft().Validate(); err != nil {
			return errors.Wrapf(err, "seed skin %q", skin.Name)
		}
	}
	if err := store.BulkCreateSkins(ctx, skins); err != nil {
		return err
	}
	log.Info().Int("count", len(skins)).Msg("seeded skins")
	return nil
}

func readSeed(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return errors.Wrapf(json.Unmarshal(data, v), "decode %s", path)
}
