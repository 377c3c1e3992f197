package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/meur/cs2hub/internal/catalogue"
	"github.com/meur/cs2hub/internal/config"
	"github.com/meur/cs2hub/internal/models"
	"github.com/meur/cs2hub/internal/pkg/logger"
)

// deps builds the client and manager from env config and global flags.
// Toasts are printed to stderr so stdout stays parseable.
func deps(c *cli.Context, confirmer catalogue.Confirmer) (*catalogue.Client, *catalogue.Manager, error) {
	conf, err := config.ParseClient()
	if err != nil {
		return nil, nil, err
	}
	if c.IsSet("endpoint") {
		conf.CatalogueEndpoint = c.String("endpoint")
	}
	if c.IsSet("timeout") {
		conf.RequestTimeout = c.Duration("timeout")
	}
	logger.Configure(conf.Common)

	client := catalogue.NewClient(conf.CatalogueEndpoint, conf.RequestTimeout)
	notifier := catalogue.NotifierFunc(func(t catalogue.Toast) {
		fmt.Fprintf(c.App.ErrWriter, "%s: %s\n", t.Title, t.Description)
	})
	return client, catalogue.NewManager(client, notifier, confirmer), nil
}

func draftFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name"},
		&cli.StringFlag{Name: "weapon"},
		&cli.StringFlag{Name: "rarity", Usage: fmt.Sprintf("one of %v", models.Rarities())},
		&cli.StringFlag{Name: "wear"},
		&cli.Int64Flag{Name: "price"},
		&cli.StringFlag{Name: "image-url"},
		&cli.Float64Flag{Name: "float"},
		&cli.StringFlag{Name: "owner"},
		&cli.StringSliceFlag{Name: "sticker", Usage: "repeat for each sticker"},
	}
}

// applyDraftFlags overwrites the fields of d whose flags were given.
func applyDraftFlags(c *cli.Context, d *models.SkinDraft) error {
	if c.IsSet("name") {
		d.Name = c.String("name")
	}
	if c.IsSet("weapon") {
		d.Weapon = c.String("weapon")
	}
	if c.IsSet("rarity") {
		rarity, err := models.ParseRarity(c.String("rarity"))
		if err != nil {
			return err
		}
		d.Rarity = rarity
	}
	if c.IsSet("wear") {
		d.Wear = c.String("wear")
	}
	if c.IsSet("price") {
		d.Price = c.Int64("price")
	}
	if c.IsSet("image-url") {
		d.ImageURL = c.String("image-url")
	}
	if c.IsSet("float") {
		d.FloatValue = c.Float64("float")
	}
	if c.IsSet("owner") {
		d.OwnerName = c.String("owner")
	}
	if c.IsSet("sticker") {
		d.Stickers = c.StringSlice("sticker")
	}
	return nil
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list available skins, most expensive first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rarity"},
			&cli.StringFlag{Name: "weapon", Usage: "case-insensitive substring"},
			&cli.Int64Flag{Name: "min-price"},
			&cli.Int64Flag{Name: "max-price"},
			&cli.BoolFlag{Name: "json", Usage: "print JSON instead of a table"},
		},
		Action: func(c *cli.Context) error {
			client, _, err := deps(c, nil)
			if err != nil {
				return err
			}

			q := catalogue.Query{Weapon: c.String("weapon")}
			if c.IsSet("rarity") {
				if q.Rarity, err = models.ParseRarity(c.String("rarity")); err != nil {
					return err
				}
			}
			if c.IsSet("min-price") {
				v := c.Int64("min-price")
				q.MinPrice = &v
			}
			if c.IsSet("max-price") {
				v := c.Int64("max-price")
				q.MaxPrice = &v
			}

			skins, err := client.List(c.Context, q)
			if err != nil {
				return err
			}
			if c.Bool("json") {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(skins)
			}
			return printSkins(c.App.Writer, skins)
		},
	}
}

func printSkins(w io.Writer, skins []models.Skin) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tWEAPON\tRARITY\tWEAR\tPRICE\tFLOAT\tOWNER")
	for _, s := range skins {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%.4f\t%s\n",
			s.ID, s.Name, s.Weapon, s.Rarity, s.Wear, s.Price, s.FloatValue, s.OwnerName)
	}
	return tw.Flush()
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "create a skin",
		Flags: draftFlags(),
		Action: func(c *cli.Context) error {
			_, manager, err := deps(c, nil)
			if err != nil {
				return err
			}
			var d models.SkinDraft
			if err := applyDraftFlags(c, &d); err != nil {
				return err
			}
			return manager.Create(c.Context, d)
		},
	}
}

func updateCommand() *cli.Command {
	flags := append([]cli.Flag{&cli.StringFlag{Name: "id", Required: true}}, draftFlags()...)
	return &cli.Command{
		Name:  "update",
		Usage: "change fields of a skin; fields without a flag keep their current value",
		Flags: flags,
		Action: func(c *cli.Context) error {
			_, manager, err := deps(c, nil)
			if err != nil {
				return err
			}
			if _, err := manager.Refresh(c.Context); err != nil {
				return err
			}

			id := c.String("id")
			current, ok := manager.Find(id)
			if !ok {
				return errors.Errorf("no available skin with id %q", id)
			}
			d := current.Draft()
			if err := applyDraftFlags(c, &d); err != nil {
				return err
			}
			updated := d.Skin(id)
			updated.IsAvailable = current.IsAvailable
			return manager.Update(c.Context, updated)
		},
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "remove a skin from the listing",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Required: true},
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "skip the confirmation prompt"},
		},
		Action: func(c *cli.Context) error {
			confirmer := catalogue.AlwaysConfirm
			if !c.Bool("yes") {
				confirmer = promptConfirmer(c.App.Reader, c.App.ErrWriter)
			}
			_, manager, err := deps(c, confirmer)
			if err != nil {
				return err
			}

			err = manager.Delete(c.Context, c.String("id"))
			if errors.Is(err, catalogue.ErrDeclined) {
				fmt.Fprintln(c.App.ErrWriter, "aborted")
				return nil
			}
			return err
		},
	}
}

// promptConfirmer asks on w and reads a y/N answer from r.
func promptConfirmer(r io.Reader, w io.Writer) catalogue.Confirmer {
	return catalogue.ConfirmerFunc(func(prompt string) bool {
		fmt.Fprintf(w, "%s [y/N] ", prompt)
		answer, _ := bufio.NewReader(r).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	})
}
