package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/totegamma/portalgun"
	"github.com/totegamma/portalgun/client"
)

type seedCharacter struct {
	Name    string
	Species string
	Status  string
}

var seedCharacters = []seedCharacter{
	{"Rick Sanchez", "Human", "alive"},
	{"Morty Smith", "Human", "alive"},
	{"Summer Smith", "Human", "alive"},
	{"Beth Smith", "Human", "alive"},
	{"Jerry Smith", "Human", "alive"},
	{"Birdperson", "Bird-Person", "dead"},
	{"Squanchy", "Cat-Person", "unknown"},
	{"Mr. Meeseeks", "Meeseeks", "unknown"},
	{"Abadango Cluster Princess", "Alien", "alive"},
	{"Abradolf Lincler", "Human", "unknown"},
	{"Adjudicator Rick", "Human", "dead"},
	{"Agency Director", "Human", "dead"},
	{"Alan Rails", "Human", "dead"},
	{"Albert Einstein", "Human", "dead"},
	{"Alexander", "Human", "dead"},
	{"Alien Googah", "Alien", "unknown"},
	{"Alien Morty", "Human", "unknown"},
	{"Amish Cyborg", "Alien", "dead"},
	{"Annie", "Human", "alive"},
	{"Antenna Morty", "Human", "alive"},
}

func newSeedCmd() *cobra.Command {
	var (
		api       string
		dimension string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the canonical characters through the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !portalgun.IsRegularDimension(dimension) {
				fmt.Fprintf(os.Stderr, "note: %s is not one of the regular dimensions %v\n", dimension, portalgun.RegularDimensions)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			created, failed := seed(ctx, client.New(api), dimension)
			fmt.Printf("\nDone. Created %d characters in %s.\n", created, dimension)
			if failed > 0 {
				return fmt.Errorf("%d characters could not be created", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&api, "api", "http://localhost:8000", "API base URL")
	cmd.Flags().StringVar(&dimension, "dimension", portalgun.RegularDimensions[0], "dimension to seed into")

	return cmd
}

func seed(ctx context.Context, c *client.Client, dimension string) (created, failed int) {
	for _, sc := range seedCharacters {
		_, err := c.CreateCharacter(ctx, portalgun.CreateCharacterRequest{
			Name:             sc.Name,
			Status:           sc.Status,
			Species:          sc.Species,
			OriginDimension:  dimension,
			CurrentDimension: dimension,
		})
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "  error creating %s: %v\n", sc.Name, err)
			continue
		}
		created++
		fmt.Printf("  created: %s\n", sc.Name)
	}
	return created, failed
}
