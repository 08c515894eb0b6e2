package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func newCLI() *cli.App {
	return &cli.App{
		Name:  "storefront",
		Usage: "browse the catalog, keep a cart and place orders",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "base-url", Usage: "collaborator base URL (overrides STOREFRONT_BASE_URL)"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.BoolFlag{Name: "dev", Usage: "human readable logs"},
		},
		Commands: []*cli.Command{
			shellCommand(),
			serveCommand(),
			eventsCommand(),
		},
		DefaultCommand: "shell",
	}
}

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		log.Fatalf("storefront: %v", err)
	}
}
