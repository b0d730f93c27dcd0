package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/userregistry/internal/cli"
	"github.com/dmitrijs2005/userregistry/internal/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
