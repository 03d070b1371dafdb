package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/rootshare/internal/buildinfo"
	"github.com/dmitrijs2005/rootshare/internal/client/cli"
	"github.com/dmitrijs2005/rootshare/internal/client/config"
	"github.com/dmitrijs2005/rootshare/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := cli.NewApp(cfg, logging.New(os.Stderr, cfg.LogLevel))
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
