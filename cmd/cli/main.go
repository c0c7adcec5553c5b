package main

import (
	"context"
	"log"
	"os"

	"github.com/amitEt25/aiven-auth-assigment/internal/buildinfo"
	"github.com/amitEt25/aiven-auth-assigment/internal/client/cli"
	"github.com/amitEt25/aiven-auth-assigment/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
