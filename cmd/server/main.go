package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/authkit/internal/server"
	"github.com/dmitrijs2005/authkit/internal/server/config"
)

func main() {

	// missing .env is fine, env vars may come from the environment itself
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
