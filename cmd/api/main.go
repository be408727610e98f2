package main

import (
	"context"
	"log"

	"github.com/sportsstore/go-gin-store-server/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("storefront api exited: %v", err)
	}
}
