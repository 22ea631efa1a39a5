package main

import (
	"log"

	"github.com/MrSnakeDoc/trainstatus/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ trainstatus failed: %v", err)
	}
}
