package main

import (
	"log"

	"github.com/paperdesk/research-backend/internal/builder"
)

func main() {
	app, err := builder.Build()
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
