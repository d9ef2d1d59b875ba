package main

import (
	"log"

	"github.com/jwhur/startpage/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("startpage failed to initialize: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("startpage failed to start: %v", err)
	}
}
